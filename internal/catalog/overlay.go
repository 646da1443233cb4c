package catalog

import "sort"

// Overlay is user state keyed by song id, kept apart from the imported
// collections so it survives a re-import.
type Overlay[V any] struct {
	entries map[string]V
}

// NewOverlay returns an empty overlay.
func NewOverlay[V any]() *Overlay[V] {
	return &Overlay[V]{entries: make(map[string]V)}
}

// Get returns the value stored for id.
func (o *Overlay[V]) Get(id string) (V, bool) {
	v, ok := o.entries[id]
	return v, ok
}

// Has reports whether id has a value.
func (o *Overlay[V]) Has(id string) bool {
	_, ok := o.entries[id]
	return ok
}

// Upsert stores v for id, replacing any previous value.
func (o *Overlay[V]) Upsert(id string, v V) {
	o.entries[id] = v
}

// Remove deletes the value for id. Removing an absent id is a no-op.
func (o *Overlay[V]) Remove(id string) {
	delete(o.entries, id)
}

// Len returns the number of entries.
func (o *Overlay[V]) Len() int {
	return len(o.entries)
}

// Keys returns the ids in ascending order.
func (o *Overlay[V]) Keys() []string {
	keys := make([]string, 0, len(o.entries))
	for k := range o.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of all entries.
func (o *Overlay[V]) Snapshot() map[string]V {
	out := make(map[string]V, len(o.entries))
	for k, v := range o.entries {
		out[k] = v
	}
	return out
}
