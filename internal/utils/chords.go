package utils

import (
	"regexp"
	"sort"
)

// chordPattern matches a root note with an optional accidental followed by
// any run of quality/extension suffixes. Alternation is leftmost-first, so
// "maj7" after a root is consumed as "m" and the match ends there.
var chordPattern = regexp.MustCompile(`[A-G][#b]?(m|maj|min|sus|dim|aug|\+|-|7|9|11|13|maj7|min7|m7|dim7|aug7|7sus4|add9|madd9)*`)

// ExtractUniqueChords returns every distinct chord found in text, sorted
// ascending.
// Example: "G Am C Am Em D G D" -> ["Am", "C", "D", "Em", "G"]
func ExtractUniqueChords(text string) []string {
	matches := chordPattern.FindAllString(text, -1)

	seen := make(map[string]struct{}, len(matches))
	chords := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		chords = append(chords, m)
	}

	sort.Strings(chords)
	return chords
}
