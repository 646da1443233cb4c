package settingsstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/mrlokans/songbook/internal/entities"
)

// KeyValue is the blob storage behind the store. settings.Repository
// satisfies it; a missing key must yield gorm.ErrRecordNotFound.
type KeyValue interface {
	GetSetting(key string) (*entities.Setting, error)
	SetSetting(key, value string) error
}

// SettingsStore persists the favorites and comments overlays as two blobs:
// a comma-joined id list and a JSON object of song id to comment.
type SettingsStore struct {
	kv KeyValue
}

func New(kv KeyValue) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// LoadFavorites returns the stored favorite ids. Empty entries are skipped.
func (s *SettingsStore) LoadFavorites() ([]string, error) {
	value, err := s.get(entities.SettingKeyFavorites)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	for _, id := range strings.Split(value, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// SaveFavorites stores the favorite ids.
func (s *SettingsStore) SaveFavorites(ids []string) error {
	return s.kv.SetSetting(entities.SettingKeyFavorites, strings.Join(ids, ","))
}

// LoadComments returns the stored comments. A blob that is not valid JSON is
// reported as an error together with an empty map.
func (s *SettingsStore) LoadComments() (map[string]string, error) {
	comments := make(map[string]string)

	value, err := s.get(entities.SettingKeyComments)
	if err != nil {
		return comments, err
	}
	if value == "" {
		return comments, nil
	}

	if err := json.Unmarshal([]byte(value), &comments); err != nil {
		return make(map[string]string), fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// SaveComments stores the comments.
func (s *SettingsStore) SaveComments(comments map[string]string) error {
	data, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("failed to encode comments: %w", err)
	}
	return s.kv.SetSetting(entities.SettingKeyComments, string(data))
}

func (s *SettingsStore) get(key string) (string, error) {
	setting, err := s.kv.GetSetting(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return setting.Value, nil
}

// Memory is a KeyValue kept in process memory, used when the relational
// store is disabled.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) GetSetting(key string) (*entities.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &entities.Setting{Key: key, Value: value}, nil
}

func (m *Memory) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
