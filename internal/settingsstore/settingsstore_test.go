package settingsstore

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/songbook/internal/database"
	"github.com/mrlokans/songbook/internal/database/settings"
	"github.com/mrlokans/songbook/internal/entities"
)

func setupTestDB(t *testing.T) (*settings.Repository, func()) {
	t.Helper()
	dbPath := "./test_settings_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return settings.NewRepository(db.DB), cleanup
}

func TestFavorites(t *testing.T) {
	t.Run("empty store yields no favorites", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		ids, err := New(repo).LoadFavorites()
		require.NoError(t, err)
		assert.Empty(t, ids)
		assert.NotNil(t, ids)
	})

	t.Run("round trip through the database", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		store := New(repo)
		require.NoError(t, store.SaveFavorites([]string{"a_1", "b_2"}))

		setting, err := repo.GetSetting(entities.SettingKeyFavorites)
		require.NoError(t, err)
		assert.Equal(t, "a_1,b_2", setting.Value)

		ids, err := store.LoadFavorites()
		require.NoError(t, err)
		assert.Equal(t, []string{"a_1", "b_2"}, ids)
	})

	t.Run("skips empty entries", func(t *testing.T) {
		kv := NewMemory()
		require.NoError(t, kv.SetSetting(entities.SettingKeyFavorites, ",a_1,, b_2 ,"))

		ids, err := New(kv).LoadFavorites()
		require.NoError(t, err)
		assert.Equal(t, []string{"a_1", "b_2"}, ids)
	})
}

func TestComments(t *testing.T) {
	t.Run("round trip keeps cleared comments", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		store := New(repo)
		require.NoError(t, store.SaveComments(map[string]string{"a_1": "Capo 2", "b_2": ""}))

		comments, err := store.LoadComments()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a_1": "Capo 2", "b_2": ""}, comments)
	})

	t.Run("missing blob yields empty map", func(t *testing.T) {
		comments, err := New(NewMemory()).LoadComments()
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("broken blob is an error", func(t *testing.T) {
		kv := NewMemory()
		require.NoError(t, kv.SetSetting(entities.SettingKeyComments, "{not json"))

		comments, err := New(kv).LoadComments()
		assert.Error(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})
}
