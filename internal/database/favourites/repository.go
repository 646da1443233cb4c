// Package favourites provides database operations for favourite songs.
//
// The favourite flag lives on the songs row; every change is also recorded in
// the per-song user_data row so it survives a re-populated songs table.
//
// # Usage
//
//	repo := favourites.NewRepository(db)
//	songs, total, err := repo.GetFavouriteSongs(20, 0)
package favourites

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/songbook/internal/entities"
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SetSongFavourite updates the favourite status of a song.
func (r *Repository) SetSongFavourite(songID string, isFavourite bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Song{}).
			Where("id = ?", songID).
			Update("favorite", isFavourite).Error; err != nil {
			return err
		}
		return upsertUserData(tx, songID, func(d *entities.UserData) {
			d.Favorite = &isFavourite
		})
	})
}

// GetFavouriteSongs returns favourite songs with pagination.
// Returns the songs, total count, and any error.
func (r *Repository) GetFavouriteSongs(limit, offset int) ([]entities.Song, int64, error) {
	var songs []entities.Song
	var total int64

	if err := r.db.Model(&entities.Song{}).Where("favorite = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Where("favorite = ?", true).Order("title ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&songs).Error
	return songs, total, err
}

func upsertUserData(db *gorm.DB, songID string, apply func(*entities.UserData)) error {
	var data entities.UserData
	err := db.Where("song_id = ?", songID).First(&data).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		data = entities.UserData{ID: uuid.NewString(), SongID: &songID}
		apply(&data)
		if err := db.Create(&data).Error; err != nil {
			return fmt.Errorf("failed to create user data: %w", err)
		}
		return nil
	case err != nil:
		return err
	}

	apply(&data)
	return db.Save(&data).Error
}
