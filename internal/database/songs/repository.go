// Package songs provides database operations for songs, their page mappings,
// lyrics and comments.
//
// # Usage
//
//	repo := songs.NewRepository(db)
//	inserted, err := repo.PopulateFromImportIfEmpty(result)
//	snapshot, err := repo.LoadSnapshot()
package songs

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/songbook/internal/entities"
	"github.com/mrlokans/songbook/internal/importers"
)

const batchSize = 200

// Repository handles song, page, lyrics and comment database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new songs repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountSongs returns the number of stored songs.
func (r *Repository) CountSongs() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Song{}).Count(&count).Error
	return count, err
}

// SaveLyrics creates or replaces the lyrics of a song.
func (r *Repository) SaveLyrics(songID, text string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "song_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"text"}),
	}).Create(&entities.Lyrics{SongID: songID, Text: text}).Error
}

// GetLyrics returns the stored lyrics of a song.
func (r *Repository) GetLyrics(songID string) (*entities.Lyrics, error) {
	var lyrics entities.Lyrics
	err := r.db.Where("song_id = ?", songID).First(&lyrics).Error
	if err != nil {
		return nil, err
	}
	return &lyrics, nil
}

// AddComment attaches a comment to a song.
func (r *Repository) AddComment(songID, text string) (*entities.UserComment, error) {
	return r.addComment(&entities.UserComment{SongID: &songID, Comment: text})
}

// AddBookComment attaches a comment to a book variant.
func (r *Repository) AddBookComment(bookID, text string) (*entities.UserComment, error) {
	return r.addComment(&entities.UserComment{BookID: &bookID, Comment: text})
}

func (r *Repository) addComment(comment *entities.UserComment) (*entities.UserComment, error) {
	comment.ID = uuid.NewString()
	comment.Timestamp = time.Now().UnixMilli()
	if err := r.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return comment, nil
}

// CommentsForSong returns the comments of a song, newest first.
func (r *Repository) CommentsForSong(songID string) ([]entities.UserComment, error) {
	var comments []entities.UserComment
	err := r.db.Where("song_id = ?", songID).
		Order("timestamp DESC, rowid DESC").
		Find(&comments).Error
	return comments, err
}

// CommentsForBook returns the comments of a book variant, newest first.
func (r *Repository) CommentsForBook(bookID string) ([]entities.UserComment, error) {
	var comments []entities.UserComment
	err := r.db.Where("book_id = ?", bookID).
		Order("timestamp DESC, rowid DESC").
		Find(&comments).Error
	return comments, err
}

// PopulateFromImportIfEmpty writes an import result into an empty store.
// It reports whether anything was written; a store that already holds songs
// is left unchanged.
func (r *Repository) PopulateFromImportIfEmpty(result importers.Result) (bool, error) {
	count, err := r.CountSongs()
	if err != nil {
		return false, fmt.Errorf("failed to count songs: %w", err)
	}
	if count > 0 || result.Empty() {
		return false, nil
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		ignoreDuplicates := tx.Clauses(clause.OnConflict{DoNothing: true})
		if err := ignoreDuplicates.CreateInBatches(result.Songs, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert songs: %w", err)
		}
		if len(result.Books) > 0 {
			if err := ignoreDuplicates.CreateInBatches(result.Books, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert books: %w", err)
			}
		}
		if len(result.Pages) > 0 {
			if err := tx.CreateInBatches(result.Pages, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert page mappings: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Printf("Database: populated %d songs, %d books, %d page mappings from import",
		len(result.Songs), len(result.Books), len(result.Pages))
	return true, nil
}

// LoadSnapshot reads the stored songs, books and page mappings back as an
// import result.
func (r *Repository) LoadSnapshot() (importers.Result, error) {
	var result importers.Result

	if err := r.db.Order("rowid ASC").Find(&result.Songs).Error; err != nil {
		return importers.Result{}, fmt.Errorf("failed to load songs: %w", err)
	}
	if err := r.db.Order("rowid ASC").Find(&result.Books).Error; err != nil {
		return importers.Result{}, fmt.Errorf("failed to load books: %w", err)
	}
	if err := r.db.Order("rowid ASC").Find(&result.Pages).Error; err != nil {
		return importers.Result{}, fmt.Errorf("failed to load page mappings: %w", err)
	}

	result.Diagnostics = fmt.Sprintf("Loaded %d songs, %d books, %d page mappings from database\n",
		len(result.Songs), len(result.Books), len(result.Pages))
	return result, nil
}
