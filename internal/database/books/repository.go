// Package books provides database operations for the book variants of the
// songbook.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	found, err := repo.SearchBooks("Noten")
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/songbook/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SearchBooks finds books whose title contains the query.
func (r *Repository) SearchBooks(query string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("title LIKE ?", "%"+query+"%").Order("rowid ASC").Find(&books).Error
	return books, err
}

// GetStats returns the number of books and of songs printed in them.
func (r *Repository) GetStats() (totalBooks int64, totalSongs int64, err error) {
	if err = r.db.Model(&entities.Book{}).Count(&totalBooks).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.Model(&entities.BookSongPage{}).Distinct("song_id").Count(&totalSongs).Error
	return totalBooks, totalSongs, err
}
