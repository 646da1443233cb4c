package entities

// Song is a single entry of the songbook index.
//
// The ID is derived from the title and the raw book value of the import row,
// so it is only unique within one import batch.
type Song struct {
	ID       string  `gorm:"primaryKey;size:512" json:"id"`
	Title    string  `gorm:"index;size:512" json:"title"`
	Author   string  `gorm:"index;size:256" json:"author"`
	Lyrics   string  `gorm:"type:text" json:"lyrics"`
	Genre    *string `gorm:"size:128" json:"genre,omitempty"`
	Year     *int    `json:"year,omitempty"`
	Favorite bool    `gorm:"default:false" json:"favorite"`
}

// Book is one variant of a printed songbook: either the plain edition
// (book_<x>) or the edition with notation (book_<x>_notes).
type Book struct {
	ID       string `gorm:"primaryKey;size:256" json:"id"`
	Title    string `gorm:"size:256" json:"title"`
	Year     *int   `json:"year,omitempty"`
	Favorite bool   `gorm:"default:false" json:"favorite"`
}

// BookSongPage links a song to a book variant. Exactly one of Page and
// PageNotes is set for rows produced by the CSV importer.
type BookSongPage struct {
	SongID    string `gorm:"index;size:512" json:"song_id"`
	BookID    string `gorm:"index;size:256" json:"book_id"`
	Page      *int   `json:"page"`
	PageNotes *int   `json:"page_notes"`
}

// IsNotation reports whether the mapping points into a notation book.
func (p BookSongPage) IsNotation() bool {
	return p.PageNotes != nil && p.Page == nil
}

type Lyrics struct {
	SongID string `gorm:"primaryKey;size:512" json:"song_id"`
	Text   string `gorm:"type:text" json:"text"`
}

// UserData is the per-user overlay row of the relational store.
type UserData struct {
	ID       string  `gorm:"primaryKey;size:64" json:"id"`
	SongID   *string `gorm:"index;size:512" json:"song_id,omitempty"`
	BookID   *string `gorm:"index;size:256" json:"book_id,omitempty"`
	Favorite *bool   `json:"favorite,omitempty"`
	Note     *string `gorm:"type:text" json:"note,omitempty"`
}

// UserComment is a free-text note attached to a song or a book.
type UserComment struct {
	ID        string  `gorm:"primaryKey;size:64" json:"id"`
	SongID    *string `gorm:"index;size:512" json:"song_id,omitempty"`
	BookID    *string `gorm:"index;size:256" json:"book_id,omitempty"`
	Comment   string  `gorm:"type:text" json:"comment"`
	Timestamp int64   `json:"timestamp"` // unix milliseconds
}

func (Song) TableName() string {
	return "songs"
}

func (Book) TableName() string {
	return "books"
}

func (BookSongPage) TableName() string {
	return "book_song_page"
}

func (Lyrics) TableName() string {
	return "lyrics"
}

func (UserData) TableName() string {
	return "user_data"
}

func (UserComment) TableName() string {
	return "user_comments"
}
