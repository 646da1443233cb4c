// Package database provides the relational store of the songbook.
//
// The store mirrors the in-memory catalog: songs, books, book_song_page,
// lyrics, user_data and user_comments, plus a settings table holding the
// favorites and comments blobs.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── songs/           # Songs, page mappings, lyrics, comments, import snapshot
//	├── books/           # Book variants
//	├── favourites/      # Favourite flags and per-song user_data rows
//	└── settings/        # Key/value blobs
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./songbook.db")
//
//	songsRepo := songs.NewRepository(db.DB)
//	inserted, err := songsRepo.PopulateFromImportIfEmpty(result)
//
// Each Repository takes a *gorm.DB and declares compile-time checks for the
// interfaces it satisfies.
package database
