package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply demo mode middleware if enabled
	if cfg.DemoMiddleware != nil && cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.InjectContext())
		router.Use(cfg.DemoMiddleware.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Songbook, cfg.Version)
	songsController := NewSongsController(cfg.Songbook, cfg.SearchDefaults)
	favouritesController := NewFavouritesController(cfg.Songbook)
	commentsController := NewCommentsController(cfg.Songbook)
	booksController := NewBooksController(cfg.Songbook)
	adminController := NewAdminController(cfg.Songbook)

	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	router.GET("/api/songs", songsController.Search)
	router.GET("/api/songs/favourites", favouritesController.ListFavourites)
	router.GET("/api/songs/:id", songsController.GetSong)
	router.GET("/api/songs/:id/pages", songsController.GetPages)
	router.POST("/api/songs/:id/favourite", favouritesController.AddFavourite)
	router.DELETE("/api/songs/:id/favourite", favouritesController.RemoveFavourite)
	router.GET("/api/songs/:id/comment", commentsController.GetComment)
	router.PUT("/api/songs/:id/comment", commentsController.SetComment)
	router.GET("/api/songs/:id/comments", commentsController.GetHistory)

	router.GET("/api/books", booksController.GetAllBooks)
	router.GET("/api/books/:id", booksController.GetBook)
	router.GET("/api/books/:id/comments", booksController.GetComments)
	router.POST("/api/books/:id/comments", booksController.AddComment)

	router.POST("/api/chords", ExtractChords)

	router.POST("/api/admin/reload", adminController.Reload)
	router.GET("/api/admin/diagnostics", adminController.Diagnostics)

	return router
}
