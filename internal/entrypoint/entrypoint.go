package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/songbook/internal/catalog"
	"github.com/mrlokans/songbook/internal/config"
	"github.com/mrlokans/songbook/internal/database"
	"github.com/mrlokans/songbook/internal/database/books"
	"github.com/mrlokans/songbook/internal/database/favourites"
	"github.com/mrlokans/songbook/internal/database/settings"
	"github.com/mrlokans/songbook/internal/database/songs"
	"github.com/mrlokans/songbook/internal/demo"
	http_controllers "github.com/mrlokans/songbook/internal/http"
	"github.com/mrlokans/songbook/internal/lyrics"
	"github.com/mrlokans/songbook/internal/scheduler"
	"github.com/mrlokans/songbook/internal/services"
	"github.com/mrlokans/songbook/internal/settingsstore"
	"github.com/mrlokans/songbook/internal/watcher"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired collaborators of one songbook process.
type App struct {
	Config   *config.Config
	DB       *database.Database // nil when the relational store is disabled
	Songbook *services.Songbook
	Demo     *demo.Middleware
}

// NewApp opens the store (if enabled) and wires the songbook service. The
// catalog is not loaded yet.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	opts := services.Options{
		MinQueryLength:  cfg.Search.MinQueryLength,
		SuggestionLimit: cfg.Search.SuggestionLimit,
	}

	var sampleLyrics func() (*lyrics.Index, error)
	if cfg.Data.LyricsSampleFallback {
		sampleLyrics = demo.SampleLyrics
	}

	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
		app.Demo = demo.NewMiddleware(true)
		opts.Source = services.StaticSource{Name: "embedded demo dataset", Text: demo.SampleCSV}
		opts.Lyrics = demo.SampleLyrics
		opts.Overlays = settingsstore.New(settingsstore.NewMemory())
		app.Songbook = services.NewSongbook(opts)
		return app, nil
	}

	opts.Source = services.FileSource{Path: cfg.Data.CSVPath}
	opts.Lyrics = services.LyricsLoader(cfg.Data.LyricsPath, sampleLyrics)

	if cfg.Database.Enabled {
		db, err := database.NewDatabase(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		app.DB = db
		opts.Overlays = settingsstore.New(settings.NewRepository(db.DB))
		opts.Songs = songs.NewRepository(db.DB)
		opts.Favourites = favourites.NewRepository(db.DB)
		opts.Books = books.NewRepository(db.DB)
	} else {
		log.Printf("Database disabled - favorites and comments are kept in memory only")
		opts.Overlays = settingsstore.New(settingsstore.NewMemory())
	}

	app.Songbook = services.NewSongbook(opts)
	return app, nil
}

// Close releases the database connection.
func (a *App) Close() {
	if a.DB == nil {
		return
	}
	if err := a.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// Router builds the HTTP router for the app.
func (a *App) Router(version string) *gin.Engine {
	routerCfg := http_controllers.RouterConfig{
		Songbook: a.Songbook,
		SearchDefaults: catalog.SearchFilters{
			MatchTitle:  a.Config.Search.TitleDefault,
			MatchAuthor: a.Config.Search.AuthorDefault,
			MatchLyrics: a.Config.Search.LyricsDefault,
		},
		DemoMiddleware: a.Demo,
		Version:        version,
	}
	// Leave the interface nil without a store; a typed nil would be pinged.
	if a.DB != nil {
		routerCfg.Database = a.DB
	}
	return http_controllers.NewRouter(routerCfg)
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is syscall.SIGINT, kill (no param) sends syscall.SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) error {
	log.Printf("Starting Songbook v%s", version)

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	bgCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	// A failed first load keeps the server up; /health reports it and
	// POST /api/admin/reload can retry.
	if err := app.Songbook.Load(bgCtx); err != nil {
		log.Printf("WARNING: failed to load songbook: %v", err)
	}

	var reloadScheduler *scheduler.ReloadScheduler
	if cfg.Reload.Enabled {
		reloadScheduler = scheduler.NewReloadScheduler(app.Songbook, cfg.Reload.Schedule)
		if err := reloadScheduler.Start(bgCtx); err != nil {
			return fmt.Errorf("failed to start reload scheduler: %w", err)
		}
	}

	var fileWatcher *watcher.FileWatcher
	if cfg.Reload.WatchDataFile && !cfg.Demo.Enabled {
		fileWatcher, err = watcher.New(cfg.Data.CSVPath, watcher.DefaultDebounce, func(ctx context.Context) {
			if _, err := app.Songbook.Reload(ctx); err != nil {
				log.Printf("Catalog reload: failed after file change: %v", err)
			}
		})
		if err != nil {
			log.Printf("WARNING: file watcher disabled: %v", err)
		} else {
			fileWatcher.Start(bgCtx)
		}
	}

	onShutdown := func(ctx context.Context) {
		if reloadScheduler != nil {
			reloadScheduler.Stop()
		}
		if fileWatcher != nil {
			if err := fileWatcher.Stop(); err != nil {
				log.Printf("Error stopping file watcher: %v", err)
			}
		}
		cancelBackground()
	}

	Serve(app.Router(version), cfg, onShutdown)
	return nil
}
