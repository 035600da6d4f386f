package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/khrees2412/hirematch/internal/config"
	"github.com/khrees2412/hirematch/internal/database"
	"github.com/khrees2412/hirematch/internal/logger"
	"github.com/khrees2412/hirematch/internal/search"
)

// App is the dependency container for the CLI application
type App struct {
	Config *config.Config
	DB     *sql.DB
	Repo   *database.Repository
	Logger *zap.Logger
	Search *search.Service
}

// NewApp loads configuration from cfgPath (empty for the default location),
// opens the database and wires the search service.
func NewApp(ctx context.Context, cfgPath string) (*App, error) {
	if err := config.Initialize(cfgPath); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.AppConfig

	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return newApp(cfg, db, log), nil
}

func newApp(cfg *config.Config, db *sql.DB, log *zap.Logger) *App {
	repo := database.New(db)
	svc := search.New(repo, repo, log)
	svc.Workers = cfg.Workers
	svc.DefaultLimit = cfg.DefaultLimit

	log.Debug("app initialized", zap.String("db_path", cfg.DBPath), zap.Int("workers", cfg.Workers))

	return &App{
		Config: cfg,
		DB:     db,
		Repo:   repo,
		Logger: log,
		Search: svc,
	}
}

// Close closes all resources
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
