package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"legaldocs-backend/internal/documents"
	"legaldocs-backend/internal/export"
	"legaldocs-backend/internal/llm"
	"legaldocs-backend/internal/llm/openai"
	"legaldocs-backend/internal/normalize"
	"legaldocs-backend/internal/shared/config"
	"legaldocs-backend/internal/shared/server"
	"legaldocs-backend/internal/shared/storage/db"
)

// App holds the application's shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	Repo             documents.Repo
	Enricher         llm.Enricher
	DocumentsService *documents.Service
	NormalizeService *normalize.Service
	ExportService    *export.Service

	DocumentsHandler *documents.Handler
	NormalizeHandler *normalize.Handler
	ExportHandler    *export.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	buildServices(app)

	app.Router = server.NewRouter(cfg,
		app.DocumentsHandler,
		app.NormalizeHandler,
		app.ExportHandler,
	)
	return app, nil
}

// buildDB connects and migrates when DATABASE_URL is configured. Dev-like
// environments fall back to in-memory repositories on any failure.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildServices(app *App) {
	var repo documents.Repo
	if app.DB != nil {
		repo = &documents.PGRepo{DB: app.DB}
	} else {
		repo = documents.NewMemoryRepo()
	}

	enricher := openai.NewClient(app.Config.OpenAIAPIKey, app.Config.LLMModel, app.Config.LLMMaxInput)

	docSvc := &documents.Service{Repo: repo, Enricher: enricher}
	normSvc := &normalize.Service{Repo: repo}
	exportSvc := export.NewService(repo)

	docHandler := documents.NewHandler(docSvc)
	if app.Config.MaxUploadMB > 0 {
		docHandler.MaxUploadBytes = int64(app.Config.MaxUploadMB) << 20
	}

	app.Repo = repo
	app.Enricher = enricher
	app.DocumentsService = docSvc
	app.NormalizeService = normSvc
	app.ExportService = exportSvc
	app.DocumentsHandler = docHandler
	app.NormalizeHandler = normalize.NewHandler(normSvc)
	app.ExportHandler = export.NewHandler(exportSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
