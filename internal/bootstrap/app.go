package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"assessment-backend/internal/assessments"
	"assessment-backend/internal/generation"
	"assessment-backend/internal/generation/crew"
	"assessment-backend/internal/generation/gemini"
	"assessment-backend/internal/generation/openai"
	"assessment-backend/internal/generation/research"
	"assessment-backend/internal/intake"
	"assessment-backend/internal/shared/config"
	"assessment-backend/internal/shared/server"
	"assessment-backend/internal/shared/storage/db"
	"assessment-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	UsersRepo       users.Repo
	AssessmentsRepo assessments.Repo

	UsersService       *users.Service
	AssessmentsService *assessments.Service
	Provider           generation.Provider

	IntakeHandler     *intake.Handler
	AssessmentHandler *assessments.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var userRepo users.Repo
	var assessmentRepo assessments.Repo
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
		assessmentRepo = &assessments.PGRepo{DB: sqlDB}
	} else {
		userRepo = users.NewMemoryRepo()
		assessmentRepo = assessments.NewMemoryRepo()
	}

	provider, providerName, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	userSvc := users.NewService(userRepo)
	assessmentSvc := &assessments.Service{
		Repo:         assessmentRepo,
		Users:        userSvc,
		Provider:     provider,
		ProviderName: providerName,
	}

	app := &App{
		Config:             cfg,
		DB:                 sqlDB,
		UsersRepo:          userRepo,
		AssessmentsRepo:    assessmentRepo,
		UsersService:       userSvc,
		AssessmentsService: assessmentSvc,
		Provider:           provider,
		IntakeHandler: &intake.Handler{
			Assessments: assessmentSvc,
			Users:       userSvc,
			Secret:      cfg.WebhookSecret,
			BaseURL:     cfg.BaseURL,
		},
		AssessmentHandler: &assessments.Handler{Service: assessmentSvc},
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		IntakeHandler:     app.IntakeHandler,
		AssessmentHandler: app.AssessmentHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

// buildProvider selects the single generation strategy for this deployment.
// Missing credentials are an error in production; dev falls back to the
// placeholder so the intake flow stays testable end to end.
func buildProvider(cfg config.Config) (generation.Provider, string, error) {
	switch cfg.GenerationProvider {
	case "crewai":
		provider, err := crew.NewProvider(cfg.CrewDir)
		if err != nil {
			return devFallback(cfg, "crewai", err)
		}
		return provider, "crewai", nil

	case "research":
		researcher, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return devFallback(cfg, "research", err)
		}
		generator, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return devFallback(cfg, "research", err)
		}
		return research.New(researcher, generator), "research", nil

	default:
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return devFallback(cfg, "openai", err)
		}
		return client, "openai", nil
	}
}

func devFallback(cfg config.Config, name string, err error) (generation.Provider, string, error) {
	if isDevLike(cfg.Env) {
		log.Printf("bootstrap: %s provider unavailable; using placeholder: %v", name, err)
		return generation.Placeholder{}, "placeholder", nil
	}
	return nil, "", fmt.Errorf("configure %s provider: %w", name, err)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
