package app

import (
	"context"
	"log"
	"time"

	"job-pulse/internal/config"
	"job-pulse/internal/database"
	dbpostgres "job-pulse/internal/database/postgres"
	"job-pulse/internal/database/seeder"
	"job-pulse/internal/delivery/http/handler"
	"job-pulse/internal/delivery/http/middleware"
	"job-pulse/internal/delivery/http/routes"
	"job-pulse/internal/domain/forecast"
	"job-pulse/internal/infrastructure/artifact"
	"job-pulse/internal/infrastructure/cache"
	"job-pulse/internal/pkg/jwt"
	"job-pulse/internal/registry"
	"job-pulse/internal/repository"
	"job-pulse/internal/usecase"
	"job-pulse/internal/ws"
)

// Container owns every long-lived dependency and the wiring between
// them.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB     database.DB
	Cache  *cache.Redis
	Models *registry.Registry
	Hub    *ws.Hub

	Routes *routes.Registry
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	artifacts, err := artifact.NewMinioStore(cfg.Artifact)
	if err != nil {
		return nil, err
	}

	models := registry.New(artifacts, cfg.Artifact.FetchTimeout, logger)
	forecaster := forecast.NewForecaster(models, logger)
	redisCache := cache.NewRedis(cfg.Redis, logger)

	var db database.DB
	var profiles repository.RoleProfileRepository
	if cfg.Database.DBHost != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err = dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := seeder.Default().Run(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		profiles = repository.NewPostgresRoleProfileRepository(db)
	} else {
		// No database configured: serve the built-in catalog.
		logger.Printf("[App] no database configured, using built-in role catalog")
		profiles = repository.NewStaticRoleProfileRepository(staticProfiles())
	}

	engine := usecase.NewPredictionEngine(forecaster, profiles, logger)

	hub := ws.NewHub(logger)
	notifier := ws.NewEventNotifier(hub)

	jwtSvc := jwt.NewHMACService(cfg.Auth.TokenSecret, cfg.Auth.TokenExpiresIn)

	datasetUC := usecase.NewDatasetUsecase(artifacts, redisCache, engine, notifier, logger)
	skillGapUC := usecase.NewSkillGapUsecase(profiles)
	recommendUC := usecase.NewRecommendationUsecase(profiles, logger)
	authUC := usecase.NewAuthUsecase(cfg.Auth, jwtSvc)
	adminUC := usecase.NewAdminUsecase(models, redisCache, notifier, logger)

	routeRegistry := routes.NewRegistry(routes.Handlers{
		Health:         handler.NewHealthHandler(),
		Dataset:        handler.NewDatasetHandler(datasetUC),
		SkillGap:       handler.NewSkillGapHandler(skillGapUC),
		Recommendation: handler.NewRecommendationHandler(recommendUC),
		Auth:           handler.NewAuthHandler(authUC),
		Admin:          handler.NewAdminHandler(adminUC),
		AdminAuth:      middleware.NewAdminAuthMiddleware(jwtSvc),
		WS:             ws.NewHandler(hub, logger),
	})

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		Models: models,
		Hub:    hub,
		Routes: routeRegistry,
	}, nil
}

func staticProfiles() []repository.StaticProfile {
	defaults := seeder.DefaultRoleProfiles()
	out := make([]repository.StaticProfile, 0, len(defaults))
	for _, p := range defaults {
		out = append(out, repository.StaticProfile{
			Role:           p.Name,
			ExpectedLevel:  p.Level,
			RequiredSkills: p.Skills,
		})
	}
	return out
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
