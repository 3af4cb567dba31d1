package routes

import (
	"github.com/gofiber/fiber/v3"

	"job-pulse/internal/delivery/http/handler"
	"job-pulse/internal/delivery/http/middleware"
	"job-pulse/internal/ws"
)

// Handlers bundles everything the route table needs; construction and
// wiring happen in the app container.
type Handlers struct {
	Health         *handler.HealthHandler
	Dataset        *handler.DatasetHandler
	SkillGap       *handler.SkillGapHandler
	Recommendation *handler.RecommendationHandler
	Auth           *handler.AuthHandler
	Admin          *handler.AdminHandler
	AdminAuth      *middleware.AdminAuthMiddleware
	WS             *ws.Handler
}

type Registry struct {
	h Handlers
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{h: h}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.h.Health.RegisterRoutes(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	r.h.Dataset.RegisterRoutes(v1)
	r.h.SkillGap.RegisterRoutes(v1)
	r.h.Recommendation.RegisterRoutes(v1)

	authGroup := v1.Group("/auth")
	r.h.Auth.RegisterRoutes(authGroup)

	adminGroup := v1.Group("/admin", r.h.AdminAuth.Middleware())
	r.h.Admin.RegisterRoutes(adminGroup)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.h.WS == nil {
		return
	}
	app.Get("/ws/events", r.h.WS.HandleEventsWS)
}
