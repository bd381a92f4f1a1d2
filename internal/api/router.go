// Package api provides the HTTP API for FuelStack.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/fuelstack/fuelstack/internal/api/handler"
	"github.com/fuelstack/fuelstack/internal/api/middleware"
	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/menu"
	"github.com/fuelstack/fuelstack/internal/optimizer"
	"github.com/fuelstack/fuelstack/internal/plans"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version         string
	BuildTime       string
	Logger          zerolog.Logger
	Metrics         *middleware.Metrics
	HallService     *hall.Service
	MenuService     *menu.Service
	OptimizerClient optimizer.Client
	PlanService     *plans.Service
	Upstreams       []handler.HealthChecker
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequireJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Upstreams...)
	hallHandler := handler.NewHallHandler(cfg.HallService)
	menuHandler := handler.NewMenuHandler(cfg.HallService, cfg.MenuService)
	optimizeHandler := handler.NewOptimizeHandler(cfg.HallService, cfg.OptimizerClient)
	planHandler := handler.NewPlanHandler(cfg.PlanService)

	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		r.Route("/halls", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", hallHandler.ListHalls)
			r.Route("/{hallID}", func(r chi.Router) {
				r.Get("/", hallHandler.GetHall)
				r.Get("/menu", menuHandler.GetMenu)
			})
		})

		// Optimization is expensive upstream; rate limit it harder.
		r.With(expensiveRateLimit).Post("/optimize", optimizeHandler.Optimize)

		r.Route("/plans", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", planHandler.ListPlans)
			r.Post("/", planHandler.SavePlan)
			r.Route("/{planID}", func(r chi.Router) {
				r.Get("/", planHandler.GetPlan)
				r.Delete("/", planHandler.DeletePlan)
			})
		})
	})

	return r
}
