package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/bitebudget/internal/http/analytics"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/auth"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/budget"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/export"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/health"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/importcsv"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/matching"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/pricing"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/product"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/receipt"
)

// Handlers holds one handler per API feature.
type Handlers struct {
	Health    *health.Handler
	Auth      *auth.Handler
	Receipts  *receipt.Handler
	Import    *importcsv.Handler
	Budgets   *budget.Handler
	Analytics *analytics.Handler
	Products  *product.Handler
	Pricing   *pricing.Handler
	Matching  *matching.Handler
	Export    *export.Handler
}

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
	// Authenticate guards every route except health, register, login and
	// the public product catalog.
	Authenticate func(http.Handler) http.Handler
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/health", h.Health.Routes)

		r.Route("/auth", func(r chi.Router) {
			h.Auth.Routes(r)
			r.With(opts.Authenticate).Group(h.Auth.ProtectedRoutes)
		})

		r.Route("/products", func(r chi.Router) {
			h.Products.Routes(r)
			r.With(opts.Authenticate).Group(h.Products.ProtectedRoutes)
		})

		r.Group(func(r chi.Router) {
			r.Use(opts.Authenticate)

			r.Route("/receipts", func(r chi.Router) {
				r.Route("/import", h.Import.Routes)
				h.Receipts.Routes(r)
			})

			r.Route("/budget", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Budgets.Routes(r)
			})

			r.Route("/analytics", h.Analytics.Routes)
			r.Route("/matching", h.Matching.Routes)

			r.Route("/export", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Export.Routes(r)
			})

			h.Pricing.Routes(r)
		})
	})

	return router
}
