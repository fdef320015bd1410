// Package http provides routing and handlers for the FleetKeeper REST API.
package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/FleetKeeper/internal/httperr"
	"github.com/atinyakov/FleetKeeper/internal/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Resource registers its endpoints on a sub-router.
type Resource interface {
	Routes(r chi.Router)
}

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Auth        *AuthHandler
	Users       Resource
	Vehicles    Resource
	Drivers     Resource
	Maintenance Resource
	Fueling     Resource
	Tasks       Resource
	Auction     Resource
}

// RouterOptions configures the middleware chain.
type RouterOptions struct {
	Resolver middleware.TokenResolver
	// Logger defaults to a no-op logger.
	Logger         *zap.Logger
	CORSOrigins    []string
	ProtectAuction bool
	// Health reports storage liveness for /healthz. Nil means always healthy.
	Health func(ctx context.Context) error
}

// NewRouter constructs the API handler.
//
// Routes:
//
//	POST /token                      → Auth.Token (public)
//	GET  /users/me                   → Auth.Me (resolves its own token)
//	/users, /vehicles, /drivers,
//	/maintenance_requests,
//	/fueling_requests, /tasks        → bearer protected CRUD
//	/auction-vehicles                → CRUD, protected only with ProtectAuction
//	GET  /healthz                    → liveness
//
// Trailing slashes are stripped before routing.
func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(opts.Logger))
	r.Use(chiMiddleware.StripSlashes)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(chiMiddleware.AllowContentType("application/json", "application/x-www-form-urlencoded"))

	bearer := middleware.BearerAuth(opts.Resolver, opts.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Health != nil {
			if err := opts.Health(r.Context()); err != nil {
				opts.Logger.Warn("health check failed", zap.Error(err))
				httperr.Write(w, httperr.New(http.StatusServiceUnavailable, "database unavailable"))
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Post("/token", h.Auth.Token)

	r.Route("/users", func(r chi.Router) {
		r.Get("/me", h.Auth.Me)
		r.Group(func(r chi.Router) {
			r.Use(bearer)
			h.Users.Routes(r)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(bearer)
		r.Route("/vehicles", h.Vehicles.Routes)
		r.Route("/drivers", h.Drivers.Routes)
		r.Route("/maintenance_requests", h.Maintenance.Routes)
		r.Route("/fueling_requests", h.Fueling.Routes)
		r.Route("/tasks", h.Tasks.Routes)
	})

	r.Group(func(r chi.Router) {
		if opts.ProtectAuction {
			r.Use(bearer)
		}
		r.Route("/auction-vehicles", h.Auction.Routes)
	})

	return r
}
