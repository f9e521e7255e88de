package http

import (
	"net/http"

	"github.com/go-auth-api/internal/application/accesstoken"
	"github.com/go-auth-api/internal/application/auth"
	"github.com/go-auth-api/internal/application/category"
	"github.com/go-auth-api/internal/application/user"
	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/transport/http/handler"
	appmiddleware "github.com/go-auth-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Deps holds the application services the router exposes.
type Deps struct {
	Auth         auth.Service
	AccessTokens accesstoken.Service
	Users        user.Service
	Categories   category.Service
	Metrics      http.Handler // defaults to promhttp.Handler()
}

// Router is the application handler. Stop releases the rate limiter's
// background cleanup.
type Router struct {
	http.Handler
	limiter *appmiddleware.RateLimiter
}

func (r *Router) Stop() { r.limiter.Stop() }

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) *Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if cfg.TrustedProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.AccessTokens, deps.Auth)

	// 5 requests/second, burst of 10 on the OTP and login endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(deps.Auth)
	userH := handler.NewUserHandler(deps.Users)
	categoryH := handler.NewCategoryHandler(deps.Categories)

	metrics := deps.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(sensitiveRL.Limit)
				r.Post("/request-otp", authH.RequestOTP)
				r.Post("/verify-otp", authH.VerifyOTP)
				r.Post("/register", authH.Register)
				r.Post("/login", authH.Login)
			})
			r.With(authMw).Get("/logged-in", authH.LoggedIn)
			r.With(authMw).Delete("/logout", authH.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userH.List)
				r.Post("/", userH.Create)
				r.Get("/{id}", userH.Get)
				r.Patch("/{id}", userH.Update)
				r.Put("/{id}/restore", userH.Restore)
				r.Put("/{id}/picture", userH.UploadPicture)
				r.Delete("/{id}", userH.Delete)
				r.Delete("/{id}/destroy", userH.Destroy)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryH.List)
				r.Post("/", categoryH.Create)
				r.Get("/{id}", categoryH.Get)
				r.Patch("/{id}", categoryH.Update)
				r.Put("/{id}/restore", categoryH.Restore)
				r.Delete("/{id}", categoryH.Delete)
				r.Delete("/{id}/destroy", categoryH.Destroy)
			})
		})
	})

	return &Router{Handler: r, limiter: sensitiveRL}
}
