package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/config"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, cfg config.ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", headerUserID},
		AllowCredentials: true,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", h.ListBooks)
		r.Post("/", h.CreateBook)

		r.Route("/{bookID}", func(r chi.Router) {
			r.Get("/", h.GetBook)

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", h.ListAccounts)
				r.Post("/", h.CreateAccount)
				r.Get("/{id}", h.GetAccount)
				r.Delete("/{id}", h.DeleteAccount)
				r.Post("/{id}/archive", h.ArchiveAccount)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.ListCategories)
				r.Post("/", h.CreateCategory)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", h.ListTransactions)
				r.Post("/", h.CreateTransaction)
				r.Post("/batch", h.CreateBatch)
				r.Get("/{id}", h.GetTransaction)
				r.Put("/{id}", h.UpdateTransaction)
				r.Patch("/{id}", h.PatchTransaction)
				r.Delete("/{id}", h.DeleteTransaction)
			})

			r.Get("/balances/verify", h.VerifyBalances)
			r.Post("/balances/rebuild", h.RebuildBalances)
		})
	})

	return r
}

// NewServer wraps the router in an http.Server using the configured
// address and timeouts.
func NewServer(h *Handler, cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(h, cfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

func requestLogger(logger *pterm.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("http request", logger.Args(
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
				"request_id", middleware.GetReqID(r.Context()),
			))
		})
	}
}
