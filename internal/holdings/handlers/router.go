package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires every route onto a chi mux.
func NewRouter(catalog *CatalogHandler, view *ViewHandler, health *HealthHandler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger.Named("http")))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health/live", health.Live)
	r.Get("/health/ready", health.Ready)

	r.Route("/companies", func(r chi.Router) {
		r.Get("/", catalog.List)
		r.Post("/", catalog.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", catalog.Get)
			r.Put("/", catalog.Update)
			r.Delete("/", catalog.Delete)
			r.Post("/favorite", catalog.ToggleFavorite)
			r.Get("/intent", catalog.CompanyIntent)
		})
	})
	r.Get("/favorites", catalog.Favorites)
	r.Get("/plans", catalog.Plans)
	r.Get("/plans/{key}/intent", catalog.PlanIntent)
	r.Get("/services", catalog.Services)
	r.Get("/contact", catalog.Contact)

	r.Route("/view", func(r chi.Router) {
		r.Get("/", view.State)
		r.Post("/search", view.Search)
		r.Post("/tab/{tab}", view.SetTab)
		r.Post("/create", view.OpenCreate)
		r.Post("/edit/{id}", view.OpenEdit)
		r.Patch("/draft", view.UpdateDraft)
		r.Post("/draft/services", view.ToggleDraftService)
		r.Post("/draft/menu", view.ToggleServicesMenu)
		r.Post("/commit", view.Commit)
		r.Post("/cancel", view.Cancel)
		r.Post("/back", view.Back)
		r.Post("/services", view.OpenServicesInfo)
		r.Post("/plans", view.OpenPlans)
		r.Post("/pay/plans/{key}", view.PayPlan)
		r.Post("/pay/companies/{id}", view.PayCompany)
		r.Post("/pay", view.Pay)
		r.Delete("/companies/{id}", view.Delete)
		r.Post("/companies/{id}/favorite", view.ToggleFavorite)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Debug("Request served",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", chimiddleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
