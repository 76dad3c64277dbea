package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the labeling interface routes
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	r.Get("/", h.HandleStatic)
	r.Get("/healthcheck", h.HandleHealthcheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/page", h.HandlePage)
		r.Post("/click", h.HandleClick)
		r.Post("/advance", h.HandleAdvance)
		r.Post("/close", h.HandleClose)
		r.Get("/summary", h.HandleSummary)
		r.Get("/events", h.HandleEvents)
		r.Get("/tiles/{index}/image", h.HandleTileImage)
	})

	return r
}
