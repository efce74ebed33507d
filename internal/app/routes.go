package app

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/research-assistant/internal/metrics"
)

// debugRoutes регистрирует маршруты отладочного сервера.
func debugRoutes(recorder *metrics.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
	)

	r.Handle("/metrics", recorder.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	return r
}
