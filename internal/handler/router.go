package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/emotion-detector/internal/handler/emotion"
	"github.com/zhouzirui/emotion-detector/internal/handler/site"
	"github.com/zhouzirui/emotion-detector/pkg/metrics"
	"github.com/zhouzirui/emotion-detector/pkg/utils"
)

// NewRouter wires HTTP routes to the detector. siteHandler and m may be nil.
func NewRouter(detector emotion.Detector, siteHandler *site.Handler, m *metrics.Metrics, debug bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logrus.StandardLogger(),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	if siteHandler != nil {
		siteHandler.RegisterRoutes(r)
	}

	emotion.New(detector).RegisterRoutes(r)
	emotion.NewWebSocketHandler(detector).RegisterWebSocketRoutes(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	if debug {
		r.Mount("/debug", middleware.Profiler())
	}

	return r
}
