package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/skillshare/internal/applog"
	"github.com/SergeyParamoshkin/skillshare/internal/article"
	"github.com/SergeyParamoshkin/skillshare/internal/metrics"
	"github.com/SergeyParamoshkin/skillshare/internal/resource"
	"github.com/SergeyParamoshkin/skillshare/internal/review"
	"github.com/SergeyParamoshkin/skillshare/internal/store"
	"github.com/SergeyParamoshkin/skillshare/internal/user"
)

// Deps are the collaborators the API router needs. Metrics is optional.
type Deps struct {
	DB             store.Database
	Logger         *zap.SugaredLogger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	// Options are passed to every resource service.
	Options []resource.Option
}

func NewRouter(d Deps) chi.Router {
	if d.Logger == nil {
		d.Logger = zap.NewNop().Sugar()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(applog.Middleware(d.Logger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("root."))
		if err != nil {
			applog.FromContext(r.Context()).Errorw(err.Error())
		}
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("pong"))
		if err != nil {
			applog.FromContext(r.Context()).Errorw(err.Error())
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, render.M{"status": "ok"})
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := d.DB.Ping(ctx); err != nil {
			applog.FromContext(r.Context()).Warnw("store unreachable", "error", err)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, render.M{"status": "not_ready", "error": "store unreachable"})

			return
		}
		render.JSON(w, r, render.M{"status": "ready"})
	})

	r.Mount("/users", user.NewHandler(d.DB, d.Options...).Routes())
	r.Mount("/articles", article.NewHandler(d.DB, d.Options...).Routes())
	r.Mount("/reviews", review.NewHandler(d.DB, d.Options...).Routes())

	return r
}

// NewDiagRouter serves operational endpoints on a separate port.
func NewDiagRouter(m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()
	if m != nil {
		r.Get("/metrics", m.Exporter.ServeHTTP)
	}

	return r
}
