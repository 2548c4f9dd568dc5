// Package site serves the index page and its script.
package site

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikolalohinski/gonja"
	"github.com/sirupsen/logrus"
)

//go:embed templates/index.html
var indexTemplate string

//go:embed static
var staticFS embed.FS

const staticPrefix = "/static"

// Options 控制首页渲染。
type Options struct {
	Title      string
	Simulation bool
}

// Handler 渲染首页并提供静态资源。
type Handler struct {
	page []byte
}

// New 预先渲染首页模板。
func New(opts Options) (*Handler, error) {
	if opts.Title == "" {
		opts.Title = "Emotion Detector"
	}

	tpl, err := gonja.FromString(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	page, err := tpl.Execute(gonja.Context{
		"title":         opts.Title,
		"static_prefix": staticPrefix,
		"simulation":    opts.Simulation,
	})
	if err != nil {
		return nil, fmt.Errorf("render index template: %w", err)
	}

	return &Handler{page: []byte(page)}, nil
}

// RegisterRoutes 注册首页与静态资源路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embed 路径在编译期已校验。
		panic(err)
	}
	r.Handle(staticPrefix+"/*", http.StripPrefix(staticPrefix, http.FileServer(http.FS(sub))))
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.page); err != nil {
		logrus.WithError(err).Warn("failed to write index page")
	}
}
