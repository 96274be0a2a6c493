package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"time"

	"sparkmeals/db"
	"sparkmeals/metrics"
	"sparkmeals/services"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var pageNames = []string{"home.gohtml", "menu.gohtml", "order.gohtml", "notfound.gohtml"}

type Options struct {
	APISecretKey string
	ImagesDir    string
}

// Server wires the storefront pages and the relay endpoint.
type Server struct {
	relay     *services.Relay
	metrics   *metrics.ServerMetrics
	secret    string
	imagesDir string
	pages     map[string]*template.Template
}

func New(relay *services.Relay, m *metrics.ServerMetrics, opts Options) (*Server, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return services.FormatMoney(d) },
	}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.gohtml", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Server{
		relay:     relay,
		metrics:   m,
		secret:    opts.APISecretKey,
		imagesDir: opts.ImagesDir,
		pages:     pages,
	}, nil
}

// Handler returns the router with all pages, API routes and assets.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.instrument)

	r.HandleFunc("/", s.home).Methods(http.MethodGet)
	r.HandleFunc("/menu", s.menu).Methods(http.MethodGet)
	r.HandleFunc("/order/{id}", s.orderPage).Methods(http.MethodGet)
	r.HandleFunc("/order/{id}", s.placeOrder).Methods(http.MethodPost)

	r.HandleFunc("/api/send", s.send).Methods(http.MethodPost)
	r.HandleFunc("/api/meals", s.listMeals).Methods(http.MethodGet)
	r.HandleFunc("/api/meals/{id}", s.getMeal).Methods(http.MethodGet)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	static, _ := fs.Sub(staticFS, "static")
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	if s.imagesDir != "" {
		r.PathPrefix("/images/").Handler(http.StripPrefix("/images/", http.FileServer(http.Dir(s.imagesDir))))
	}

	r.NotFoundHandler = http.HandlerFunc(s.notFound)
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := db.Ping(r.Context()); err != nil {
		log.Printf("health db ping: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "db_error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// instrument records request count and latency per route template.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		handler := "unknown"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				handler = tpl
			}
		}
		s.metrics.Requests.WithLabelValues(handler, strconv.Itoa(rec.status)).Inc()
		s.metrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
