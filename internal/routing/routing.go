package routing

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"anitrack/pkg/handlers"
	"anitrack/pkg/middleware"
)

const defaultStaticDir = "./static"

type Handlers struct {
	Auth     *handlers.AuthHandler
	ReadList *handlers.ReadListHandler
	Metrics  http.Handler
}

// NewRouter assembles the HTTP surface. API routes run behind panic
// recovery and identity resolution; extra middlewares wrap every route.
func NewRouter(h Handlers, resolver middleware.Resolver, staticDir string, logger *slog.Logger, mws ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(mws...)
	r.Use(middleware.Panic(logger))

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet).Name("healthz")
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics).Methods(http.MethodGet).Name("metrics")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Identity(resolver))
	InitRoutes(api, h)

	ServeStaticFiles(r, staticDir)
	ServeFallback(r, staticDir, logger)
	return r
}

func InitRoutes(api *mux.Router, h Handlers) {
	authRouter := api.PathPrefix("/auth").Subrouter()
	readListRouter := api.PathPrefix("/readList").Subrouter()

	/* auth routers */
	authRouter.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost).Name("register")
	authRouter.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost).Name("login")
	authRouter.HandleFunc("/me", h.Auth.Me).Methods(http.MethodGet).Name("me")
	authRouter.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost).Name("logout")

	/* read list routers */
	readListRouter.HandleFunc("", h.ReadList.List).Methods(http.MethodGet)
	readListRouter.HandleFunc("", h.ReadList.Add).Methods(http.MethodPost)
	readListRouter.HandleFunc("", h.ReadList.Remove).Methods(http.MethodDelete)
}

func ServeStaticFiles(r *mux.Router, dir string) {
	if dir == "" {
		dir = defaultStaticDir
	}
	fs := http.FileServer(http.Dir(dir))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))
}

func ServeFallback(r *mux.Router, dir string, logger *slog.Logger) {
	if dir == "" {
		dir = defaultStaticDir
	}
	index := filepath.Join(dir, "html", "index.html")

	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			if _, err := w.Write([]byte(`{"error":"not found"}`)); err != nil {
				logger.Error("failed to write fallback JSON", slog.String("path", r.URL.Path), slog.Any("error", err))
			}
			return
		}
		http.ServeFile(w, r, index)
	})
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
