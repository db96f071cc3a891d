package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"myblog/app/controllers"
	"myblog/app/metrics"
	"myblog/app/middleware"
	"myblog/app/repositories"
	"myblog/app/services"
	"myblog/app/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PermalinkPath is the route template of an entry permalink. Only the ID is
// used to find the entry.
const PermalinkPath = "/{year:[0-9]{4}}/{month:[0-9]{1,2}}/{day:[0-9]{1,2}}/{id:[0-9]+}-{slug:[^/]*}/"

// Options configures the router.
type Options struct {
	// PerPage is the default index page size.
	PerPage int
	Logger  *zap.SugaredLogger
	Metrics *metrics.Metrics
}

// SetupRoutes defines the application's routes over store and returns a router.
func SetupRoutes(store *repositories.Store, opts Options) *mux.Router {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	entryService := services.NewEntryService(store.Entries, store.Comments, services.WithPerPage(opts.PerPage))
	commentService := services.NewCommentService(store.Comments, store.Entries)
	renderer := views.Must()

	entryController := controllers.NewEntryController(entryService, commentService, renderer, opts.Metrics)
	commentController := controllers.NewCommentController(commentService, entryController, renderer, opts.Metrics)

	router := mux.NewRouter().StrictSlash(true)

	// Apply global middleware
	router.Use(middleware.Logger(opts.Logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Metrics(opts.Metrics))

	router.NotFoundHandler = middleware.Logger(opts.Logger)(notFound(renderer))

	// Operational endpoints
	router.Handle("/metrics", opts.Metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", healthz).Methods("GET")

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", views.Static()))

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	apiEntries := api.PathPrefix("/entries").Subrouter()
	apiEntries.HandleFunc("", entryController.Index).Methods("GET")
	apiEntries.HandleFunc("", entryController.Create).Methods("POST")
	apiEntries.HandleFunc("/{id:[0-9]+}", entryController.Get).Methods("GET")
	apiEntries.HandleFunc("/{id:[0-9]+}", entryController.Update).Methods("PUT")
	apiEntries.HandleFunc("/{id:[0-9]+}", entryController.Delete).Methods("DELETE")
	apiEntries.HandleFunc("/{id:[0-9]+}/comments", commentController.Index).Methods("GET")
	apiEntries.HandleFunc("/{id:[0-9]+}/comments", commentController.Create).Methods("POST")
	api.HandleFunc("/comments/{id:[0-9]+}", commentController.Delete).Methods("DELETE")

	// Web routes
	router.HandleFunc("/", entryController.Index).Methods("GET")
	router.HandleFunc("/entries", entryController.Index).Methods("GET")
	router.HandleFunc("/entries/{id:[0-9]+}", entryController.Redirect).Methods("GET")
	router.HandleFunc(PermalinkPath, entryController.Show).Methods("GET")
	router.HandleFunc(PermalinkPath, commentController.Submit).Methods("POST")

	return router
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func notFound(renderer *views.Renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
			return
		}
		if err := renderer.RenderError(w, http.StatusNotFound, "The page you requested does not exist."); err != nil {
			http.NotFound(w, r)
		}
	})
}
