package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"yoyboard/adapters/excel"
	"yoyboard/domain/expenditure"
	"yoyboard/internal/store"
	"yoyboard/internal/testkit"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App represents the dashboard application
type App struct {
	router    *chi.Mux
	store     *store.DatasetStore
	testkit   *testkit.TestKit
	templates *template.Template
	config    Config
}

// Config holds UI application configuration
type Config struct {
	Port          string
	MaxUploadSize int64
	SampleEnabled bool
}

// NewApp creates a new dashboard application
func NewApp(config Config) (*App, error) {
	reader := excel.NewWorkbookReader()
	datasets := store.NewDatasetStore(func(ctx context.Context, content []byte) (*expenditure.WideTable, []string, error) {
		wb, err := reader.ReadWorkbook(ctx, content)
		if err != nil {
			return nil, nil, err
		}
		return wb.Wide, wb.Sheets, nil
	})

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		store:     datasets,
		testkit:   testkit.NewTestKit(),
		templates: templates,
		config:    config,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Main page
	a.router.Get("/", a.handleIndex)

	// Dataset lifecycle
	a.router.Post("/api/datasets/upload", a.handleUpload)
	a.router.Get("/api/datasets/sample", a.handleSampleData)
	a.router.Get("/api/datasets/sample/download", a.handleSampleDownload)

	// HTMX fragment endpoint for the selected visualization
	a.router.Get("/api/datasets/{id}/view", a.handleDatasetView)

	// JSON view models consumed by the client-side chart renderer
	a.router.Get("/api/datasets/{id}/chart.json", a.handleChartJSON)
}

// Router exposes the HTTP handler, mainly for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.config.Port
	log.Printf("Starting health expenditure dashboard on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// renderTemplate writes a template with the standard HTML content type
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
