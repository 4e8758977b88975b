package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"yoyboard/domain/core"
	"yoyboard/domain/expenditure"
	"yoyboard/internal/errors"
	"yoyboard/internal/store"
	"yoyboard/internal/viz"
)

// VizOption is one entry of the chart-type selector. Labels are part of the UI
// contract and must not drift.
type VizOption struct {
	Key   string
	Label string
}

var vizOptions = []VizOption{
	{Key: "line", Label: "Line Chart - YoY Change"},
	{Key: "heatmap", Label: "Heatmap - YoY Change"},
	{Key: "bar", Label: "Bar Chart - Average YoY Change"},
}

// indexData feeds the main page template
type indexData struct {
	SampleEnabled bool
	Docs          interface{}
}

// dashboardData feeds the dashboard fragment rendered after a successful load
type dashboardData struct {
	ID         string
	Filename   string
	Source     string
	Sheets     []string
	Table      *viz.TableView
	Countries  []string
	VizOptions []VizOption
	DefaultViz string
}

// viewData feeds the chart fragment
type viewData struct {
	VizKey   string
	ChartURL string
	Height   int
}

// handleIndex renders the single dashboard page
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "index.html", indexData{
		SampleEnabled: a.config.SampleEnabled,
		Docs:          RenderDocs(),
	})
}

// handleUpload ingests an uploaded workbook and renders the dashboard fragment
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxUploadSize)
	if err := r.ParseMultipartForm(a.config.MaxUploadSize); err != nil {
		a.renderError(w, "The uploaded file is too large or the form is invalid.")
		return
	}

	file, header, err := r.FormFile("workbook")
	if err != nil {
		a.renderError(w, "No file was provided.")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		a.renderError(w, "Only Excel (.xlsx) workbooks are accepted.")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[handleUpload] Failed to read upload: %v", err)
		a.renderError(w, "Failed to read the uploaded file.")
		return
	}

	ds, err := a.store.Ingest(r.Context(), content, header.Filename, "upload")
	if err != nil {
		log.Printf("[handleUpload] Ingest failed (code=%s): %v", errors.GetCode(err), err)
		a.renderError(w, userMessage(err))
		return
	}

	a.renderDashboard(w, ds)
}

// handleSampleData loads the built-in demonstration workbook through the same
// read path an upload takes
func (a *App) handleSampleData(w http.ResponseWriter, r *http.Request) {
	if !a.config.SampleEnabled {
		a.renderError(w, "Sample data is disabled.")
		return
	}

	content, err := a.testkit.SampleWorkbook()
	if err != nil {
		log.Printf("[handleSampleData] Failed to build sample workbook: %v", err)
		a.renderError(w, "Failed to build the sample dataset.")
		return
	}

	ds, err := a.store.Ingest(r.Context(), content, "sample.xlsx", "sample")
	if err != nil {
		log.Printf("[handleSampleData] Ingest failed: %v", err)
		a.renderError(w, userMessage(err))
		return
	}

	a.renderDashboard(w, ds)
}

// handleSampleDownload serves the demonstration workbook as a file
func (a *App) handleSampleDownload(w http.ResponseWriter, r *http.Request) {
	content, err := a.testkit.SampleWorkbook()
	if err != nil {
		http.Error(w, "Failed to build sample workbook", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="health_expenditure_sample.xlsx"`)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Write(content)
}

// handleDatasetView renders the selected visualization fragment for a dataset
func (a *App) handleDatasetView(w http.ResponseWriter, r *http.Request) {
	ds, vizKey, countries, ok := a.resolveViewRequest(w, r)
	if !ok {
		return
	}

	filtered := expenditure.FilterWide(ds.Wide, countries)
	if filtered.RowCount() == 0 {
		a.renderTemplate(w, "warning.html", map[string]string{
			"Message": "No data available for selected countries.",
		})
		return
	}

	query := url.Values{"viz": {vizKey}}
	for _, c := range countries {
		query.Add("countries", c)
	}

	height := 600
	if vizKey == "heatmap" {
		height = viz.BuildHeatmap(filtered).Height
	}

	a.renderTemplate(w, "chart.html", viewData{
		VizKey:   vizKey,
		ChartURL: fmt.Sprintf("/api/datasets/%s/chart.json?%s", ds.ID, query.Encode()),
		Height:   height,
	})
}

// handleChartJSON serves the computed view model for the client-side renderer
func (a *App) handleChartJSON(w http.ResponseWriter, r *http.Request) {
	ds, vizKey, countries, ok := a.resolveViewRequest(w, r)
	if !ok {
		return
	}

	filtered := expenditure.FilterWide(ds.Wide, countries)
	if filtered.RowCount() == 0 {
		writeJSONStatus(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "No data available for selected countries.",
		})
		return
	}

	var payload interface{}
	switch vizKey {
	case "line":
		payload = viz.BuildLineChart(expenditure.FilterLong(ds.Long, countries))
	case "heatmap":
		payload = viz.BuildHeatmap(filtered)
	case "bar":
		payload = viz.BuildBarChart(filtered)
	}

	writeJSON(w, map[string]interface{}{"kind": vizKey, "chart": payload})
}

// resolveViewRequest pulls the dataset, chart kind, and country selection out
// of a view or chart.json request
func (a *App) resolveViewRequest(w http.ResponseWriter, r *http.Request) (*store.Dataset, string, []string, bool) {
	id, err := core.ParseDatasetID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid dataset ID", http.StatusBadRequest)
		return nil, "", nil, false
	}

	ds, err := a.store.Get(id)
	if err != nil {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return nil, "", nil, false
	}

	vizKey := r.URL.Query().Get("viz")
	if !validVizKey(vizKey) {
		http.Error(w, "Unknown visualization type", http.StatusBadRequest)
		return nil, "", nil, false
	}

	return ds, vizKey, r.URL.Query()["countries"], true
}

func validVizKey(key string) bool {
	for _, opt := range vizOptions {
		if opt.Key == key {
			return true
		}
	}
	return false
}

// renderDashboard renders the full dashboard fragment for a loaded dataset
func (a *App) renderDashboard(w http.ResponseWriter, ds *store.Dataset) {
	a.renderTemplate(w, "dashboard.html", dashboardData{
		ID:         ds.ID.String(),
		Filename:   ds.Filename,
		Source:     ds.Source,
		Sheets:     ds.Sheets,
		Table:      viz.BuildTableView(ds.Wide),
		Countries:  ds.Wide.CountryNames(),
		VizOptions: vizOptions,
		DefaultViz: vizOptions[0].Key,
	})
}

func (a *App) renderError(w http.ResponseWriter, message string) {
	a.renderTemplate(w, "error.html", map[string]string{"Message": message})
}

// userMessage maps an ingest error onto user-facing text. Structured codes get
// their message shown as-is; anything else stays generic.
func userMessage(err error) string {
	if errors.IsAppError(err) {
		return err.Error()
	}
	return "The workbook could not be processed."
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}
