package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AvaniDange/AutoDashAI/internal/agent"
	"github.com/AvaniDange/AutoDashAI/internal/cleaning"
	"github.com/AvaniDange/AutoDashAI/internal/dataset"
	"github.com/AvaniDange/AutoDashAI/internal/ingest"
	"github.com/AvaniDange/AutoDashAI/internal/insight"
	"github.com/AvaniDange/AutoDashAI/internal/session"
)

const (
	MaxFileSize = 100 * 1024 * 1024 // 100MB
	previewRows = 5
)

type Handler struct {
	Sessions *session.Manager
	Engine   *agent.Engine
	Log      *zap.SugaredLogger
}

func NewHandler(sessions *session.Manager, engine *agent.Engine, log *zap.SugaredLogger) *Handler {
	return &Handler{
		Sessions: sessions,
		Engine:   engine,
		Log:      log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	// Cleaning Routes
	r.Post("/api/analyze", h.Analyze)
	r.Post("/api/clean", h.Clean)
	r.Post("/api/clean-and-analyze", h.CleanAndAnalyze)

	// Dashboard Routes
	r.Post("/api/dashboard/start", h.StartDashboard)
	r.Post("/api/dashboard/start-db", h.StartDashboardFromDB)
	r.Post("/api/dashboard/chat", h.Chat)
	r.Get("/api/dashboard/{sessionID}", h.GetDashboard)
	r.Get("/api/dashboard/{sessionID}/insights", h.GetInsights)
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ============================================================================
// Cleaning
// ============================================================================

// Analyze reports issues found in an uploaded file without modifying it.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	t, filename, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	issues := cleaning.DetectIssues(t)
	writeJSON(w, map[string]interface{}{
		"message":    fmt.Sprintf("Analyzed '%s'", filename),
		"issues":     issues,
		"basic_info": basicInfo(t),
	})
}

// Clean runs the full pipeline on an upload and streams the cleaned file
// back as a download. ?format=excel selects xlsx output; CSV is the default.
func (h *Handler) Clean(w http.ResponseWriter, r *http.Request) {
	t, filename, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	cleaning.Clean(t)

	if r.URL.Query().Get("format") == "excel" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="cleaned_data.xlsx"`)
		if err := ingest.WriteExcel(w, t); err != nil {
			h.Log.Errorw("failed to write cleaned workbook", "file", filename, "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="cleaned_data.csv"`)
	if err := ingest.WriteCSV(w, t); err != nil {
		h.Log.Errorw("failed to write cleaned CSV", "file", filename, "error", err)
	}
}

// CleanAndAnalyze cleans an upload and reports both the issues that were
// found and the cleaned preview.
func (h *Handler) CleanAndAnalyze(w http.ResponseWriter, r *http.Request) {
	t, filename, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	// Capture findings before cleaning mutates the table.
	issues := cleaning.DetectIssues(t)
	original := basicInfo(t)

	cleaning.Clean(t)

	writeJSON(w, map[string]interface{}{
		"message":       fmt.Sprintf("Cleaned '%s'", filename),
		"issues_found":  issues,
		"improvements":  len(issues),
		"original_info": original,
		"cleaned_info":  basicInfo(t),
	})
}

// ============================================================================
// Dashboard
// ============================================================================

// StartDashboard cleans an uploaded file and opens a new dashboard session
// over it.
func (h *Handler) StartDashboard(w http.ResponseWriter, r *http.Request) {
	t, filename, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	if t.RowCount() == 0 {
		http.Error(w, "Uploaded file has no data rows", http.StatusBadRequest)
		return
	}

	cleaning.Clean(t)
	sess := h.Sessions.Start(t)
	h.Log.Infow("dashboard started", "session", sess.ID, "file", filename,
		"rows", t.RowCount(), "charts", len(sess.Charts))

	h.writeDashboardStart(w, sess)
}

// StartDashboardFromDB pulls a Postgres table and opens a session over it.
func (h *Handler) StartDashboardFromDB(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ingest.PostgresConfig
		TableName string `json:"table_name"`
		Limit     int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.TableName == "" {
		http.Error(w, "table_name is required", http.StatusBadRequest)
		return
	}

	t, err := ingest.FetchPostgresTable(r.Context(), req.PostgresConfig, req.TableName, req.Limit)
	if err != nil {
		h.Log.Errorw("database fetch failed", "table", req.TableName, "error", err)
		http.Error(w, fmt.Sprintf("Failed to load table: %v", err), http.StatusBadGateway)
		return
	}
	if t.RowCount() == 0 {
		http.Error(w, "Table has no rows", http.StatusBadRequest)
		return
	}

	cleaning.Clean(t)
	sess := h.Sessions.Start(t)
	h.Log.Infow("dashboard started from database", "session", sess.ID,
		"table", req.TableName, "rows", t.RowCount())

	h.writeDashboardStart(w, sess)
}

// Chat applies one dialogue message to a session's charts.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" || req.Message == "" {
		http.Error(w, "session_id and message are required", http.StatusBadRequest)
		return
	}

	sess, err := h.Sessions.Get(req.SessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	chs, reply := h.Engine.Chat(r.Context(), sess, req.Message)
	writeJSON(w, map[string]interface{}{
		"success": true,
		"charts":  chs,
		"reply":   reply,
	})
}

// GetDashboard returns a session's current charts and dialogue history.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	sess.Lock()
	defer sess.Unlock()
	writeJSON(w, map[string]interface{}{
		"success": true,
		"charts":  sess.Charts,
		"kpis":    sess.KPIs,
		"history": sess.History,
	})
}

// GetInsights generates narrative insights for a session's data and charts.
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	sess.Lock()
	insights := insight.Generate(sess.Table, sess.Charts)
	sess.Unlock()

	writeJSON(w, map[string]interface{}{
		"success":  true,
		"insights": insights,
	})
}

// ============================================================================
// Helpers
// ============================================================================

// readUpload extracts the "file" part of a multipart upload and parses it
// into a table. Writes the error response itself when ok is false.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*dataset.Table, string, bool) {
	if err := r.ParseMultipartForm(MaxFileSize); err != nil {
		http.Error(w, "Failed to parse upload", http.StatusBadRequest)
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing 'file' field", http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	t, err := ingest.ReadUpload(header.Filename, file)
	if err != nil {
		h.Log.Warnw("upload parse failed", "file", header.Filename, "error", err)
		http.Error(w, fmt.Sprintf("Failed to parse '%s': %v", header.Filename, err), http.StatusBadRequest)
		return nil, "", false
	}
	return t, header.Filename, true
}

func (h *Handler) writeDashboardStart(w http.ResponseWriter, sess *session.Session) {
	sess.Lock()
	defer sess.Unlock()
	writeJSON(w, map[string]interface{}{
		"success":    true,
		"session_id": sess.ID,
		"charts":     sess.Charts,
		"kpis":       sess.KPIs,
		"columns":    sess.Table.ColumnNames(),
		"message":    "Dashboard initialized",
	})
}

func basicInfo(t *dataset.Table) map[string]interface{} {
	return map[string]interface{}{
		"rows":         t.RowCount(),
		"columns":      len(t.Columns()),
		"column_names": t.ColumnNames(),
		"preview":      t.Records(previewRows),
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
