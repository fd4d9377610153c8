package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/piwi3910/cantocalc/internal/catalog"
	"github.com/piwi3910/cantocalc/internal/export"
	"github.com/piwi3910/cantocalc/internal/model"
)

// Response types

// HealthResponse is the response for /health.
type HealthResponse struct {
	Status       string `json:"status"`
	CatalogRows  int    `json:"catalog_rows"`
	Sessions     int    `json:"sessions"`
	CatalogState string `json:"catalog"`
}

// ErrorResponse is the standard error response. Field names the offending
// input for validation errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// CalculateRequest is the request body for /api/v1/calculate. Missing
// rounding and unit fields fall back to the service defaults.
type CalculateRequest struct {
	OuterCM      *float64   `json:"outer_cm"`
	InnerCM      *float64   `json:"inner_cm"`
	ThicknessMM  *float64   `json:"thickness_mm"`
	Unit         *string    `json:"unit,omitempty"`
	RoundingStep *stepValue `json:"rounding_step,omitempty"`
	RoundingMode *string    `json:"rounding_mode,omitempty"`
	ItemCode     string     `json:"item_code,omitempty"`
	ProductName  string     `json:"product_name,omitempty"`
	Color        string     `json:"color,omitempty"`
}

// stepValue accepts the rounding step as a JSON string ("0.5", "none") or
// number (0.5).
type stepValue string

func (v *stepValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = stepValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("rounding_step must be a number or string: %w", err)
	}
	*v = stepValue(n.String())
	return nil
}

// CalculateResponse wraps the recorded history entry.
type CalculateResponse struct {
	Entry model.HistoryEntry `json:"entry"`
}

// HistoryResponse lists a session's entries in insertion order.
type HistoryResponse struct {
	Entries []model.HistoryEntry `json:"entries"`
	Count   int                  `json:"count"`
}

// CatalogResponse lists matching catalog rows.
type CatalogResponse struct {
	Rows   []catalog.Row `json:"rows"`
	Total  int           `json:"total"`
	Colors []string      `json:"colors"`
	Source string        `json:"source,omitempty"`
}

// errNoEntries is returned by report exports on an empty history.
var errNoEntries = errors.New("no history entries to export")

// Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := "loaded"
	if s.catalog.Len() == 0 {
		state = "empty"
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		CatalogRows:  s.catalog.Len(),
		Sessions:     s.sessions.Len(),
		CatalogState: state,
	})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	outer, inner, thickness, err := req.measurement()
	if err != nil {
		writeInputError(w, err)
		return
	}
	m, err := model.Validate(outer, inner, thickness)
	if err != nil {
		writeInputError(w, err)
		return
	}

	var step *string
	if req.RoundingStep != nil {
		v := string(*req.RoundingStep)
		step = &v
	}
	opts, err := s.options(req.Unit, step, req.RoundingMode)
	if err != nil {
		writeInputError(w, err)
		return
	}

	info, err := s.resolveCatalog(req)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	session := sessionFrom(r.Context())
	var entry model.HistoryEntry
	session.WithHistory(func(h *model.History) {
		entry, err = model.Record(h, m.OuterCM, m.InnerCM, m.ThicknessMM, opts, info)
	})
	if err != nil {
		writeInputError(w, err)
		return
	}

	s.logger.Debug().
		Str("session", session.ID).
		Str("entry", entry.ID).
		Str("item_code", info.ItemCode).
		Msg("calculation recorded")
	writeJSON(w, http.StatusOK, CalculateResponse{Entry: entry})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	entries := sessionFrom(r.Context()).Entries()
	writeJSON(w, http.StatusOK, HistoryResponse{Entries: entries, Count: len(entries)})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())
	session.WithHistory(func(h *model.History) {
		h.Clear()
	})
	s.logger.Debug().Str("session", session.ID).Msg("history cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.writeExport(w, r, "text/csv; charset=utf-8", "history.csv", export.WriteHistoryCSV)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.writeExport(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "history.xlsx", export.WriteHistoryXLSX)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.writeExport(w, r, "application/pdf", "history.pdf", func(w io.Writer, entries []model.HistoryEntry, unit model.Unit) error {
		if len(entries) == 0 {
			return errNoEntries
		}
		return export.WriteReportPDF(w, entries, unit)
	})
}

// writeExport renders the session history into memory first so a failed
// export never leaves a partial body behind.
func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, contentType, filename string,
	render func(io.Writer, []model.HistoryEntry, model.Unit) error) {
	unit, err := s.queryUnit(r)
	if err != nil {
		writeInputError(w, err)
		return
	}

	session := sessionFrom(r.Context())
	var buf bytes.Buffer
	if err := render(&buf, session.Entries(), unit); err != nil {
		if errors.Is(err, errNoEntries) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error().Err(err).Str("session", session.ID).Str("file", filename).Msg("export failed")
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows := s.catalog.Query(q.Get("q"), q.Get("color"))
	if rows == nil {
		rows = []catalog.Row{}
	}
	colors := s.catalog.Colors()
	if colors == nil {
		colors = []string{}
	}
	writeJSON(w, http.StatusOK, CatalogResponse{
		Rows:   rows,
		Total:  len(rows),
		Colors: colors,
		Source: s.catalog.Source,
	})
}

func (s *Server) handleDiagramDXF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	values := make(map[string]float64, 3)
	for _, field := range []string{model.FieldOuterDiameter, model.FieldInnerDiameter, model.FieldThickness} {
		v, err := parseNumber(field, q.Get(field))
		if err != nil {
			writeInputError(w, err)
			return
		}
		values[field] = v
	}

	m, err := model.Validate(values[model.FieldOuterDiameter], values[model.FieldInnerDiameter], values[model.FieldThickness])
	if err != nil {
		writeInputError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteDiagramDXF(&buf, m); err != nil {
		s.logger.Error().Err(err).Msg("DXF export failed")
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}
	w.Header().Set("Content-Type", "application/dxf")
	w.Header().Set("Content-Disposition", `attachment; filename="diagram.dxf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Helpers

// measurement checks that all three dimensions were supplied.
func (req CalculateRequest) measurement() (outer, inner, thickness float64, err error) {
	fields := []struct {
		name  string
		value *float64
	}{
		{model.FieldOuterDiameter, req.OuterCM},
		{model.FieldInnerDiameter, req.InnerCM},
		{model.FieldThickness, req.ThicknessMM},
	}
	for _, f := range fields {
		if f.value == nil {
			return 0, 0, 0, &model.InvalidInputError{Field: f.name, Reason: f.name + " is required"}
		}
	}
	return *req.OuterCM, *req.InnerCM, *req.ThicknessMM, nil
}

// options overlays request values on the service defaults.
func (s *Server) options(unit, step, mode *string) (model.Options, error) {
	opts := s.defaults
	if unit != nil {
		u, err := model.ParseUnit(*unit)
		if err != nil {
			return opts, &model.InvalidInputError{Field: "unit", Reason: err.Error()}
		}
		opts.Unit = u
	}
	if step != nil {
		v, err := model.ParseRoundingStep(*step)
		if err != nil {
			return opts, &model.InvalidInputError{Field: "rounding_step", Reason: err.Error()}
		}
		opts.Rounding.Step = v
	}
	if mode != nil {
		m, err := model.ParseRoundingMode(*mode)
		if err != nil {
			return opts, &model.InvalidInputError{Field: "rounding_mode", Reason: err.Error()}
		}
		opts.Rounding.Mode = m
	}
	return opts, nil
}

// resolveCatalog looks the item code up when a catalog is loaded. Without a
// catalog the request's own metadata is recorded as given.
func (s *Server) resolveCatalog(req CalculateRequest) (model.CatalogInfo, error) {
	code := strings.TrimSpace(req.ItemCode)
	if code == "" || s.catalog.Len() == 0 {
		return model.CatalogInfo{
			ItemCode:    code,
			ProductName: strings.TrimSpace(req.ProductName),
			Color:       strings.TrimSpace(req.Color),
		}, nil
	}
	row, ok := s.catalog.FindByCode(code)
	if !ok {
		return model.CatalogInfo{}, fmt.Errorf("unknown item code %q", code)
	}
	return row.Info(), nil
}

func (s *Server) queryUnit(r *http.Request) (model.Unit, error) {
	raw := r.URL.Query().Get("unit")
	if raw == "" {
		return s.defaults.Unit, nil
	}
	u, err := model.ParseUnit(raw)
	if err != nil {
		return "", &model.InvalidInputError{Field: "unit", Reason: err.Error()}
	}
	return u, nil
}

func parseNumber(field, raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, &model.InvalidInputError{Field: field, Reason: field + " is required"}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil {
		return 0, &model.InvalidInputError{Field: field, Reason: field + " must be a number"}
	}
	return v, nil
}

func writeInputError(w http.ResponseWriter, err error) {
	var inputErr *model.InvalidInputError
	if errors.As(err, &inputErr) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: inputErr.Reason, Field: inputErr.Field})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
