package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ukaji3/xlingest-go/internal/logging"
)

// SpreadsheetSummary describes one spreadsheet definition.
type SpreadsheetSummary struct {
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	Worksheets []string `json:"worksheets"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	defs, err := s.ingestor.Spreadsheets()
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]SpreadsheetSummary, 0, len(defs))
	for _, d := range defs {
		summary := SpreadsheetSummary{Name: d.Name, Path: d.Path, Worksheets: make([]string, 0, len(d.Worksheets))}
		for _, ws := range d.Worksheets {
			summary.Worksheets = append(summary.Worksheets, ws.Name)
		}
		out = append(out, summary)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	log := logging.WithFields(r.Context(), "spreadsheet", name)

	res, err := s.ingestor.Load(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.sink.Write(r.Context(), res); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info("ingest served", "run_id", res.RunID.String(), "records", res.RecordCount())
	writeJSON(w, http.StatusOK, res)
}
