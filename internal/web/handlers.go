package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/colsense/colsense/internal/core"
	"github.com/colsense/colsense/internal/logging"
	"github.com/colsense/colsense/internal/semantic"
)

// errorResponse is the JSON structure for API error responses.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// respondError logs the error and maps it to a status code.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrUnknownColumn):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrOutsideDataDir):
		status = http.StatusBadRequest
	case errors.Is(err, os.ErrNotExist):
		status = http.StatusNotFound
	}

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err,
	)
	writeError(w, status, err.Error())
}

// handleHealth responds to liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListFiles returns the CSV files in the data directory.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.service.ListFiles(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if files == nil {
		files = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"files": files})
}

// classifyRequest accepts either inline values or a file + column reference.
type classifyRequest struct {
	Values []string `json:"values,omitempty"`
	File   string   `json:"file,omitempty"`
	Column string   `json:"column,omitempty"`
}

type classifyResponse struct {
	Column string               `json:"column,omitempty"`
	Result semantic.Result      `json:"result"`
	Scores []semantic.TypeScore `json:"scores,omitempty"`
}

// handleClassify labels one column, given inline values or a named column of
// a file in the data directory.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	switch {
	case len(req.Values) > 0:
		writeJSON(w, http.StatusOK, classifyResponse{
			Column: req.Column,
			Result: s.service.ClassifyValues(req.Values),
			Scores: s.service.Scores(req.Values),
		})

	case req.File != "" && req.Column != "":
		res, err := s.service.ClassifyFile(r.Context(), req.File, req.Column)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, classifyResponse{Column: req.Column, Result: res})

	default:
		writeError(w, http.StatusBadRequest, "provide either values, or file and column")
	}
}

type fileRequest struct {
	File string `json:"file"`
}

// handleParse runs the full pipeline over a file and writes output.csv.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req fileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.File == "" {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	summary, err := s.service.ParseFile(r.Context(), req.File)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleProcess classifies every column of a file and then parses it.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req fileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.File == "" {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	res, err := s.service.ProcessFile(r.Context(), req.File)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleHistory returns the most recent recorded runs.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !s.service.HistoryEnabled() {
		writeError(w, http.StatusNotImplemented, "run history is not configured")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.service.History(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}
