package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"chartdeck/internal/models"
	"chartdeck/internal/storage"
)

// HandleCreateExport renders the dashboard to a static page and stores it.
// A second request while an export is rendering is rejected with 409.
func (s *Server) HandleCreateExport(w http.ResponseWriter, r *http.Request) {
	if !s.exportMutex.TryLock() {
		s.log.Warn("Export already in progress, rejecting new request")
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:  "export already in progress",
			Status: http.StatusConflict,
		})
		return
	}
	defer s.exportMutex.Unlock()

	exp, err := s.Exporter.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/"+exp.Path)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":          exp.ID,
		"path":        exp.Path,
		"url":         "/" + exp.Path,
		"generatedAt": exp.GeneratedAt.UTC().Format(time.RFC3339),
		"charts":      exp.Charts,
	})
}

// HandleListExports lists stored export ids
func (s *Server) HandleListExports(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Exporter.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exports":   ids,
		"count":     len(ids),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleExportFile serves a stored export file from local storage or GCS
func (s *Server) HandleExportFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		s.writeError(w, r, fmt.Errorf("export id %q: %w", id, models.ErrUnknownValue))
		return
	}
	file := r.PathValue("file")
	if file == "" {
		file = "index.html"
	}
	if strings.Contains(file, "..") {
		s.writeError(w, r, fmt.Errorf("export file %q: %w", file, models.ErrUnknownValue))
		return
	}

	filePath := storage.ExportFolderPath(id) + "/" + file
	data, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(data)
}
