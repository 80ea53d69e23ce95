package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/barista/internal/core"
	"github.com/JonMunkholm/barista/internal/logging"
)

// errNoFile is returned when a multipart request carries no "file" part.
var errNoFile = errors.New("no file provided")

// handleUpload imports the uploaded file as the model named in the path.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	d, err := core.Lookup(chi.URLParam(r, "model"))
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	s.importUpload(w, r, d.Model)
}

// handleUploadEmployees is the fixed-model shortcut for employee files.
func (s *Server) handleUploadEmployees(w http.ResponseWriter, r *http.Request) {
	s.importUpload(w, r, core.ModelEmployees)
}

// importUpload streams the "file" part of a multipart body into the service.
// The body is capped at UPLOAD_MAX_FILE_SIZE; nothing is buffered in memory.
func (s *Server) importUpload(w http.ResponseWriter, r *http.Request, model core.ModelType) {
	w.Header().Set("X-Request-Id", requestID(r))
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	part, err := filePart(r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	defer part.Close()

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.Import(ctx, part.FileName(), part, model)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	status := http.StatusOK
	if result.Rejected() {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result)
}

// filePart advances the multipart reader to the part named "file".
func filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNoFile, err)
	}
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			return nil, errNoFile
		}
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", errNoFile, err)
		}
		if p.FormName() == "file" && p.FileName() != "" {
			return p, nil
		}
		p.Close()
	}
}

// handleListModels lists the importable models.
func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Models())
}

// handleImportQueueStatus returns the current state of the import limiter.
// Used for monitoring and to check if the system can accept more imports.
func (s *Server) handleImportQueueStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.LimiterStatus())
}

type healthResponse struct {
	Status   string                   `json:"status"`
	Database string                   `json:"database"`
	Imports  core.ImportLimiterStatus `json:"imports"`
}

// handleHealth reports database reachability and import capacity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Database: "ok",
		Imports:  s.service.LimiterStatus(),
	}
	status := http.StatusOK

	if s.db == nil {
		resp.Database = "unconfigured"
	} else if err := s.db.Ping(r.Context()); err != nil {
		logging.FromContext(r.Context()).Warn("health check: database ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}
