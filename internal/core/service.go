package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/barista/internal/config"
	"github.com/JonMunkholm/barista/internal/logging"
)

// Result statuses reported to callers.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MessageCritical is the result message of a run aborted by critical findings.
const MessageCritical = "Critical validation errors, nothing was imported"

// ImportResult is what an upload reports back.
type ImportResult struct {
	RunID        string    `json:"run_id"`
	FileName     string    `json:"file_name"`
	Model        ModelType `json:"model_type"`
	Report       *Report   `json:"validation_errors"`
	RecordsAdded int       `json:"records_added"`
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	Code         string    `json:"code,omitempty"`
	Action       string    `json:"action,omitempty"`
}

// Rejected reports whether the run was aborted by critical validation findings.
func (r *ImportResult) Rejected() bool {
	return r.Status == StatusError
}

// ModelInfo describes an importable model for listings.
type ModelInfo struct {
	Tag         string       `json:"tag"`
	Label       string       `json:"label"`
	Collection  string       `json:"collection"`
	Required    []string     `json:"required_columns"`
	ForeignKeys []ForeignKey `json:"foreign_keys,omitempty"`
}

// Service is the entry point for imports. It owns the gateway, the import
// limiter and the directory uploads are staged in.
type Service struct {
	gateway  Gateway
	pipeline *Pipeline
	limiter  *ImportLimiter
	tempDir  string
}

// NewService creates a service over gw using the upload settings in cfg.
func NewService(gw Gateway, cfg config.UploadConfig) *Service {
	return &Service{
		gateway:  gw,
		pipeline: NewPipeline(gw),
		limiter:  NewImportLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		tempDir:  cfg.TempDir,
	}
}

// Import runs the pipeline over the bytes of r, which were uploaded as fileName.
//
// Unknown models return ErrUnknownModel and unsupported extensions return
// ErrUnsupportedFormat before any work is done. A critical report is not an
// error: the result carries status "error" and the report. Extraction and load
// failures are returned as errors with a nil result.
func (s *Service) Import(ctx context.Context, fileName string, r io.Reader, model ModelType) (*ImportResult, error) {
	d, ok := Get(model)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !IsSupportedExtension(ext) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	runID := uuid.NewString()
	ctx = ContextWithRunID(ctx, runID)
	logger := logging.WithFields(ctx, requestAttrs(ctx)...).With("model", model.String(), "file", fileName)

	if err := s.limiter.Acquire(ctx); err != nil {
		logger.Warn("import slot unavailable", "error", err)
		importRuns.WithLabelValues(model.String(), resultFailed).Inc()
		return nil, err
	}
	defer s.limiter.Release()

	path, err := s.stage(r, ext)
	if path != "" {
		defer func() {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				logger.Warn("failed to remove staged upload", "path", path, "error", err)
			}
		}()
	}
	if err != nil {
		importRuns.WithLabelValues(model.String(), resultFailed).Inc()
		return nil, err
	}

	start := time.Now()
	run, err := s.pipeline.run(ctx, path, ext, d)
	importDuration.WithLabelValues(model.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		importRuns.WithLabelValues(model.String(), resultFailed).Inc()
		return nil, err
	}

	result := &ImportResult{
		RunID:        runID,
		FileName:     fileName,
		Model:        model,
		Report:       run.Report,
		RecordsAdded: run.Inserted,
	}
	if run.Stage == StageAborted {
		user := MapError(run.Report.Err())
		result.Status = StatusError
		result.Message = MessageCritical
		result.Code = user.Code
		result.Action = user.Action
		importRuns.WithLabelValues(model.String(), resultRejected).Inc()
	} else {
		result.Status = StatusSuccess
		result.Message = fmt.Sprintf("Imported %d %s record(s)", run.Inserted, strings.ToLower(d.Label))
		importRuns.WithLabelValues(model.String(), resultSuccess).Inc()
	}

	logger.Info("import finished", "status", result.Status, "records_added", result.RecordsAdded, "duration", time.Since(start))
	return result, nil
}

// ImportFile imports a file already on disk. The file is read, never moved or removed.
func (s *Service) ImportFile(ctx context.Context, path string, model ModelType) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return s.Import(ctx, filepath.Base(path), f, model)
}

// stage copies r to a temp file with extension ext. The returned path is set
// whenever a file was created, even on error, so the caller can remove it.
func (s *Service) stage(r io.Reader, ext string) (string, error) {
	tmp, err := os.CreateTemp(s.tempDir, "etl-upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()

	n, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return path, fmt.Errorf("stage upload: %w", err)
	}
	if n == 0 {
		return path, ErrEmptyFile
	}
	return path, nil
}

// Models lists the registered models in declaration order.
func (s *Service) Models() []ModelInfo {
	return ListModels()
}

// ListModels describes every registered model in declaration order.
func ListModels() []ModelInfo {
	defs := All()
	out := make([]ModelInfo, len(defs))
	for i, d := range defs {
		out[i] = ModelInfo{
			Tag:         d.Model.String(),
			Label:       d.Label,
			Collection:  d.Collection,
			Required:    d.Required,
			ForeignKeys: d.ForeignKeys,
		}
	}
	return out
}

// LimiterStatus returns the current import limiter state.
func (s *Service) LimiterStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until running imports finish or ctx ends.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
