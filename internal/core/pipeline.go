package core

// pipeline.go sequences the four stages of one import run.
//
//	extracted -> validated -> aborted                 (critical report)
//	                       -> transformed -> loaded   (otherwise)
//
// Extraction and load failures are fatal and returned as errors. A critical
// report is not an error: the run stops at "aborted" and the report explains why.

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/JonMunkholm/barista/internal/logging"
)

// Run is the outcome of one pipeline execution.
type Run struct {
	Report   *Report
	Inserted int
	Stage    Stage
	Outcome  LoadOutcome
}

// Pipeline runs imports against a gateway. It holds no per-run state and is
// safe for concurrent use.
type Pipeline struct {
	gateway Gateway
}

// NewPipeline creates a pipeline that reads and writes through gw.
func NewPipeline(gw Gateway) *Pipeline {
	return &Pipeline{gateway: gw}
}

// Run imports the file at path as model. ext selects the parser.
func (p *Pipeline) Run(ctx context.Context, path, ext string, model ModelType) (*Run, error) {
	d, ok := Get(model)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}
	return p.run(ctx, path, ext, d)
}

func (p *Pipeline) run(ctx context.Context, path, ext string, d Descriptor) (*Run, error) {
	logger := p.logger(ctx, path, d)

	ds, err := Extract(path, ext)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		return nil, err
	}
	run := &Run{Stage: StageExtracted}
	logger.Info("stage", "stage", run.Stage, "rows", ds.Len(), "columns", len(ds.Columns))

	refs, err := LoadReferences(ctx, p.gateway, d)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", d.Model, err)
	}
	run.Report = Validate(ds, d, refs)
	run.Stage = StageValidated
	recordFindings(d.Model, run.Report)
	logger.Info("stage", "stage", run.Stage, "findings", run.Report.Count())

	if run.Report.Critical() {
		run.Stage = StageAborted
		logger.Warn("stage", "stage", run.Stage,
			"missing_columns", run.Report.Messages(CategoryMissingColumns),
			"duplicate_ids", run.Report.Messages(CategoryDuplicateIDs),
		)
		return run, nil
	}

	Transform(ds, d)
	run.Stage = StageTransformed
	logger.Debug("stage", "stage", run.Stage)

	out, err := loadRows(ctx, p.gateway, ds, d, logger)
	recordOutcome(d.Model, out)
	if err != nil {
		logger.Error("load failed", "error", err)
		return nil, err
	}
	run.Outcome = out
	run.Inserted = out.Inserted
	run.Stage = StageLoaded
	logger.Info("stage", "stage", run.Stage, "inserted", run.Inserted)
	return run, nil
}

func (p *Pipeline) logger(ctx context.Context, path string, d Descriptor) *slog.Logger {
	return logging.WithFields(ctx, requestAttrs(ctx)...).With(
		"model", d.Model.String(),
		"file", filepath.Base(path),
	)
}
