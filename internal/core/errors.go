package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for files whose extension is not .csv, .xls or .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrUnknownModel is returned for model tags that have no descriptor.
	ErrUnknownModel = errors.New("unknown model type")

	// ErrEmptyFile is returned when an upload carries no bytes.
	ErrEmptyFile = errors.New("empty file")
)

// ExtractionError means the file could not be parsed. No dataset is produced.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// LoadError means staged rows could not be written. Nothing from the run persists.
type LoadError struct {
	Collection string
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load into %s failed: %v", e.Collection, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
