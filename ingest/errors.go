package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the path does not resolve to a readable file.
	ErrNotFound = errors.New("file not found")

	// ErrEmpty is returned when the file has no header or no data rows.
	ErrEmpty = errors.New("no parseable rows")
)

// ErrorKind classifies ingestion failures.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindEmpty
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindEmpty:
		return ErrEmpty
	}
	return nil
}

// IngestError is the only error type Ingest returns for file-level problems.
// Content problems never produce one.
type IngestError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *IngestError) Error() string {
	msg := fmt.Sprintf("ingest %s: %v", e.Path, e.Kind.sentinel())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IngestError) Unwrap() error { return e.Err }

// Is lets errors.Is match the kind's sentinel.
func (e *IngestError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func notFound(path string, err error) error {
	return &IngestError{Kind: KindNotFound, Path: path, Err: err}
}

func empty(path string) error {
	return &IngestError{Kind: KindEmpty, Path: path}
}
