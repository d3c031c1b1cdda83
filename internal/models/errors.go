package models

import "errors"

// ErrClassifierUnavailable is returned by a classifier when neither the
// primary nor the fallback model can serve the request. The pipeline
// records it per item and keeps going.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// ValidationError rejects malformed input at an adapter boundary before
// any processing begins.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// ScrapeError reports a failed external fetch. No records are produced
// when it is returned.
type ScrapeError struct {
	Reason string
	Err    error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return "scrape failed: " + e.Reason + ": " + e.Err.Error()
	}
	return "scrape failed: " + e.Reason
}

func (e *ScrapeError) Unwrap() error { return e.Err }

// ExportError reports a write failure during export. The in-memory batch
// is left untouched.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return "export to " + e.Path + " failed: " + e.Err.Error()
}

func (e *ExportError) Unwrap() error { return e.Err }
