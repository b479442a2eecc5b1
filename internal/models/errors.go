package models

import (
	"errors"
	"fmt"
	"net/http"
)

// The failure classes the pipeline can report.
// This is the only error vocabulary that
// crosses the pipeline boundary.
type ErrorKind string

const (
	ValidationFailed    ErrorKind = "validation_failed"
	VideoUnavailable    ErrorKind = "video_unavailable"
	VideoTooLong        ErrorKind = "video_too_long"
	DownloadFailed      ErrorKind = "download_failed"
	TranscriptionFailed ErrorKind = "transcription_failed"
	Unexpected          ErrorKind = "unexpected"
)

// Classified pipeline failure with a human readable message
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap exposes the underlying error for errors.Is / errors.As
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// HTTPStatus maps an error kind to an API response status.
// Client mistakes get 400, everything else 500.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case ValidationFailed, VideoUnavailable, VideoTooLong:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewError creates a classified pipeline error
func NewError(kind ErrorKind, message string) *PipelineError {
	return &PipelineError{Kind: kind, Message: message}
}

// Errorf creates a classified pipeline error with a formatted message
func Errorf(kind ErrorKind, format string, args ...any) *PipelineError {
	err := fmt.Errorf(format, args...)
	return &PipelineError{Kind: kind, Message: err.Error(), Err: errors.Unwrap(err)}
}

// AsPipelineError extracts a classified error, or wraps
// an unclassified one as Unexpected so nothing raw
// escapes past the pipeline
func AsPipelineError(err error) *PipelineError {
	if err == nil {
		return nil
	}

	var perr *PipelineError
	if errors.As(err, &perr) {
		return perr
	}

	return &PipelineError{
		Kind:    Unexpected,
		Message: "An unexpected error occurred: " + err.Error(),
		Err:     err,
	}
}
