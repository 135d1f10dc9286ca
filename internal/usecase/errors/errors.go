package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrInProgress   = errors.New("operation already in progress")
)

// Media pipeline errors
var (
	ErrVideoOpen     = errors.New("video could not be opened")
	ErrExtraction    = errors.New("audio extraction failed")
	ErrTranscription = errors.New("transcription failed")
	ErrFrameSampling = errors.New("frame sampling failed")
)

// Engine and persistence errors
var (
	ErrSummarization = errors.New("summarization failed")
	ErrChat          = errors.New("chat completion failed")
	ErrRegistry      = errors.New("registry operation failed")
)

// Pipeline stages reported by StageError
const (
	StageFrames        = "frames"
	StageTranscription = "transcription"
	StageRegistry      = "registry"
	StageSummary       = "summary"
)

// StageError records which pipeline stage failed
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// AtStage wraps err with the failing stage, leaving nil untouched
func AtStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// StageOf returns the failing stage recorded in err, if any
func StageOf(err error) (string, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
