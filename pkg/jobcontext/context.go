package jobcontext

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var keyPipeline KeyContext = "pipeline_metadata"

// PipelineMetadata describes one pipeline run driven by a single request
type PipelineMetadata struct {
	RequestID string
	Operation string
	Filename  string
	StartTime time.Time

	mu    sync.Mutex
	stage string
}

// Begin attaches pipeline metadata to ctx. An empty requestID gets a fresh uuid.
func Begin(parentCtx context.Context, requestID, operation, filename string) context.Context {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	md := &PipelineMetadata{
		RequestID: requestID,
		Operation: operation,
		Filename:  filename,
		StartTime: time.Now(),
	}
	return context.WithValue(parentCtx, keyPipeline, md)
}

// FromContext returns the metadata attached by Begin, if any
func FromContext(ctx context.Context) (*PipelineMetadata, bool) {
	md, ok := ctx.Value(keyPipeline).(*PipelineMetadata)
	return md, ok
}

// Stage returns the stage currently running
func (m *PipelineMetadata) Stage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stage
}

func (m *PipelineMetadata) setStage(stage string) {
	m.mu.Lock()
	m.stage = stage
	m.mu.Unlock()
}

// Fields renders the metadata as zap fields. Safe to call on a context without metadata.
func Fields(ctx context.Context) []zap.Field {
	md, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	fields := []zap.Field{
		zap.String("request_id", md.RequestID),
		zap.String("operation", md.Operation),
		zap.Duration("elapsed", time.Since(md.StartTime)),
	}
	if md.Filename != "" {
		fields = append(fields, zap.String("filename", md.Filename))
	}
	if stage := md.Stage(); stage != "" {
		fields = append(fields, zap.String("stage", stage))
	}
	return fields
}

// RunStage records stage as current and executes fn, converting a panic into an error.
// Stages run once; failures are returned to the caller unchanged.
func RunStage(ctx context.Context, stage string, fn func(context.Context) error) (err error) {
	if md, ok := FromContext(ctx); ok {
		md.setStage(stage)
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered in stage %s: %v", stage, p)
		}
	}()

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before stage %s: %w", stage, ctx.Err())
	}
	return fn(ctx)
}
