package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-digest/internal/domain/entities"
	"github.com/johnquangdev/video-digest/internal/domain/repositories"
	"github.com/johnquangdev/video-digest/internal/domain/services"
	usecaseErrors "github.com/johnquangdev/video-digest/internal/usecase/errors"
	"github.com/johnquangdev/video-digest/internal/usecase/media"
	"github.com/johnquangdev/video-digest/pkg/jobcontext"
)

// Sampler is the frame sampling stage
type Sampler interface {
	Sample(ctx context.Context, videoPath, outputDir string, intervalFrames int) (string, []entities.FrameRecord, error)
}

// Transcriber is the transcription stage
type Transcriber interface {
	Transcribe(ctx context.Context, videoPath string) (*media.TranscriptionResult, error)
}

// Summarizer produces cached or fresh summaries
type Summarizer interface {
	GetOrGenerate(ctx context.Context, filename string, forceRegenerate bool) (*entities.Summary, error)
}

// Locker guards a filename while a request works on it.
// Refresh reports ok=false once token no longer owns key.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Refresh(ctx context.Context, key, token string, ttl time.Duration) (ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

// Controller drives a file through uploaded, processed, summarized.
// Every transition runs synchronously inside the calling request.
type Controller struct {
	store       services.MediaStore
	sampler     Sampler
	transcriber Transcriber
	summarizer  Summarizer
	registry    repositories.RegistryRepository
	locker      Locker
	lockTTL     time.Duration
	framesDir   string
	logger      *zap.Logger
}

// Deps groups the controller's collaborators
type Deps struct {
	Store       services.MediaStore
	Sampler     Sampler
	Transcriber Transcriber
	Summarizer  Summarizer
	Registry    repositories.RegistryRepository
	Locker      Locker
}

// NewController creates a new pipeline controller
func NewController(deps Deps, framesDir string, lockTTL time.Duration, logger *zap.Logger) *Controller {
	return &Controller{
		store:       deps.Store,
		sampler:     deps.Sampler,
		transcriber: deps.Transcriber,
		summarizer:  deps.Summarizer,
		registry:    deps.Registry,
		locker:      deps.Locker,
		lockTTL:     lockTTL,
		framesDir:   framesDir,
		logger:      logger,
	}
}

// ProcessInput represents input for processing an uploaded file
type ProcessInput struct {
	Filename  string
	FrameGap  *int
	Summarize bool
}

// ProcessResult is everything produced by one process request
type ProcessResult struct {
	Record        *entities.ProcessingRecord
	Transcription *media.TranscriptionResult
	FramesDir     string
	Frames        []entities.FrameRecord
	Summary       *entities.Summary
	SummaryError  string
}

// Upload stores a new video. Only mp4, avi, mov and mkv are accepted.
func (c *Controller) Upload(ctx context.Context, originalName string, r io.Reader) (*entities.MediaFile, error) {
	ext := filepath.Ext(originalName)
	if originalName == "" || !entities.IsAllowedVideoExtension(ext) {
		return nil, fmt.Errorf("%w: file type %q not allowed", usecaseErrors.ErrInvalidInput, ext)
	}
	return c.store.Save(ctx, originalName, r)
}

// Process runs frame sampling (when FrameGap is set) and transcription, then marks the
// file processed. A failed stage leaves the registry untouched.
func (c *Controller) Process(ctx context.Context, in ProcessInput) (*ProcessResult, error) {
	file, err := c.stat(in.Filename)
	if err != nil {
		return nil, err
	}

	release, err := c.acquire(ctx, in.Filename)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx = c.begin(ctx, "process", in.Filename)
	result := &ProcessResult{}

	if in.FrameGap != nil {
		err := jobcontext.RunStage(ctx, usecaseErrors.StageFrames, func(ctx context.Context) error {
			dir, frames, err := c.sampler.Sample(ctx, file.Path, c.framesDir, *in.FrameGap)
			result.FramesDir, result.Frames = dir, frames
			return err
		})
		if err != nil {
			return nil, c.fail(ctx, usecaseErrors.AtStage(usecaseErrors.StageFrames, err))
		}
	}

	err = jobcontext.RunStage(ctx, usecaseErrors.StageTranscription, func(ctx context.Context) error {
		tr, err := c.transcriber.Transcribe(ctx, file.Path)
		result.Transcription = tr
		return err
	})
	if err != nil {
		return nil, c.fail(ctx, usecaseErrors.AtStage(usecaseErrors.StageTranscription, err))
	}

	patch := entities.RecordPatch{
		BaseName:            entities.Ptr(entities.BaseName(file.Filename)),
		TranscriptFilePath:  entities.Ptr(result.Transcription.TranscriptFile),
		Processed:           entities.Ptr(true),
		UploadTime:          entities.Ptr(file.UploadTime),
		TranscriptionEngine: entities.Ptr(result.Transcription.Engine),
	}
	if in.FrameGap != nil {
		patch.FramesDir = entities.Ptr(result.FramesDir)
		patch.FrameCount = entities.Ptr(len(result.Frames))
	}

	err = jobcontext.RunStage(ctx, usecaseErrors.StageRegistry, func(ctx context.Context) error {
		rec, err := c.registry.Upsert(ctx, file.Filename, patch)
		if err != nil {
			return fmt.Errorf("%w: %v", usecaseErrors.ErrRegistry, err)
		}
		result.Record = rec
		return nil
	})
	if err != nil {
		return nil, c.fail(ctx, usecaseErrors.AtStage(usecaseErrors.StageRegistry, err))
	}

	if c.logger != nil {
		c.logger.Info("✅ Video processed", append(jobcontext.Fields(ctx),
			zap.Int("segments", len(result.Transcription.Segments)),
			zap.Int("frames", len(result.Frames)),
		)...)
	}

	if in.Summarize {
		err := jobcontext.RunStage(ctx, usecaseErrors.StageSummary, func(ctx context.Context) error {
			summary, err := c.summarizer.GetOrGenerate(ctx, file.Filename, false)
			result.Summary = summary
			return err
		})
		if err != nil {
			// The file stays processed; the caller sees the summary failure alongside the transcript
			result.SummaryError = err.Error()
			if c.logger != nil {
				c.logger.Warn("⚠️ Summary after processing failed", append(jobcontext.Fields(ctx), zap.Error(err))...)
			}
		} else if rec, err := c.registry.Get(ctx, file.Filename); err == nil && rec != nil {
			result.Record = rec
		}
	}

	return result, nil
}

// Summary returns the cached summary or generates one (processed to summarized)
func (c *Controller) Summary(ctx context.Context, filename string, regenerate bool) (*entities.Summary, error) {
	release, err := c.acquire(ctx, filename)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx = c.begin(ctx, "summary", filename)

	var summary *entities.Summary
	err = jobcontext.RunStage(ctx, usecaseErrors.StageSummary, func(ctx context.Context) error {
		var err error
		summary, err = c.summarizer.GetOrGenerate(ctx, filename, regenerate)
		return err
	})
	if err != nil {
		return nil, c.fail(ctx, usecaseErrors.AtStage(usecaseErrors.StageSummary, err))
	}
	return summary, nil
}

// Videos lists registry records in insertion order
func (c *Controller) Videos(ctx context.Context) ([]*entities.ProcessingRecord, error) {
	records, err := c.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrRegistry, err)
	}
	return records, nil
}

// Video returns the registry record for filename
func (c *Controller) Video(ctx context.Context, filename string) (*entities.ProcessingRecord, error) {
	rec, err := c.registry.Get(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrRegistry, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: no record for %s", usecaseErrors.ErrNotFound, filename)
	}
	return rec, nil
}

func (c *Controller) stat(filename string) (*entities.MediaFile, error) {
	file, err := c.store.Stat(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: file %s", usecaseErrors.ErrNotFound, filename)
		}
		return nil, fmt.Errorf("stat upload: %w", err)
	}
	return file, nil
}

// acquire takes the per-file guard; the returned release is always safe to call
func (c *Controller) acquire(ctx context.Context, filename string) (func(), error) {
	if c.locker == nil {
		return func() {}, nil
	}

	token, ok, err := c.locker.Acquire(ctx, filename, c.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire lock for %s: %w", filename, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is already being processed", usecaseErrors.ErrInProgress, filename)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.keepAlive(ctx, filename, token, stop)
	}()

	return func() {
		close(stop)
		<-done
		if err := c.locker.Release(context.WithoutCancel(ctx), filename, token); err != nil && c.logger != nil {
			c.logger.Warn("⚠️ Failed to release lock", zap.String("filename", filename), zap.Error(err))
		}
	}, nil
}

// keepAlive refreshes the guard at a third of its TTL so long-running stages
// (a slow local whisper run, say) do not outlive it
func (c *Controller) keepAlive(ctx context.Context, filename, token string, stop <-chan struct{}) {
	interval := c.lockTTL / 3
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ok, err := c.locker.Refresh(context.WithoutCancel(ctx), filename, token, c.lockTTL)
			switch {
			case err != nil:
				if c.logger != nil {
					c.logger.Warn("⚠️ Failed to refresh lock", zap.String("filename", filename), zap.Error(err))
				}
			case !ok:
				if c.logger != nil {
					c.logger.Warn("⚠️ Lock lost before the request finished", zap.String("filename", filename))
				}
				return
			}
		}
	}
}

// begin attaches pipeline metadata unless the caller already did
func (c *Controller) begin(ctx context.Context, operation, filename string) context.Context {
	if _, ok := jobcontext.FromContext(ctx); ok {
		return ctx
	}
	return jobcontext.Begin(ctx, "", operation, filename)
}

func (c *Controller) fail(ctx context.Context, err error) error {
	if c.logger != nil {
		c.logger.Error("❌ Pipeline stage failed", append(jobcontext.Fields(ctx), zap.Error(err))...)
	}
	return err
}
