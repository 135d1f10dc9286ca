package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-digest/internal/domain/entities"
	"github.com/johnquangdev/video-digest/internal/domain/services"
	usecaseErrors "github.com/johnquangdev/video-digest/internal/usecase/errors"
	"github.com/johnquangdev/video-digest/pkg/ai"
)

// TranscriptionResult is the output of one transcription run
type TranscriptionResult struct {
	Segments       []entities.TranscriptSegment
	FullText       string
	TranscriptFile string
	Engine         string
	Language       string
}

// TranscriptionOrchestrator normalizes audio when the engine needs it, runs the
// engine and writes the timestamped transcript file
type TranscriptionOrchestrator struct {
	engine        ai.SpeechEngine
	extractor     services.AudioExtractor
	outputDir     string
	tempDir       string
	minAudioBytes int64
	logger        *zap.Logger
}

// TranscriptionConfig holds the orchestrator's filesystem settings
type TranscriptionConfig struct {
	OutputDir     string
	TempDir       string
	MinAudioBytes int64
}

// NewTranscriptionOrchestrator creates a new orchestrator
func NewTranscriptionOrchestrator(
	engine ai.SpeechEngine,
	extractor services.AudioExtractor,
	cfg TranscriptionConfig,
	logger *zap.Logger,
) *TranscriptionOrchestrator {
	return &TranscriptionOrchestrator{
		engine:        engine,
		extractor:     extractor,
		outputDir:     cfg.OutputDir,
		tempDir:       cfg.TempDir,
		minAudioBytes: cfg.MinAudioBytes,
		logger:        logger,
	}
}

// EngineName is the speech engine in use
func (o *TranscriptionOrchestrator) EngineName() string {
	return o.engine.Name()
}

// Transcribe produces ordered segments and the full transcript for videoPath and
// persists the transcript to <output dir>/<base name>_transcript.txt
func (o *TranscriptionOrchestrator) Transcribe(ctx context.Context, videoPath string) (*TranscriptionResult, error) {
	input := videoPath
	if o.engine.RequiresNormalizedAudio() {
		wavPath, cleanup, err := o.normalizeAudio(ctx, videoPath)
		defer cleanup()
		if err != nil {
			return nil, err
		}
		input = wavPath
	}

	if o.logger != nil {
		o.logger.Info("🎙️ Starting transcription",
			zap.String("video", videoPath),
			zap.String("engine", o.engine.Name()),
		)
	}

	raw, err := o.engine.Transcribe(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrTranscription, err)
	}

	segments := make([]entities.TranscriptSegment, 0, len(raw.Segments))
	for _, seg := range raw.Segments {
		segment := entities.NewTranscriptSegment(seg.Start, seg.End, seg.Text)
		if segment.Text == "" {
			continue
		}
		segments = append(segments, segment)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: engine %s returned no speech", usecaseErrors.ErrTranscription, o.engine.Name())
	}
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].StartSeconds < segments[j].StartSeconds
	})
	fullText := entities.JoinTranscript(segments)

	if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	transcriptFile := filepath.Join(o.outputDir, entities.BaseName(videoPath)+"_transcript.txt")
	if err := os.WriteFile(transcriptFile, []byte(fullText), 0o644); err != nil {
		return nil, fmt.Errorf("write transcript: %w", err)
	}

	if o.logger != nil {
		o.logger.Info("✅ Transcription completed",
			zap.String("video", videoPath),
			zap.Int("segments", len(segments)),
			zap.String("transcript_file", transcriptFile),
		)
	}

	return &TranscriptionResult{
		Segments:       segments,
		FullText:       fullText,
		TranscriptFile: transcriptFile,
		Engine:         o.engine.Name(),
		Language:       raw.Language,
	}, nil
}

// normalizeAudio extracts mono 16 kHz PCM into a per-request temp file.
// The returned cleanup removes it and is always safe to call.
func (o *TranscriptionOrchestrator) normalizeAudio(ctx context.Context, videoPath string) (string, func(), error) {
	noop := func() {}

	if o.tempDir != "" {
		if err := os.MkdirAll(o.tempDir, 0o755); err != nil {
			return "", noop, fmt.Errorf("%w: create temp dir: %v", usecaseErrors.ErrExtraction, err)
		}
	}
	tmp, err := os.CreateTemp(o.tempDir, "audio-*.wav")
	if err != nil {
		return "", noop, fmt.Errorf("%w: create temp file: %v", usecaseErrors.ErrExtraction, err)
	}
	wavPath := tmp.Name()
	tmp.Close()

	cleanup := func() {
		if err := os.Remove(wavPath); err != nil && !os.IsNotExist(err) && o.logger != nil {
			o.logger.Warn("⚠️ Failed to remove temp audio", zap.String("path", wavPath), zap.Error(err))
		}
	}

	if err := o.extractor.ExtractAudio(ctx, videoPath, wavPath); err != nil {
		return "", cleanup, fmt.Errorf("%w: %v", usecaseErrors.ErrExtraction, err)
	}

	info, err := os.Stat(wavPath)
	if err != nil {
		return "", cleanup, fmt.Errorf("%w: %v", usecaseErrors.ErrExtraction, err)
	}
	if info.Size() == 0 || info.Size() <= o.minAudioBytes {
		return "", cleanup, fmt.Errorf("%w: extracted audio is only %d bytes (minimum %d)",
			usecaseErrors.ErrExtraction, info.Size(), o.minAudioBytes)
	}

	if o.logger != nil {
		o.logger.Debug("🔊 Audio normalized",
			zap.String("video", videoPath),
			zap.Int64("bytes", info.Size()),
		)
	}
	return wavPath, cleanup, nil
}
