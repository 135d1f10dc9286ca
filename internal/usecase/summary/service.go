package summary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-digest/internal/domain/entities"
	"github.com/johnquangdev/video-digest/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/video-digest/internal/usecase/errors"
	"github.com/johnquangdev/video-digest/pkg/ai"
)

// Service generates summaries from transcripts and caches them on disk
type Service struct {
	registry  repositories.RegistryRepository
	engine    ai.ChatEngine
	outputDir string
	prompt    string
	logger    *zap.Logger
}

// NewService creates a new summary service
func NewService(
	registry repositories.RegistryRepository,
	engine ai.ChatEngine,
	outputDir string,
	prompt string,
	logger *zap.Logger,
) *Service {
	return &Service{
		registry:  registry,
		engine:    engine,
		outputDir: outputDir,
		prompt:    prompt,
		logger:    logger,
	}
}

// GetOrGenerate returns the cached summary for filename, or generates a new one when
// none is cached or forceRegenerate is set
func (s *Service) GetOrGenerate(ctx context.Context, filename string, forceRegenerate bool) (*entities.Summary, error) {
	rec, err := s.registry.Get(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrRegistry, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s has not been processed", usecaseErrors.ErrNotFound, filename)
	}

	if rec.Summarized && !forceRegenerate && rec.SummaryFilePath != nil {
		data, err := os.ReadFile(*rec.SummaryFilePath)
		if err == nil {
			if s.logger != nil {
				s.logger.Info("📦 Summary served from cache", zap.String("filename", filename))
			}
			return &entities.Summary{
				Filename: filename,
				Text:     string(data),
				Source:   entities.SummarySourceCached,
				FilePath: *rec.SummaryFilePath,
			}, nil
		}
		if s.logger != nil {
			s.logger.Warn("⚠️ Cached summary unreadable, regenerating",
				zap.String("filename", filename),
				zap.String("summary_file", *rec.SummaryFilePath),
				zap.Error(err),
			)
		}
	}

	return s.generate(ctx, rec)
}

func (s *Service) generate(ctx context.Context, rec *entities.ProcessingRecord) (*entities.Summary, error) {
	if rec.TranscriptFilePath == "" {
		return nil, fmt.Errorf("%w: no transcript for %s", usecaseErrors.ErrNotFound, rec.Filename)
	}
	transcript, err := os.ReadFile(rec.TranscriptFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: transcript file %s", usecaseErrors.ErrNotFound, rec.TranscriptFilePath)
		}
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("🤖 Generating summary",
			zap.String("filename", rec.Filename),
			zap.String("engine", s.engine.Name()),
			zap.Int("transcript_bytes", len(transcript)),
		)
	}

	reply, err := s.engine.Complete(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: s.prompt},
		{Role: ai.RoleUser, Content: "Summarize the following transcript:\n\n" + string(transcript)},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrSummarization, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: engine returned an empty summary", usecaseErrors.ErrSummarization)
	}

	baseName := rec.BaseName
	if baseName == "" {
		baseName = entities.BaseName(rec.Filename)
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	summaryFile := filepath.Join(s.outputDir, baseName+"_summary.txt")
	if err := os.WriteFile(summaryFile, []byte(reply), 0o644); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}

	if _, err := s.registry.Upsert(ctx, rec.Filename, entities.RecordPatch{
		Summarized:      entities.Ptr(true),
		SummaryFilePath: entities.Ptr(summaryFile),
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrRegistry, err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Summary generated",
			zap.String("filename", rec.Filename),
			zap.String("summary_file", summaryFile),
		)
	}

	return &entities.Summary{
		Filename: rec.Filename,
		Text:     reply,
		Source:   entities.SummarySourceNew,
		FilePath: summaryFile,
	}, nil
}
