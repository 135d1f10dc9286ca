package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-digest/internal/domain/entities"
	"github.com/johnquangdev/video-digest/internal/domain/services"
	usecaseErrors "github.com/johnquangdev/video-digest/internal/usecase/errors"
)

// FrameSampler writes every intervalFrames-th decoded frame as a PNG
type FrameSampler struct {
	source services.FrameSource
	logger *zap.Logger
}

// NewFrameSampler creates a new frame sampler
func NewFrameSampler(source services.FrameSource, logger *zap.Logger) *FrameSampler {
	return &FrameSampler{source: source, logger: logger}
}

// Sample decodes videoPath in order and writes frame 0 and every intervalFrames-th frame
// into outputDir/<base name>/. It returns the frames directory and the frames in
// increasing timestamp order. A video without frames or without a usable frame rate
// yields an empty list.
func (s *FrameSampler) Sample(ctx context.Context, videoPath, outputDir string, intervalFrames int) (string, []entities.FrameRecord, error) {
	if intervalFrames <= 0 {
		return "", nil, fmt.Errorf("%w: frame interval must be positive, got %d", usecaseErrors.ErrInvalidInput, intervalFrames)
	}

	stream, err := s.source.Open(ctx, videoPath)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", usecaseErrors.ErrVideoOpen, err)
	}

	framesDir := filepath.Join(outputDir, entities.BaseName(videoPath))
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		stream.Close()
		return "", nil, fmt.Errorf("%w: create frames dir: %v", usecaseErrors.ErrFrameSampling, err)
	}

	fps := stream.FPS()
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		stream.Close()
		if s.logger != nil {
			s.logger.Warn("⚠️ Video reports no usable frame rate, skipping frame sampling",
				zap.String("video", videoPath),
				zap.Float64("fps", fps),
			)
		}
		return framesDir, []entities.FrameRecord{}, nil
	}

	frames, readErr := s.readFrames(ctx, stream, framesDir, fps, intervalFrames)
	closeErr := stream.Close()
	if readErr != nil {
		return "", nil, readErr
	}
	if closeErr != nil {
		if len(frames) == 0 {
			return "", nil, fmt.Errorf("%w: %v", usecaseErrors.ErrVideoOpen, closeErr)
		}
		return "", nil, fmt.Errorf("%w: decoder: %v", usecaseErrors.ErrFrameSampling, closeErr)
	}

	if s.logger != nil {
		s.logger.Info("🖼️ Frames sampled",
			zap.String("video", videoPath),
			zap.String("frames_dir", framesDir),
			zap.Int("count", len(frames)),
			zap.Int("interval", intervalFrames),
			zap.Float64("fps", fps),
		)
	}
	return framesDir, frames, nil
}

func (s *FrameSampler) readFrames(ctx context.Context, stream services.FrameStream, framesDir string, fps float64, interval int) ([]entities.FrameRecord, error) {
	frames := []entities.FrameRecord{}

	for idx := 0; ; idx++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrFrameSampling, err)
		}

		if idx%interval != 0 {
			if err := stream.Skip(); err != nil {
				if errors.Is(err, io.EOF) {
					return frames, nil
				}
				return nil, fmt.Errorf("%w: frame %d: %v", usecaseErrors.ErrFrameSampling, idx, err)
			}
			continue
		}

		img, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return nil, fmt.Errorf("%w: frame %d: %v", usecaseErrors.ErrFrameSampling, idx, err)
		}

		seconds := float64(idx) / fps
		path := filepath.Join(framesDir, entities.FrameFileName(seconds))
		if err := writePNG(path, img); err != nil {
			return nil, fmt.Errorf("%w: write frame %d: %v", usecaseErrors.ErrFrameSampling, idx, err)
		}

		// Names have one-second resolution, so an interval shorter than fps overwrites the file
		frames = append(frames, entities.FrameRecord{
			Path:      path,
			Timestamp: entities.FormatFrameTimestamp(seconds),
			Seconds:   seconds,
		})
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
