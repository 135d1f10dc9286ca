package services

import (
	"context"
	"image"
	"io"

	"github.com/johnquangdev/video-digest/internal/domain/entities"
)

// FrameSource opens a video as a sequential stream of decoded frames
type FrameSource interface {
	Open(ctx context.Context, path string) (FrameStream, error)
}

// FrameStream yields frames in decode order. Next and Skip return io.EOF after the last frame.
type FrameStream interface {
	// FPS is the frame rate reported by the container; it may be 0 or NaN
	FPS() float64
	Next() (image.Image, error)
	Skip() error
	io.Closer
}

// AudioExtractor writes a video's audio track as mono 16 kHz 16-bit PCM WAV
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, wavPath string) error
}

// MediaStore keeps uploaded videos
type MediaStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (*entities.MediaFile, error)
	// Stat returns an error wrapping os.ErrNotExist when filename is unknown
	Stat(filename string) (*entities.MediaFile, error)
}
