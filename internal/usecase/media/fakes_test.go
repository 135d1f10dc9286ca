package media

import (
	"context"
	"errors"
	"image"
	"io"
	"os"

	"github.com/johnquangdev/video-digest/internal/domain/services"
	"github.com/johnquangdev/video-digest/pkg/ai"
)

// fakeFrameSource yields total 1x1 frames at fps
type fakeFrameSource struct {
	total   int
	fps     float64
	openErr error
	stream  *fakeFrameStream
}

func (f *fakeFrameSource) Open(ctx context.Context, path string) (services.FrameStream, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.stream = &fakeFrameStream{total: f.total, fps: f.fps}
	return f.stream, nil
}

type fakeFrameStream struct {
	total   int
	fps     float64
	pos     int
	decoded []int
	closed  bool
}

func (s *fakeFrameStream) FPS() float64 { return s.fps }

func (s *fakeFrameStream) Next() (image.Image, error) {
	if s.pos >= s.total {
		return nil, io.EOF
	}
	s.decoded = append(s.decoded, s.pos)
	s.pos++
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (s *fakeFrameStream) Skip() error {
	if s.pos >= s.total {
		return io.EOF
	}
	s.pos++
	return nil
}

func (s *fakeFrameStream) Close() error {
	s.closed = true
	return nil
}

// fakeExtractor writes size bytes to the wav path
type fakeExtractor struct {
	size     int
	err      error
	lastPath string
}

func (f *fakeExtractor) ExtractAudio(ctx context.Context, videoPath, wavPath string) error {
	f.lastPath = wavPath
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(wavPath, make([]byte, f.size), 0o644)
}

// fakeSpeechEngine returns a fixed transcription
type fakeSpeechEngine struct {
	normalized bool
	result     *ai.Transcription
	err        error
	calls      int
	lastPath   string
	sawFile    bool
}

func (f *fakeSpeechEngine) Name() string                  { return "fake" }
func (f *fakeSpeechEngine) RequiresNormalizedAudio() bool { return f.normalized }

func (f *fakeSpeechEngine) Transcribe(ctx context.Context, path string) (*ai.Transcription, error) {
	f.calls++
	f.lastPath = path
	_, statErr := os.Stat(path)
	f.sawFile = statErr == nil
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return nil, errors.New("no result configured")
	}
	return f.result, nil
}
