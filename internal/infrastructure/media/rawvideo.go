package media

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/johnquangdev/video-digest/pkg/executor"
)

// rawFrameStream splits an rgb24 rawvideo byte stream into frames
type rawFrameStream struct {
	r         *bufio.Reader
	src       executor.Stream
	width     int
	height    int
	fps       float64
	frameSize int64
	buf       []byte
}

func newRawFrameStream(src executor.Stream, width, height int, fps float64) *rawFrameStream {
	size := width * height * 3
	return &rawFrameStream{
		r:         bufio.NewReaderSize(src, size),
		src:       src,
		width:     width,
		height:    height,
		fps:       fps,
		frameSize: int64(size),
		buf:       make([]byte, size),
	}
}

func (s *rawFrameStream) FPS() float64 { return s.fps }

// Next decodes the next frame into a fresh RGBA image
func (s *rawFrameStream) Next() (image.Image, error) {
	if _, err := io.ReadFull(s.r, s.buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("truncated frame")
		}
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for i, j := 0, 0; i < len(s.buf); i, j = i+3, j+4 {
		img.Pix[j] = s.buf[i]
		img.Pix[j+1] = s.buf[i+1]
		img.Pix[j+2] = s.buf[i+2]
		img.Pix[j+3] = 0xff
	}
	return img, nil
}

// Skip discards the next frame without converting it
func (s *rawFrameStream) Skip() error {
	n, err := io.CopyN(io.Discard, s.r, s.frameSize)
	if err == io.EOF {
		if n == 0 {
			return io.EOF
		}
		return fmt.Errorf("truncated frame")
	}
	return err
}

func (s *rawFrameStream) Close() error {
	return s.src.Close()
}
