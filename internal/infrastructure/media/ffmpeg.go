package media

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-digest/internal/domain/services"
	"github.com/johnquangdev/video-digest/pkg/config"
	"github.com/johnquangdev/video-digest/pkg/executor"
)

// VideoInfo describes the first video stream of a file
type VideoInfo struct {
	Width    int
	Height   int
	FPS      float64
	Frames   int64
	Rotation int
}

// FFmpeg decodes frames and normalizes audio by shelling out to ffmpeg/ffprobe
type FFmpeg struct {
	exec    executor.Executor
	ffmpeg  string
	ffprobe string
	logger  *zap.Logger
}

// NewFFmpeg creates the ffmpeg-backed media toolkit
func NewFFmpeg(exec executor.Executor, cfg config.MediaConfig, logger *zap.Logger) *FFmpeg {
	return &FFmpeg{
		exec:    exec,
		ffmpeg:  cfg.FFmpegPath,
		ffprobe: cfg.FFprobePath,
		logger:  logger,
	}
}

var (
	_ services.FrameSource    = (*FFmpeg)(nil)
	_ services.AudioExtractor = (*FFmpeg)(nil)
)

type probeOutput struct {
	Streams []struct {
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
		NbFrames     string `json:"nb_frames"`
		Tags         struct {
			Rotate string `json:"rotate"`
		} `json:"tags"`
		SideDataList []struct {
			Rotation *float64 `json:"rotation"`
		} `json:"side_data_list"`
	} `json:"streams"`
}

// Probe reads dimensions and frame rate with ffprobe
func (f *FFmpeg) Probe(ctx context.Context, path string) (*VideoInfo, error) {
	out, err := f.exec.Execute(ctx, f.ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,avg_frame_rate,r_frame_rate,nb_frames:stream_tags=rotate:stream_side_data=rotation",
		"-of", "json",
		path,
	)
	if err != nil {
		return nil, err
	}
	return parseProbe(out)
}

func parseProbe(out string) (*VideoInfo, error) {
	var probe probeOutput
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(probe.Streams) == 0 {
		return nil, fmt.Errorf("no video stream found")
	}

	s := probe.Streams[0]
	info := &VideoInfo{Width: s.Width, Height: s.Height}

	// Width and height are the stored size; ffmpeg autorotates on decode, so a
	// quarter-turn rotation yields transposed frames
	if r, err := strconv.Atoi(strings.TrimSpace(s.Tags.Rotate)); err == nil {
		info.Rotation = r
	}
	for _, sd := range s.SideDataList {
		if sd.Rotation != nil {
			info.Rotation = int(math.Round(*sd.Rotation))
			break
		}
	}
	if q := ((info.Rotation % 360) + 360) % 360; q == 90 || q == 270 {
		info.Width, info.Height = info.Height, info.Width
	}
	info.FPS = parseRate(s.AvgFrameRate)
	if info.FPS <= 0 {
		info.FPS = parseRate(s.RFrameRate)
	}
	if n, err := strconv.ParseInt(s.NbFrames, 10, 64); err == nil {
		info.Frames = n
	}
	return info, nil
}

// parseRate turns "30000/1001" or "25" into a float. "0/0" and garbage give 0.
func parseRate(rate string) float64 {
	num, den, found := strings.Cut(strings.TrimSpace(rate), "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

// Open starts decoding path to raw rgb24 frames
func (f *FFmpeg) Open(ctx context.Context, path string) (services.FrameStream, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}

	info, err := f.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probe video: %w", err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("invalid video dimensions %dx%d", info.Width, info.Height)
	}

	stream, err := f.exec.Stream(ctx, f.ffmpeg,
		"-v", "error",
		"-i", path,
		"-an",
		"-vsync", "0",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	)
	if err != nil {
		return nil, fmt.Errorf("start decoder: %w", err)
	}

	if f.logger != nil {
		f.logger.Debug("🎞️ Video decoder started",
			zap.String("path", path),
			zap.Int("width", info.Width),
			zap.Int("height", info.Height),
			zap.Float64("fps", info.FPS),
			zap.Int("rotation", info.Rotation),
		)
	}
	return newRawFrameStream(stream, info.Width, info.Height, info.FPS), nil
}

// ExtractAudio writes mono 16 kHz s16le WAV, overwriting wavPath
func (f *FFmpeg) ExtractAudio(ctx context.Context, videoPath, wavPath string) error {
	_, err := f.exec.Execute(ctx, f.ffmpeg,
		"-y",
		"-v", "error",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-acodec", "pcm_s16le",
		"-f", "wav",
		wavPath,
	)
	return err
}
