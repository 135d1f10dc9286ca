package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/johnquangdev/video-digest/pkg/config"
	"github.com/johnquangdev/video-digest/pkg/executor"
)

// WhisperEngine runs a local whisper.cpp binary. The model is loaded by the
// binary on every call; the engine itself holds only paths and options.
type WhisperEngine struct {
	exec     executor.Executor
	binary   string
	model    string
	language string
	threads  int
}

// NewWhisperEngine creates a whisper.cpp engine
func NewWhisperEngine(exec executor.Executor, cfg config.WhisperConfig) *WhisperEngine {
	return &WhisperEngine{
		exec:     exec,
		binary:   cfg.BinaryPath,
		model:    cfg.ModelPath,
		language: cfg.Language,
		threads:  cfg.Threads,
	}
}

func (w *WhisperEngine) Name() string { return "whisper" }

// RequiresNormalizedAudio is true: whisper.cpp only reads 16 kHz WAV
func (w *WhisperEngine) RequiresNormalizedAudio() bool { return true }

// whisperOutput is the subset of whisper.cpp's -oj JSON we read
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs whisper.cpp on a WAV file and parses its JSON output
func (w *WhisperEngine) Transcribe(ctx context.Context, audioPath string) (*Transcription, error) {
	prefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	jsonPath := prefix + ".json"
	defer os.Remove(jsonPath)

	args := []string{
		"-m", w.model,
		"-f", audioPath,
		"-oj",
		"-of", prefix,
		"-np",
	}
	if w.language != "" {
		args = append(args, "-l", w.language)
	}
	if w.threads > 0 {
		args = append(args, "-t", strconv.Itoa(w.threads))
	}

	if _, err := w.exec.Execute(ctx, w.binary, args...); err != nil {
		return nil, fmt.Errorf("whisper: %w", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("whisper output: %w", err)
	}
	return parseWhisperJSON(data)
}

func parseWhisperJSON(data []byte) (*Transcription, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	result := &Transcription{
		Language: out.Result.Language,
		Segments: make([]Segment, 0, len(out.Transcription)),
	}
	texts := make([]string, 0, len(out.Transcription))
	for _, seg := range out.Transcription {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		result.Segments = append(result.Segments, Segment{
			Start: float64(seg.Offsets.From) / 1000.0,
			End:   float64(seg.Offsets.To) / 1000.0,
			Text:  text,
		})
		texts = append(texts, text)
	}
	result.Text = strings.Join(texts, " ")
	return result, nil
}
