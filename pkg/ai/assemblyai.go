package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/video-digest/pkg/config"
)

// AssemblyAIEngine uses the hosted AssemblyAI API through the official SDK.
// AssemblyAI decodes video containers itself, so no local normalization is needed.
type AssemblyAIEngine struct {
	client       *aai.Client
	languageCode string
}

// NewAssemblyAIEngine creates the SDK client once for the process lifetime
func NewAssemblyAIEngine(cfg config.AssemblyAIConfig) *AssemblyAIEngine {
	opts := []aai.ClientOption{aai.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, aai.WithBaseURL(cfg.BaseURL))
	}
	return &AssemblyAIEngine{
		client:       aai.NewClientWithOptions(opts...),
		languageCode: cfg.LanguageCode,
	}
}

func (a *AssemblyAIEngine) Name() string { return "assemblyai" }

func (a *AssemblyAIEngine) RequiresNormalizedAudio() bool { return false }

// Transcribe uploads the file and waits for the transcript to complete
func (a *AssemblyAIEngine) Transcribe(ctx context.Context, path string) (*Transcription, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	uploadURL, err := a.client.Upload(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("upload to AssemblyAI: %w", err)
	}

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if a.languageCode != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(a.languageCode)
	} else {
		params.LanguageDetection = aai.Bool(true)
	}

	transcript, err := a.client.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return nil, fmt.Errorf("AssemblyAI transcription: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("AssemblyAI error: %s", msg)
	}

	result := &Transcription{Language: a.languageCode}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}

	// Utterances carry speaker turns; fall back to the whole text when diarization returned none
	for _, utt := range transcript.Utterances {
		var seg Segment
		if utt.Text != nil {
			seg.Text = strings.TrimSpace(*utt.Text)
		}
		if utt.Start != nil {
			seg.Start = float64(*utt.Start) / 1000.0 // ms to seconds
		}
		if utt.End != nil {
			seg.End = float64(*utt.End) / 1000.0
		}
		if seg.Text != "" {
			result.Segments = append(result.Segments, seg)
		}
	}
	if len(result.Segments) == 0 && strings.TrimSpace(result.Text) != "" {
		var end float64
		if transcript.AudioDuration != nil {
			end = float64(*transcript.AudioDuration)
		}
		result.Segments = []Segment{{Start: 0, End: end, Text: strings.TrimSpace(result.Text)}}
	}
	return result, nil
}
