package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	usecaseErrors "github.com/johnquangdev/video-digest/internal/usecase/errors"
	"github.com/johnquangdev/video-digest/pkg/ai"
)

func newOrchestrator(t *testing.T, engine *fakeSpeechEngine, extractor *fakeExtractor) (*TranscriptionOrchestrator, string, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "processed")
	tmp := filepath.Join(t.TempDir(), "tmp")
	o := NewTranscriptionOrchestrator(engine, extractor, TranscriptionConfig{
		OutputDir:     out,
		TempDir:       tmp,
		MinAudioBytes: 1024,
	}, nil)
	return o, out, tmp
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir not cleaned up: %v", entries)
	}
}

func TestTranscribe_WritesTranscriptAndCleansUp(t *testing.T) {
	engine := &fakeSpeechEngine{
		normalized: true,
		result: &ai.Transcription{Segments: []ai.Segment{
			{Start: 4, End: 6.5, Text: "second"},
			{Start: 0, End: 4, Text: " first "},
			{Start: 6.5, End: 7, Text: "  "},
		}},
	}
	extractor := &fakeExtractor{size: 4096}
	o, out, tmp := newOrchestrator(t, engine, extractor)

	result, err := o.Transcribe(context.Background(), "/uploads/abc_talk.mp4")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}

	if engine.lastPath != extractor.lastPath || !engine.sawFile {
		t.Errorf("engine should read the normalized wav, got %s", engine.lastPath)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(result.Segments))
	}
	if result.Segments[0].Text != "first" || result.Segments[0].StartSeconds > result.Segments[1].StartSeconds {
		t.Errorf("segments not ordered by start: %+v", result.Segments)
	}

	want := "[00:00:00.000 --> 00:00:04.000] first\n\n[00:00:04.000 --> 00:00:06.500] second\n\n"
	if result.FullText != want {
		t.Errorf("FullText = %q, want %q", result.FullText, want)
	}
	if result.TranscriptFile != filepath.Join(out, "abc_talk_transcript.txt") {
		t.Errorf("unexpected transcript file %s", result.TranscriptFile)
	}
	data, err := os.ReadFile(result.TranscriptFile)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if string(data) != result.FullText {
		t.Errorf("file content differs from FullText")
	}
	assertDirEmpty(t, tmp)
}

func TestTranscribe_SmallAudioIsExtractionError(t *testing.T) {
	engine := &fakeSpeechEngine{normalized: true}
	o, _, tmp := newOrchestrator(t, engine, &fakeExtractor{size: 44})

	_, err := o.Transcribe(context.Background(), "a.mp4")
	if !errors.Is(err, usecaseErrors.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
	if engine.calls != 0 {
		t.Error("engine must not run on trivial audio")
	}
	assertDirEmpty(t, tmp)
}

func TestTranscribe_ExtractorFailure(t *testing.T) {
	engine := &fakeSpeechEngine{normalized: true}
	o, _, tmp := newOrchestrator(t, engine, &fakeExtractor{err: errors.New("no audio stream")})

	_, err := o.Transcribe(context.Background(), "a.mp4")
	if !errors.Is(err, usecaseErrors.ErrExtraction) || !strings.Contains(err.Error(), "no audio stream") {
		t.Fatalf("expected ErrExtraction with cause, got %v", err)
	}
	assertDirEmpty(t, tmp)
}

func TestTranscribe_EngineFailureRemovesTempAudio(t *testing.T) {
	engine := &fakeSpeechEngine{normalized: true, err: errors.New("model crashed")}
	o, out, tmp := newOrchestrator(t, engine, &fakeExtractor{size: 4096})

	_, err := o.Transcribe(context.Background(), "a.mp4")
	if !errors.Is(err, usecaseErrors.ErrTranscription) {
		t.Fatalf("expected ErrTranscription, got %v", err)
	}
	if engine.calls != 1 {
		t.Errorf("engine should be called exactly once, got %d", engine.calls)
	}
	assertDirEmpty(t, tmp)
	if _, err := os.Stat(filepath.Join(out, "a_transcript.txt")); !os.IsNotExist(err) {
		t.Error("no transcript should be written on failure")
	}
}

func TestTranscribe_NoSpeechIsTranscriptionError(t *testing.T) {
	tests := []struct {
		name     string
		segments []ai.Segment
	}{
		{name: "no segments"},
		{name: "only blank segments", segments: []ai.Segment{{Start: 0, End: 2, Text: "  "}, {Start: 2, End: 3, Text: ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeSpeechEngine{normalized: true, result: &ai.Transcription{Segments: tt.segments}}
			o, out, tmp := newOrchestrator(t, engine, &fakeExtractor{size: 4096})

			_, err := o.Transcribe(context.Background(), "silent.mp4")
			if !errors.Is(err, usecaseErrors.ErrTranscription) {
				t.Fatalf("expected ErrTranscription, got %v", err)
			}
			if !strings.Contains(err.Error(), "no speech") {
				t.Errorf("error should say no speech was found, got %v", err)
			}
			assertDirEmpty(t, tmp)
			if _, err := os.Stat(filepath.Join(out, "silent_transcript.txt")); !os.IsNotExist(err) {
				t.Error("no transcript should be written when nothing was recognized")
			}
		})
	}
}

func TestTranscribe_EngineReadsVideoDirectly(t *testing.T) {
	engine := &fakeSpeechEngine{
		result: &ai.Transcription{Segments: []ai.Segment{{Start: 0, End: 1, Text: "hi"}}},
	}
	extractor := &fakeExtractor{size: 4096}
	o, _, _ := newOrchestrator(t, engine, extractor)

	if _, err := o.Transcribe(context.Background(), "/uploads/a.mp4"); err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if engine.lastPath != "/uploads/a.mp4" {
		t.Errorf("engine should receive the video, got %s", engine.lastPath)
	}
	if extractor.lastPath != "" {
		t.Error("extractor should not run for engines that decode video")
	}
}
