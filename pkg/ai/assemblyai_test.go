package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johnquangdev/video-digest/pkg/config"
)

// newAssemblyAIServer serves the upload, submit and poll endpoints, answering
// every poll with the given transcript body
func newAssemblyAIServer(t *testing.T, transcript string, submitted *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/upload":
			if r.Header.Get("Authorization") != "aai-test" {
				t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
			}
			w.Write([]byte(`{"upload_url":"https://cdn.example/upload/abc"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/v2/transcript":
			if submitted != nil {
				if err := json.NewDecoder(r.Body).Decode(submitted); err != nil {
					t.Errorf("decode submit: %v", err)
				}
			}
			w.Write([]byte(`{"id":"tr-1","status":"queued"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v2/transcript/tr-1":
			w.Write([]byte(transcript))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeMedia(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "talk.mp4")
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAssemblyAIEngine_TranscribeUtterances(t *testing.T) {
	var submitted map[string]any
	srv := newAssemblyAIServer(t, `{
		"id":"tr-1","status":"completed","text":"Hello there. General Kenobi.",
		"audio_duration":12.5,
		"utterances":[
			{"speaker":"A","start":1500,"end":3250,"text":" Hello there. "},
			{"speaker":"B","start":3300,"end":3400,"text":"   "},
			{"speaker":"B","start":4000,"end":6000,"text":"General Kenobi."}
		]}`, &submitted)

	engine := NewAssemblyAIEngine(config.AssemblyAIConfig{
		APIKey:       "aai-test",
		LanguageCode: "en",
		BaseURL:      srv.URL,
	})
	got, err := engine.Transcribe(context.Background(), writeMedia(t))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if submitted["audio_url"] != "https://cdn.example/upload/abc" {
		t.Errorf("unexpected audio_url %v", submitted["audio_url"])
	}
	if submitted["language_code"] != "en" {
		t.Errorf("unexpected language_code %v", submitted["language_code"])
	}
	if submitted["speaker_labels"] != true {
		t.Errorf("speaker labels should be requested, got %v", submitted["speaker_labels"])
	}

	if got.Language != "en" {
		t.Errorf("unexpected language %q", got.Language)
	}
	if len(got.Segments) != 2 {
		t.Fatalf("blank utterance should be dropped, got %d segments: %+v", len(got.Segments), got.Segments)
	}
	first := got.Segments[0]
	if first.Start != 1.5 || first.End != 3.25 || first.Text != "Hello there." {
		t.Errorf("unexpected first segment %+v", first)
	}
	if got.Segments[1].Start != 4 || got.Segments[1].End != 6 {
		t.Errorf("unexpected second segment %+v", got.Segments[1])
	}
}

func TestAssemblyAIEngine_FallsBackToFullText(t *testing.T) {
	var submitted map[string]any
	srv := newAssemblyAIServer(t, `{
		"id":"tr-1","status":"completed","text":"  One long monologue.  ",
		"audio_duration":42}`, &submitted)

	engine := NewAssemblyAIEngine(config.AssemblyAIConfig{APIKey: "aai-test", BaseURL: srv.URL})
	got, err := engine.Transcribe(context.Background(), writeMedia(t))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if submitted["language_detection"] != true {
		t.Errorf("language detection should be on without a language code, got %v", submitted["language_detection"])
	}
	if len(got.Segments) != 1 {
		t.Fatalf("expected a single fallback segment, got %+v", got.Segments)
	}
	seg := got.Segments[0]
	if seg.Start != 0 || seg.End != 42 || seg.Text != "One long monologue." {
		t.Errorf("unexpected fallback segment %+v", seg)
	}
}

func TestAssemblyAIEngine_TranscriptError(t *testing.T) {
	srv := newAssemblyAIServer(t, `{"id":"tr-1","status":"error","error":"audio too short"}`, nil)

	engine := NewAssemblyAIEngine(config.AssemblyAIConfig{APIKey: "aai-test", BaseURL: srv.URL})
	_, err := engine.Transcribe(context.Background(), writeMedia(t))
	if err == nil {
		t.Fatal("expected an error for a failed transcript")
	}
	if !strings.Contains(err.Error(), "audio too short") {
		t.Errorf("error should carry the API message, got %v", err)
	}
}

func TestAssemblyAIEngine_MissingFile(t *testing.T) {
	engine := NewAssemblyAIEngine(config.AssemblyAIConfig{APIKey: "aai-test", BaseURL: "http://127.0.0.1:1"})
	if _, err := engine.Transcribe(context.Background(), filepath.Join(t.TempDir(), "nope.mp4")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
