package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("STT_ENGINE", "")
	t.Setenv("CHAT_ENGINE", "")
	t.Setenv("REGISTRY_BACKEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.STTEngine != STTEngineWhisper {
		t.Errorf("expected whisper engine, got %s", cfg.STTEngine)
	}
	if cfg.ChatEngine != ChatEngineOpenAI {
		t.Errorf("expected openai chat engine, got %s", cfg.ChatEngine)
	}
	if cfg.Registry.Backend != RegistryBackendDocument {
		t.Errorf("expected document registry, got %s", cfg.Registry.Backend)
	}
	if cfg.OpenAI.Model != "gpt-3.5-turbo" {
		t.Errorf("expected default model from envconfig, got %s", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.Timeout != 120*time.Second {
		t.Errorf("expected 120s timeout, got %s", cfg.OpenAI.Timeout)
	}
	if cfg.Registry.DocumentPath != "data/registry.json" {
		t.Errorf("registry should default outside the served output dir, got %s", cfg.Registry.DocumentPath)
	}
	if cfg.Lock.TTL != 30*time.Minute {
		t.Errorf("expected 30m lock ttl, got %s", cfg.Lock.TTL)
	}
	if cfg.Prompts.Summary != DefaultSummaryPrompt {
		t.Errorf("expected default summary prompt")
	}
}

func TestLoad_AllowedOriginsList(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origin %q", cfg.Server.AllowedOrigins[1])
	}
}

func TestValidate_MissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "assemblyai without key",
			cfg: Config{
				STTEngine:  STTEngineAssemblyAI,
				ChatEngine: ChatEngineOpenAI,
				OpenAI:     OpenAIConfig{APIKey: "k"},
			},
		},
		{
			name: "gemini without key",
			cfg: Config{
				STTEngine:  STTEngineWhisper,
				Whisper:    WhisperConfig{ModelPath: "m.bin"},
				ChatEngine: ChatEngineGemini,
			},
		},
		{
			name: "unknown stt engine",
			cfg: Config{
				STTEngine:  "vosk",
				ChatEngine: ChatEngineOpenAI,
				OpenAI:     OpenAIConfig{APIKey: "k"},
			},
		},
		{
			name: "unknown registry backend",
			cfg: Config{
				STTEngine:  STTEngineWhisper,
				Whisper:    WhisperConfig{ModelPath: "m.bin"},
				ChatEngine: ChatEngineOpenAI,
				OpenAI:     OpenAIConfig{APIKey: "k"},
				Registry:   RegistryConfig{Backend: "sqlite"},
			},
		},
		{
			name: "registry file inside output dir",
			cfg: Config{
				STTEngine:  STTEngineWhisper,
				Whisper:    WhisperConfig{ModelPath: "m.bin"},
				ChatEngine: ChatEngineOpenAI,
				OpenAI:     OpenAIConfig{APIKey: "k"},
				Media:      MediaConfig{OutputDir: "processed"},
				Registry:   RegistryConfig{Backend: RegistryBackendDocument, DocumentPath: "./processed/state/registry.json"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestWithin(t *testing.T) {
	tests := []struct {
		dir, path string
		want      bool
	}{
		{"processed", "processed/registry.json", true},
		{"processed", "./processed/a/b.json", true},
		{"processed", "processed", true},
		{"processed", "data/registry.json", false},
		{"processed", "processed-old/registry.json", false},
		{"processed", "processed/../data/registry.json", false},
	}
	for _, tt := range tests {
		if got := within(tt.dir, tt.path); got != tt.want {
			t.Errorf("within(%q, %q) = %v, want %v", tt.dir, tt.path, got, tt.want)
		}
	}
}

func TestLoadPrompts_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("summary: |\n  Summarize briefly.\n"), 0o644); err != nil {
		t.Fatalf("write prompts: %v", err)
	}

	prompts, err := LoadPrompts(path)
	if err != nil {
		t.Fatalf("LoadPrompts failed: %v", err)
	}
	if prompts.Summary != "Summarize briefly.\n" {
		t.Errorf("unexpected summary prompt %q", prompts.Summary)
	}
	if prompts.ChatContext != DefaultChatContextPrompt {
		t.Errorf("chat context prompt should keep its default")
	}
}

func TestLoadPrompts_MissingFile(t *testing.T) {
	if _, err := LoadPrompts(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
