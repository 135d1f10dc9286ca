package ai

import "context"

// Chat roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a chat-completion conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatEngine turns an ordered list of messages into a single reply
type ChatEngine interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Segment is one engine-detected span of speech, times in seconds
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Transcription is the raw result returned by a speech-to-text engine
type Transcription struct {
	Text     string
	Language string
	Segments []Segment
}

// SpeechEngine transcribes an audio or video file.
// Engines that cannot decode containers report RequiresNormalizedAudio so the
// caller hands them a mono 16 kHz PCM WAV instead of the original video.
type SpeechEngine interface {
	Name() string
	RequiresNormalizedAudio() bool
	Transcribe(ctx context.Context, path string) (*Transcription, error)
}
