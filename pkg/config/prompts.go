package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSummaryPrompt is the system prompt used for summary generation.
const DefaultSummaryPrompt = `You are an assistant that summarizes video and lecture content.
Given a timestamped transcript, produce a structured summary:
- Start with a one-sentence overview of the topic.
- List the main points in the order they appear, as bullet points.
- Keep technical terms as they are spoken.
- End with a short list of key takeaways.`

// DefaultChatContextPrompt prefixes the summary passed as chat context.
const DefaultChatContextPrompt = "You are a helpful assistant that knows this video summary:\n\n"

// Prompts holds the system prompts sent to the chat engine
type Prompts struct {
	Summary     string `yaml:"summary"`
	ChatContext string `yaml:"chat_context"`
}

// DefaultPrompts returns the built-in prompts
func DefaultPrompts() Prompts {
	return Prompts{
		Summary:     DefaultSummaryPrompt,
		ChatContext: DefaultChatContextPrompt,
	}
}

// LoadPrompts reads prompt overrides from a YAML file. Keys missing from the
// file keep their built-in value.
func LoadPrompts(path string) (Prompts, error) {
	prompts := DefaultPrompts()

	data, err := os.ReadFile(path)
	if err != nil {
		return prompts, fmt.Errorf("read prompts file: %w", err)
	}

	var override Prompts
	if err := yaml.Unmarshal(data, &override); err != nil {
		return prompts, fmt.Errorf("parse prompts file: %w", err)
	}

	if override.Summary != "" {
		prompts.Summary = override.Summary
	}
	if override.ChatContext != "" {
		prompts.ChatContext = override.ChatContext
	}
	return prompts, nil
}
