package chat

import (
	"context"
	"errors"
	"testing"

	usecaseErrors "github.com/johnquangdev/video-digest/internal/usecase/errors"
	"github.com/johnquangdev/video-digest/pkg/ai"
	"github.com/johnquangdev/video-digest/pkg/config"
)

type fakeChat struct {
	reply string
	err   error
	last  []ai.Message
}

func (f *fakeChat) Name() string { return "fake" }

func (f *fakeChat) Complete(ctx context.Context, messages []ai.Message) (string, error) {
	f.last = messages
	return f.reply, f.err
}

func TestReply_WithContext(t *testing.T) {
	engine := &fakeChat{reply: " It covers graphs. "}
	svc := NewService(engine, config.DefaultChatContextPrompt, nil)

	reply, err := svc.Reply(context.Background(), "What is it about?", "- graphs\n- trees")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if reply != "It covers graphs." {
		t.Errorf("unexpected reply %q", reply)
	}
	if len(engine.last) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(engine.last))
	}
	want := "You are a helpful assistant that knows this video summary:\n\n- graphs\n- trees"
	if engine.last[0].Role != ai.RoleSystem || engine.last[0].Content != want {
		t.Errorf("unexpected system message %+v", engine.last[0])
	}
}

func TestReply_WithoutContext(t *testing.T) {
	engine := &fakeChat{reply: "hi"}
	svc := NewService(engine, config.DefaultChatContextPrompt, nil)

	if _, err := svc.Reply(context.Background(), "hello", ""); err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if len(engine.last) != 1 || engine.last[0].Role != ai.RoleUser {
		t.Errorf("expected a single user message, got %+v", engine.last)
	}
}

func TestReply_EmptyMessage(t *testing.T) {
	svc := NewService(&fakeChat{}, "", nil)
	if _, err := svc.Reply(context.Background(), "   ", "ctx"); !errors.Is(err, usecaseErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReply_EngineFailure(t *testing.T) {
	svc := NewService(&fakeChat{err: errors.New("timeout")}, "", nil)
	if _, err := svc.Reply(context.Background(), "hello", ""); !errors.Is(err, usecaseErrors.ErrChat) {
		t.Fatalf("expected ErrChat, got %v", err)
	}
}
