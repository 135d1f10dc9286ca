package validator

import (
	"strings"
	"testing"
)

type processRequest struct {
	Filename string `validate:"required,filename"`
	FrameGap *int   `validate:"omitempty,gt=0"`
}

func TestValidate_Filename(t *testing.T) {
	v := New()
	gap := 300
	zero := 0

	tests := []struct {
		name    string
		req     processRequest
		wantErr bool
	}{
		{"plain name", processRequest{Filename: "3f2a_lecture.mp4"}, false},
		{"with gap", processRequest{Filename: "a.mp4", FrameGap: &gap}, false},
		{"empty", processRequest{}, true},
		{"traversal", processRequest{Filename: "../etc/passwd"}, true},
		{"nested", processRequest{Filename: "dir/a.mp4"}, true},
		{"backslash", processRequest{Filename: `dir\a.mp4`}, true},
		{"dotdot", processRequest{Filename: ".."}, true},
		{"zero gap", processRequest{Filename: "a.mp4", FrameGap: &zero}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

type chatRequest struct {
	Message  string `json:"message" validate:"required"`
	Filename string `json:"filename" validate:"omitempty,filename"`
}

func TestValidate_MessagesUseJSONNames(t *testing.T) {
	err := New().Validate(chatRequest{Filename: "a/b.mp4"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := err.Error()
	for _, want := range []string{"message is required", "filename must be a plain file name"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}
