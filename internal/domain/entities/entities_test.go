package entities

import (
	"math"
	"testing"
	"time"
)

func TestRecordPatch_ApplyMerges(t *testing.T) {
	rec := &ProcessingRecord{Filename: "a.mp4"}

	RecordPatch{Processed: Ptr(true), TranscriptFilePath: Ptr("out/a_transcript.txt")}.Apply(rec)
	RecordPatch{Summarized: Ptr(true), SummaryFilePath: Ptr("out/a_summary.txt")}.Apply(rec)

	if !rec.Processed || rec.TranscriptFilePath != "out/a_transcript.txt" {
		t.Errorf("first patch lost: %+v", rec)
	}
	if !rec.Summarized || rec.SummaryFilePath == nil || *rec.SummaryFilePath != "out/a_summary.txt" {
		t.Errorf("second patch not applied: %+v", rec)
	}
	if rec.State() != PipelineStateSummarized {
		t.Errorf("unexpected state %s", rec.State())
	}
}

func TestRecordPatch_Columns(t *testing.T) {
	now := time.Now()
	cols := RecordPatch{Processed: Ptr(true), UploadTime: &now}.Columns()
	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %v", cols)
	}
	if cols["processed"] != true {
		t.Errorf("unexpected processed column %v", cols["processed"])
	}
}

func TestFormatFrameTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00_00_00"},
		{10, "00_00_10"},
		{90.9, "00_01_30"},
		{3725, "01_02_05"},
		{-1, "00_00_00"},
		{math.NaN(), "00_00_00"},
	}
	for _, tt := range tests {
		if got := FormatFrameTimestamp(tt.in); got != tt.want {
			t.Errorf("FormatFrameTimestamp(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if FrameFileName(10) != "frame_00_00_10.png" {
		t.Errorf("unexpected frame file name %s", FrameFileName(10))
	}
}

func TestFormatSegmentTime(t *testing.T) {
	if got := FormatSegmentTime(3723.456); got != "01:02:03.456" {
		t.Errorf("got %s", got)
	}
	if got := FormatSegmentTime(0); got != "00:00:00.000" {
		t.Errorf("got %s", got)
	}
}

func TestJoinTranscript(t *testing.T) {
	segs := []TranscriptSegment{
		NewTranscriptSegment(0, 2.5, " Hello "),
		NewTranscriptSegment(2.5, 4, "World"),
	}
	want := "[00:00:00.000 --> 00:00:02.500] Hello\n\n[00:00:02.500 --> 00:00:04.000] World\n\n"
	if got := JoinTranscript(segs); got != want {
		t.Errorf("JoinTranscript = %q, want %q", got, want)
	}
}

func TestBaseNameAndExtensions(t *testing.T) {
	if BaseName("3f2a_lecture.mp4") != "3f2a_lecture" {
		t.Errorf("unexpected base name %s", BaseName("3f2a_lecture.mp4"))
	}
	if !IsAllowedVideoExtension(".MKV") || IsAllowedVideoExtension("txt") {
		t.Error("extension check mismatch")
	}
}
