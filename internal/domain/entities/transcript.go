package entities

import (
	"fmt"
	"math"
	"strings"
)

// TranscriptSegment is one timestamped span of the transcript
type TranscriptSegment struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
	Text         string  `json:"text"`
}

// NewTranscriptSegment builds a segment with formatted times
func NewTranscriptSegment(start, end float64, text string) TranscriptSegment {
	return TranscriptSegment{
		Start:        FormatSegmentTime(start),
		End:          FormatSegmentTime(end),
		StartSeconds: start,
		EndSeconds:   end,
		Text:         strings.TrimSpace(text),
	}
}

// FormatSegmentTime renders seconds as HH:MM:SS.mmm
func FormatSegmentTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ms/3600000, (ms%3600000)/60000, (ms%60000)/1000, ms%1000)
}

// Line is the segment as it appears in the transcript file
func (s TranscriptSegment) Line() string {
	return fmt.Sprintf("[%s --> %s] %s\n\n", s.Start, s.End, s.Text)
}

// JoinTranscript concatenates segment lines in order
func JoinTranscript(segments []TranscriptSegment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Line())
	}
	return sb.String()
}
