package entities

import (
	"fmt"
	"math"
)

// FrameRecord is one sampled frame written to disk. Not persisted in the registry.
type FrameRecord struct {
	Path      string  `json:"path"`
	Timestamp string  `json:"timestamp"`
	Seconds   float64 `json:"seconds"`
}

// FormatFrameTimestamp renders seconds as zero-padded HH_MM_SS
func FormatFrameTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	total := int64(seconds)
	return fmt.Sprintf("%02d_%02d_%02d", total/3600, (total%3600)/60, total%60)
}

// FrameFileName is the image name for a frame at the given offset
func FrameFileName(seconds float64) string {
	return "frame_" + FormatFrameTimestamp(seconds) + ".png"
}
