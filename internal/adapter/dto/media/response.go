package media

import "time"

// UploadResponse represents a stored upload
type UploadResponse struct {
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadTime time.Time `json:"upload_time"`
}

// SegmentResponse is one timestamped transcript line
type SegmentResponse struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
	Text         string  `json:"text"`
}

// FrameResponse is one sampled frame, addressed relative to the artifacts route
type FrameResponse struct {
	Path      string  `json:"path"`
	Timestamp string  `json:"timestamp"`
	Seconds   float64 `json:"seconds"`
}

// ProcessResponse represents the outcome of a pipeline run
type ProcessResponse struct {
	Filename       string            `json:"filename"`
	TranscriptText string            `json:"transcript_text"`
	TranscriptFile string            `json:"transcript_file"`
	Engine         string            `json:"engine,omitempty"`
	Language       string            `json:"language,omitempty"`
	Segments       []SegmentResponse `json:"segments"`
	FramesDir      string            `json:"frames_dir,omitempty"`
	Frames         []FrameResponse   `json:"frames,omitempty"`
	Summary        *SummaryResponse  `json:"summary,omitempty"`
	SummaryError   string            `json:"summary_error,omitempty"`
	Record         *VideoResponse    `json:"record,omitempty"`
}

// SummaryResponse represents a cached or freshly generated summary
type SummaryResponse struct {
	Filename    string `json:"filename"`
	Summary     string `json:"summary"`
	Source      string `json:"source"`
	SummaryFile string `json:"summary_file"`
}

// VideoListItem is the listing view of a registry record
type VideoListItem struct {
	Filename   string    `json:"filename"`
	BaseName   string    `json:"base_name"`
	Processed  bool      `json:"processed"`
	Summarized bool      `json:"summarized"`
	UploadTime time.Time `json:"upload_time"`
}

// VideoResponse is the full registry record
type VideoResponse struct {
	Filename            string    `json:"filename"`
	BaseName            string    `json:"base_name"`
	State               string    `json:"state"`
	Processed           bool      `json:"processed"`
	Summarized          bool      `json:"summarized"`
	UploadTime          time.Time `json:"upload_time"`
	TranscriptFile      string    `json:"transcript_file,omitempty"`
	SummaryFile         string    `json:"summary_file,omitempty"`
	FramesDir           string    `json:"frames_dir,omitempty"`
	FrameCount          int       `json:"frame_count"`
	TranscriptionEngine string    `json:"transcription_engine,omitempty"`
	UpdatedAt           time.Time `json:"updated_at"`
}
