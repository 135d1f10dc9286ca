package entities

import "time"

// PipelineState is the per-file position in the uploaded, processed, summarized machine
type PipelineState string

const (
	PipelineStateUploaded   PipelineState = "uploaded"
	PipelineStateProcessed  PipelineState = "processed"
	PipelineStateSummarized PipelineState = "summarized"
)

// ProcessingRecord is the registry entry for one uploaded file
type ProcessingRecord struct {
	ID                  uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	Filename            string    `json:"filename" gorm:"type:varchar(255);uniqueIndex;not null"`
	BaseName            string    `json:"base_name" gorm:"type:varchar(255);not null"`
	TranscriptFilePath  string    `json:"transcript_file_path" gorm:"type:text"`
	Processed           bool      `json:"processed" gorm:"not null;default:false"`
	Summarized          bool      `json:"summarized" gorm:"not null;default:false"`
	SummaryFilePath     *string   `json:"summary_file_path,omitempty" gorm:"type:text"`
	UploadTime          time.Time `json:"upload_time"`
	FramesDir           *string   `json:"frames_dir,omitempty" gorm:"type:text"`
	FrameCount          int       `json:"frame_count" gorm:"type:integer;default:0"`
	TranscriptionEngine string    `json:"transcription_engine,omitempty" gorm:"type:varchar(50)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ProcessingRecord) TableName() string {
	return "processing_records"
}

// State derives the pipeline state from the record flags
func (r *ProcessingRecord) State() PipelineState {
	switch {
	case r.Summarized:
		return PipelineStateSummarized
	case r.Processed:
		return PipelineStateProcessed
	default:
		return PipelineStateUploaded
	}
}

// RecordPatch is a partial update merged into a ProcessingRecord. Nil fields are left untouched.
type RecordPatch struct {
	BaseName            *string
	TranscriptFilePath  *string
	Processed           *bool
	Summarized          *bool
	SummaryFilePath     *string
	UploadTime          *time.Time
	FramesDir           *string
	FrameCount          *int
	TranscriptionEngine *string
}

// Apply merges the patch into r
func (p RecordPatch) Apply(r *ProcessingRecord) {
	if p.BaseName != nil {
		r.BaseName = *p.BaseName
	}
	if p.TranscriptFilePath != nil {
		r.TranscriptFilePath = *p.TranscriptFilePath
	}
	if p.Processed != nil {
		r.Processed = *p.Processed
	}
	if p.Summarized != nil {
		r.Summarized = *p.Summarized
	}
	if p.SummaryFilePath != nil {
		path := *p.SummaryFilePath
		r.SummaryFilePath = &path
	}
	if p.UploadTime != nil {
		r.UploadTime = *p.UploadTime
	}
	if p.FramesDir != nil {
		dir := *p.FramesDir
		r.FramesDir = &dir
	}
	if p.FrameCount != nil {
		r.FrameCount = *p.FrameCount
	}
	if p.TranscriptionEngine != nil {
		r.TranscriptionEngine = *p.TranscriptionEngine
	}
}

// Columns returns the patch as a column-to-value map for SQL updates
func (p RecordPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.BaseName != nil {
		cols["base_name"] = *p.BaseName
	}
	if p.TranscriptFilePath != nil {
		cols["transcript_file_path"] = *p.TranscriptFilePath
	}
	if p.Processed != nil {
		cols["processed"] = *p.Processed
	}
	if p.Summarized != nil {
		cols["summarized"] = *p.Summarized
	}
	if p.SummaryFilePath != nil {
		cols["summary_file_path"] = *p.SummaryFilePath
	}
	if p.UploadTime != nil {
		cols["upload_time"] = *p.UploadTime
	}
	if p.FramesDir != nil {
		cols["frames_dir"] = *p.FramesDir
	}
	if p.FrameCount != nil {
		cols["frame_count"] = *p.FrameCount
	}
	if p.TranscriptionEngine != nil {
		cols["transcription_engine"] = *p.TranscriptionEngine
	}
	return cols
}

// Ptr returns a pointer to v, for building patches
func Ptr[T any](v T) *T {
	return &v
}
