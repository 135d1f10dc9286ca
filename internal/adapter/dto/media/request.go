package media

// ProcessRequest represents the request to run the pipeline on an uploaded file
type ProcessRequest struct {
	Filename  string `json:"filename" validate:"required,filename"`
	FrameGap  *int   `json:"frame_gap,omitempty" validate:"omitempty,gt=0"`
	Summarize bool   `json:"summarize,omitempty"`
}

// SummaryRequest represents the request to fetch or generate a summary
type SummaryRequest struct {
	Filename   string `json:"filename" validate:"required,filename"`
	Regenerate bool   `json:"regenerate,omitempty"`
}

// VideoPathParam binds the :filename path parameter
type VideoPathParam struct {
	Filename string `param:"filename" validate:"required,filename"`
}
