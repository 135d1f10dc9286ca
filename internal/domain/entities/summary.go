package entities

// SummarySource tells whether a summary was read from cache or freshly generated
type SummarySource string

const (
	SummarySourceCached SummarySource = "cached"
	SummarySourceNew    SummarySource = "new"
)

// Summary is the result of a summary request
type Summary struct {
	Filename string        `json:"filename"`
	Text     string        `json:"summary"`
	Source   SummarySource `json:"source"`
	FilePath string        `json:"summary_file"`
}
