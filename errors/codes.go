package errors

// ErrorCode is the machine-readable code carried in every error response
type ErrorCode int32

const (
	ErrorCode_HTTP_OK           ErrorCode = 0
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_CONFLICT          ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1004
	ErrorCode_PAYLOAD_TOO_LARGE ErrorCode = 1005

	// Upload
	ErrorCode_UPLOAD_MISSING_FILE     ErrorCode = 2000
	ErrorCode_UPLOAD_UNSUPPORTED_TYPE ErrorCode = 2001
	ErrorCode_UPLOAD_FAILED           ErrorCode = 2002

	// Media pipeline
	ErrorCode_MEDIA_VIDEO_OPEN_FAILED       ErrorCode = 3000
	ErrorCode_MEDIA_AUDIO_EXTRACTION_FAILED ErrorCode = 3001
	ErrorCode_MEDIA_FRAME_SAMPLING_FAILED   ErrorCode = 3002
	ErrorCode_MEDIA_PROCESSING_IN_PROGRESS  ErrorCode = 3003

	// AI engines
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 4000
	ErrorCode_AI_SUMMARY_FAILED       ErrorCode = 4001
	ErrorCode_AI_CHAT_FAILED          ErrorCode = 4002

	// Registry
	ErrorCode_REGISTRY_FAILED ErrorCode = 5000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                       "HTTP_OK",
	ErrorCode_INTERNAL:                      "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:              "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                     "NOT_FOUND",
	ErrorCode_CONFLICT:                      "CONFLICT",
	ErrorCode_INVALID_PAYLOAD:               "INVALID_PAYLOAD",
	ErrorCode_PAYLOAD_TOO_LARGE:             "PAYLOAD_TOO_LARGE",
	ErrorCode_UPLOAD_MISSING_FILE:           "UPLOAD_MISSING_FILE",
	ErrorCode_UPLOAD_UNSUPPORTED_TYPE:       "UPLOAD_UNSUPPORTED_TYPE",
	ErrorCode_UPLOAD_FAILED:                 "UPLOAD_FAILED",
	ErrorCode_MEDIA_VIDEO_OPEN_FAILED:       "MEDIA_VIDEO_OPEN_FAILED",
	ErrorCode_MEDIA_AUDIO_EXTRACTION_FAILED: "MEDIA_AUDIO_EXTRACTION_FAILED",
	ErrorCode_MEDIA_FRAME_SAMPLING_FAILED:   "MEDIA_FRAME_SAMPLING_FAILED",
	ErrorCode_MEDIA_PROCESSING_IN_PROGRESS:  "MEDIA_PROCESSING_IN_PROGRESS",
	ErrorCode_AI_TRANSCRIPTION_FAILED:       "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:             "AI_SUMMARY_FAILED",
	ErrorCode_AI_CHAT_FAILED:                "AI_CHAT_FAILED",
	ErrorCode_REGISTRY_FAILED:               "REGISTRY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
