package transcription

import "time"

// TranscriptionResponse is returned by create and upload
type TranscriptionResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
}

// SummaryResponse is returned by the summary endpoint
type SummaryResponse struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
}

// TranscriptionDetailResponse is the full record
type TranscriptionDetailResponse struct {
	ID        string                 `json:"id"`
	Content   string                 `json:"content"`
	Summary   string                 `json:"summary"`
	Status    string                 `json:"status"`
	Metadata  map[string]interface{} `json:"metadata"`
	AudioKey  string                 `json:"audio_key,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// TranscriptionListResponse wraps a listing
type TranscriptionListResponse struct {
	Transcriptions []*TranscriptionDetailResponse `json:"transcriptions"`
	Count          int                            `json:"count"`
}

// AudioURLResponse carries a presigned download URL
type AudioURLResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ErrorResponse is the error body: {"error": "..."} or {"errors": [...]}
type ErrorResponse struct {
	Error   string            `json:"error,omitempty"`
	Errors  []string          `json:"errors,omitempty"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
