package transcription

// CreateTranscriptionRequest accepts both {"transcription":{"content":"..."}} and {"content":"..."}
type CreateTranscriptionRequest struct {
	Transcription *TranscriptionParams `json:"transcription,omitempty"`
	Content       string               `json:"content" validate:"max=100000"`
}

// TranscriptionParams is the nested form sent by browser clients
type TranscriptionParams struct {
	Content string `json:"content" validate:"max=100000"`
}

// ContentValue returns the nested content when present, the flat field otherwise
func (r CreateTranscriptionRequest) ContentValue() string {
	if r.Transcription != nil {
		return r.Transcription.Content
	}
	return r.Content
}

// UploadAudioRequest is the JSON / form variant of an audio upload carrying a base64 data URL
type UploadAudioRequest struct {
	Audio string `json:"audio" form:"audio"`
}

// ListTranscriptionsRequest represents query parameters for listing transcriptions.
// Out-of-range limits are clamped to [1, 100]; zero means the default of 10.
type ListTranscriptionsRequest struct {
	Limit int `query:"limit"`
}
