package presenter

import (
	"github.com/johnquangdev/voice-transcriber/internal/adapter/dto/transcription"
	"github.com/johnquangdev/voice-transcriber/internal/domain/entities"
)

// ToTranscriptionResponse converts a Transcription entity to the short response DTO
func ToTranscriptionResponse(t *entities.Transcription) *transcription.TranscriptionResponse {
	if t == nil {
		return nil
	}
	return &transcription.TranscriptionResponse{
		ID:      t.ID.String(),
		Content: t.Content,
		Summary: t.Summary,
		Status:  string(t.Status),
	}
}

// ToSummaryResponse converts a Transcription entity to SummaryResponse DTO
func ToSummaryResponse(t *entities.Transcription) *transcription.SummaryResponse {
	if t == nil {
		return nil
	}
	return &transcription.SummaryResponse{
		ID:      t.ID.String(),
		Summary: t.Summary,
		Status:  string(t.Status),
	}
}

// ToTranscriptionDetailResponse converts a Transcription entity to the full record DTO
func ToTranscriptionDetailResponse(t *entities.Transcription) *transcription.TranscriptionDetailResponse {
	if t == nil {
		return nil
	}

	metadata := map[string]interface{}{}
	for k, v := range t.Metadata {
		metadata[k] = v
	}

	return &transcription.TranscriptionDetailResponse{
		ID:        t.ID.String(),
		Content:   t.Content,
		Summary:   t.Summary,
		Status:    string(t.Status),
		Metadata:  metadata,
		AudioKey:  t.AudioKey,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTranscriptionListResponse converts a slice of entities to the list DTO
func ToTranscriptionListResponse(items []*entities.Transcription) *transcription.TranscriptionListResponse {
	out := make([]*transcription.TranscriptionDetailResponse, 0, len(items))
	for _, t := range items {
		out = append(out, ToTranscriptionDetailResponse(t))
	}
	return &transcription.TranscriptionListResponse{
		Transcriptions: out,
		Count:          len(out),
	}
}
