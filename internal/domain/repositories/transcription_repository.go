package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/voice-transcriber/internal/domain/entities"
)

const (
	// DefaultListLimit is the page size used when the caller does not ask for one
	DefaultListLimit = 10
	// MaxListLimit caps a single listing
	MaxListLimit = 100
)

// TranscriptionRepository defines persistence operations for transcriptions
type TranscriptionRepository interface {
	Create(ctx context.Context, t *entities.Transcription) error
	// FindByID returns entities.ErrTranscriptionNotFound when no record matches
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcription, error)
	// List returns the newest records first
	List(ctx context.Context, limit int) ([]*entities.Transcription, error)
	Update(ctx context.Context, id uuid.UUID, u entities.TranscriptionUpdate) (*entities.Transcription, error)
}

// ClampLimit normalises a requested page size into [1, MaxListLimit]
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
