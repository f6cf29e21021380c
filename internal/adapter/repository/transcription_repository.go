package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/voice-transcriber/internal/domain/entities"
	"github.com/johnquangdev/voice-transcriber/internal/domain/repositories"
)

// TranscriptionRepository handles transcription data operations on PostgreSQL
type TranscriptionRepository struct {
	db *gorm.DB
}

var _ repositories.TranscriptionRepository = (*TranscriptionRepository)(nil)

// NewTranscriptionRepository creates a new transcription repository
func NewTranscriptionRepository(db *gorm.DB) *TranscriptionRepository {
	return &TranscriptionRepository{db: db}
}

// Create inserts a new transcription
func (r *TranscriptionRepository) Create(ctx context.Context, t *entities.Transcription) error {
	if t == nil {
		return errors.New("transcription cannot be nil")
	}
	prepareForCreate(t)
	if err := t.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(t).Error
}

// FindByID retrieves a transcription by ID
func (r *TranscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcription, error) {
	var t entities.Transcription
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrTranscriptionNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns the newest transcriptions first
func (r *TranscriptionRepository) List(ctx context.Context, limit int) ([]*entities.Transcription, error) {
	var out []*entities.Transcription
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(repositories.ClampLimit(limit)).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial update and returns the stored record
func (r *TranscriptionRepository) Update(ctx context.Context, id uuid.UUID, u entities.TranscriptionUpdate) (*entities.Transcription, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if u.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	cols := u.Columns()
	cols["updated_at"] = time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&entities.Transcription{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return nil, fmt.Errorf("update transcription %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, entities.ErrTranscriptionNotFound
	}
	return r.FindByID(ctx, id)
}

func prepareForCreate(t *entities.Transcription) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = entities.TranscriptionStatusProcessing
	}
	if t.Metadata == nil {
		t.Metadata = datatypes.JSONMap{}
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
}
