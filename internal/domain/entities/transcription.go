package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TranscriptionStatus represents where a transcription is in its lifecycle
type TranscriptionStatus string

const (
	TranscriptionStatusProcessing TranscriptionStatus = "processing" // Created, summary not produced yet
	TranscriptionStatusCompleted  TranscriptionStatus = "completed"  // Summary generated
	TranscriptionStatusFailed     TranscriptionStatus = "failed"     // Summary generation failed, see metadata.error
)

// MetadataErrorKey is the metadata key holding the last enrichment error
const MetadataErrorKey = "error"

// MaxContentLength bounds the transcript text accepted from clients
const MaxContentLength = 100000

// IsValid reports whether s is one of the known statuses
func (s TranscriptionStatus) IsValid() bool {
	switch s {
	case TranscriptionStatusProcessing, TranscriptionStatusCompleted, TranscriptionStatusFailed:
		return true
	}
	return false
}

var validate = validator.New()

// Transcription is a recorded voice note with its text and summary
type Transcription struct {
	ID        uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Content   string              `json:"content" gorm:"type:text" validate:"max=100000"`
	Summary   string              `json:"summary" gorm:"type:text"`
	Status    TranscriptionStatus `json:"status" gorm:"type:varchar(20);not null;index;default:'processing'" validate:"oneof=processing completed failed"`
	Metadata  datatypes.JSONMap   `json:"metadata" gorm:"type:jsonb"`
	AudioKey  string              `json:"audio_key,omitempty" gorm:"type:varchar(512)"`
	CreatedAt time.Time           `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcription) TableName() string {
	return "transcriptions"
}

// NewTranscription creates a transcription in the processing state
func NewTranscription(content string) *Transcription {
	now := time.Now().UTC()
	return &Transcription{
		ID:        uuid.New(),
		Content:   content,
		Status:    TranscriptionStatusProcessing,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the record invariants
func (t *Transcription) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTranscription, err)
	}
	return nil
}

// HasContent reports whether the content is non-blank
func (t *Transcription) HasContent() bool {
	return strings.TrimSpace(t.Content) != ""
}

// HasSummary reports whether the summary is non-blank
func (t *Transcription) HasSummary() bool {
	return strings.TrimSpace(t.Summary) != ""
}

// LastError returns metadata.error if present
func (t *Transcription) LastError() string {
	if t.Metadata == nil {
		return ""
	}
	if v, ok := t.Metadata[MetadataErrorKey].(string); ok {
		return v
	}
	return ""
}

// MergeMetadata returns a copy of the metadata with key set to value.
// The receiver's map is left untouched; callers replace the whole field.
func (t *Transcription) MergeMetadata(key string, value interface{}) datatypes.JSONMap {
	merged := make(datatypes.JSONMap, len(t.Metadata)+1)
	for k, v := range t.Metadata {
		merged[k] = v
	}
	merged[key] = value
	return merged
}

// Clone returns a deep enough copy for handing records across goroutines
func (t *Transcription) Clone() *Transcription {
	c := *t
	if t.Metadata != nil {
		c.Metadata = make(datatypes.JSONMap, len(t.Metadata))
		for k, v := range t.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

// TranscriptionUpdate is a partial update; nil fields are left unchanged
type TranscriptionUpdate struct {
	Content  *string
	Summary  *string
	Status   *TranscriptionStatus
	Metadata datatypes.JSONMap
	AudioKey *string
}

// IsEmpty reports whether the update changes nothing
func (u TranscriptionUpdate) IsEmpty() bool {
	return u.Content == nil && u.Summary == nil && u.Status == nil && u.Metadata == nil && u.AudioKey == nil
}

// ApplyTo returns a copy of t with the update applied
func (u TranscriptionUpdate) ApplyTo(t *Transcription) *Transcription {
	out := t.Clone()
	if u.Content != nil {
		out.Content = *u.Content
	}
	if u.Summary != nil {
		out.Summary = *u.Summary
	}
	if u.Status != nil {
		out.Status = *u.Status
	}
	if u.Metadata != nil {
		out.Metadata = u.Metadata
	}
	if u.AudioKey != nil {
		out.AudioKey = *u.AudioKey
	}
	return out
}

// Columns returns the column/value map for an UPDATE statement
func (u TranscriptionUpdate) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if u.Content != nil {
		cols["content"] = *u.Content
	}
	if u.Summary != nil {
		cols["summary"] = *u.Summary
	}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	if u.Metadata != nil {
		cols["metadata"] = u.Metadata
	}
	if u.AudioKey != nil {
		cols["audio_key"] = *u.AudioKey
	}
	return cols
}

// Validate rejects updates that would break the status invariant
func (u TranscriptionUpdate) Validate() error {
	if u.Status != nil && !u.Status.IsValid() {
		return fmt.Errorf("%w: status %q is not included in the list", ErrInvalidTranscription, *u.Status)
	}
	if u.Content != nil && len(*u.Content) > MaxContentLength {
		return fmt.Errorf("%w: content is too long", ErrInvalidTranscription)
	}
	return nil
}

// AudioObjectKey builds the archive object key for a recording of transcription id
func AudioObjectKey(id uuid.UUID, at time.Time) string {
	return fmt.Sprintf("transcriptions/%s/%d.webm", id, at.Unix())
}
