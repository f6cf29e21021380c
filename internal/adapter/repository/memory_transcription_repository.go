package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/voice-transcriber/internal/domain/entities"
	"github.com/johnquangdev/voice-transcriber/internal/domain/repositories"
)

// MemoryTranscriptionRepository is an in-memory transcription store.
// Records are copied on the way in and out so callers never share state with the map.
type MemoryTranscriptionRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*memoryRecord
	seq   uint64
}

type memoryRecord struct {
	t   *entities.Transcription
	seq uint64
}

var _ repositories.TranscriptionRepository = (*MemoryTranscriptionRepository)(nil)

// NewMemoryTranscriptionRepository creates an empty in-memory store
func NewMemoryTranscriptionRepository() *MemoryTranscriptionRepository {
	return &MemoryTranscriptionRepository{
		items: make(map[uuid.UUID]*memoryRecord),
	}
}

// Create stores a new transcription
func (r *MemoryTranscriptionRepository) Create(ctx context.Context, t *entities.Transcription) error {
	if t == nil {
		return errors.New("transcription cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	prepareForCreate(t)
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[t.ID]; exists {
		return errors.New("transcription already exists")
	}
	r.seq++
	r.items[t.ID] = &memoryRecord{t: t.Clone(), seq: r.seq}
	return nil
}

// FindByID retrieves a transcription by ID
func (r *MemoryTranscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[id]
	if !ok {
		return nil, entities.ErrTranscriptionNotFound
	}
	return rec.t.Clone(), nil
}

// List returns the newest transcriptions first
func (r *MemoryTranscriptionRepository) List(ctx context.Context, limit int) ([]*entities.Transcription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// snapshot under the lock; Update replaces rec.t
	r.mu.RLock()
	recs := make([]memoryRecord, 0, len(r.items))
	for _, rec := range r.items {
		recs = append(recs, memoryRecord{t: rec.t.Clone(), seq: rec.seq})
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		ti, tj := recs[i].t.CreatedAt, recs[j].t.CreatedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return recs[i].seq > recs[j].seq
	})

	limit = repositories.ClampLimit(limit)
	if len(recs) > limit {
		recs = recs[:limit]
	}

	out := make([]*entities.Transcription, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.t)
	}
	return out, nil
}

// Update applies a partial update and returns the stored record
func (r *MemoryTranscriptionRepository) Update(ctx context.Context, id uuid.UUID, u entities.TranscriptionUpdate) (*entities.Transcription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[id]
	if !ok {
		return nil, entities.ErrTranscriptionNotFound
	}
	if u.IsEmpty() {
		return rec.t.Clone(), nil
	}

	updated := u.ApplyTo(rec.t)
	updated.UpdatedAt = time.Now().UTC()
	rec.t = updated
	return updated.Clone(), nil
}
