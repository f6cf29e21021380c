package transcription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-transcriber/internal/domain/entities"
	"github.com/johnquangdev/voice-transcriber/internal/domain/repositories"
	"github.com/johnquangdev/voice-transcriber/internal/usecase/ai"
	ucerrors "github.com/johnquangdev/voice-transcriber/internal/usecase/errors"
)

// Service defines the interface for the transcription use case.
// Writing operations run to completion even when the caller's context is
// cancelled; only values are taken from it.
type Service interface {
	// Create stores a new transcription and summarizes it when content is present.
	// A summary failure is returned together with the stored record.
	Create(ctx context.Context, input CreateInput) (*entities.Transcription, error)

	// Get retrieves a transcription by ID
	Get(ctx context.Context, id uuid.UUID) (*entities.Transcription, error)

	// List returns the newest transcriptions first
	List(ctx context.Context, limit int) ([]*entities.Transcription, error)

	// Summary returns the record, generating the summary first if it is blank
	Summary(ctx context.Context, id uuid.UUID) (*entities.Transcription, error)

	// UploadAudio transcribes uploaded audio into the record and summarizes it
	UploadAudio(ctx context.Context, id uuid.UUID, payload ai.AudioPayload) (*entities.Transcription, error)

	// AudioURL returns a short-lived download URL for the archived recording
	AudioURL(ctx context.Context, id uuid.UUID) (string, error)
}

// AudioLocator resolves archived recordings to download URLs
type AudioLocator interface {
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// CreateInput carries the client-supplied fields of a new transcription
type CreateInput struct {
	Content string
}

// TranscriptionService implements Service
type TranscriptionService struct {
	repo       repositories.TranscriptionRepository
	enrichment ai.EnrichmentService
	ingress    ai.IngressService
	locator    AudioLocator
	urlExpiry  time.Duration
	logger     *zap.Logger
}

var _ Service = (*TranscriptionService)(nil)

// NewTranscriptionService creates a new transcription service. locator may be nil
// when audio archiving is disabled.
func NewTranscriptionService(
	repo repositories.TranscriptionRepository,
	enrichment ai.EnrichmentService,
	ingress ai.IngressService,
	locator AudioLocator,
	urlExpiry time.Duration,
	logger *zap.Logger,
) *TranscriptionService {
	if urlExpiry <= 0 {
		urlExpiry = 15 * time.Minute
	}
	return &TranscriptionService{
		repo:       repo,
		enrichment: enrichment,
		ingress:    ingress,
		locator:    locator,
		urlExpiry:  urlExpiry,
		logger:     logger,
	}
}

func (s *TranscriptionService) Create(ctx context.Context, input CreateInput) (*entities.Transcription, error) {
	ctx = context.WithoutCancel(ctx)
	t := entities.NewTranscription(input.Content)
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("transcription created",
			zap.String("transcription_id", t.ID.String()),
			zap.Int("content_length", len(t.Content)),
		)
	}

	if t.HasContent() {
		if err := s.enrichment.Summarize(ctx, t); err != nil {
			return t, err
		}
	}
	return t, nil
}

func (s *TranscriptionService) Get(ctx context.Context, id uuid.UUID) (*entities.Transcription, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TranscriptionService) List(ctx context.Context, limit int) ([]*entities.Transcription, error) {
	return s.repo.List(ctx, limit)
}

func (s *TranscriptionService) Summary(ctx context.Context, id uuid.UUID) (*entities.Transcription, error) {
	ctx = context.WithoutCancel(ctx)
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.HasSummary() {
		return t, nil
	}
	if err := s.enrichment.Summarize(ctx, t); err != nil {
		return t, err
	}
	return t, nil
}

func (s *TranscriptionService) UploadAudio(ctx context.Context, id uuid.UUID, payload ai.AudioPayload) (*entities.Transcription, error) {
	return s.ingress.Ingest(context.WithoutCancel(ctx), id, payload)
}

func (s *TranscriptionService) AudioURL(ctx context.Context, id uuid.UUID) (string, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if s.locator == nil || t.AudioKey == "" {
		return "", ucerrors.ErrAudioNotArchived
	}

	url, err := s.locator.GetFileURL(ctx, t.AudioKey, s.urlExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: presign audio: %w", ucerrors.ErrAudioStorage, err)
	}
	return url, nil
}
