package ai

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-transcriber/internal/domain/entities"
	"github.com/johnquangdev/voice-transcriber/internal/domain/repositories"
	"github.com/johnquangdev/voice-transcriber/internal/infrastructure/metrics"
	ucerrors "github.com/johnquangdev/voice-transcriber/internal/usecase/errors"
	pkgai "github.com/johnquangdev/voice-transcriber/pkg/ai"
)

const audioContentType = "audio/webm"

// AudioArchiver stores a copy of uploaded recordings
type AudioArchiver interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
}

// IngressConfig tunes where temporary audio files are written
type IngressConfig struct {
	// TempDir is passed to os.CreateTemp; empty means the system default
	TempDir string
}

// IngressService turns uploaded audio into transcript text and a summary
type IngressService interface {
	Ingest(ctx context.Context, id uuid.UUID, payload AudioPayload) (*entities.Transcription, error)
}

type ingressService struct {
	repo       repositories.TranscriptionRepository
	stt        pkgai.SpeechToText
	enrichment EnrichmentService
	archiver   AudioArchiver
	cfg        IngressConfig
	logger     *zap.Logger
	now        func() time.Time
}

// NewIngressService constructs a new ingress service. archiver may be nil.
func NewIngressService(
	repo repositories.TranscriptionRepository,
	stt pkgai.SpeechToText,
	enrichment EnrichmentService,
	archiver AudioArchiver,
	cfg IngressConfig,
	logger *zap.Logger,
) IngressService {
	return &ingressService{
		repo:       repo,
		stt:        stt,
		enrichment: enrichment,
		archiver:   archiver,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// Ingest writes the audio to a temporary file, transcribes it, stores the
// text on the record and runs the summarizer. Decode and transcription
// errors are returned without touching the record.
func (s *ingressService) Ingest(ctx context.Context, id uuid.UUID, payload AudioPayload) (*entities.Transcription, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.IsEmpty() {
		return nil, ucerrors.ErrEmptyAudio
	}

	src, err := payload.open()
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.cfg.TempDir, "audio-*.webm")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	size, err := io.Copy(tmp, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ucerrors.ErrAudioDecode, err)
	}
	if size == 0 {
		return nil, ucerrors.ErrEmptyAudio
	}
	metrics.AudioUploadBytes.Observe(float64(size))

	if s.logger != nil {
		s.logger.Info("📥 Audio received",
			zap.String("transcription_id", id.String()),
			zap.Int64("bytes", size),
		)
	}

	audioKey := s.archive(ctx, t.ID, tmp, size)

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind temp file: %w", err)
	}

	start := time.Now()
	text, err := s.stt.Transcribe(ctx, tmp, payload.filename())
	metrics.ObserveExternalCall("transcribe", start, err)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Audio transcription failed",
				zap.String("transcription_id", id.String()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: %w", ucerrors.ErrTranscriptionFailed, err)
	}

	update := entities.TranscriptionUpdate{Content: &text}
	if audioKey != "" {
		update.AudioKey = &audioKey
	}
	t, err = s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("persist transcript: %w", err)
	}

	if err := s.enrichment.Summarize(ctx, t); err != nil {
		return t, err
	}
	return t, nil
}

// archive uploads the recording when an archiver is configured and returns the
// object key. Failures are logged and reported as an empty key.
func (s *ingressService) archive(ctx context.Context, id uuid.UUID, f *os.File, size int64) string {
	if s.archiver == nil {
		return ""
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return ""
	}

	key := entities.AudioObjectKey(id, s.now())
	if err := s.archiver.UploadFile(ctx, key, f, size, audioContentType); err != nil {
		if s.logger != nil {
			s.logger.Warn("audio archive failed",
				zap.String("transcription_id", id.String()),
				zap.String("object", key),
				zap.Error(err),
			)
		}
		return ""
	}
	return key
}
