package ai

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/voice-transcriber/internal/domain/entities"
	"github.com/johnquangdev/voice-transcriber/internal/domain/repositories"
	"github.com/johnquangdev/voice-transcriber/internal/infrastructure/metrics"
	ucerrors "github.com/johnquangdev/voice-transcriber/internal/usecase/errors"
	pkgai "github.com/johnquangdev/voice-transcriber/pkg/ai"
)

const (
	summarySystemPrompt = "You are a helpful assistant that creates concise summaries of conversations. " +
		"Keep summaries to 2-3 sentences highlighting the key points."
	summaryUserPrompt = "Please summarize the following transcription:\n\n"
)

// Summary request defaults
const (
	DefaultSummaryModel       = "gpt-3.5-turbo"
	DefaultSummaryTemperature = 0.7
	DefaultSummaryMaxTokens   = 150
)

// EnrichmentConfig holds the fixed chat parameters used for summaries
type EnrichmentConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// EnrichmentService produces summaries for stored transcriptions
type EnrichmentService interface {
	// Summarize generates and persists a summary for t. Blank content is a no-op.
	// On failure the record is persisted as failed with metadata.error set and
	// the returned error matches ucerrors.ErrSummaryFailed.
	Summarize(ctx context.Context, t *entities.Transcription) error
}

type enrichmentService struct {
	repo   repositories.TranscriptionRepository
	chat   pkgai.ChatCompleter
	cfg    EnrichmentConfig
	logger *zap.Logger
}

// NewEnrichmentService constructs a new enrichment service
func NewEnrichmentService(
	repo repositories.TranscriptionRepository,
	chat pkgai.ChatCompleter,
	cfg EnrichmentConfig,
	logger *zap.Logger,
) EnrichmentService {
	if cfg.Model == "" {
		cfg.Model = DefaultSummaryModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultSummaryMaxTokens
	}
	return &enrichmentService{
		repo:   repo,
		chat:   chat,
		cfg:    cfg,
		logger: logger,
	}
}

// SummaryRequest builds the chat request sent for a transcript
func SummaryRequest(cfg EnrichmentConfig, content string) pkgai.ChatRequest {
	return pkgai.ChatRequest{
		Model: cfg.Model,
		Messages: []pkgai.ChatMessage{
			{Role: pkgai.RoleSystem, Content: summarySystemPrompt},
			{Role: pkgai.RoleUser, Content: summaryUserPrompt + content},
		},
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
}

func (s *enrichmentService) Summarize(ctx context.Context, t *entities.Transcription) error {
	if t == nil || !t.HasContent() {
		return nil
	}
	// a client hanging up must not leave the record in processing
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	reply, err := s.chat.Complete(ctx, SummaryRequest(s.cfg, t.Content))
	metrics.ObserveExternalCall("summarize", start, err)
	if err != nil {
		return s.markFailed(ctx, t, err)
	}

	summary := reply
	status := entities.TranscriptionStatusCompleted
	updated, err := s.repo.Update(ctx, t.ID, entities.TranscriptionUpdate{
		Summary: &summary,
		Status:  &status,
	})
	if err != nil {
		return fmt.Errorf("persist summary: %w", err)
	}
	*t = *updated
	metrics.TranscriptionStatusTotal.WithLabelValues(string(status)).Inc()

	if s.logger != nil {
		s.logger.Info("✅ Summary generated",
			zap.String("transcription_id", t.ID.String()),
			zap.Duration("took", time.Since(start)),
		)
	}
	return nil
}

// markFailed records the failure on the transcription and returns the wrapped cause
func (s *enrichmentService) markFailed(ctx context.Context, t *entities.Transcription, cause error) error {
	if s.logger != nil {
		s.logger.Error("❌ Summary generation failed",
			zap.String("transcription_id", t.ID.String()),
			zap.Error(cause),
		)
	}

	status := entities.TranscriptionStatusFailed
	updated, err := s.repo.Update(ctx, t.ID, entities.TranscriptionUpdate{
		Status:   &status,
		Metadata: t.MergeMetadata(entities.MetadataErrorKey, cause.Error()),
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to persist summary failure",
				zap.String("transcription_id", t.ID.String()),
				zap.Error(err),
			)
		}
	} else {
		*t = *updated
		metrics.TranscriptionStatusTotal.WithLabelValues(string(status)).Inc()
	}

	return fmt.Errorf("%w: %w", ucerrors.ErrSummaryFailed, cause)
}
