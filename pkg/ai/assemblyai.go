package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/voice-transcriber/pkg/config"
)

// AssemblyAIClient transcribes recordings with the official AssemblyAI SDK
type AssemblyAIClient struct {
	client *aai.Client
}

var _ SpeechToText = (*AssemblyAIClient)(nil)

// NewAssemblyAIClient creates an AssemblyAI client using the provided config
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var opts []aai.ClientOption
	opts = append(opts, aai.WithAPIKey(cfg.APIKey))
	if cfg.BaseURL != "" {
		opts = append(opts, aai.WithBaseURL(cfg.BaseURL))
	}
	return &AssemblyAIClient{client: aai.NewClientWithOptions(opts...)}
}

// Transcribe uploads the audio and waits for the transcript to finish.
// The filename is not needed by AssemblyAI.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio io.Reader, _ string) (string, error) {
	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, audio, nil)
	if err != nil {
		var apiErr aai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{Provider: "assemblyai", StatusCode: apiErr.Status, Body: apiErr.Message}
		}
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai error: %s", msg)
	}

	return aai.ToString(transcript.Text), nil
}
