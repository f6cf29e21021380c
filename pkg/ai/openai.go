package ai

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/johnquangdev/voice-transcriber/pkg/config"
)

// OpenAIClient talks to OpenAI (or an OpenAI-compatible server) for both
// audio transcription and chat completions
type OpenAIClient struct {
	client   openai.Client
	sttModel string
}

var (
	_ SpeechToText  = (*OpenAIClient)(nil)
	_ ChatCompleter = (*OpenAIClient)(nil)
)

// NewOpenAIClient builds a client from config; sttModel is the transcription model (e.g. whisper-1)
func NewOpenAIClient(cfg *config.OpenAIConfig, sttModel string) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		client:   openai.NewClient(opts...),
		sttModel: sttModel,
	}
}

// Transcribe uploads the recording to the audio transcriptions endpoint.
// No language hint is sent; the provider detects it.
func (o *OpenAIClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	tr, err := o.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.File(audio, filename, "audio/webm"),
		Model: openai.AudioModel(o.sttModel),
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription failed: %w", err)
	}
	return tr.Text, nil
}

// Complete runs a chat completion and returns the first choice
func (o *OpenAIClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, toOpenAIMessage(m))
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    msgs,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrEmptyCompletion)
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessage(m ChatMessage) openai.ChatCompletionMessageParamUnion {
	switch m.Role {
	case RoleSystem:
		return openai.SystemMessage(m.Content)
	case RoleAssistant:
		return openai.AssistantMessage(m.Content)
	default:
		return openai.UserMessage(m.Content)
	}
}
