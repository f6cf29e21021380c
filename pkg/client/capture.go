package client

import (
	"context"
	"io"
	"strings"

	"github.com/johnquangdev/voice-transcriber/internal/adapter/dto/transcription"
)

// CaptureResult is what a finished recording produced. When the server could
// not be used, Content falls back to the locally recognised transcript.
type CaptureResult struct {
	transcription.TranscriptionResponse

	// LocalOnly is set when nothing was stored on the server
	LocalOnly bool `json:"local_only,omitempty"`
	// UploadErr holds the upload failure when the record was created but
	// the audio could not be processed
	UploadErr error `json:"-"`
}

// Capture stores a finished recording: it creates a record with the local
// transcript, then uploads the audio for server-side transcription and
// summary. One request per step, no polling and no retries.
//
// If the upload fails the created record is returned with the local
// transcript as content and no summary. If the create fails and a local
// transcript exists, a local-only result is returned. Only a failed create
// without local text is an error.
func (c *Client) Capture(ctx context.Context, localTranscript, filename string, audio io.Reader) (*CaptureResult, error) {
	created, err := c.CreateTranscription(ctx, localTranscript)
	if err != nil {
		if strings.TrimSpace(localTranscript) == "" {
			return nil, err
		}
		return &CaptureResult{
			TranscriptionResponse: transcription.TranscriptionResponse{Content: localTranscript},
			LocalOnly:             true,
		}, nil
	}

	if audio == nil {
		return &CaptureResult{TranscriptionResponse: *created}, nil
	}

	uploaded, err := c.UploadAudio(ctx, created.ID, filename, audio)
	if err != nil {
		fallback := *created
		fallback.Content = localTranscript
		fallback.Summary = ""
		return &CaptureResult{TranscriptionResponse: fallback, UploadErr: err}, nil
	}

	return &CaptureResult{TranscriptionResponse: *uploaded}, nil
}
