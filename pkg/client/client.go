// Package client talks to the transcription API the way the recording page does:
// create a record with the locally recognised text, then upload the audio.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/johnquangdev/voice-transcriber/internal/adapter/dto/transcription"
)

// DefaultFilename is used for uploads when the caller gives no name
const DefaultFilename = "recording.webm"

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, strings.Join(e.Errors, "; "))
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client is a thin JSON client for the /v1 API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL (e.g. http://localhost:8080). A nil
// httpClient gets a two minute timeout, long enough for transcription.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// CreateTranscription stores a record with content (which may be empty)
func (c *Client) CreateTranscription(ctx context.Context, content string) (*transcription.TranscriptionResponse, error) {
	body, err := json.Marshal(transcription.CreateTranscriptionRequest{
		Transcription: &transcription.TranscriptionParams{Content: content},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var out transcription.TranscriptionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/transcriptions", "application/json", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAudio sends audio as the multipart field "audio"
func (c *Client) UploadAudio(ctx context.Context, id, filename string, audio io.Reader) (*transcription.TranscriptionResponse, error) {
	if filename == "" {
		filename = DefaultFilename
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	var out transcription.TranscriptionResponse
	path := "/v1/transcriptions/" + url.PathEscape(id) + "/upload_audio"
	if err := c.do(ctx, http.MethodPost, path, w.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTranscription fetches the full record
func (c *Client) GetTranscription(ctx context.Context, id string) (*transcription.TranscriptionDetailResponse, error) {
	var out transcription.TranscriptionDetailResponse
	if err := c.do(ctx, http.MethodGet, "/v1/transcriptions/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSummary fetches the summary, which the server generates on first request
func (c *Client) GetSummary(ctx context.Context, id string) (*transcription.SummaryResponse, error) {
	var out transcription.SummaryResponse
	if err := c.do(ctx, http.MethodGet, "/v1/transcriptions/"+url.PathEscape(id)+"/summary", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTranscriptions returns the newest records first; limit 0 uses the server default
func (c *Client) ListTranscriptions(ctx context.Context, limit int) ([]*transcription.TranscriptionDetailResponse, error) {
	path := "/v1/transcriptions"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var out transcription.TranscriptionListResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Transcriptions, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody transcription.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil {
			if errBody.Error != "" {
				apiErr.Message = errBody.Error
			}
			apiErr.Errors = errBody.Errors
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
