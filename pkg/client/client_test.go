package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/voice-transcriber/internal/adapter/dto/transcription"
)

const testID = "0b6f4c3e-6a43-4c6b-9d0e-3f2b1a7d9c11"

// fakeAPI answers create and upload with canned responses and records what it saw
type fakeAPI struct {
	mu           sync.Mutex
	createStatus int
	uploadStatus int
	gotContent   string
	gotAudio     string
	gotFilename  string
	requests     int
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/transcriptions", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.mu.Unlock()

		if r.Method == http.MethodGet {
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			writeJSON(w, http.StatusOK, transcription.TranscriptionListResponse{
				Transcriptions: []*transcription.TranscriptionDetailResponse{{ID: testID, Status: "processing"}},
				Count:          1,
			})
			return
		}

		var req transcription.CreateTranscriptionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.gotContent = req.ContentValue()
		f.mu.Unlock()

		if f.createStatus != 0 {
			writeJSON(w, f.createStatus, transcription.ErrorResponse{Error: "create failed"})
			return
		}
		writeJSON(w, http.StatusOK, transcription.TranscriptionResponse{
			ID: testID, Content: req.ContentValue(), Summary: "local summary", Status: "completed",
		})
	})
	mux.HandleFunc("/v1/transcriptions/"+testID+"/upload_audio", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.mu.Unlock()

		file, header, err := r.FormFile("audio")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)

		f.mu.Lock()
		f.gotAudio = string(data)
		f.gotFilename = header.Filename
		f.mu.Unlock()

		if f.uploadStatus != 0 {
			writeJSON(w, f.uploadStatus, transcription.ErrorResponse{Error: "whisper unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, transcription.TranscriptionResponse{
			ID: testID, Content: "server text", Summary: "server summary", Status: "completed",
		})
	})
	mux.HandleFunc("/v1/transcriptions/"+testID+"/summary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, transcription.SummaryResponse{ID: testID, Summary: "s", Status: "completed"})
	})
	mux.HandleFunc("/v1/transcriptions/missing", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, transcription.ErrorResponse{Error: "Transcription not found"})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", nil)
}

func TestCapture_Success(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	res, err := c.Capture(context.Background(), "hello", "take1.webm", strings.NewReader("AUDIO"))
	require.NoError(t, err)

	assert.Equal(t, testID, res.ID)
	assert.Equal(t, "server text", res.Content)
	assert.Equal(t, "server summary", res.Summary)
	assert.False(t, res.LocalOnly)
	assert.NoError(t, res.UploadErr)

	assert.Equal(t, "hello", api.gotContent)
	assert.Equal(t, "AUDIO", api.gotAudio)
	assert.Equal(t, "take1.webm", api.gotFilename)
	assert.Equal(t, 2, api.requests)
}

func TestCapture_UploadFailureFallsBackToLocalTranscript(t *testing.T) {
	api := &fakeAPI{uploadStatus: http.StatusInternalServerError}
	c := newTestClient(t, api)

	res, err := c.Capture(context.Background(), "local words", "", strings.NewReader("AUDIO"))
	require.NoError(t, err)

	assert.Equal(t, testID, res.ID)
	assert.Equal(t, "local words", res.Content)
	assert.Empty(t, res.Summary)
	assert.Equal(t, DefaultFilename, api.gotFilename)

	var apiErr *APIError
	require.ErrorAs(t, res.UploadErr, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "whisper unavailable", apiErr.Message)
	assert.Equal(t, 2, api.requests)
}

func TestCapture_CreateFailure(t *testing.T) {
	t.Run("with local transcript", func(t *testing.T) {
		api := &fakeAPI{createStatus: http.StatusInternalServerError}
		c := newTestClient(t, api)

		res, err := c.Capture(context.Background(), "only here", "", strings.NewReader("AUDIO"))
		require.NoError(t, err)
		assert.True(t, res.LocalOnly)
		assert.Equal(t, "only here", res.Content)
		assert.Empty(t, res.ID)
		assert.Equal(t, 1, api.requests)
	})

	t.Run("without local transcript", func(t *testing.T) {
		api := &fakeAPI{createStatus: http.StatusInternalServerError}
		c := newTestClient(t, api)

		_, err := c.Capture(context.Background(), "  ", "", strings.NewReader("AUDIO"))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "create failed", apiErr.Message)
	})
}

func TestCapture_NoAudio(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	res, err := c.Capture(context.Background(), "typed", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "typed", res.Content)
	assert.Equal(t, 1, api.requests)
}

func TestClient_ReadEndpoints(t *testing.T) {
	c := newTestClient(t, &fakeAPI{})
	ctx := context.Background()

	list, err := c.ListTranscriptions(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, testID, list[0].ID)

	summary, err := c.GetSummary(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, "s", summary.Summary)

	_, err = c.GetTranscription(ctx, "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "api error (status 404): Transcription not found", apiErr.Error())
}

func TestAPIError_ValidationMessages(t *testing.T) {
	err := &APIError{StatusCode: 422, Errors: []string{"Content is too long", "Status is invalid"}}
	assert.Equal(t, "api error (status 422): Content is too long; Status is invalid", err.Error())
}
