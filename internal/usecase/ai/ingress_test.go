package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-transcriber/internal/adapter/repository"
	"github.com/johnquangdev/voice-transcriber/internal/domain/entities"
	ucerrors "github.com/johnquangdev/voice-transcriber/internal/usecase/errors"
	"github.com/johnquangdev/voice-transcriber/pkg/ai/aitest"
)

type fakeArchiver struct {
	mu      sync.Mutex
	err     error
	objects map[string][]byte
}

func (f *fakeArchiver) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	if f.err != nil {
		return f.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[objectName] = data
	return nil
}

type ingressFixture struct {
	repo    *repository.MemoryTranscriptionRepository
	stt     *aitest.FakeSpeechToText
	chat    *aitest.FakeChatCompleter
	tempDir string
	svc     IngressService
}

func newIngressFixture(t *testing.T, archiver AudioArchiver) *ingressFixture {
	t.Helper()
	f := &ingressFixture{
		repo:    repository.NewMemoryTranscriptionRepository(),
		stt:     &aitest.FakeSpeechToText{Text: "hello from the server"},
		chat:    &aitest.FakeChatCompleter{Reply: "A greeting."},
		tempDir: t.TempDir(),
	}
	enrichment := NewEnrichmentService(f.repo, f.chat, testEnrichmentConfig, zap.NewNop())
	f.svc = NewIngressService(f.repo, f.stt, enrichment, archiver, IngressConfig{TempDir: f.tempDir}, zap.NewNop())
	return f
}

func (f *ingressFixture) assertTempDirEmpty(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary audio files must be removed")
}

func TestIngest_MultipartOrRawStream(t *testing.T) {
	f := newIngressFixture(t, nil)
	tr := seed(t, f.repo, "local transcript")

	var filesDuringCall int
	f.stt.OnCall = func() {
		entries, _ := os.ReadDir(f.tempDir)
		filesDuringCall = len(entries)
	}

	out, err := f.svc.Ingest(context.Background(), tr.ID, FromReader(bytes.NewReader([]byte("webm-bytes")), "recording.webm"))
	require.NoError(t, err)

	assert.Equal(t, "hello from the server", out.Content)
	assert.Equal(t, "A greeting.", out.Summary)
	assert.Equal(t, entities.TranscriptionStatusCompleted, out.Status)
	assert.Empty(t, out.AudioKey)

	require.Equal(t, 1, f.stt.CallCount())
	assert.Equal(t, []byte("webm-bytes"), f.stt.Audio[0])
	assert.Equal(t, "recording.webm", f.stt.Filenames[0])
	assert.Equal(t, "Please summarize the following transcription:\n\nhello from the server", f.chat.LastRequest().Messages[1].Content)

	assert.Equal(t, 1, filesDuringCall)
	f.assertTempDirEmpty(t)
}

func TestIngest_DataURL(t *testing.T) {
	f := newIngressFixture(t, nil)
	tr := seed(t, f.repo, "")

	dataURL := "data:audio/webm;base64," + base64.StdEncoding.EncodeToString([]byte("decoded-audio"))
	out, err := f.svc.Ingest(context.Background(), tr.ID, FromDataURL(dataURL))
	require.NoError(t, err)

	assert.Equal(t, []byte("decoded-audio"), f.stt.Audio[0])
	assert.Equal(t, DefaultAudioFilename, f.stt.Filenames[0])
	assert.Equal(t, entities.TranscriptionStatusCompleted, out.Status)
	f.assertTempDirEmpty(t)
}

func TestIngest_NotFound(t *testing.T) {
	f := newIngressFixture(t, nil)

	_, err := f.svc.Ingest(context.Background(), uuid.New(), FromReader(strings.NewReader("x"), ""))
	assert.ErrorIs(t, err, entities.ErrTranscriptionNotFound)
	assert.Equal(t, 0, f.stt.CallCount())
}

func TestIngest_EmptyAudio(t *testing.T) {
	f := newIngressFixture(t, nil)
	tr := seed(t, f.repo, "")

	for name, payload := range map[string]AudioPayload{
		"nothing":      {},
		"blank string": FromDataURL("  "),
		"empty stream": FromReader(strings.NewReader(""), "recording.webm"),
		"empty base64": FromDataURL("data:audio/webm;base64,"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Ingest(context.Background(), tr.ID, payload)
			assert.ErrorIs(t, err, ucerrors.ErrEmptyAudio)
		})
	}

	assert.Equal(t, 0, f.stt.CallCount())
	assert.Equal(t, 0, f.chat.CallCount())
	f.assertTempDirEmpty(t)
}

func TestIngest_DecodeError(t *testing.T) {
	f := newIngressFixture(t, nil)
	tr := seed(t, f.repo, "keep me")

	_, err := f.svc.Ingest(context.Background(), tr.ID, FromDataURL("data:audio/webm;base64,@@@@"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ucerrors.ErrAudioDecode)
	assert.Equal(t, 0, f.stt.CallCount())

	stored, _ := f.repo.FindByID(context.Background(), tr.ID)
	assert.Equal(t, "keep me", stored.Content)
	assert.Equal(t, entities.TranscriptionStatusProcessing, stored.Status)
	f.assertTempDirEmpty(t)
}

func TestIngest_TranscriptionFailureNotPersisted(t *testing.T) {
	f := newIngressFixture(t, nil)
	f.stt.Err = errors.New("stt provider returned 500")
	tr := seed(t, f.repo, "local")

	_, err := f.svc.Ingest(context.Background(), tr.ID, FromReader(strings.NewReader("audio"), ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ucerrors.ErrTranscriptionFailed)
	assert.Contains(t, err.Error(), "stt provider returned 500")

	stored, _ := f.repo.FindByID(context.Background(), tr.ID)
	assert.Equal(t, "local", stored.Content)
	assert.Equal(t, entities.TranscriptionStatusProcessing, stored.Status)
	assert.Empty(t, stored.LastError())
	assert.Equal(t, 0, f.chat.CallCount())
	f.assertTempDirEmpty(t)
}

func TestIngest_SummaryFailurePropagated(t *testing.T) {
	f := newIngressFixture(t, nil)
	f.chat.Err = errors.New("llm down")
	tr := seed(t, f.repo, "")

	out, err := f.svc.Ingest(context.Background(), tr.ID, FromReader(strings.NewReader("audio"), ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ucerrors.ErrSummaryFailed)
	require.NotNil(t, out)
	assert.Equal(t, "hello from the server", out.Content)
	assert.Equal(t, entities.TranscriptionStatusFailed, out.Status)
	assert.Equal(t, "llm down", out.LastError())
	f.assertTempDirEmpty(t)
}

func TestIngest_ArchivesAudio(t *testing.T) {
	archiver := &fakeArchiver{}
	f := newIngressFixture(t, archiver)
	f.svc.(*ingressService).now = func() time.Time { return time.Unix(1700000000, 0) }
	tr := seed(t, f.repo, "")

	out, err := f.svc.Ingest(context.Background(), tr.ID, FromReader(strings.NewReader("archived-bytes"), ""))
	require.NoError(t, err)

	key := entities.AudioObjectKey(tr.ID, time.Unix(1700000000, 0))
	assert.Equal(t, key, out.AudioKey)
	assert.Equal(t, []byte("archived-bytes"), archiver.objects[key])
	assert.Equal(t, []byte("archived-bytes"), f.stt.Audio[0], "provider must get the full file after archiving")
}

func TestIngest_ArchiveFailureIgnored(t *testing.T) {
	f := newIngressFixture(t, &fakeArchiver{err: errors.New("minio unreachable")})
	tr := seed(t, f.repo, "")

	out, err := f.svc.Ingest(context.Background(), tr.ID, FromReader(strings.NewReader("audio"), ""))
	require.NoError(t, err)
	assert.Empty(t, out.AudioKey)
	assert.Equal(t, entities.TranscriptionStatusCompleted, out.Status)
}
