package ai

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	ucerrors "github.com/johnquangdev/voice-transcriber/internal/usecase/errors"
)

// DefaultAudioFilename is sent to the speech-to-text provider when the client gave none
const DefaultAudioFilename = "recording.webm"

// AudioPayload is the audio carried by an upload request: either a binary
// stream (multipart file or raw body) or a base64 data URL string.
type AudioPayload struct {
	Reader   io.Reader
	DataURL  string
	Filename string
}

// FromReader wraps a binary stream
func FromReader(r io.Reader, filename string) AudioPayload {
	return AudioPayload{Reader: r, Filename: filename}
}

// FromDataURL wraps a "data:audio/webm;base64,...." string
func FromDataURL(s string) AudioPayload {
	return AudioPayload{DataURL: s}
}

// IsEmpty reports whether no audio was supplied at all
func (p AudioPayload) IsEmpty() bool {
	return p.Reader == nil && strings.TrimSpace(p.DataURL) == ""
}

func (p AudioPayload) filename() string {
	if p.Filename == "" {
		return DefaultAudioFilename
	}
	return p.Filename
}

// open returns a reader over the raw audio bytes
func (p AudioPayload) open() (io.Reader, error) {
	if p.Reader != nil {
		return p.Reader, nil
	}
	return decodeDataURL(p.DataURL)
}

// decodeDataURL accepts "data:<mime>;base64,<data>" and returns a streaming decoder.
// Invalid base64 surfaces as a read error.
func decodeDataURL(s string) (io.Reader, error) {
	s = strings.TrimSpace(s)
	header, data, ok := strings.Cut(s, ",")
	if !ok || !strings.Contains(header, ";base64") {
		return nil, fmt.Errorf("%w: expected a base64 data URL", ucerrors.ErrAudioDecode)
	}
	return base64.NewDecoder(base64.StdEncoding, strings.NewReader(data)), nil
}
