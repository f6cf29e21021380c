package ai

import (
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ucerrors "github.com/johnquangdev/voice-transcriber/internal/usecase/errors"
)

func TestAudioPayload_IsEmpty(t *testing.T) {
	assert.True(t, AudioPayload{}.IsEmpty())
	assert.True(t, FromDataURL("   ").IsEmpty())
	assert.False(t, FromDataURL("data:audio/webm;base64,AAAA").IsEmpty())
	assert.False(t, FromReader(strings.NewReader(""), "").IsEmpty())
}

func TestAudioPayload_Filename(t *testing.T) {
	assert.Equal(t, DefaultAudioFilename, AudioPayload{}.filename())
	assert.Equal(t, "clip.webm", FromReader(strings.NewReader("x"), "clip.webm").filename())
}

func TestDecodeDataURL(t *testing.T) {
	audio := []byte{0x1a, 0x45, 0xdf, 0xa3, 0x00, 0xff}
	encoded := base64.StdEncoding.EncodeToString(audio)

	tests := []struct {
		name    string
		input   string
		want    []byte
		openErr bool
		readErr bool
	}{
		{name: "webm data url", input: "data:audio/webm;base64," + encoded, want: audio},
		{name: "codec parameter", input: "data:audio/webm;codecs=opus;base64," + encoded, want: audio},
		{name: "surrounding whitespace", input: "  data:audio/webm;base64," + encoded + "\n", want: audio},
		{name: "no comma", input: encoded, openErr: true},
		{name: "no base64 marker", input: "data:audio/webm," + encoded, openErr: true},
		{name: "invalid base64", input: "data:audio/webm;base64,!!!not-base64", readErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := FromDataURL(tt.input).open()
			if tt.openErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ucerrors.ErrAudioDecode)
				return
			}
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			if tt.readErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
