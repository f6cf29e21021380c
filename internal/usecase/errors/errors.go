package errors

import "errors"

// Audio ingest errors
var (
	ErrEmptyAudio          = errors.New("no audio data provided")
	ErrAudioDecode         = errors.New("invalid audio payload")
	ErrTranscriptionFailed = errors.New("audio transcription failed")
	ErrAudioNotArchived    = errors.New("no archived audio for this transcription")
	ErrAudioStorage        = errors.New("audio storage failed")
)

// Enrichment errors
var (
	ErrSummaryFailed = errors.New("summary generation failed")
)
