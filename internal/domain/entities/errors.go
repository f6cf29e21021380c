package entities

import "errors"

// Domain errors
var (
	ErrTranscriptionNotFound = errors.New("transcription not found")
	ErrInvalidTranscription  = errors.New("invalid transcription")
)
