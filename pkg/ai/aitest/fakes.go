// Package aitest provides in-memory doubles for the ai provider interfaces.
package aitest

import (
	"context"
	"io"
	"sync"

	"github.com/johnquangdev/voice-transcriber/pkg/ai"
)

// FakeSpeechToText records every call and answers with Text or Err
type FakeSpeechToText struct {
	mu        sync.Mutex
	Text      string
	Err       error
	Calls     int
	Filenames []string
	Audio     [][]byte
	// OnCall runs inside Transcribe, before the result is returned
	OnCall func()
}

var _ ai.SpeechToText = (*FakeSpeechToText)(nil)

// Transcribe implements ai.SpeechToText
func (f *FakeSpeechToText) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(audio)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	f.Calls++
	f.Filenames = append(f.Filenames, filename)
	f.Audio = append(f.Audio, data)
	onCall := f.OnCall
	f.mu.Unlock()

	if onCall != nil {
		onCall()
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}

// CallCount returns the number of Transcribe calls so far
func (f *FakeSpeechToText) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}

// FakeChatCompleter records every request and answers with Reply or Err
type FakeChatCompleter struct {
	mu       sync.Mutex
	Reply    string
	Err      error
	Requests []ai.ChatRequest
}

var _ ai.ChatCompleter = (*FakeChatCompleter)(nil)

// Complete implements ai.ChatCompleter
func (f *FakeChatCompleter) Complete(ctx context.Context, req ai.ChatRequest) (string, error) {
	f.mu.Lock()
	f.Requests = append(f.Requests, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}

// CallCount returns the number of Complete calls so far
func (f *FakeChatCompleter) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}

// LastRequest returns the most recent request, or the zero value
func (f *FakeChatCompleter) LastRequest() ai.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Requests) == 0 {
		return ai.ChatRequest{}
	}
	return f.Requests[len(f.Requests)-1]
}
