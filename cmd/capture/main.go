package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/voice-transcriber/pkg/client"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "API base URL")
	audioPath := flag.String("audio", "", "recording to upload (webm); empty creates a text-only record")
	transcript := flag.String("transcript", "", "locally recognised transcript")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall request timeout")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var (
		audio    io.Reader
		filename string
	)
	if *audioPath != "" {
		f, err := os.Open(*audioPath)
		if err != nil {
			logger.Fatal("failed to open recording", zap.String("path", *audioPath), zap.Error(err))
		}
		defer f.Close()
		audio = f
		filename = filepath.Base(*audioPath)
	}

	c := client.New(*server, nil)
	res, err := c.Capture(ctx, *transcript, filename, audio)
	if err != nil {
		logger.Fatal("❌ Capture failed", zap.Error(err))
	}

	switch {
	case res.LocalOnly:
		logger.Warn("⚠️  Server unavailable, keeping local transcript only")
	case res.UploadErr != nil:
		logger.Warn("⚠️  Audio upload failed, using local transcript",
			zap.String("transcription_id", res.ID),
			zap.Error(res.UploadErr),
		)
	default:
		logger.Info("✅ Recording stored", zap.String("transcription_id", res.ID), zap.String("status", res.Status))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.Fatal("failed to write result", zap.Error(err))
	}
}
