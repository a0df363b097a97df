package stt_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/openai/openai-go/v3/option"

	"voice-task-automation/pkg/stt"
)

func TestWhisperCPPTranscribe(t *testing.T) {
	dir := t.TempDir()

	// Stand-in binary that prints a transcript like whisper.cpp does.
	script := filepath.Join(dir, "whisper")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho ' Buy groceries hashtag flag '\n"), 0o755); err != nil {
		t.Fatalf("failed to write stub: %v", err)
	}
	audio := filepath.Join(dir, "recording.m4a")
	if err := os.WriteFile(audio, []byte("fake audio"), 0o644); err != nil {
		t.Fatalf("failed to write audio: %v", err)
	}

	s := stt.NewWhisperCPP(script, filepath.Join(dir, "model.bin"))
	got, err := s.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Buy groceries hashtag flag" {
		t.Errorf("transcript = %q", got)
	}
}

func TestWhisperCPPTranscribeFailure(t *testing.T) {
	s := stt.NewWhisperCPP("/nonexistent/whisper", "/nonexistent/model.bin")
	if _, err := s.Transcribe(context.Background(), "missing.m4a"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestOpenAITranscribe(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": " Buy milk hashtag due tomorrow "}`))
	}))
	defer ts.Close()

	s := stt.NewOpenAI("test-key", "", option.WithBaseURL(ts.URL))

	audio := filepath.Join(t.TempDir(), "recording.m4a")
	if err := os.WriteFile(audio, []byte("fake audio"), 0o644); err != nil {
		t.Fatalf("failed to write audio: %v", err)
	}

	got, err := s.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Buy milk hashtag due tomorrow" {
		t.Errorf("transcript = %q", got)
	}
}
