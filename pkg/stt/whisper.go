package stt

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// WhisperCPP transcribes locally via the whisper.cpp command line.
type WhisperCPP struct {
	ExecPath  string
	ModelPath string
}

// NewWhisperCPP creates a whisper.cpp transcriber.
func NewWhisperCPP(execPath, modelPath string) *WhisperCPP {
	return &WhisperCPP{ExecPath: execPath, ModelPath: modelPath}
}

// Transcribe runs whisper.cpp and returns the recognized text.
func (s *WhisperCPP) Transcribe(ctx context.Context, audioPath string) (string, error) {
	cmd := exec.CommandContext(ctx, s.ExecPath,
		"-m", s.ModelPath,
		"-f", audioPath,
		"--no-timestamps",
	)

	var out bytes.Buffer
	var errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("whisper.cpp failed: %w: %s", err, strings.TrimSpace(errOut.String()))
	}

	return strings.TrimSpace(out.String()), nil
}
