package stt

import "context"

// Transcriber converts an audio recording into plain text. The speech model
// is a black box: audio bytes in, transcript out.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
