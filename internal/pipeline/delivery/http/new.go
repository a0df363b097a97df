package http

import (
	"github.com/gin-gonic/gin"

	"voice-task-automation/internal/pipeline"
	pkgLog "voice-task-automation/pkg/log"
)

// Handler is the interface for the transcript ingest handler.
type Handler interface {
	HandleTranscript(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc pipeline.UseCase
}

// New creates a new transcript ingest handler.
func New(l pkgLog.Logger, uc pipeline.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
