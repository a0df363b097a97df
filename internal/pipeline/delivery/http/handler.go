package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voice-task-automation/internal/model"
	"voice-task-automation/internal/pipeline"
	pkgResponse "voice-task-automation/pkg/response"
)

type transcriptRequest struct {
	Transcript string `json:"transcript" binding:"required"`
	Source     string `json:"source"`
}

type transcriptResponse struct {
	Name         string `json:"name"`
	SubmittedURL string `json:"submitted_url,omitempty"`
	CalendarLink string `json:"calendar_link,omitempty"`
}

// HandleTranscript is the Gin handler for POST /webhook/transcript.
// The parse-and-submit path is fast (no model inference), so it runs
// synchronously and the caller gets the real outcome.
func (h *handler) HandleTranscript(c *gin.Context) {
	ctx := c.Request.Context()
	requestID := uuid.NewString()

	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "transcript handler: bad request %s: %v", requestID, err)
		pkgResponse.Error(c, err)
		return
	}

	source := req.Source
	if source == "" {
		source = "http"
	}
	sc := model.Scope{UserID: requestID, Source: source}

	out, err := h.uc.ProcessTranscript(ctx, sc, pipeline.TranscriptInput{Transcript: req.Transcript})
	switch {
	case err == nil:
		pkgResponse.OK(c, transcriptResponse{
			Name:         out.Task.Name,
			SubmittedURL: out.SubmittedURL,
			CalendarLink: out.CalendarLink,
		})
	case errors.Is(err, pipeline.ErrDuplicateSuppressed):
		// Not a failure: the same capture arrived twice. Acknowledge and skip.
		h.l.Infof(ctx, "transcript handler: duplicate suppressed %s: %q", requestID, out.Task.Name)
		pkgResponse.OK(c, gin.H{"status": "skipped", "reason": "duplicate", "name": out.Task.Name})
	case errors.Is(err, pipeline.ErrEmptyTranscript):
		pkgResponse.Error(c, err)
	case errors.Is(err, pipeline.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, pkgResponse.Resp{
			ErrorCode: http.StatusTooManyRequests,
			Message:   err.Error(),
		})
	default:
		h.l.Errorf(ctx, "transcript handler: processing failed %s: %v", requestID, err)
		pkgResponse.InternalError(c)
	}
}
