package omnifocus

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"voice-task-automation/internal/model"
)

// TimeFormat is how due/defer timestamps are encoded in the URL.
// OmniFocus accepts "YYYY-MM-DD HH:MM".
const TimeFormat = "2006-01-02 15:04"

// Opener hands a URL to the OS URL handler. The URL scheme is not an HTTP
// endpoint; delivery means asking the OS to open it.
type Opener interface {
	Open(ctx context.Context, rawURL string) error
}

// ExecOpener opens URLs with an external command ("open" on macOS).
type ExecOpener struct {
	Command string
}

// Open implements Opener.
func (o ExecOpener) Open(ctx context.Context, rawURL string) error {
	cmd := o.Command
	if cmd == "" {
		cmd = defaultOpenCommand()
	}
	if err := exec.CommandContext(ctx, cmd, rawURL).Run(); err != nil {
		return fmt.Errorf("failed to open url with %q: %w", cmd, err)
	}
	return nil
}

func defaultOpenCommand() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// Client submits tasks to OmniFocus via its URL scheme.
type Client struct {
	scheme   string
	autosave bool
	opener   Opener
}

// NewClient creates a new OmniFocus URL-scheme client.
// scheme is the URL scheme name, normally "omnifocus".
func NewClient(scheme string, autosave bool) *Client {
	if scheme == "" {
		scheme = "omnifocus"
	}
	return &Client{
		scheme:   scheme,
		autosave: autosave,
		opener:   ExecOpener{},
	}
}

// SetOpener overrides the URL opener for testing purposes.
func (c *Client) SetOpener(o Opener) {
	c.opener = o
}

// Submit encodes the task as an /add URL and hands it to the opener.
// It returns the URL that was delivered.
func (c *Client) Submit(ctx context.Context, task model.Task) (string, error) {
	rawURL := c.BuildURL(task)
	if err := c.opener.Open(ctx, rawURL); err != nil {
		return "", fmt.Errorf("failed to submit task %q: %w", task.Name, err)
	}
	return rawURL, nil
}

// BuildURL encodes the task as <scheme>:///add?... with percent-encoded
// values. Absent attributes are omitted entirely.
func (c *Client) BuildURL(task model.Task) string {
	params := url.Values{}
	params.Set("name", task.Name)
	if task.Project != "" {
		params.Set("project", task.Project)
	}
	if task.Due != nil {
		params.Set("due", task.Due.Format(TimeFormat))
	}
	if task.Defer != nil {
		params.Set("defer", task.Defer.Format(TimeFormat))
	}
	if task.Flag {
		params.Set("flag", "true")
	}
	if len(task.Tags) > 0 {
		params.Set("tags", strings.Join(task.Tags, ","))
	}
	if task.Note != "" {
		params.Set("note", task.Note)
	}
	if c.autosave {
		params.Set("autosave", "true")
	}

	// url.Values encodes spaces as "+", which URL-scheme handlers take
	// literally; they need %20.
	encoded := strings.ReplaceAll(params.Encode(), "+", "%20")
	return fmt.Sprintf("%s:///add?%s", c.scheme, encoded)
}

// FormatTime formats a timestamp the way BuildURL does, for callers that
// display what was submitted.
func FormatTime(t time.Time) string {
	return t.Format(TimeFormat)
}
