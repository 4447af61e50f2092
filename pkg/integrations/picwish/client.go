package picwish

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eleitos/pkg/integrations"
	"github.com/matzehuels/eleitos/pkg/observability"
)

const (
	DefaultBaseURL      = "https://techhk.aoscdn.com"
	DefaultPollAttempts = 30
	DefaultPollInterval = time.Second

	apiKeyHeader = "X-API-KEY"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client submits and polls image tasks. Requests are never cached.
type Client struct {
	*integrations.Client
	baseURL  string
	attempts int
	interval time.Duration
	sleep    SleepFunc
	logger   *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithPollAttempts sets how many polls a stage gets. Values below 1 are ignored.
func WithPollAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithPollInterval sets the wait between polls.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithSleep replaces the function used to wait between polls.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) { c.sleep = fn }
}

// WithLogger sets the logger for stage transitions.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		Client:   integrations.NewClient(nil, "picwish:", 0, map[string]string{apiKeyHeader: apiKey}),
		baseURL:  DefaultBaseURL,
		attempts: DefaultPollAttempts,
		interval: DefaultPollInterval,
		sleep:    sleepContext,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type submitData struct {
	TaskID string `json:"task_id"`
}

type pollData struct {
	State       *int   `json:"state"`
	StateDetail string `json:"state_detail"`
	Image       string `json:"image"`
}

// Submit posts sourceURL to stage and returns the queued job.
//
// Returns [ErrUnauthorized] on HTTP 401, which invalidates every later call,
// and [ErrSubmit] when the request fails or the provider answers without a
// task id.
func (c *Client) Submit(ctx context.Context, stage Stage, sourceURL string) (job *Job, err error) {
	defer func() {
		var id string
		if job != nil {
			id = job.TaskID
		}
		observability.Jobs().OnSubmit(ctx, string(stage), id, err)
	}()

	form := url.Values{"sync": {"0"}, "image_url": {sourceURL}}
	resp, err := c.PostForm(ctx, c.stageURL(stage), form)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSubmit, stage, err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%s: %w", stage, ErrUnauthorized)
	}

	var env envelope
	if err := resp.DecodeJSON(&env); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSubmit, stage, err)
	}
	if env.Status != http.StatusOK || len(env.Data) == 0 {
		return nil, fmt.Errorf("%w: %s: provider status %d: %s", ErrSubmit, stage, env.Status, env.Message)
	}
	var data submitData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.TaskID == "" {
		return nil, fmt.Errorf("%w: %s: no task id in response", ErrSubmit, stage)
	}

	c.logger.Info("task submitted", "stage", stage, "task", data.TaskID)
	return &Job{Stage: stage, SourceURL: sourceURL, TaskID: data.TaskID, State: StateQueued}, nil
}

// Poll waits for job to finish, polling up to the configured attempts with
// the configured interval between polls. It never sleeps before the first
// poll, so it sleeps at most attempts-1 times.
//
// On success job.State is StateComplete and job.ResultURL is set. A negative
// provider state or a failed poll request returns [ErrJobFailed]; running out
// of attempts returns [ErrTimeout]. A 401 poll also wraps [ErrUnauthorized].
func (c *Client) Poll(ctx context.Context, job *Job) (err error) {
	start := time.Now()
	defer func() {
		observability.Jobs().OnComplete(ctx, string(job.Stage), job.TaskID, time.Since(start), err)
	}()

	pollURL := c.stageURL(job.Stage) + "/" + job.TaskID
	for i := 0; i < c.attempts; i++ {
		if i > 0 {
			if err := c.sleep(ctx, c.interval); err != nil {
				return err
			}
		}
		job.Attempts++

		state, result, err := c.pollOnce(ctx, pollURL)
		if err != nil {
			job.State = StateFailed
			c.logger.Error("poll failed", "stage", job.Stage, "task", job.TaskID, "err", err)
			return fmt.Errorf("%w: %s %s: %w", ErrJobFailed, job.Stage, job.TaskID, err)
		}
		job.State = state
		observability.Jobs().OnPoll(ctx, string(job.Stage), job.TaskID, job.Attempts, state.String())
		c.logger.Debug("poll", "stage", job.Stage, "task", job.TaskID, "attempt", job.Attempts, "state", state)

		switch state {
		case StateComplete:
			job.ResultURL = result
			c.logger.Info("task complete", "stage", job.Stage, "task", job.TaskID, "attempts", job.Attempts)
			return nil
		case StateFailed:
			c.logger.Error("task failed", "stage", job.Stage, "task", job.TaskID)
			return fmt.Errorf("%w: %s %s", ErrJobFailed, job.Stage, job.TaskID)
		}
	}

	c.logger.Error("task timed out", "stage", job.Stage, "task", job.TaskID, "attempts", job.Attempts)
	return fmt.Errorf("%w: %s %s after %d attempts", ErrTimeout, job.Stage, job.TaskID, job.Attempts)
}

// pollOnce performs one poll. A 4xx response fails the poll, with 401 reported
// as [ErrUnauthorized]. A response whose envelope status is not 200 is
// reported as in progress.
func (c *Client) pollOnce(ctx context.Context, pollURL string) (State, string, error) {
	resp, err := c.GetRaw(ctx, pollURL)
	if err != nil {
		return StateFailed, "", err
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return StateFailed, "", ErrUnauthorized
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return StateFailed, "", fmt.Errorf("poll status %d", resp.StatusCode)
	}
	var env envelope
	if err := resp.DecodeJSON(&env); err != nil {
		return StateFailed, "", err
	}
	if env.Status != http.StatusOK || len(env.Data) == 0 {
		return StateInProgress, "", nil
	}
	var data pollData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return StateFailed, "", fmt.Errorf("%w: %v", integrations.ErrMalformed, err)
	}
	if data.State == nil {
		return StateInProgress, "", nil
	}
	state := StateFromProvider(*data.State, data.Image != "")
	return state, data.Image, nil
}

// Process submits sourceURL to stage and waits for the result.
// The returned job is non-nil whenever submission succeeded.
func (c *Client) Process(ctx context.Context, stage Stage, sourceURL string) (*Job, error) {
	job, err := c.Submit(ctx, stage, sourceURL)
	if err != nil {
		return nil, err
	}
	if err := c.Poll(ctx, job); err != nil {
		return job, err
	}
	return job, nil
}

func (c *Client) stageURL(stage Stage) string {
	return c.baseURL + "/api/tasks/visual/" + string(stage)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
