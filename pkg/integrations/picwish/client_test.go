package picwish

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
)

// fakeProvider serves scripted poll responses per stage.
type fakeProvider struct {
	mu       sync.Mutex
	submitFn func(w http.ResponseWriter, r *http.Request)
	polls    map[Stage][]map[string]any
	polled   map[Stage]int
	keys     []string
}

func (f *fakeProvider) handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/tasks/visual/{stage}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.keys = append(f.keys, r.Header.Get(apiKeyHeader))
		f.mu.Unlock()
		if f.submitFn != nil {
			f.submitFn(w, r)
			return
		}
		if r.FormValue("sync") != "0" || r.FormValue("image_url") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{"status": 200, "data": map[string]any{"task_id": "task-" + chi.URLParam(r, "stage")}})
	})
	r.Get("/api/tasks/visual/{stage}/{task}", func(w http.ResponseWriter, r *http.Request) {
		stage := Stage(chi.URLParam(r, "stage"))
		f.mu.Lock()
		defer f.mu.Unlock()
		script := f.polls[stage]
		i := f.polled[stage]
		f.polled[stage]++
		if i >= len(script) {
			i = len(script) - 1
		}
		writeJSON(w, script[i])
	})
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func state(s int, image string) map[string]any {
	data := map[string]any{"state": s}
	if image != "" {
		data["image"] = image
	}
	return map[string]any{"status": 200, "data": data}
}

func newFake(polls map[Stage][]map[string]any) *fakeProvider {
	return &fakeProvider{polls: polls, polled: map[Stage]int{}}
}

func newTestClient(t *testing.T, f *fakeProvider, attempts int) (*Client, *int) {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	sleeps := new(int)
	c := NewClient("test-key",
		WithBaseURL(srv.URL),
		WithPollAttempts(attempts),
		WithSleep(func(context.Context, time.Duration) error { *sleeps++; return nil }),
		WithLogger(log.New(io.Discard)),
	)
	return c, sleeps
}

func TestProcessImmediateSuccess(t *testing.T) {
	f := newFake(map[Stage][]map[string]any{
		StageScale: {state(1, "https://cdn.example/scaled.jpg")},
	})
	c, sleeps := newTestClient(t, f, 30)

	job, err := c.Process(context.Background(), StageScale, "https://img.example/a.jpg")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if job.ResultURL != "https://cdn.example/scaled.jpg" {
		t.Errorf("ResultURL = %q", job.ResultURL)
	}
	if job.State != StateComplete || job.Attempts != 1 {
		t.Errorf("State = %v, Attempts = %d", job.State, job.Attempts)
	}
	if *sleeps != 0 {
		t.Errorf("slept %d times before first poll", *sleeps)
	}
	if f.keys[0] != "test-key" {
		t.Errorf("api key header = %q", f.keys[0])
	}
}

func TestPollSleepsBetweenAttempts(t *testing.T) {
	f := newFake(map[Stage][]map[string]any{
		StageScale: {state(0, ""), state(2, ""), state(4, ""), state(1, "https://cdn.example/x.jpg")},
	})
	c, sleeps := newTestClient(t, f, 30)

	job, err := c.Process(context.Background(), StageScale, "https://img.example/a.jpg")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if job.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", job.Attempts)
	}
	if *sleeps != job.Attempts-1 {
		t.Errorf("sleeps = %d, want %d", *sleeps, job.Attempts-1)
	}
}

func TestPollReadyWithoutImageKeepsWaiting(t *testing.T) {
	f := newFake(map[Stage][]map[string]any{
		StageSegmentation: {state(1, "")},
	})
	c, sleeps := newTestClient(t, f, 5)

	job, err := c.Process(context.Background(), StageSegmentation, "https://img.example/a.jpg")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if job.Attempts != 5 || *sleeps != 4 {
		t.Errorf("Attempts = %d, sleeps = %d", job.Attempts, *sleeps)
	}
	if job.ResultURL != "" {
		t.Errorf("ResultURL = %q, want empty", job.ResultURL)
	}
}

func TestPollNegativeStateFails(t *testing.T) {
	f := newFake(map[Stage][]map[string]any{
		StageIDPhoto: {state(0, ""), state(-7, "")},
	})
	c, _ := newTestClient(t, f, 30)

	job, err := c.Process(context.Background(), StageIDPhoto, "https://img.example/a.jpg")
	if !errors.Is(err, ErrJobFailed) {
		t.Fatalf("err = %v, want ErrJobFailed", err)
	}
	if job.State != StateFailed || job.Attempts != 2 {
		t.Errorf("State = %v, Attempts = %d", job.State, job.Attempts)
	}
}

func TestPollNonOKEnvelopeKeepsWaiting(t *testing.T) {
	f := newFake(map[Stage][]map[string]any{
		StageScale: {{"status": 500, "message": "busy"}, state(1, "https://cdn.example/x.jpg")},
	})
	c, _ := newTestClient(t, f, 3)

	job, err := c.Process(context.Background(), StageScale, "https://img.example/a.jpg")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if job.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", job.Attempts)
	}
}

func TestSubmitErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func(w http.ResponseWriter, r *http.Request)
		want error
	}{
		{
			name: "unauthorized",
			fn: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				writeJSON(w, map[string]any{"status": 401, "message": "invalid key"})
			},
			want: ErrUnauthorized,
		},
		{
			name: "provider status",
			fn: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, map[string]any{"status": 400, "message": "bad image"})
			},
			want: ErrSubmit,
		},
		{
			name: "missing task id",
			fn: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, map[string]any{"status": 200, "data": map[string]any{}})
			},
			want: ErrSubmit,
		},
		{
			name: "not json",
			fn: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>"))
			},
			want: ErrSubmit,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFake(nil)
			f.submitFn = tt.fn
			c, _ := newTestClient(t, f, 1)

			job, err := c.Submit(context.Background(), StageScale, "https://img.example/a.jpg")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if job != nil {
				t.Errorf("job = %+v, want nil", job)
			}
		})
	}
}

func TestPollRequestFailure(t *testing.T) {
	c := NewClient("k",
		WithBaseURL("http://127.0.0.1:1"),
		WithLogger(log.New(io.Discard)),
		WithSleep(func(context.Context, time.Duration) error { return nil }),
	)
	job := &Job{Stage: StageScale, TaskID: "t1"}
	if err := c.Poll(context.Background(), job); !errors.Is(err, ErrJobFailed) {
		t.Errorf("err = %v, want ErrJobFailed", err)
	}
	if job.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", job.Attempts)
	}
}

func TestPollHTTPErrorFails(t *testing.T) {
	tests := []struct {
		status       int
		unauthorized bool
	}{
		{http.StatusUnauthorized, true},
		{http.StatusNotFound, false},
		{http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/api/tasks/visual/{stage}/{task}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				writeJSON(w, map[string]any{"status": tt.status})
			})
			srv := httptest.NewServer(r)
			defer srv.Close()

			sleeps := 0
			c := NewClient("k",
				WithBaseURL(srv.URL),
				WithLogger(log.New(io.Discard)),
				WithSleep(func(context.Context, time.Duration) error { sleeps++; return nil }),
			)
			job := &Job{Stage: StageScale, TaskID: "t1"}
			err := c.Poll(context.Background(), job)
			if !errors.Is(err, ErrJobFailed) {
				t.Fatalf("err = %v, want ErrJobFailed", err)
			}
			if errors.Is(err, ErrTimeout) {
				t.Error("poll error reported as a timeout")
			}
			if got := errors.Is(err, ErrUnauthorized); got != tt.unauthorized {
				t.Errorf("errors.Is(err, ErrUnauthorized) = %v, want %v", got, tt.unauthorized)
			}
			if job.Attempts != 1 || sleeps != 0 {
				t.Errorf("Attempts = %d, sleeps = %d, want 1 and 0", job.Attempts, sleeps)
			}
			if job.State != StateFailed {
				t.Errorf("State = %v, want failed", job.State)
			}
		})
	}
}

func TestPollCancelled(t *testing.T) {
	f := newFake(map[Stage][]map[string]any{StageScale: {state(0, "")}})
	srv := httptest.NewServer(f.handler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient("k",
		WithBaseURL(srv.URL),
		WithLogger(log.New(io.Discard)),
		WithSleep(func(ctx context.Context, d time.Duration) error { cancel(); return ctx.Err() }),
	)
	err := c.Poll(ctx, &Job{Stage: StageScale, TaskID: "t1"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestStateFromProvider(t *testing.T) {
	tests := []struct {
		code     int
		hasImage bool
		want     State
	}{
		{-1, false, StateFailed},
		{-100, true, StateFailed},
		{0, false, StateQueued},
		{1, true, StateComplete},
		{1, false, StateInProgress},
		{2, false, StatePreparing},
		{3, false, StateInProgress},
		{4, true, StateInProgress},
	}
	for _, tt := range tests {
		if got := StateFromProvider(tt.code, tt.hasImage); got != tt.want {
			t.Errorf("StateFromProvider(%d, %v) = %v, want %v", tt.code, tt.hasImage, got, tt.want)
		}
	}
}

func TestStateString(t *testing.T) {
	if StateInProgress.String() != "in-progress" {
		t.Errorf("String() = %q", StateInProgress.String())
	}
	if State(9).String() != "state(9)" {
		t.Errorf("String() = %q", State(9).String())
	}
	if !StateFailed.Terminal() || StatePreparing.Terminal() {
		t.Error("Terminal() mismatch")
	}
}
