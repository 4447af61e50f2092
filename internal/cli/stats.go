package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eleitos/pkg/observability"
)

// runStats counts the events of one run for the closing debug summary.
type runStats struct {
	mu        sync.Mutex
	submitted int
	polls     int
	completed int
	failed    int
	jobTime   time.Duration
	cacheHits int
	cacheMiss int
	requests  int
	httpErrs  int
}

func (s *runStats) OnSubmit(_ context.Context, _, _ string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.failed++
		return
	}
	s.submitted++
}

func (s *runStats) OnPoll(context.Context, string, string, int, string) {
	s.mu.Lock()
	s.polls++
	s.mu.Unlock()
}

func (s *runStats) OnComplete(_ context.Context, _, _ string, d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobTime += d
	if err != nil {
		s.failed++
		return
	}
	s.completed++
}

func (s *runStats) OnCacheHit(context.Context, string) {
	s.mu.Lock()
	s.cacheHits++
	s.mu.Unlock()
}

func (s *runStats) OnCacheMiss(context.Context, string) {
	s.mu.Lock()
	s.cacheMiss++
	s.mu.Unlock()
}

func (s *runStats) OnRequest(context.Context, string, string, string) {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()
}

func (s *runStats) OnResponse(context.Context, string, string, string, int, time.Duration) {}

func (s *runStats) OnError(context.Context, string, string, string, error) {
	s.mu.Lock()
	s.httpErrs++
	s.mu.Unlock()
}

// register installs s for every hook family. The returned func restores
// the defaults.
func (s *runStats) register() func() {
	observability.SetJobHooks(s)
	observability.SetCacheHooks(s)
	observability.SetHTTPHooks(s)
	return observability.Reset
}

func (s *runStats) log(l *log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.Debug("run stats",
		"jobs_submitted", s.submitted,
		"jobs_completed", s.completed,
		"jobs_failed", s.failed,
		"polls", s.polls,
		"job_time", s.jobTime.Round(time.Millisecond),
		"cache_hits", s.cacheHits,
		"cache_misses", s.cacheMiss,
		"http_requests", s.requests,
		"http_errors", s.httpErrs,
	)
}
