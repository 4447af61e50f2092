package picwish

import (
	"errors"
	"fmt"

	"github.com/matzehuels/eleitos/pkg/integrations"
)

// Stage is one provider task family.
type Stage string

const (
	StageScale        Stage = "scale"        // quality enhancement
	StageSegmentation Stage = "segmentation" // background removal
	StageIDPhoto      Stage = "idphoto"      // 3x4 ID photo
)

// State is the lifecycle of a submitted job.
type State int

const (
	StateQueued State = iota
	StatePreparing
	StateInProgress
	StateComplete
	StateFailed
)

var stateNames = [...]string{"queued", "preparing", "in-progress", "complete", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether polling stops at s.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateFailed
}

// Provider state codes.
const (
	providerQueued    = 0
	providerReady     = 1
	providerPreparing = 2
)

// StateFromProvider maps the provider's numeric state. The ready code only
// counts as complete when a result image is present; without one the job is
// still in progress.
func StateFromProvider(code int, hasImage bool) State {
	switch {
	case code < 0:
		return StateFailed
	case code == providerReady && hasImage:
		return StateComplete
	case code == providerQueued:
		return StateQueued
	case code == providerPreparing:
		return StatePreparing
	default:
		return StateInProgress
	}
}

// Job is one submitted stage for one source image.
type Job struct {
	Stage     Stage
	SourceURL string
	TaskID    string
	State     State
	ResultURL string // set only when State is StateComplete
	Attempts  int    // polls performed
}

var (
	// ErrUnauthorized is returned by Submit on HTTP 401.
	ErrUnauthorized = integrations.ErrUnauthorized

	// ErrSubmit is returned when the provider did not accept a task.
	ErrSubmit = errors.New("task submission failed")

	// ErrJobFailed is returned when the provider reports a negative state
	// or a poll request fails.
	ErrJobFailed = errors.New("task failed")

	// ErrTimeout is returned when the attempts run out before completion.
	ErrTimeout = errors.New("task did not complete in time")
)
