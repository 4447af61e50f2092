package automation

import "fmt"

// State is a point in the application lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateStarted
	StateDocumentCreated
	StateCardPlaced
	StateSaved
	StateClosed
	StateStopped
)

var stateNames = [...]string{
	"uninitialized",
	"application-started",
	"document-created",
	"card-placed",
	"saved",
	"closed",
	"application-stopped",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// transitions lists the states each operation may start from.
var transitions = map[string]struct {
	from []State
	to   State
}{
	"start":  {[]State{StateUninitialized}, StateStarted},
	"create": {[]State{StateStarted, StateClosed}, StateDocumentCreated},
	"place":  {[]State{StateDocumentCreated, StateCardPlaced}, StateCardPlaced},
	"save":   {[]State{StateDocumentCreated, StateCardPlaced}, StateSaved},
	"close":  {[]State{StateDocumentCreated, StateCardPlaced, StateSaved}, StateClosed},
}

// machine tracks the lifecycle and rejects out-of-order calls.
type machine struct {
	state State
}

func (m *machine) State() State { return m.state }

func (m *machine) advance(op string) error {
	t, ok := transitions[op]
	if !ok {
		return fmt.Errorf("unknown operation %q", op)
	}
	for _, s := range t.from {
		if m.state == s {
			m.state = t.to
			return nil
		}
	}
	return fmt.Errorf("%s: invalid in state %s", op, m.state)
}

// stop is valid from any state once started, and is idempotent.
func (m *machine) stop() {
	if m.state != StateUninitialized {
		m.state = StateStopped
	}
}
