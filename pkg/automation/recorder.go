package automation

import (
	"context"
	"errors"

	"github.com/matzehuels/eleitos/pkg/render/tarjeta/layout"
)

// Recorder is an in-memory [Application] for tests. It records every call
// and returns the error in Faults keyed by method name ("Start",
// "CreateDocument", "PlaceCard", "Save", "Close", "Stop").
type Recorder struct {
	machine
	Calls  []string
	Page   layout.Page
	Cards  []layout.Placement
	Path   string
	Faults map[string]error

	// FaultAfter makes PlaceCard fail once this many cards are placed.
	// Zero disables it.
	FaultAfter int
}

var _ Application = (*Recorder)(nil)

func (r *Recorder) call(name, op string) error {
	r.Calls = append(r.Calls, name)
	if err := r.Faults[name]; err != nil {
		return err
	}
	if op == "" {
		return nil
	}
	return r.advance(op)
}

func (r *Recorder) Start(context.Context) error { return r.call("Start", "start") }

func (r *Recorder) CreateDocument(_ context.Context, page layout.Page) error {
	if err := r.call("CreateDocument", "create"); err != nil {
		return err
	}
	r.Page = page
	return nil
}

func (r *Recorder) PlaceCard(_ context.Context, card layout.Placement) error {
	if r.FaultAfter > 0 && len(r.Cards) >= r.FaultAfter {
		r.Calls = append(r.Calls, "PlaceCard")
		return ErrInjected
	}
	if err := r.call("PlaceCard", "place"); err != nil {
		return err
	}
	r.Cards = append(r.Cards, card)
	return nil
}

func (r *Recorder) Save(_ context.Context, path string) error {
	if err := r.call("Save", "save"); err != nil {
		return err
	}
	r.Path = path
	return nil
}

func (r *Recorder) Close(context.Context) error { return r.call("Close", "close") }

func (r *Recorder) Stop(context.Context) error {
	if err := r.call("Stop", ""); err != nil {
		return err
	}
	r.stop()
	return nil
}

// ErrInjected is returned by PlaceCard once FaultAfter cards are placed.
var ErrInjected = errors.New("injected fault")
