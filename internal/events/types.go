package events

import "time"

// Event type constants for kelindar/event.
const (
	TypeVerified uint32 = iota + 1
	TypeBaselineReloadFailed
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// VerifiedEvent is published after every verification run.
type VerifiedEvent struct {
	Baseline   string
	At         time.Time
	Checked    int
	Mismatches int
	Warnings   int
}

// Type returns the event type identifier for VerifiedEvent.
func (e VerifiedEvent) Type() uint32 { return TypeVerified }

// OK reports whether the run found no mismatch.
func (e VerifiedEvent) OK() bool { return e.Mismatches == 0 }

// BaselineReloadFailedEvent is published when a changed baseline cannot
// be loaded. The previous verification result stays in effect.
type BaselineReloadFailedEvent struct {
	Baseline string
	Error    string
}

// Type returns the event type identifier for BaselineReloadFailedEvent.
func (e BaselineReloadFailedEvent) Type() uint32 { return TypeBaselineReloadFailed }
