// Package systemd reports service state to systemd through sd_notify.
package systemd

import (
	"fmt"
	"log/slog"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/smazurov/abiprobe/internal/events"
)

// Notifier sends state updates over $NOTIFY_SOCKET. Outside a
// Type=notify unit every call is a no-op.
type Notifier struct {
	logger *slog.Logger
	notify func(state string) (bool, error)
}

// NewNotifier creates a notifier bound to the process environment.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{
		logger: logger,
		notify: func(state string) (bool, error) { return daemon.SdNotify(false, state) },
	}
}

func (n *Notifier) send(state string) {
	sent, err := n.notify(state)
	if err != nil {
		n.logger.Warn("sd_notify failed", "state", state, "error", err)
		return
	}
	if sent {
		n.logger.Debug("sd_notify", "state", state)
	}
}

// Ready tells systemd the first verification has completed.
func (n *Notifier) Ready() {
	n.send(daemon.SdNotifyReady)
}

// Stopping tells systemd shutdown has begun.
func (n *Notifier) Stopping() {
	n.send(daemon.SdNotifyStopping)
}

// Status sets the free-form status line shown by systemctl status.
func (n *Notifier) Status(format string, args ...any) {
	n.send("STATUS=" + fmt.Sprintf(format, args...))
}

// Attach mirrors verification events into the unit status and returns the
// function that detaches it.
func (n *Notifier) Attach(bus *events.Bus) func() {
	unsubVerified := bus.Subscribe(func(e events.VerifiedEvent) {
		if e.OK() {
			n.Status("%d records match %s", e.Checked, e.Baseline)
			return
		}
		n.Status("%d mismatches against %s", e.Mismatches, e.Baseline)
	})
	unsubFailed := bus.Subscribe(func(e events.BaselineReloadFailedEvent) {
		n.Status("cannot reload %s: %s", e.Baseline, e.Error)
	})
	return func() {
		unsubVerified()
		unsubFailed()
	}
}
