package supervisor

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cjorgensenmd/ds4drv/device/dualshock4"
	"github.com/cjorgensenmd/ds4drv/internal/bluetooth"
	"github.com/cjorgensenmd/ds4drv/internal/config"
)

// Session is the per-controller connection a worker consumes. Satisfied
// by *session.Session.
type Session interface {
	Addr() bluetooth.Addr
	Next() (*dualshock4.Report, error)
	SendControl(dualshock4.Control) error
	Close() error
}

// Worker owns one connected controller end to end: the session, the
// assigned profile and the virtual sink. Its lifetime is bound to the
// connection; errors never escape it.
type Worker struct {
	sess    Session
	profile config.Controller
	sink    Sink
	dynamic bool

	logger *slog.Logger
	now    func() time.Time

	flash flashState
	done  atomic.Bool
}

func newWorker(sess Session, s slot, dynamic bool, logger *slog.Logger, now func() time.Time) *Worker {
	return &Worker{
		sess:    sess,
		profile: s.profile,
		sink:    s.sink,
		dynamic: dynamic,
		logger:  logger,
		now:     now,
	}
}

// Done reports whether the worker has terminated. Polled by the
// supervisor's sweep; never blocks.
func (w *Worker) Done() bool {
	return w.done.Load()
}

func (w *Worker) run() {
	defer w.done.Store(true)
	defer func() { _ = w.sess.Close() }()

	addr := w.sess.Addr().String()

	if err := w.sess.SendControl(dualshock4.LedColor(w.profile.Led)); err != nil {
		w.logger.Error("failed to set LED color", "addr", addr, "error", err)
		return
	}

	for {
		report, err := w.sess.Next()
		if err != nil {
			if errors.Is(err, dualshock4.ErrDisconnected) {
				w.logger.Info("Controller disconnected", "addr", addr)
			} else {
				w.logger.Error("controller read failed", "addr", addr, "error", err)
			}
			return
		}

		if w.profile.BatteryFlash {
			if err := w.flash.evaluate(w.sess, w.profile.Led, report, w.now()); err != nil {
				w.logger.Error("failed to send LED flash command", "addr", addr, "error", err)
				return
			}
		}

		if err := w.sink.Emit(report); err != nil {
			w.logger.Error("failed to emit input events", "addr", addr, "error", err)
			return
		}
	}
}
