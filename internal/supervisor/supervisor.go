// Package supervisor assigns connected controllers to profiles and
// virtual devices and reclaims statically-configured slots when their
// controller goes away.
package supervisor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cjorgensenmd/ds4drv/device/dualshock4"
	"github.com/cjorgensenmd/ds4drv/internal/config"
)

// Sink is the virtual input device a worker feeds. Implemented by
// uinput.Joypad.
type Sink interface {
	Emit(*dualshock4.Report) error
	Close() error
}

// SinkFactory creates the virtual device(s) backing one profile slot.
type SinkFactory func(profile config.Controller) (Sink, error)

// slot pairs a profile with its persistent sink.
type slot struct {
	profile config.Controller
	sink    Sink
}

// Supervisor owns the pending slot queue and the active worker set.
// Both are only ever touched from the single discovery/attach path, so
// no locking is needed beyond the workers' atomic liveness flags.
type Supervisor struct {
	logger  *slog.Logger
	newSink SinkFactory
	now     func() time.Time

	pending []slot
	workers []*Worker
}

// New creates a supervisor and the virtual devices for every
// pre-configured profile. Sink creation failure here is fatal: the
// process cannot run without its startup devices.
func New(profiles []config.Controller, newSink SinkFactory, logger *slog.Logger) (*Supervisor, error) {
	s := &Supervisor{
		logger:  logger,
		newSink: newSink,
		now:     time.Now,
	}
	for _, p := range profiles {
		sink, err := newSink(p)
		if err != nil {
			return nil, fmt.Errorf("supervisor: create virtual device for profile %q: %w", p.String(), err)
		}
		s.pending = append(s.pending, slot{profile: p, sink: sink})
	}
	return s, nil
}

// Attach assigns a profile and sink to a newly connected controller
// and spawns its worker. Called only from the discovery loop.
func (s *Supervisor) Attach(sess Session) {
	s.sweep()

	s.logger.Info("Found controller", "addr", sess.Addr().String())

	var assigned slot
	dynamic := false
	if len(s.pending) > 0 {
		assigned = s.pending[0]
		s.pending = s.pending[1:]
	} else {
		dynamic = true
		profile := config.DefaultController()
		sink, err := s.newSink(profile)
		if err != nil {
			s.logger.Error("failed to create dynamic virtual device", "error", err)
			_ = sess.Close()
			return
		}
		assigned = slot{profile: profile, sink: sink}
	}

	w := newWorker(sess, assigned, dynamic, s.logger, s.now)
	s.workers = append(s.workers, w)
	go w.run()
}

// sweep reclaims terminated workers. Static slots go back to the front
// of the pending queue so user-configured devices are reused before any
// new dynamic one is created; dynamic sinks are discarded.
func (s *Supervisor) sweep() {
	alive := s.workers[:0]
	for _, w := range s.workers {
		if !w.Done() {
			alive = append(alive, w)
			continue
		}
		if w.dynamic {
			_ = w.sink.Close()
			continue
		}
		s.pending = append([]slot{{profile: w.profile, sink: w.sink}}, s.pending...)
	}
	s.workers = alive
}

// Close tears down all pending sinks. Running workers keep their sinks
// until they terminate.
func (s *Supervisor) Close() {
	for _, p := range s.pending {
		_ = p.sink.Close()
	}
	s.pending = nil
}
