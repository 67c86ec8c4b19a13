// Package session owns one connected controller: the two L2CAP
// channels, the receive buffer and the control-packet path.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cjorgensenmd/ds4drv/device/dualshock4"
	"github.com/cjorgensenmd/ds4drv/internal/bluetooth"
	"github.com/cjorgensenmd/ds4drv/internal/log"
)

// Session is a live connection to one controller. Exactly one worker
// reads reports from a session; it is not restartable after the
// controller disconnects.
type Session struct {
	addr bluetooth.Addr
	ctl  io.ReadWriteCloser
	intr io.ReadWriteCloser

	buf    [dualshock4.InputReportSize]byte
	logger *slog.Logger
	raw    log.RawLogger
}

// Connect opens the control and interrupt channels to addr in order.
// No partial session is ever returned: if the interrupt channel fails,
// the control channel is closed again. On success the LED is set to
// full white as a connectivity signal.
func Connect(addr bluetooth.Addr, logger *slog.Logger, raw log.RawLogger) (*Session, error) {
	ctl, err := bluetooth.Dial(addr, dualshock4.PSMHIDControl)
	if err != nil {
		return nil, fmt.Errorf("session: control channel: %w", err)
	}
	intr, err := bluetooth.Dial(addr, dualshock4.PSMHIDInterrupt)
	if err != nil {
		_ = ctl.Close()
		return nil, fmt.Errorf("session: interrupt channel: %w", err)
	}

	s := New(addr, ctl, intr, logger, raw)
	if err := s.SendControl(dualshock4.Control{LedRed: 255, LedGreen: 255, LedBlue: 255}); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("session: handshake: %w", err)
	}
	return s, nil
}

// New wraps already-open channel endpoints. Used by Connect and by
// tests that script the endpoints.
func New(addr bluetooth.Addr, ctl, intr io.ReadWriteCloser, logger *slog.Logger, raw log.RawLogger) *Session {
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Session{
		addr:   addr,
		ctl:    ctl,
		intr:   intr,
		logger: logger,
		raw:    raw,
	}
}

func (s *Session) Addr() bluetooth.Addr { return s.addr }

// SendControl encodes and sends one control packet. Synchronous, no
// retry; transport failures surface to the caller.
func (s *Session) SendControl(c dualshock4.Control) error {
	pkt := c.Encode()
	s.raw.Log(false, pkt)
	if _, err := s.ctl.Write(pkt); err != nil {
		return fmt.Errorf("session: send control: %w", err)
	}
	return nil
}

// Next blocks for the next decoded report. Short reports are logged
// and skipped. Returns dualshock4.ErrDisconnected once the controller
// is gone; any other error is a transport failure. Both are terminal.
func (s *Session) Next() (*dualshock4.Report, error) {
	for {
		n, err := s.intr.Read(s.buf[:])
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, dualshock4.ErrDisconnected
			}
			return nil, fmt.Errorf("session: read report: %w", err)
		}
		s.raw.Log(true, s.buf[:n])

		report, err := dualshock4.Decode(s.buf[:], n)
		if err != nil {
			if errors.Is(err, dualshock4.ErrShortReport) {
				s.logger.Warn("got simplified HID report, ignoring", "addr", s.addr.String(), "size", n)
				continue
			}
			return nil, err
		}
		return report, nil
	}
}

// Close tears down both channels.
func (s *Session) Close() error {
	err := s.intr.Close()
	if cerr := s.ctl.Close(); err == nil {
		err = cerr
	}
	return err
}
