package session_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/cjorgensenmd/ds4drv/device/dualshock4"
	"github.com/cjorgensenmd/ds4drv/internal/bluetooth"
	"github.com/cjorgensenmd/ds4drv/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel scripts Read results and records writes. Once reads are
// exhausted it returns readErr, or a zero-length read if readErr is nil.
type fakeChannel struct {
	reads   [][]byte
	readErr error
	writes  [][]byte
	closed  bool
}

func (f *fakeChannel) Read(p []byte) (int, error) {
	if len(f.reads) == 0 {
		if f.readErr != nil {
			return 0, f.readErr
		}
		return 0, nil
	}
	b := f.reads[0]
	f.reads = f.reads[1:]
	return copy(p, b), nil
}

func (f *fakeChannel) Write(p []byte) (int, error) {
	b := make([]byte, len(p))
	copy(b, p)
	f.writes = append(f.writes, b)
	return len(p), nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func inputReport(battery uint8, charging bool) []byte {
	buf := make([]byte, dualshock4.InputReportSize)
	buf[dualshock4.OffButtons1] = dualshock4.DPadNeutral
	buf[dualshock4.OffBattery] = battery & dualshock4.BatteryLevelMask
	if charging {
		buf[dualshock4.OffBattery] |= dualshock4.BatteryChargingFlag
	}
	return buf
}

func newTestSession(ctl, intr *fakeChannel) *session.Session {
	var addr bluetooth.Addr
	return session.New(addr, ctl, intr, testLogger(), nil)
}

func TestNextDecodesReports(t *testing.T) {
	intr := &fakeChannel{reads: [][]byte{inputReport(9, true)}}
	s := newTestSession(&fakeChannel{}, intr)

	r, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, uint8(9), r.Battery)
	assert.True(t, r.Charging)
}

func TestNextSkipsShortReports(t *testing.T) {
	intr := &fakeChannel{reads: [][]byte{
		make([]byte, 10),
		inputReport(5, false),
	}}
	s := newTestSession(&fakeChannel{}, intr)

	r, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, uint8(5), r.Battery)
}

func TestNextDisconnectOnZeroRead(t *testing.T) {
	s := newTestSession(&fakeChannel{}, &fakeChannel{})
	r, err := s.Next()
	assert.Nil(t, r)
	assert.ErrorIs(t, err, dualshock4.ErrDisconnected)
}

func TestNextDisconnectOnEOF(t *testing.T) {
	s := newTestSession(&fakeChannel{}, &fakeChannel{readErr: io.EOF})
	_, err := s.Next()
	assert.ErrorIs(t, err, dualshock4.ErrDisconnected)
}

func TestNextTransportError(t *testing.T) {
	cause := errors.New("connection reset")
	s := newTestSession(&fakeChannel{}, &fakeChannel{readErr: cause})
	_, err := s.Next()
	assert.ErrorIs(t, err, cause)
}

func TestSendControl(t *testing.T) {
	ctl := &fakeChannel{}
	s := newTestSession(ctl, &fakeChannel{})

	err := s.SendControl(dualshock4.Control{LedRed: 0xAA, FlashOn: 30, FlashOff: 30})
	require.NoError(t, err)
	require.Len(t, ctl.writes, 1)

	pkt := ctl.writes[0]
	assert.Len(t, pkt, 1+dualshock4.OutputPayloadSize)
	assert.Equal(t, uint8(0xAA), pkt[1+dualshock4.OutOffsetLedRed])
	assert.Equal(t, uint8(30), pkt[1+dualshock4.OutOffsetFlashOn])
}

func TestClose(t *testing.T) {
	ctl := &fakeChannel{}
	intr := &fakeChannel{}
	s := newTestSession(ctl, intr)

	require.NoError(t, s.Close())
	assert.True(t, ctl.closed)
	assert.True(t, intr.closed)
}
