package discovery_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/cjorgensenmd/ds4drv/internal/bluetooth"
	"github.com/cjorgensenmd/ds4drv/internal/discovery"
	"github.com/cjorgensenmd/ds4drv/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedScanner struct {
	results [][]bluetooth.Device
	errs    []error
	calls   int
}

func (s *scriptedScanner) Scan(context.Context) ([]bluetooth.Device, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var devs []bluetooth.Device
	if i < len(s.results) {
		devs = s.results[i]
	}
	return devs, err
}

type nopChannel struct{}

func (nopChannel) Read(p []byte) (int, error)  { return 0, nil }
func (nopChannel) Write(p []byte) (int, error) { return len(p), nil }
func (nopChannel) Close() error                { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustAddr(t *testing.T, s string) bluetooth.Addr {
	a, err := bluetooth.ParseAddr(s)
	require.NoError(t, err)
	return a
}

func TestNextConnectsFirstControllerMatch(t *testing.T) {
	controller := mustAddr(t, "01:23:45:67:89:AB")
	scanner := &scriptedScanner{results: [][]bluetooth.Device{{
		{Addr: mustAddr(t, "AA:BB:CC:DD:EE:FF"), Name: "Some Headset"},
		{Addr: controller, Name: "Wireless Controller"},
	}}}

	var connected []bluetooth.Addr
	connect := func(addr bluetooth.Addr) (*session.Session, error) {
		connected = append(connected, addr)
		return session.New(addr, nopChannel{}, nopChannel{}, testLogger(), nil), nil
	}

	f := discovery.NewFinder(scanner, connect, testLogger(), 0)
	s, err := f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, controller, s.Addr())
	assert.Equal(t, []bluetooth.Addr{controller}, connected)
}

func TestNextRetriesAfterConnectFailure(t *testing.T) {
	controller := mustAddr(t, "01:23:45:67:89:AB")
	found := []bluetooth.Device{{Addr: controller, Name: "Wireless Controller"}}
	scanner := &scriptedScanner{results: [][]bluetooth.Device{found, found}}

	attempts := 0
	connect := func(addr bluetooth.Addr) (*session.Session, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("host is down")
		}
		return session.New(addr, nopChannel{}, nopChannel{}, testLogger(), nil), nil
	}

	f := discovery.NewFinder(scanner, connect, testLogger(), 0)
	s, err := f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, controller, s.Addr())
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, scanner.calls)
}

func TestNextFatalOnScannerMissing(t *testing.T) {
	scanner := &scriptedScanner{errs: []error{bluetooth.ErrScannerMissing}}
	f := discovery.NewFinder(scanner, nil, testLogger(), 0)

	_, err := f.Next(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, bluetooth.ErrScannerMissing)
	assert.Contains(t, err.Error(), "bluez-utils")
}

func TestNextFatalOnScanFailure(t *testing.T) {
	scanner := &scriptedScanner{errs: []error{bluetooth.ErrScanFailed}}
	f := discovery.NewFinder(scanner, nil, testLogger(), 0)

	_, err := f.Next(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, bluetooth.ErrScanFailed)
}

func TestNextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := discovery.NewFinder(&scriptedScanner{}, nil, testLogger(), 0)
	_, err := f.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
