// Package discovery repeatedly scans for controllers and hands out
// connected sessions.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cjorgensenmd/ds4drv/device/dualshock4"
	"github.com/cjorgensenmd/ds4drv/internal/bluetooth"
	"github.com/cjorgensenmd/ds4drv/internal/session"
)

// Connector establishes a session to a discovered controller.
type Connector func(addr bluetooth.Addr) (*session.Session, error)

// Finder is the discovery loop. Next never stops yielding sessions
// except for provider-level failures, which are fatal for the whole
// process, or context cancellation.
type Finder struct {
	scanner  bluetooth.Scanner
	connect  Connector
	logger   *slog.Logger
	interval time.Duration
}

func NewFinder(scanner bluetooth.Scanner, connect Connector, logger *slog.Logger, interval time.Duration) *Finder {
	return &Finder{
		scanner:  scanner,
		connect:  connect,
		logger:   logger,
		interval: interval,
	}
}

// Next blocks until another controller has been found and connected.
// A connect failure only means the controller is not present yet; the
// scan simply runs again next cycle.
func (f *Finder) Next(ctx context.Context) (*session.Session, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f.logger.Info("Looking for controllers")

		devices, err := f.scanner.Scan(ctx)
		if err != nil {
			switch {
			case errors.Is(err, bluetooth.ErrScannerMissing):
				return nil, fmt.Errorf("'hcitool' could not be found, make sure you have bluez-utils installed: %w", err)
			case errors.Is(err, bluetooth.ErrScanFailed):
				return nil, fmt.Errorf("'hcitool scan' returned error, make sure your bluetooth device is on with 'hciconfig hciX up': %w", err)
			default:
				return nil, err
			}
		}

		for _, d := range devices {
			if d.Name != dualshock4.DeviceName {
				continue
			}
			s, err := f.connect(d.Addr)
			if err != nil {
				f.logger.Debug("connect attempt failed", "addr", d.Addr.String(), "error", err)
				break
			}
			return s, nil
		}

		if f.interval > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.interval):
			}
		}
	}
}
