package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cjorgensenmd/ds4drv/internal/bluetooth"
	"github.com/cjorgensenmd/ds4drv/internal/config"
	"github.com/cjorgensenmd/ds4drv/internal/discovery"
	"github.com/cjorgensenmd/ds4drv/internal/log"
	"github.com/cjorgensenmd/ds4drv/internal/session"
	"github.com/cjorgensenmd/ds4drv/internal/supervisor"
	"github.com/cjorgensenmd/ds4drv/internal/uinput"
)

// Run is the driver command: scan for controllers forever and bridge
// each one to a virtual input device.
type Run struct {
	Daemon       bool                `help:"Run in the background as a daemon" env:"DS4DRV_DAEMON"`
	ScanInterval time.Duration       `help:"Pause between discovery scans" default:"2s" env:"DS4DRV_SCAN_INTERVAL"`
	HCITool      string              `help:"Path to the hcitool binary, found on $PATH when empty" env:"DS4DRV_HCITOOL"`
	Controllers  []config.Controller `name:"controller" sep:"none" placeholder:"OPTS" help:"Controller profile, e.g. 'led=ff0000,battery-flash'. Repeat the flag to configure multiple controllers; options: led=RRGGBB, battery-flash, emulate-xpad, trackpad-mouse"`
}

// Run is called by kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	if r.Daemon && shouldFork() {
		return daemonize(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.StartDriver(ctx, logger, rawLogger)
}

// StartDriver wires the supervisor and the discovery loop and runs
// until ctx is cancelled or a fatal error occurs.
func (r *Run) StartDriver(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	profiles := r.Controllers
	if len(profiles) == 0 {
		profiles = []config.Controller{config.DefaultController()}
	}

	sup, err := supervisor.New(profiles, newJoypadSink, logger)
	if err != nil {
		return err
	}
	defer sup.Close()

	logger.Info("Starting ds4drv", "profiles", len(profiles))

	scanner := &bluetooth.HCIScanner{Path: r.HCITool}
	connect := func(addr bluetooth.Addr) (*session.Session, error) {
		return session.Connect(addr, logger, rawLogger)
	}
	finder := discovery.NewFinder(scanner, connect, logger, r.ScanInterval)

	for {
		sess, err := finder.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("Shutting down")
				return nil
			}
			return err
		}
		sup.Attach(sess)
	}
}

// newJoypadSink builds the virtual device(s) for one profile.
func newJoypadSink(p config.Controller) (supervisor.Sink, error) {
	layout := uinput.DS4Layout()
	if p.EmulateXpad {
		layout = uinput.XpadLayout()
	}
	return uinput.NewJoypad(layout, p.TrackpadMouse)
}
