package supervisor

import (
	"time"

	"github.com/cjorgensenmd/ds4drv/device/dualshock4"
	"github.com/cjorgensenmd/ds4drv/internal/config"
)

const (
	// lowBatteryLevel is the charge level (0-15) below which the LED
	// starts flashing.
	lowBatteryLevel = 2

	// flashInterval is the minimum time between flash starts.
	flashInterval = 60 * time.Second

	// flashDuration is how long one flash burst runs.
	flashDuration = 5 * time.Second

	// flashDuty is the bright/dark time sent to the controller
	// (255 = 2.5 seconds).
	flashDuty = 30
)

type controlSender interface {
	SendControl(dualshock4.Control) error
}

// flashState is the two-state LED battery-flash machine, evaluated
// once per decoded report. steady -> flashing when the battery is low,
// not charging and the last flash started long enough ago; flashing ->
// steady once the burst duration has passed.
type flashState struct {
	flashing  bool
	lastFlash time.Time
}

func (f *flashState) evaluate(s controlSender, led config.HexColor, r *dualshock4.Report, now time.Time) error {
	if !f.flashing {
		if r.Battery >= lowBatteryLevel || r.Charging {
			return nil
		}
		if !f.lastFlash.IsZero() && now.Sub(f.lastFlash) < flashInterval {
			return nil
		}
		c := dualshock4.LedColor(led)
		c.FlashOn = flashDuty
		c.FlashOff = flashDuty
		if err := s.SendControl(c); err != nil {
			return err
		}
		f.flashing = true
		f.lastFlash = now
		return nil
	}

	if now.Sub(f.lastFlash) < flashDuration {
		return nil
	}
	if err := s.SendControl(dualshock4.Control{}); err != nil {
		return err
	}
	if err := s.SendControl(dualshock4.LedColor(led)); err != nil {
		return err
	}
	f.flashing = false
	return nil
}
