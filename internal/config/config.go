// Package config holds the per-controller profile value objects and
// their flag/config-file representations.
package config

import (
	"fmt"
	"strings"
)

// HexColor is an RGB LED color, written as six hex digits ("ff0000").
type HexColor [3]uint8

func (c *HexColor) UnmarshalText(text []byte) error {
	s := string(text)
	if len(s) != 6 {
		return fmt.Errorf("config: invalid LED color %q, want 6 hex digits", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.ToLower(s), "%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Errorf("config: invalid LED color %q, want 6 hex digits", s)
	}
	*c = HexColor{r, g, b}
	return nil
}

func (c HexColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c HexColor) String() string {
	return fmt.Sprintf("%02x%02x%02x", c[0], c[1], c[2])
}

// Controller is one profile: the output options bound to one virtual
// device slot. Immutable once assigned to a worker.
type Controller struct {
	// BatteryFlash flashes the LED once a minute while the battery is
	// low and the controller is not charging.
	BatteryFlash bool

	// EmulateXpad exposes the same joypad layout as a wired Xbox 360
	// controller instead of the native DS4 layout.
	EmulateXpad bool

	// Led is the steady LED color.
	Led HexColor

	// TrackpadMouse makes the trackpad control a pointer device.
	TrackpadMouse bool
}

// DefaultController returns the profile used when no user-configured
// profile is pending: blue LED, everything else off.
func DefaultController() Controller {
	return Controller{Led: HexColor{0x00, 0x00, 0xFF}}
}

// UnmarshalText parses a profile spec string: a comma-separated list of
// options, e.g. "led=ff0000,battery-flash,trackpad-mouse". Unset
// options keep their defaults.
func (c *Controller) UnmarshalText(text []byte) error {
	out := DefaultController()

	for _, opt := range strings.Split(string(text), ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		key, value, hasValue := strings.Cut(opt, "=")
		switch key {
		case "led":
			if !hasValue {
				return fmt.Errorf("config: option %q requires a value", key)
			}
			if err := out.Led.UnmarshalText([]byte(value)); err != nil {
				return err
			}
		case "battery-flash":
			out.BatteryFlash = true
		case "emulate-xpad":
			out.EmulateXpad = true
		case "trackpad-mouse":
			out.TrackpadMouse = true
		default:
			return fmt.Errorf("config: unknown controller option %q", key)
		}
		if hasValue && key != "led" {
			return fmt.Errorf("config: option %q takes no value", key)
		}
	}

	*c = out
	return nil
}

func (c Controller) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c Controller) String() string {
	parts := []string{"led=" + c.Led.String()}
	if c.BatteryFlash {
		parts = append(parts, "battery-flash")
	}
	if c.EmulateXpad {
		parts = append(parts, "emulate-xpad")
	}
	if c.TrackpadMouse {
		parts = append(parts, "trackpad-mouse")
	}
	return strings.Join(parts, ",")
}
