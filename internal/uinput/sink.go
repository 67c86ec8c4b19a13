package uinput

import (
	"github.com/cjorgensenmd/ds4drv/device/dualshock4"
)

const trackpadSensitivity = 0.5

// Joypad is a persistent virtual joypad, with an optional paired
// pointer device driven by the trackpad. It outlives individual
// controller connections so OS device identity stays stable across
// reconnects.
type Joypad struct {
	layout Layout
	joypad *Device
	mouse  *Device

	tracking       bool
	touchX, touchY int32
}

// NewJoypad creates the virtual device(s) for one profile slot.
func NewJoypad(layout Layout, trackpadMouse bool) (*Joypad, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	spec := deviceSpec{
		name: layout.Name,
		id:   inputID{Bustype: busBluetooth, Vendor: layout.Vendor, Product: layout.Product, Version: 1},
		axes: layout.Axes,
	}
	for _, b := range layout.Buttons {
		spec.keys = append(spec.keys, b.Code)
	}
	for _, h := range layout.Hats {
		spec.hatAxes = append(spec.hatAxes, h.Code)
	}

	joypad, err := createDevice(spec)
	if err != nil {
		return nil, err
	}

	j := &Joypad{layout: layout, joypad: joypad}

	if trackpadMouse {
		mouse, err := createDevice(deviceSpec{
			name: "ds4drv trackpad",
			id:   inputID{Bustype: busBluetooth, Vendor: layout.Vendor, Product: layout.Product, Version: 1},
			keys: []uint16{btnLeft, btnRight},
			rels: []uint16{relX, relY},
		})
		if err != nil {
			_ = joypad.Close()
			return nil, err
		}
		j.mouse = mouse
	}

	return j, nil
}

// Emit pushes one decoded report as a single synchronized update.
func (j *Joypad) Emit(r *dualshock4.Report) error {
	for _, a := range j.layout.Axes {
		if err := j.joypad.Emit(evAbs, a.Code, a.Value(r)); err != nil {
			return err
		}
	}
	for _, b := range j.layout.Buttons {
		var v int32
		if b.Pressed(r) {
			v = 1
		}
		if err := j.joypad.Emit(evKey, b.Code, v); err != nil {
			return err
		}
	}
	for _, h := range j.layout.Hats {
		var v int32
		switch {
		case h.Negative(r):
			v = -1
		case h.Positive(r):
			v = 1
		}
		if err := j.joypad.Emit(evAbs, h.Code, v); err != nil {
			return err
		}
	}
	if err := j.joypad.Syn(); err != nil {
		return err
	}

	if j.mouse != nil {
		return j.emitMouse(r)
	}
	return nil
}

// emitMouse converts trackpad touch deltas into relative pointer
// motion while the first touch point is down.
func (j *Joypad) emitMouse(r *dualshock4.Report) error {
	if r.Touch0.Active {
		x, y := int32(r.Touch0.X), int32(r.Touch0.Y)
		if j.tracking {
			relDX := int32(float64(x-j.touchX) * trackpadSensitivity)
			relDY := int32(float64(y-j.touchY) * trackpadSensitivity)
			if err := j.mouse.Emit(evRel, relX, relDX); err != nil {
				return err
			}
			if err := j.mouse.Emit(evRel, relY, relDY); err != nil {
				return err
			}
		}
		j.tracking = true
		j.touchX, j.touchY = x, y
	} else {
		j.tracking = false
	}

	var click int32
	if r.ButtonTrackpad {
		click = 1
	}
	if err := j.mouse.Emit(evKey, btnLeft, click); err != nil {
		return err
	}
	return j.mouse.Syn()
}

// Close destroys the virtual devices.
func (j *Joypad) Close() error {
	err := j.joypad.Close()
	if j.mouse != nil {
		if cerr := j.mouse.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
