package uinput

import (
	"fmt"

	"github.com/cjorgensenmd/ds4drv/device/dualshock4"
)

// Input event codes from input-event-codes.h. Only the codes the two
// joypad layouts and the pointer device emit are listed.
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0

	absX     = 0x00
	absY     = 0x01
	absZ     = 0x02
	absRX    = 0x03
	absRY    = 0x04
	absRZ    = 0x05
	absWheel = 0x08
	absHat0X = 0x10
	absHat0Y = 0x11
	absTiltX = 0x1A
	absTiltY = 0x1B

	relX = 0x00
	relY = 0x01

	btnLeft   = 0x110
	btnRight  = 0x111
	btnA      = 0x130
	btnB      = 0x131
	btnX      = 0x133
	btnY      = 0x134
	btnTL     = 0x136
	btnTR     = 0x137
	btnSelect = 0x13A
	btnStart  = 0x13B
	btnMode   = 0x13C
	btnThumbL = 0x13D
	btnThumbR = 0x13E

	busBluetooth = 0x05
)

// Axis is one absolute axis and the report field it mirrors.
type Axis struct {
	Code     uint16
	Min, Max int32
	Value    func(*dualshock4.Report) int32
}

// Button is one key code and the report flag it mirrors.
type Button struct {
	Code    uint16
	Pressed func(*dualshock4.Report) bool
}

// Hat is a ±1 axis fed by a pair of direction flags.
type Hat struct {
	Code     uint16
	Negative func(*dualshock4.Report) bool
	Positive func(*dualshock4.Report) bool
}

// Layout is the full static event table for one virtual joypad
// flavor. Tables are built once at startup and validated; there is no
// dynamic name lookup at emit time.
type Layout struct {
	Name    string
	Vendor  uint16
	Product uint16
	Axes    []Axis
	Buttons []Button
	Hats    []Hat
}

func u8axis(code uint16, value func(*dualshock4.Report) uint8) Axis {
	return Axis{Code: code, Min: 0, Max: 255, Value: func(r *dualshock4.Report) int32 {
		return int32(value(r))
	}}
}

func s16axis(code uint16, value func(*dualshock4.Report) int16) Axis {
	return Axis{Code: code, Min: -32767, Max: 32767, Value: func(r *dualshock4.Report) int32 {
		return int32(value(r))
	}}
}

// commonButtons is the button table shared by both layouts.
func commonButtons() []Button {
	return []Button{
		{btnStart, func(r *dualshock4.Report) bool { return r.ButtonOptions }},
		{btnMode, func(r *dualshock4.Report) bool { return r.ButtonPS }},
		{btnSelect, func(r *dualshock4.Report) bool { return r.ButtonShare }},
		{btnA, func(r *dualshock4.Report) bool { return r.ButtonCross }},
		{btnB, func(r *dualshock4.Report) bool { return r.ButtonCircle }},
		{btnX, func(r *dualshock4.Report) bool { return r.ButtonSquare }},
		{btnY, func(r *dualshock4.Report) bool { return r.ButtonTriangle }},
		{btnTL, func(r *dualshock4.Report) bool { return r.ButtonL1 }},
		{btnTR, func(r *dualshock4.Report) bool { return r.ButtonR1 }},
		{btnThumbL, func(r *dualshock4.Report) bool { return r.ButtonL3 }},
		{btnThumbR, func(r *dualshock4.Report) bool { return r.ButtonR3 }},
	}
}

func commonHats() []Hat {
	return []Hat{
		{
			Code:     absHat0X,
			Negative: func(r *dualshock4.Report) bool { return r.DPadLeft },
			Positive: func(r *dualshock4.Report) bool { return r.DPadRight },
		},
		{
			Code:     absHat0Y,
			Negative: func(r *dualshock4.Report) bool { return r.DPadUp },
			Positive: func(r *dualshock4.Report) bool { return r.DPadDown },
		},
	}
}

func stickAndTriggerAxes() []Axis {
	return []Axis{
		u8axis(absX, func(r *dualshock4.Report) uint8 { return r.LeftAnalogX }),
		u8axis(absY, func(r *dualshock4.Report) uint8 { return r.LeftAnalogY }),
		u8axis(absRX, func(r *dualshock4.Report) uint8 { return r.RightAnalogX }),
		u8axis(absRY, func(r *dualshock4.Report) uint8 { return r.RightAnalogY }),
		u8axis(absZ, func(r *dualshock4.Report) uint8 { return r.L2Analog }),
		u8axis(absRZ, func(r *dualshock4.Report) uint8 { return r.R2Analog }),
	}
}

// DS4Layout is the native layout: sticks, triggers, dpad hat and the
// motion axes.
func DS4Layout() Layout {
	axes := stickAndTriggerAxes()
	axes = append(axes,
		s16axis(absTiltX, func(r *dualshock4.Report) int16 { return r.MotionX }),
		s16axis(absTiltY, func(r *dualshock4.Report) int16 { return r.MotionY }),
		s16axis(absWheel, func(r *dualshock4.Report) int16 { return r.MotionZ }),
	)
	return Layout{
		Name:    "Sony Computer Entertainment Wireless Controller",
		Vendor:  0x054C,
		Product: 0x05C4,
		Axes:    axes,
		Buttons: commonButtons(),
		Hats:    commonHats(),
	}
}

// XpadLayout mimics a wired Xbox 360 pad: same sticks and buttons, no
// motion axes.
func XpadLayout() Layout {
	return Layout{
		Name:    "Microsoft X-Box 360 pad",
		Vendor:  0x045E,
		Product: 0x028E,
		Axes:    stickAndTriggerAxes(),
		Buttons: commonButtons(),
		Hats:    commonHats(),
	}
}

// Validate checks the table is well-formed: every entry has an
// accessor and no event code appears twice.
func (l Layout) Validate() error {
	seenAbs := make(map[uint16]bool)
	seenKey := make(map[uint16]bool)

	for _, a := range l.Axes {
		if a.Value == nil {
			return fmt.Errorf("uinput: layout %q: axis 0x%02x has no accessor", l.Name, a.Code)
		}
		if seenAbs[a.Code] {
			return fmt.Errorf("uinput: layout %q: duplicate axis 0x%02x", l.Name, a.Code)
		}
		seenAbs[a.Code] = true
	}
	for _, h := range l.Hats {
		if h.Negative == nil || h.Positive == nil {
			return fmt.Errorf("uinput: layout %q: hat 0x%02x has no accessor", l.Name, h.Code)
		}
		if seenAbs[h.Code] {
			return fmt.Errorf("uinput: layout %q: duplicate axis 0x%02x", l.Name, h.Code)
		}
		seenAbs[h.Code] = true
	}
	for _, b := range l.Buttons {
		if b.Pressed == nil {
			return fmt.Errorf("uinput: layout %q: button 0x%03x has no accessor", l.Name, b.Code)
		}
		if seenKey[b.Code] {
			return fmt.Errorf("uinput: layout %q: duplicate button 0x%03x", l.Name, b.Code)
		}
		seenKey[b.Code] = true
	}
	return nil
}
