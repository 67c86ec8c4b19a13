// Package dualshock4 implements the DualShock 4 Bluetooth HID wire
// protocol: decoding of input reports and encoding of output (control)
// reports. The package is pure; all I/O lives with the caller.
package dualshock4

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrDisconnected reports a zero-length read, meaning the peer
	// closed the interrupt channel.
	ErrDisconnected = errors.New("dualshock4: controller disconnected")

	// ErrShortReport reports a buffer below InputReportSize. These are
	// simplified HID reports and carry no usable payload.
	ErrShortReport = errors.New("dualshock4: short input report")
)

// Touch is one trackpad touch point. X and Y are 12-bit positions.
type Touch struct {
	ID     uint8
	Active bool
	X      uint16
	Y      uint16
}

// Report is a decoded input report, one sample of the full controller
// state.
type Report struct {
	LeftAnalogX  uint8
	LeftAnalogY  uint8
	RightAnalogX uint8
	RightAnalogY uint8
	L2Analog     uint8
	R2Analog     uint8

	DPadUp    bool
	DPadDown  bool
	DPadLeft  bool
	DPadRight bool

	ButtonCross    bool
	ButtonCircle   bool
	ButtonSquare   bool
	ButtonTriangle bool
	ButtonL1       bool
	ButtonL2       bool
	ButtonL3       bool
	ButtonR1       bool
	ButtonR2       bool
	ButtonR3       bool
	ButtonShare    bool
	ButtonOptions  bool
	ButtonTrackpad bool
	ButtonPS       bool

	// Accelerometer, signed 16-bit little-endian on the wire.
	MotionY int16
	MotionX int16
	MotionZ int16

	// Gyro. Roll is sign-inverted relative to the wire value so that
	// positive means tilting right, consistent with the other axes.
	OrientationRoll  int16
	OrientationYaw   int16
	OrientationPitch int16

	Touch0 Touch
	Touch1 Touch

	Counter  uint8
	Battery  uint8
	Charging bool
}

// Decode maps n bytes of buf to a Report. n == 0 returns
// ErrDisconnected; 0 < n < InputReportSize returns ErrShortReport.
// For well-sized buffers decoding is total and deterministic.
func Decode(buf []byte, n int) (*Report, error) {
	if n == 0 {
		return nil, ErrDisconnected
	}
	if n < InputReportSize {
		return nil, ErrShortReport
	}

	r := &Report{
		LeftAnalogX:  buf[OffLeftAnalogX],
		LeftAnalogY:  buf[OffLeftAnalogY],
		RightAnalogX: buf[OffRightAnalogX],
		RightAnalogY: buf[OffRightAnalogY],
		L2Analog:     buf[OffL2Analog],
		R2Analog:     buf[OffR2Analog],

		ButtonSquare:   buf[OffButtons1]&MaskSquare != 0,
		ButtonCross:    buf[OffButtons1]&MaskCross != 0,
		ButtonCircle:   buf[OffButtons1]&MaskCircle != 0,
		ButtonTriangle: buf[OffButtons1]&MaskTriangle != 0,

		ButtonL1:      buf[OffButtons2]&MaskL1 != 0,
		ButtonR1:      buf[OffButtons2]&MaskR1 != 0,
		ButtonL2:      buf[OffButtons2]&MaskL2 != 0,
		ButtonR2:      buf[OffButtons2]&MaskR2 != 0,
		ButtonShare:   buf[OffButtons2]&MaskShare != 0,
		ButtonOptions: buf[OffButtons2]&MaskOptions != 0,
		ButtonL3:      buf[OffButtons2]&MaskL3 != 0,
		ButtonR3:      buf[OffButtons2]&MaskR3 != 0,

		ButtonPS:       buf[OffButtons3]&MaskPS != 0,
		ButtonTrackpad: buf[OffButtons3]&MaskTrackpad != 0,
		Counter:        buf[OffButtons3] >> CounterShift,

		MotionY: s16(buf[OffMotion:]),
		MotionX: s16(buf[OffMotion+2:]),
		MotionZ: s16(buf[OffMotion+4:]),

		OrientationRoll:  -s16(buf[OffOrientation:]),
		OrientationYaw:   s16(buf[OffOrientation+2:]),
		OrientationPitch: s16(buf[OffOrientation+4:]),

		Touch0: decodeTouch(buf[OffTouch0:]),
		Touch1: decodeTouch(buf[OffTouch1:]),

		Battery:  buf[OffBattery] & BatteryLevelMask,
		Charging: buf[OffBattery]&BatteryChargingFlag != 0,
	}

	r.DPadUp, r.DPadDown, r.DPadLeft, r.DPadRight = dpadFlags(buf[OffButtons1] & DPadMask)
	return r, nil
}

// dpadFlags expands the hat switch nibble into direction flags.
// Diagonals set two adjacent flags; values past neutral set none.
func dpadFlags(v uint8) (up, down, left, right bool) {
	switch v {
	case DPadUp:
		up = true
	case DPadUpRight:
		up, right = true, true
	case DPadRight:
		right = true
	case DPadDownRight:
		down, right = true, true
	case DPadDown:
		down = true
	case DPadDownLeft:
		down, left = true, true
	case DPadLeft:
		left = true
	case DPadUpLeft:
		up, left = true, true
	}
	return
}

// decodeTouch reads one 4-byte touch record: id byte, then the 12-bit
// x and y coordinates packed across three bytes with a shared nibble.
func decodeTouch(b []byte) Touch {
	return Touch{
		ID:     b[0] & TouchIDMask,
		Active: b[0]&TouchInactiveMask == 0,
		X:      uint16(b[2]&0x0F)<<8 | uint16(b[1]),
		Y:      uint16(b[3])<<4 | uint16(b[2]&0xF0)>>4,
	}
}

func s16(b []byte) int16 {
	return int16(binary.LittleEndian.Uint16(b))
}
