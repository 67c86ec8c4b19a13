package dualshock4

// DeviceName is the Bluetooth device name the controller advertises.
const DeviceName = "Wireless Controller"

// L2CAP PSMs for the HID profile. The control channel carries output
// reports, the interrupt channel streams input reports.
const (
	PSMHIDControl   = 0x11
	PSMHIDInterrupt = 0x13
)

// HIDP transaction header constants.
const (
	TransSetReport  = 0x50
	DataRTypeOutput = 0x02
)

const (
	// InputReportSize is the full Bluetooth input report, including the
	// one-byte transport header. Anything shorter is a simplified HID
	// report and is discarded.
	InputReportSize = 79

	// OutputPayloadSize is the output report payload, not counting the
	// HIDP transaction byte that precedes it on the wire.
	OutputPayloadSize = 78
)

// Input report byte offsets.
const (
	OffLeftAnalogX  = 4
	OffLeftAnalogY  = 5
	OffRightAnalogX = 6
	OffRightAnalogY = 7
	OffButtons1     = 8 // dpad nibble + face buttons
	OffButtons2     = 9
	OffButtons3     = 10 // PS/trackpad + report counter
	OffL2Analog     = 11
	OffR2Analog     = 12
	OffMotion       = 16 // three s16le: motion Y, X, Z
	OffOrientation  = 22 // three s16le: roll (negated), yaw, pitch
	OffBattery      = 33
	OffTouch0       = 38 // 4 bytes per touch point
	OffTouch1       = 42
)

// Byte 8 face button masks (high nibble; low nibble is the dpad).
const (
	MaskSquare   = 0x10
	MaskCross    = 0x20
	MaskCircle   = 0x40
	MaskTriangle = 0x80

	DPadMask = 0x0F
)

// Byte 9 button masks.
const (
	MaskL1      = 0x01
	MaskR1      = 0x02
	MaskL2      = 0x04
	MaskR2      = 0x08
	MaskShare   = 0x10
	MaskOptions = 0x20
	MaskL3      = 0x40
	MaskR3      = 0x80
)

// Byte 10 masks; the remaining six bits are a rolling report counter.
const (
	MaskPS       = 0x01
	MaskTrackpad = 0x02

	CounterShift = 2
)

// DPad nibble values, clockwise from 12 o'clock. 8 is neutral.
const (
	DPadUp        = 0x00
	DPadUpRight   = 0x01
	DPadRight     = 0x02
	DPadDownRight = 0x03
	DPadDown      = 0x04
	DPadDownLeft  = 0x05
	DPadLeft      = 0x06
	DPadUpLeft    = 0x07
	DPadNeutral   = 0x08
)

// Touch point layout: id byte, then x low byte, shared nibble byte, y
// high byte. The top bit of the id byte is set while the finger is up.
const (
	TouchIDMask       = 0x7F
	TouchInactiveMask = 0x80
)

// Battery byte: charge level 0-15 in the low nibble, charging bit above.
const (
	BatteryLevelMask    = 0x0F
	BatteryChargingFlag = 0x10
)

// Output report payload offsets, relative to the payload start.
// Bytes 0, 1 and 3 carry fixed values the firmware insists on.
const (
	OutOffsetHeader      = 0 // always 0x11
	OutOffsetPoll        = 1 // always 0x80
	OutOffsetEnable      = 3 // always 0xFF
	OutOffsetRumbleBig   = 6
	OutOffsetRumbleSmall = 7
	OutOffsetLedRed      = 8
	OutOffsetLedGreen    = 9
	OutOffsetLedBlue     = 10
	OutOffsetFlashOn     = 11 // bright time, 255 = 2.5 seconds
	OutOffsetFlashOff    = 12 // dark time, 255 = 2.5 seconds
)

const (
	OutHeaderByte = 0x11
	OutPollByte   = 0x80
	OutEnableByte = 0xFF
)

// Default LED color (blue), matching the stock controller behavior.
const (
	DefaultLedRed   = 0x00
	DefaultLedGreen = 0x00
	DefaultLedBlue  = 0xFF
)
