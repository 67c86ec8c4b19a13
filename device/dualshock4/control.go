package dualshock4

// Control holds the output report parameters: rumble motors, LED color
// and LED flash timing. The zero value turns everything off.
type Control struct {
	RumbleBig   uint8
	RumbleSmall uint8
	LedRed      uint8
	LedGreen    uint8
	LedBlue     uint8
	FlashOn     uint8 // bright time, 255 = 2.5 seconds
	FlashOff    uint8 // dark time, 255 = 2.5 seconds
}

// LedColor returns a Control that sets a steady LED color.
func LedColor(rgb [3]uint8) Control {
	return Control{LedRed: rgb[0], LedGreen: rgb[1], LedBlue: rgb[2]}
}

// Encode produces the full control-channel packet: the HIDP SET_REPORT
// transaction byte followed by the fixed-size output payload. The
// constants at payload offsets 0, 1 and 3 are required by the firmware;
// packets without them are silently dropped by the controller.
func (c Control) Encode() []byte {
	pkt := make([]byte, 1+OutputPayloadSize)
	pkt[0] = TransSetReport | DataRTypeOutput

	payload := pkt[1:]
	payload[OutOffsetHeader] = OutHeaderByte
	payload[OutOffsetPoll] = OutPollByte
	payload[OutOffsetEnable] = OutEnableByte

	payload[OutOffsetRumbleBig] = c.RumbleBig
	payload[OutOffsetRumbleSmall] = c.RumbleSmall

	payload[OutOffsetLedRed] = c.LedRed
	payload[OutOffsetLedGreen] = c.LedGreen
	payload[OutOffsetLedBlue] = c.LedBlue

	payload[OutOffsetFlashOn] = c.FlashOn
	payload[OutOffsetFlashOff] = c.FlashOff

	return pkt
}
