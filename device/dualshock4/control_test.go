package dualshock4_test

import (
	"testing"

	"github.com/cjorgensenmd/ds4drv/device/dualshock4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeZeroControl(t *testing.T) {
	pkt := dualshock4.Control{}.Encode()
	require.Len(t, pkt, 1+dualshock4.OutputPayloadSize)

	assert.Equal(t, uint8(dualshock4.TransSetReport|dualshock4.DataRTypeOutput), pkt[0])

	payload := pkt[1:]
	for i, b := range payload {
		switch i {
		case dualshock4.OutOffsetHeader:
			assert.Equal(t, uint8(dualshock4.OutHeaderByte), b)
		case dualshock4.OutOffsetPoll:
			assert.Equal(t, uint8(dualshock4.OutPollByte), b)
		case dualshock4.OutOffsetEnable:
			assert.Equal(t, uint8(dualshock4.OutEnableByte), b)
		default:
			assert.Zero(t, b, "payload byte %d", i)
		}
	}
}

func TestEncodeControlFields(t *testing.T) {
	c := dualshock4.Control{
		RumbleBig:   0x40,
		RumbleSmall: 0x20,
		LedRed:      0xFF,
		LedGreen:    0x80,
		LedBlue:     0x01,
		FlashOn:     30,
		FlashOff:    30,
	}
	payload := c.Encode()[1:]

	assert.Equal(t, uint8(0x40), payload[dualshock4.OutOffsetRumbleBig])
	assert.Equal(t, uint8(0x20), payload[dualshock4.OutOffsetRumbleSmall])
	assert.Equal(t, uint8(0xFF), payload[dualshock4.OutOffsetLedRed])
	assert.Equal(t, uint8(0x80), payload[dualshock4.OutOffsetLedGreen])
	assert.Equal(t, uint8(0x01), payload[dualshock4.OutOffsetLedBlue])
	assert.Equal(t, uint8(30), payload[dualshock4.OutOffsetFlashOn])
	assert.Equal(t, uint8(30), payload[dualshock4.OutOffsetFlashOff])
}

func TestLedColor(t *testing.T) {
	c := dualshock4.LedColor([3]uint8{0x10, 0x20, 0x30})
	assert.Equal(t, dualshock4.Control{LedRed: 0x10, LedGreen: 0x20, LedBlue: 0x30}, c)
	assert.Zero(t, c.FlashOn)
	assert.Zero(t, c.FlashOff)
}
