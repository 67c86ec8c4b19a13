package supervisor

import (
	"testing"
	"time"

	"github.com/cjorgensenmd/ds4drv/device/dualshock4"
	"github.com/cjorgensenmd/ds4drv/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type controlRecorder struct {
	sent []dualshock4.Control
	err  error
}

func (c *controlRecorder) SendControl(ctrl dualshock4.Control) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, ctrl)
	return nil
}

func lowBatteryReport() *dualshock4.Report {
	return &dualshock4.Report{Battery: 1}
}

var testLed = config.HexColor{0x00, 0x00, 0xFF}

func TestFlashStartsOnLowBattery(t *testing.T) {
	var f flashState
	rec := &controlRecorder{}
	now := time.Now()

	require.NoError(t, f.evaluate(rec, testLed, lowBatteryReport(), now))

	require.Len(t, rec.sent, 1)
	c := rec.sent[0]
	assert.Equal(t, uint8(flashDuty), c.FlashOn)
	assert.Equal(t, uint8(flashDuty), c.FlashOff)
	assert.Equal(t, uint8(0xFF), c.LedBlue)
	assert.True(t, f.flashing)
	assert.Equal(t, now, f.lastFlash)
}

func TestNoFlashWhenChargingOrHealthy(t *testing.T) {
	cases := []*dualshock4.Report{
		{Battery: 1, Charging: true},
		{Battery: 2},
		{Battery: 15, Charging: true},
	}
	for _, r := range cases {
		var f flashState
		rec := &controlRecorder{}
		require.NoError(t, f.evaluate(rec, testLed, r, time.Now()))
		assert.Empty(t, rec.sent, "battery=%d charging=%v", r.Battery, r.Charging)
		assert.False(t, f.flashing)
	}
}

func TestFlashStopsAfterDuration(t *testing.T) {
	start := time.Now()
	f := flashState{flashing: true, lastFlash: start}
	rec := &controlRecorder{}

	// Too early: stays flashing, nothing sent.
	require.NoError(t, f.evaluate(rec, testLed, lowBatteryReport(), start.Add(flashDuration-time.Second)))
	assert.Empty(t, rec.sent)
	assert.True(t, f.flashing)

	// Past the burst: flash disabled, then steady color re-sent.
	require.NoError(t, f.evaluate(rec, testLed, lowBatteryReport(), start.Add(flashDuration+time.Second)))
	require.Len(t, rec.sent, 2)
	assert.Equal(t, dualshock4.Control{}, rec.sent[0])
	assert.Equal(t, dualshock4.LedColor(testLed), rec.sent[1])
	assert.False(t, f.flashing)
}

func TestFlashRateLimited(t *testing.T) {
	start := time.Now()
	f := flashState{lastFlash: start}
	rec := &controlRecorder{}

	// Last flash started recently: no new burst yet.
	require.NoError(t, f.evaluate(rec, testLed, lowBatteryReport(), start.Add(30*time.Second)))
	assert.Empty(t, rec.sent)

	// A minute later the next burst starts.
	require.NoError(t, f.evaluate(rec, testLed, lowBatteryReport(), start.Add(flashInterval)))
	require.Len(t, rec.sent, 1)
	assert.True(t, f.flashing)
}
