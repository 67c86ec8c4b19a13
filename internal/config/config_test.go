package config_test

import (
	"testing"

	"github.com/cjorgensenmd/ds4drv/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexColor(t *testing.T) {
	var c config.HexColor
	require.NoError(t, c.UnmarshalText([]byte("ff8001")))
	assert.Equal(t, config.HexColor{0xFF, 0x80, 0x01}, c)
	assert.Equal(t, "ff8001", c.String())

	require.NoError(t, c.UnmarshalText([]byte("0000FF")))
	assert.Equal(t, config.HexColor{0x00, 0x00, 0xFF}, c)

	for _, bad := range []string{"", "fff", "ff80011", "zzzzzz"} {
		assert.Error(t, c.UnmarshalText([]byte(bad)), "input %q", bad)
	}
}

func TestDefaultController(t *testing.T) {
	c := config.DefaultController()
	assert.Equal(t, config.HexColor{0x00, 0x00, 0xFF}, c.Led)
	assert.False(t, c.BatteryFlash)
	assert.False(t, c.EmulateXpad)
	assert.False(t, c.TrackpadMouse)
}

func TestControllerUnmarshalText(t *testing.T) {
	cases := []struct {
		spec string
		want config.Controller
	}{
		{spec: "", want: config.DefaultController()},
		{
			spec: "led=ff0000",
			want: config.Controller{Led: config.HexColor{0xFF, 0, 0}},
		},
		{
			spec: "led=00ff00,battery-flash,trackpad-mouse",
			want: config.Controller{
				Led:           config.HexColor{0, 0xFF, 0},
				BatteryFlash:  true,
				TrackpadMouse: true,
			},
		},
		{
			spec: "emulate-xpad",
			want: config.Controller{Led: config.HexColor{0, 0, 0xFF}, EmulateXpad: true},
		},
	}

	for _, tc := range cases {
		var c config.Controller
		require.NoError(t, c.UnmarshalText([]byte(tc.spec)), "spec %q", tc.spec)
		assert.Equal(t, tc.want, c, "spec %q", tc.spec)
	}
}

func TestControllerUnmarshalTextErrors(t *testing.T) {
	var c config.Controller
	for _, bad := range []string{"led", "led=xyz", "warp-drive", "battery-flash=yes"} {
		assert.Error(t, c.UnmarshalText([]byte(bad)), "spec %q", bad)
	}
}

func TestControllerRoundTrip(t *testing.T) {
	spec := "led=123456,battery-flash,emulate-xpad,trackpad-mouse"
	var c config.Controller
	require.NoError(t, c.UnmarshalText([]byte(spec)))
	assert.Equal(t, spec, c.String())
}
