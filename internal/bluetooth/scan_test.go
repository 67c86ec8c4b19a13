package bluetooth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddr(t *testing.T) {
	a, err := ParseAddr("01:23:45:67:89:AB")
	require.NoError(t, err)
	assert.Equal(t, Addr{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB}, a)
	assert.Equal(t, "01:23:45:67:89:AB", a.String())

	for _, bad := range []string{"", "01:23", "01:23:45:67:89:AB:CD", "zz:23:45:67:89:ab"} {
		_, err := ParseAddr(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestAddrWireOrder(t *testing.T) {
	a := Addr{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB}
	assert.Equal(t, [6]byte{0xAB, 0x89, 0x67, 0x45, 0x23, 0x01}, a.wire())
}

func TestParseScanOutput(t *testing.T) {
	out := []byte("Scanning ...\n" +
		"\t01:23:45:67:89:AB\tWireless Controller\n" +
		"\tAA:BB:CC:DD:EE:FF\tSome Headset\n" +
		"garbage line without tabs\n")

	devices := parseScanOutput(out)
	require.Len(t, devices, 2)
	assert.Equal(t, "Wireless Controller", devices[0].Name)
	assert.Equal(t, "01:23:45:67:89:AB", devices[0].Addr.String())
	assert.Equal(t, "Some Headset", devices[1].Name)
}

func TestParseScanOutputEmpty(t *testing.T) {
	assert.Empty(t, parseScanOutput([]byte("Scanning ...\n")))
	assert.Empty(t, parseScanOutput(nil))
}
