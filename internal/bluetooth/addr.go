// Package bluetooth provides the L2CAP transport and the device
// discovery provider used to reach DualShock 4 controllers.
package bluetooth

import (
	"fmt"
	"strings"
)

// Addr is a Bluetooth device address in display byte order
// ("AA:BB:CC:DD:EE:FF" prints bytes 0 through 5).
type Addr [6]byte

// ParseAddr parses a colon-separated Bluetooth address.
func ParseAddr(s string) (Addr, error) {
	var a Addr
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return a, fmt.Errorf("bluetooth: invalid address %q", s)
	}
	for i, p := range parts {
		var b byte
		if _, err := fmt.Sscanf(p, "%02X", &b); err != nil {
			return a, fmt.Errorf("bluetooth: invalid address %q", s)
		}
		a[i] = b
	}
	return a, nil
}

func (a Addr) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
		a[0], a[1], a[2], a[3], a[4], a[5])
}

// wire returns the address in socket byte order, which is reversed
// relative to the printed form.
func (a Addr) wire() [6]byte {
	var w [6]byte
	for i := range a {
		w[i] = a[5-i]
	}
	return w
}
