package bluetooth

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Dial opens a connection-oriented L2CAP channel to the given PSM on
// addr. The returned stream is backed by a SOCK_SEQPACKET socket, so
// each Read yields at most one HID report.
func Dial(addr Addr, psm uint16) (io.ReadWriteCloser, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_SEQPACKET, unix.BTPROTO_L2CAP)
	if err != nil {
		return nil, fmt.Errorf("bluetooth: socket: %w", err)
	}

	sa := &unix.SockaddrL2{
		PSM:  psm,
		Addr: addr.wire(),
	}
	if err := unix.Connect(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("bluetooth: connect %s psm 0x%02x: %w", addr, psm, err)
	}

	return os.NewFile(uintptr(fd), fmt.Sprintf("l2cap:%s/0x%02x", addr, psm)), nil
}
