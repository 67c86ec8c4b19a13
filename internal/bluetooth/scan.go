package bluetooth

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrScannerMissing means the scan executable is not installed.
	ErrScannerMissing = errors.New("bluetooth: scan tool not found")

	// ErrScanFailed means the scan tool ran but reported a failure,
	// usually because the bluetooth adapter is down.
	ErrScanFailed = errors.New("bluetooth: scan failed")
)

// Device is one discovery result.
type Device struct {
	Addr Addr
	Name string
}

// Scanner enumerates nearby Bluetooth devices. Implementations block
// for the duration of one inquiry.
type Scanner interface {
	Scan(ctx context.Context) ([]Device, error)
}

// HCIScanner shells out to hcitool for device inquiry.
type HCIScanner struct {
	// Path overrides the hcitool binary location. Empty means $PATH lookup.
	Path string
}

func (s *HCIScanner) Scan(ctx context.Context) ([]Device, error) {
	tool := s.Path
	if tool == "" {
		tool = "hcitool"
	}

	out, err := exec.CommandContext(ctx, tool, "scan").Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrScannerMissing, err)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %v", ErrScanFailed, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}

	return parseScanOutput(out), nil
}

// parseScanOutput parses hcitool scan output: a header line followed by
// tab-separated address/name records. Malformed lines are skipped.
func parseScanOutput(out []byte) []Device {
	var devices []Device

	sc := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			// "Scanning ..." header
			first = false
			continue
		}

		fields := strings.Split(strings.TrimLeft(line, "\t "), "\t")
		if len(fields) < 2 {
			continue
		}
		addr, err := ParseAddr(fields[0])
		if err != nil {
			continue
		}
		devices = append(devices, Device{Addr: addr, Name: fields[1]})
	}
	return devices
}
