// Package uinput creates persistent virtual input devices through the
// Linux uinput interface and replays decoded controller reports into
// them.
package uinput

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const devicePath = "/dev/uinput"

// ioctl request numbers from uinput.h.
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetRelBit  = 0x40045566
	uiSetAbsBit  = 0x40045567
)

const (
	maxNameSize = 80
	absSize     = 64
)

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// userDev mirrors struct uinput_user_dev from uinput.h.
type userDev struct {
	Name       [maxNameSize]byte
	ID         inputID
	EffectsMax uint32
	Absmax     [absSize]int32
	Absmin     [absSize]int32
	Absfuzz    [absSize]int32
	Absflat    [absSize]int32
}

// inputEvent mirrors struct input_event from input.h.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Device is one created uinput device node.
type Device struct {
	f *os.File
}

// deviceSpec describes what a new device can emit.
type deviceSpec struct {
	name    string
	id      inputID
	keys    []uint16
	rels    []uint16
	axes    []Axis
	hatAxes []uint16
}

// createDevice registers a new virtual device with the kernel.
func createDevice(spec deviceSpec) (*Device, error) {
	f, err := os.OpenFile(devicePath, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("uinput: open %s: %w", devicePath, err)
	}

	fail := func(err error) (*Device, error) {
		_ = f.Close()
		return nil, err
	}

	if err := ioctl(f, uiSetEvBit, evSyn); err != nil {
		return fail(err)
	}
	if len(spec.keys) > 0 {
		if err := ioctl(f, uiSetEvBit, evKey); err != nil {
			return fail(err)
		}
		for _, code := range spec.keys {
			if err := ioctl(f, uiSetKeyBit, uintptr(code)); err != nil {
				return fail(err)
			}
		}
	}
	if len(spec.rels) > 0 {
		if err := ioctl(f, uiSetEvBit, evRel); err != nil {
			return fail(err)
		}
		for _, code := range spec.rels {
			if err := ioctl(f, uiSetRelBit, uintptr(code)); err != nil {
				return fail(err)
			}
		}
	}

	var dev userDev
	copy(dev.Name[:maxNameSize-1], spec.name)
	dev.ID = spec.id

	if len(spec.axes) > 0 || len(spec.hatAxes) > 0 {
		if err := ioctl(f, uiSetEvBit, evAbs); err != nil {
			return fail(err)
		}
		for _, a := range spec.axes {
			if err := ioctl(f, uiSetAbsBit, uintptr(a.Code)); err != nil {
				return fail(err)
			}
			dev.Absmin[a.Code] = a.Min
			dev.Absmax[a.Code] = a.Max
		}
		for _, code := range spec.hatAxes {
			if err := ioctl(f, uiSetAbsBit, uintptr(code)); err != nil {
				return fail(err)
			}
			dev.Absmin[code] = -1
			dev.Absmax[code] = 1
		}
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &dev); err != nil {
		return fail(fmt.Errorf("uinput: encode device setup: %w", err))
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		return fail(fmt.Errorf("uinput: device setup: %w", err))
	}

	if err := ioctl(f, uiDevCreate, 0); err != nil {
		return fail(fmt.Errorf("uinput: create device %q: %w", spec.name, err))
	}

	return &Device{f: f}, nil
}

// Emit queues one event. Events are not visible to readers until Syn.
func (d *Device) Emit(typ, code uint16, value int32) error {
	ev := inputEvent{Type: typ, Code: code, Value: value}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &ev); err != nil {
		return fmt.Errorf("uinput: encode event: %w", err)
	}
	if _, err := d.f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("uinput: write event: %w", err)
	}
	return nil
}

// Syn flushes queued events as one synchronized update.
func (d *Device) Syn() error {
	return d.Emit(evSyn, synReport, 0)
}

// Close destroys the virtual device.
func (d *Device) Close() error {
	err := ioctl(d.f, uiDevDestroy, 0)
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func ioctl(f *os.File, req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, arg)
	if errno != 0 {
		return fmt.Errorf("uinput: ioctl 0x%x: %w", req, errno)
	}
	return nil
}
