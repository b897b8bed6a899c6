package cywbus

import (
	"encoding/binary"
	"errors"
	"log/slog"
)

// Firmware console location. The firmware stores a pointer to its shared
// memory structure in the last word of RAM below the SRAM save area.
const (
	chipRAMSize     = 512 * 1024
	socramSRMemSize = 64 * 1024
	sharedAddrPtr   = chipRAMSize - 4 - socramSRMemSize
	consoleRingSize = 0x400
)

var errLogNotInit = errors.New("cywbus: firmware log not initialized")

// sharedMem is the firmware's debug shared memory header, size 32.
type sharedMem struct {
	flags            uint32 // offset 0x00
	trap_addr        uint32 // offset 0x04
	assert_exp_addr  uint32 // offset 0x08
	assert_file_addr uint32 // offset 0x0c
	assert_line      uint32 // offset 0x10
	console_addr     uint32 // offset 0x14
	msgtrace_addr    uint32 // offset 0x18
	fwid             uint32 // offset 0x1c
}

func decodeSharedMem(order binary.ByteOrder, buf []byte) (s sharedMem) {
	s.flags = order.Uint32(buf[0:4])
	s.trap_addr = order.Uint32(buf[4:8])
	s.assert_exp_addr = order.Uint32(buf[8:12])
	s.assert_file_addr = order.Uint32(buf[12:16])
	s.assert_line = order.Uint32(buf[16:20])
	s.console_addr = order.Uint32(buf[20:24])
	s.msgtrace_addr = order.Uint32(buf[24:28])
	s.fwid = order.Uint32(buf[28:32])
	return s
}

// sharedMemLog has size 4*4=16
type sharedMemLog struct {
	buf     uint32
	bufSize uint32
	idx     uint32
	outIdx  uint32
}

func decodeSharedMemLog(order binary.ByteOrder, buf []byte) (s sharedMemLog) {
	s.buf = order.Uint32(buf[0:4])
	s.bufSize = order.Uint32(buf[4:8])
	s.idx = order.Uint32(buf[8:12])
	s.outIdx = order.Uint32(buf[12:16])
	return s
}

type logstate struct {
	addr     uint32
	last_idx uint32
	buf      [256]byte
	bufcount uint32
	ring     [consoleRingSize]byte
}

// FirmwareLogInit locates the firmware console in chip RAM. Must be called
// after firmware is running and before [Bus.FirmwareLogRead].
func (d *Bus) FirmwareLogInit() error {
	if err := d.ready(); err != nil {
		return err
	}
	d.trace("log_init")
	sharedAddr, err := d.backplane_readn(sharedAddrPtr, 4)
	if err != nil {
		return err
	}
	var shared [32]byte
	err = d.BackplaneRead(sharedAddr, shared[:])
	if err != nil {
		return err
	}
	smem := decodeSharedMem(binary.LittleEndian, shared[:])
	d.log.addr = smem.console_addr + 8
	d.log.last_idx = 0
	d.log.bufcount = 0
	d.debug("firmware log",
		slog.String("shared", hex32(sharedAddr)),
		slog.String("console", hex32(d.log.addr)),
		slog.Uint64("fwid", uint64(smem.fwid)),
	)
	return nil
}

// FirmwareLogRead reads new console output from the chip and logs every
// complete line at the device log level.
func (d *Bus) FirmwareLogRead() error {
	if err := d.ready(); err != nil {
		return err
	}
	if d.log.addr == 0 {
		return errLogNotInit
	}
	var hdr [16]byte
	err := d.BackplaneRead(d.log.addr, hdr[:])
	if err != nil {
		return err
	}
	smem := decodeSharedMemLog(binary.LittleEndian, hdr[:])
	idx := smem.idx
	if idx == d.log.last_idx {
		return nil // Pointer not moved, nothing to do.
	}
	ringSize := min(smem.bufSize, consoleRingSize)
	if idx >= ringSize || d.log.last_idx >= ringSize {
		return errors.New("cywbus: firmware log index out of range")
	}
	ring := d.log.ring[:ringSize]
	err = d.BackplaneRead(smem.buf, ring)
	if err != nil {
		return err
	}

	for d.log.last_idx != idx {
		b := ring[d.log.last_idx]
		if b == '\r' || b == '\n' {
			if d.log.bufcount != 0 {
				d.logattrs(deviceLevel, string(d.log.buf[:d.log.bufcount]))
				d.log.bufcount = 0
			}
		} else if d.log.bufcount < uint32(len(d.log.buf)) {
			d.log.buf[d.log.bufcount] = b
			d.log.bufcount++
		}
		d.log.last_idx++
		if d.log.last_idx == ringSize {
			d.log.last_idx = 0
		}
	}
	return nil
}
