package cywbus

import (
	"encoding/binary"
	"log/slog"
)

// BackplaneRead reads len(data) bytes of chip memory starting at addr. The
// transfer is split so no transaction exceeds 64 bytes or crosses a window boundary.
func (d *Bus) BackplaneRead(addr uint32, data []byte) (err error) {
	if err = d.ready(); err != nil {
		return err
	}
	if !isaligned(addr, 4) {
		return ErrAddrMisaligned
	}
	buf := d.bpBuf[:]
	for len(data) > 0 {
		// Calculate address and length of next read.
		windowOffset := addr & BACKPLANE_ADDRESS_MASK
		windowRemaining := BACKPLANE_WINDOW_SIZE - windowOffset
		lenBytes := min(uint32(len(data)), BACKPLANE_MAX_TRANSFER_SIZE, windowRemaining)

		err = d.backplane_setwindow(addr)
		if err != nil {
			return err
		}
		cmd := cmd_word(false, true, FuncBackplane, windowOffset, lenBytes)

		// round `buf` to word boundary, add one extra word for the response delay.
		nw := alignup(lenBytes, 4) / 4
		var status uint32
		status, err = d.spi.CmdRead(cmd, buf[:nw+1])
		d.status = Status(status)
		if err != nil {
			return err
		}
		// when writing out the data, we skip the response-delay *word* (4 bytes).
		wordsToBytes(data[:lenBytes], buf[1:nw+1])
		addr += lenBytes
		data = data[lenBytes:]
	}
	return nil
}

// BackplaneWrite writes data to chip memory starting at addr.
func (d *Bus) BackplaneWrite(addr uint32, data []byte) (err error) {
	if err = d.ready(); err != nil {
		return err
	}
	if !isaligned(addr, 4) {
		return ErrAddrMisaligned
	}
	if d._traceenabled {
		d.trace("bp_write", slog.Uint64("addr", uint64(addr)), slog.Int("len", len(data)))
	}
	buf := d.bpBuf[:]
	for len(data) > 0 {
		// Calculate address and length of next write to ensure transfer doesn't cross a window boundary.
		windowOffset := addr & BACKPLANE_ADDRESS_MASK
		windowRemaining := BACKPLANE_WINDOW_SIZE - windowOffset
		length := min(uint32(len(data)), BACKPLANE_MAX_TRANSFER_SIZE, windowRemaining)
		nw := alignup(length, 4) / 4
		bytesToWords(buf[:nw], data[:length])

		err = d.backplane_setwindow(addr)
		if err != nil {
			return err
		}
		cmd := cmd_word(true, true, FuncBackplane, windowOffset, length)
		var status uint32
		status, err = d.spi.CmdWrite(cmd, buf[:nw])
		d.status = Status(status)
		if err != nil {
			return err
		}
		addr += length
		data = data[length:]
	}
	return nil
}

func (d *Bus) BackplaneRead8(addr uint32) (uint8, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	v, err := d.backplane_readn(addr, 1)
	return uint8(v), err
}

func (d *Bus) BackplaneRead16(addr uint32) (uint16, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	v, err := d.backplane_readn(addr, 2)
	return uint16(v), err
}

func (d *Bus) BackplaneRead32(addr uint32) (uint32, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	return d.backplane_readn(addr, 4)
}

func (d *Bus) BackplaneWrite8(addr uint32, val uint8) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.backplane_writen(addr, uint32(val), 1)
}

func (d *Bus) BackplaneWrite16(addr uint32, val uint16) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.backplane_writen(addr, uint32(val), 2)
}

func (d *Bus) BackplaneWrite32(addr, val uint32) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.backplane_writen(addr, val, 4)
}

func (d *Bus) backplane_readn(addr, size uint32) (uint32, error) {
	err := d.backplane_setwindow(addr)
	if err != nil {
		return 0, err
	}
	addr &= BACKPLANE_ADDRESS_MASK
	if size == 4 {
		addr |= BACKPLANE_ADDRESS_32BIT_FLAG
	}
	return d.readn(FuncBackplane, addr, size)
}

func (d *Bus) backplane_writen(addr, val, size uint32) error {
	err := d.backplane_setwindow(addr)
	if err != nil {
		return err
	}
	addr &= BACKPLANE_ADDRESS_MASK
	if size == 4 {
		addr |= BACKPLANE_ADDRESS_32BIT_FLAG
	}
	return d.writen(FuncBackplane, addr, val, size)
}

// backplane_setwindow maps the window containing addr. Only window address
// bytes that differ from the cached window are written, high byte first.
func (d *Bus) backplane_setwindow(addr uint32) (err error) {
	currentWindow := d.backplaneWindow
	addr = addr &^ BACKPLANE_ADDRESS_MASK
	if addr == currentWindow {
		return nil
	}
	if (addr & 0xff000000) != currentWindow&0xff000000 {
		err = d.write8(FuncBackplane, REG_BACKPLANE_BACKPLANE_ADDRESS_HIGH, uint8(addr>>24))
	}
	if err == nil && (addr&0x00ff0000) != currentWindow&0x00ff0000 {
		err = d.write8(FuncBackplane, REG_BACKPLANE_BACKPLANE_ADDRESS_MID, uint8(addr>>16))
	}
	if err == nil && (addr&0x0000ff00) != currentWindow&0x0000ff00 {
		err = d.write8(FuncBackplane, REG_BACKPLANE_BACKPLANE_ADDRESS_LOW, uint8(addr>>8))
	}
	if err != nil {
		// Chip state unknown, force a full reprogram on next access.
		d.backplaneWindow = backplaneWindowReset
		return err
	}
	if d._traceenabled {
		d.trace("setwindow", slog.String("old", hex32(currentWindow)), slog.String("new", hex32(addr)))
	}
	d.backplaneWindow = addr
	return nil
}

// wordsToBytes copies the little endian byte image of src into dst.
// src must hold at least len(dst) bytes.
func wordsToBytes(dst []byte, src []uint32) {
	var w [4]byte
	for i := 0; len(dst) > 0; i++ {
		binary.LittleEndian.PutUint32(w[:], src[i])
		n := copy(dst, w[:])
		dst = dst[n:]
	}
}

// bytesToWords packs src into dst as little endian words, zero padding the last word.
func bytesToWords(dst []uint32, src []byte) {
	for i := range dst {
		var w [4]byte
		if 4*i < len(src) {
			copy(w[:], src[4*i:])
		}
		dst[i] = binary.LittleEndian.Uint32(w[:])
	}
}
