package cywbus

import (
	"encoding/binary"
	"errors"
	"time"
)

var errInjected = errors.New("injected transport failure")

// tx is a transaction seen by fakeChip, with the command already unswapped.
type tx struct {
	Cmd  Cmd
	Data []uint32 // copy of written words, nil for reads.
}

// fakeChip emulates the gSPI side of a CYW43439: the F0 bus registers,
// the backplane window registers and a sparse backplane memory.
type fakeChip struct {
	powered bool
	// swapped is set while the chip is in 16 bit word mode after power up.
	swapped bool
	// roBroken makes TEST_RO read back as zero.
	roBroken bool
	f0       [0x20]byte
	window   uint32
	mem      map[uint32]byte
	wlan     []byte
	status   uint32
	txs      []tx
	// failNext fails the next n transactions.
	failNext int
	events   int
}

func newFakeChip() *fakeChip {
	c := &fakeChip{mem: make(map[uint32]byte)}
	c.powerOn()
	return c
}

func (c *fakeChip) powerOn() {
	c.swapped = true
	c.window = 0
	c.f0 = [0x20]byte{}
	binary.LittleEndian.PutUint32(c.f0[REG_BUS_TEST_RO:], FEEDBEAD)
	binary.LittleEndian.PutUint16(c.f0[REG_BUS_INTERRUPT:], uint16(IRQ_DATA_UNAVAILABLE|IRQ_COMMAND_ERROR))
}

func (c *fakeChip) pwr(level bool) {
	if level && !c.powered {
		c.powerOn()
	}
	c.powered = level
}

// newTestBus returns a Bus over a fresh fakeChip with sleeps disabled.
func newTestBus() (*Bus, *fakeChip) {
	chip := newFakeChip()
	bus := New(chip.pwr, chip)
	bus.sleep = func(time.Duration) {}
	return bus, chip
}

func (c *fakeChip) unswap(v uint32) uint32 {
	if c.swapped {
		return swap16(v)
	}
	return v
}

func (c *fakeChip) begin(cmd uint32, data []uint32) (Cmd, error) {
	cm := DecodeCmd(c.unswap(cmd))
	c.txs = append(c.txs, tx{Cmd: cm, Data: append([]uint32(nil), data...)})
	if c.failNext > 0 {
		c.failNext--
		return cm, errInjected
	}
	return cm, nil
}

func (c *fakeChip) CmdRead(cmd uint32, buf []uint32) (uint32, error) {
	cm, err := c.begin(cmd, nil)
	if err != nil {
		return 0, err
	}
	switch cm.Fn {
	case FuncBus:
		buf[0] = c.unswap(c.readF0(cm.Addr))
	case FuncBackplane:
		buf[0] = 0xdeadbeef // response delay padding.
		var b [BACKPLANE_MAX_TRANSFER_SIZE + 4]byte
		if cm.Addr >= 0x10000 {
			b[0] = c.readF1(cm.Addr)
		} else {
			base := c.window | cm.Addr&BACKPLANE_ADDRESS_MASK
			for i := uint32(0); i < cm.Size && i < uint32(len(b)); i++ {
				b[i] = c.mem[base+i]
			}
		}
		for i := 1; i < len(buf); i++ {
			buf[i] = binary.LittleEndian.Uint32(b[4*(i-1):])
		}
	case FuncWLAN:
		data := c.wlan[:min(len(c.wlan), int(cm.Size))]
		c.wlan = c.wlan[len(data):]
		for i := range buf {
			var b [4]byte
			n := copy(b[:], data)
			data = data[n:]
			buf[i] = binary.LittleEndian.Uint32(b[:])
		}
	}
	return c.unswap(c.status), nil
}

func (c *fakeChip) CmdWrite(cmd uint32, buf []uint32) (uint32, error) {
	cm, err := c.begin(cmd, buf)
	if err != nil {
		return 0, err
	}
	switch cm.Fn {
	case FuncBus:
		c.writeF0(cm.Addr, c.unswap(buf[0]), cm.Size)
	case FuncBackplane:
		if cm.Addr >= 0x10000 {
			c.writeF1(cm.Addr, uint8(buf[0]))
			break
		}
		base := c.window | cm.Addr&BACKPLANE_ADDRESS_MASK
		var b [4]byte
		for i := uint32(0); i < cm.Size; i++ {
			if i%4 == 0 {
				binary.LittleEndian.PutUint32(b[:], buf[i/4])
			}
			c.mem[base+i] = b[i%4]
		}
	case FuncWLAN:
		var b [4]byte
		for _, w := range buf {
			binary.LittleEndian.PutUint32(b[:], w)
			c.wlan = append(c.wlan, b[:]...)
		}
		c.wlan = c.wlan[:len(c.wlan)-4*len(buf)+int(cm.Size)]
	}
	return c.unswap(c.status), nil
}

func (c *fakeChip) WaitForEvent() { c.events++ }

func (c *fakeChip) readF0(addr uint32) uint32 {
	if addr+4 > uint32(len(c.f0)) {
		return 0
	}
	if addr == REG_BUS_TEST_RO && c.roBroken {
		return 0
	}
	return binary.LittleEndian.Uint32(c.f0[addr:])
}

func (c *fakeChip) writeF0(addr, val, size uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], val)
	for i := uint32(0); i < size && addr+i < uint32(len(c.f0)); i++ {
		a := addr + i
		switch {
		case a >= REG_BUS_TEST_RO && a < REG_BUS_TEST_RO+4:
			// Read only.
		case a == REG_BUS_INTERRUPT || a == REG_BUS_INTERRUPT+1:
			c.f0[a] &^= b[i]
		default:
			c.f0[a] = b[i]
		}
	}
	if addr == REG_BUS_CTRL && BusControl(val)&WORD_LENGTH_32 != 0 {
		c.swapped = false
	}
}

func (c *fakeChip) readF1(addr uint32) uint8 {
	switch addr {
	case REG_BACKPLANE_BACKPLANE_ADDRESS_LOW:
		return uint8(c.window >> 8)
	case REG_BACKPLANE_BACKPLANE_ADDRESS_MID:
		return uint8(c.window >> 16)
	case REG_BACKPLANE_BACKPLANE_ADDRESS_HIGH:
		return uint8(c.window >> 24)
	}
	return 0
}

func (c *fakeChip) writeF1(addr uint32, val uint8) {
	var shift uint32
	switch addr {
	case REG_BACKPLANE_BACKPLANE_ADDRESS_LOW:
		shift = 8
	case REG_BACKPLANE_BACKPLANE_ADDRESS_MID:
		shift = 16
	case REG_BACKPLANE_BACKPLANE_ADDRESS_HIGH:
		shift = 24
	default:
		return
	}
	c.window = c.window&^(0xff<<shift) | uint32(val)<<shift
}

// setMem writes b directly into backplane memory.
func (c *fakeChip) setMem(addr uint32, b []byte) {
	for i := range b {
		c.mem[addr+uint32(i)] = b[i]
	}
}

func (c *fakeChip) setMem32(addr, val uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], val)
	c.setMem(addr, b[:])
}

// windowWrites returns the backplane window register writes since the
// transaction at index start.
func (c *fakeChip) windowWrites(start int) (addrs []uint32) {
	for _, t := range c.txs[start:] {
		if t.Cmd.Write && t.Cmd.Fn == FuncBackplane &&
			t.Cmd.Addr >= REG_BACKPLANE_BACKPLANE_ADDRESS_LOW && t.Cmd.Addr <= REG_BACKPLANE_BACKPLANE_ADDRESS_HIGH {
			addrs = append(addrs, t.Cmd.Addr)
		}
	}
	return addrs
}
