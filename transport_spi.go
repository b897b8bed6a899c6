package cywbus

import (
	"encoding/binary"
	"runtime"

	"tinygo.org/x/drivers"
)

// SPITransportConfig holds optional pin hooks for [SPITransport].
type SPITransportConfig struct {
	// DataDir switches a data pin shared between SDO and SDI. It is called
	// with true before the host drives the line and false before the chip does.
	DataDir func(output bool)
	// IRQ reads the chip's host wake line. Nil makes WaitForEvent yield once and return.
	IRQ func() bool
}

// SPITransport implements [Transport] over a generic byte oriented SPI bus
// such as a hardware SPI peripheral or a bit-banged one. Words are clocked
// most significant byte first. A status word is read after every transaction.
type SPITransport struct {
	spi     drivers.SPI
	cs      OutputPin
	dataDir func(bool)
	irq     func() bool
	status  uint32
	wbuf    [4]byte
	rbuf    [4]byte
}

var _ Transport = (*SPITransport)(nil)

// NewSPITransport returns a transport over spi with active-low chip select cs.
func NewSPITransport(spi drivers.SPI, cs OutputPin, cfg SPITransportConfig) *SPITransport {
	cs(true)
	return &SPITransport{
		spi:     spi,
		cs:      cs,
		dataDir: cfg.DataDir,
		irq:     cfg.IRQ,
	}
}

func (d *SPITransport) CmdRead(cmd uint32, buf []uint32) (status uint32, err error) {
	d.csEnable(true)
	defer d.csEnable(false)
	d.setDir(true)
	_, err = d.transfer(cmd)
	if err != nil {
		return 0, err
	}
	d.setDir(false)
	for i := range buf {
		buf[i], err = d.transfer(0)
		if err != nil {
			return 0, err
		}
	}
	d.status, err = d.transfer(0)
	return d.status, err
}

func (d *SPITransport) CmdWrite(cmd uint32, buf []uint32) (status uint32, err error) {
	d.csEnable(true)
	defer d.csEnable(false)
	d.setDir(true)
	_, err = d.transfer(cmd)
	for i := 0; err == nil && i < len(buf); i++ {
		_, err = d.transfer(buf[i])
	}
	if err != nil {
		return 0, err
	}
	d.setDir(false)
	d.status, err = d.transfer(0)
	return d.status, err
}

// WaitForEvent spins until the IRQ line is high.
func (d *SPITransport) WaitForEvent() {
	if d.irq == nil {
		runtime.Gosched()
		return
	}
	for !d.irq() {
		runtime.Gosched()
	}
}

// LastStatus returns the status word read at the end of the last transaction.
func (d *SPITransport) LastStatus() Status { return Status(d.status) }

func (d *SPITransport) transfer(c uint32) (uint32, error) {
	binary.BigEndian.PutUint32(d.wbuf[:], c)
	err := d.spi.Tx(d.wbuf[:], d.rbuf[:])
	return binary.BigEndian.Uint32(d.rbuf[:]), err
}

func (d *SPITransport) csEnable(b bool) {
	d.cs(!b)
}

func (d *SPITransport) setDir(output bool) {
	if d.dataDir != nil {
		d.dataDir(output)
	}
}
