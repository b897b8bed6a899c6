//go:build pico && !cy43nopio

package cywbus

import (
	"machine"
	"runtime"

	pio "github.com/tinygo-org/pio/rp2-pio"
	"github.com/tinygo-org/pio/rp2-pio/piolib"
)

// pioTransport clocks gSPI transactions through a PIO state machine with DMA.
type pioTransport struct {
	cs  OutputPin
	irq machine.Pin
	spi *piolib.SPI3w
}

// NewPicoWBus returns a Bus wired to the Raspberry Pi Pico W's on-board CYW43439.
func NewPicoWBus() *Bus {
	// Raspberry Pi Pico W pin definitions for the CY43439.
	const (
		WL_REG_ON = machine.GPIO23
		DATA_OUT  = machine.GPIO24
		DATA_IN   = DATA_OUT
		IRQ       = DATA_OUT // AKA WL_HOST_WAKE, shared with data.
		CLK       = machine.GPIO29
		CS        = machine.GPIO25
	)
	WL_REG_ON.Configure(machine.PinConfig{Mode: machine.PinOutput})
	CS.Configure(machine.PinConfig{Mode: machine.PinOutput})
	CS.High()
	sm, err := pio.PIO0.ClaimStateMachine()
	if err != nil {
		panic(err.Error())
	}
	spi, err := piolib.NewSPI3w(sm, DATA_IN, CLK, 25000_000-1)
	if err != nil {
		panic(err.Error())
	}
	spi.EnableStatus(true)
	err = spi.EnableDMA(true)
	if err != nil {
		panic(err.Error())
	}
	return New(WL_REG_ON.Set, &pioTransport{
		cs:  CS.Set,
		irq: IRQ,
		spi: spi,
	})
}

func (d *pioTransport) CmdRead(cmd uint32, buf []uint32) (status uint32, err error) {
	d.csEnable(true)
	err = d.spi.CmdRead(cmd, buf)
	d.csEnable(false)
	return d.spi.LastStatus(), err
}

func (d *pioTransport) CmdWrite(cmd uint32, buf []uint32) (status uint32, err error) {
	d.csEnable(true)
	err = d.spi.CmdWrite(cmd, buf)
	d.csEnable(false)
	return d.spi.LastStatus(), err
}

// WaitForEvent polls the host wake line. The line is shared with the data
// pin so it is only valid while chip select is deasserted.
func (d *pioTransport) WaitForEvent() {
	for !d.irq.Get() {
		runtime.Gosched()
	}
}

func (d *pioTransport) csEnable(b bool) {
	d.cs(!b)
}
