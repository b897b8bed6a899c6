//go:build pico && cy43nopio

package cywbus

import (
	"device"
	"errors"
	"machine"

	"tinygo.org/x/drivers"
)

var _ drivers.SPI = (*SPIbb)(nil)

// SPIbb is a dumb bit-bang implementation of SPI protocol that is hardcoded
// to mode 0. SDI and SDO may be the same pin.
type SPIbb struct {
	SCK machine.Pin
	SDI machine.Pin
	SDO machine.Pin
	// Delay is the number of nops in a quarter clock cycle.
	Delay uint32
}

// NewPicoWBus returns a Bus wired to the Raspberry Pi Pico W's on-board
// CYW43439 using a bit-banged SPI bus.
func NewPicoWBus() *Bus {
	const (
		WL_REG_ON = machine.GPIO23
		DATA_OUT  = machine.GPIO24
		DATA_IN   = DATA_OUT
		IRQ       = DATA_OUT // AKA WL_HOST_WAKE
		CLK       = machine.GPIO29
		CS        = machine.GPIO25
	)
	WL_REG_ON.Configure(machine.PinConfig{Mode: machine.PinOutput})
	CS.Configure(machine.PinConfig{Mode: machine.PinOutput})
	spi := &SPIbb{
		SCK: CLK,
		SDI: DATA_IN,
		SDO: DATA_OUT,
	}
	spi.Configure()
	t := NewSPITransport(spi, CS.Set, SPITransportConfig{
		DataDir: func(output bool) {
			if output {
				DATA_OUT.Configure(machine.PinConfig{Mode: machine.PinOutput})
			} else {
				DATA_IN.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
			}
		},
		IRQ: IRQ.Get,
	})
	return New(WL_REG_ON.Set, t)
}

// Configure sets up the SCK and SDO pins as outputs and sets them low
func (s *SPIbb) Configure() {
	s.SCK.Configure(machine.PinConfig{Mode: machine.PinOutput})
	s.SDO.Configure(machine.PinConfig{Mode: machine.PinOutput})
	if s.SDI != s.SDO {
		s.SDI.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	}
	s.SCK.Low()
	s.SDO.Low()
	if s.Delay == 0 {
		s.Delay = 1
	}
}

// Tx clocks out w while reading into r. Either may be nil; if both are set
// they must be the same length.
func (s *SPIbb) Tx(w []byte, r []byte) error {
	switch {
	case len(r) == len(w):
		for i, b := range w {
			r[i] = s.transfer(b)
		}
	case len(r) == 0:
		for _, b := range w {
			s.transfer(b)
		}
	case len(w) == 0:
		for i := range r {
			r[i] = s.transfer(0)
		}
	default:
		return errors.New("SPIbb: buffer length mismatch")
	}
	return nil
}

// Transfer sends and receives a single byte.
func (s *SPIbb) Transfer(b byte) (out byte, _ error) {
	return s.transfer(b), nil
}

//go:inline
func (s *SPIbb) transfer(b byte) (out byte) {
	for bit := 7; bit >= 0; bit-- {
		if s.bitTransfer(b&(1<<bit) != 0) {
			out |= 1 << bit
		}
	}
	return out
}

//go:inline
func (s *SPIbb) bitTransfer(b bool) bool {
	s.SDO.Set(b)
	s.delay()
	s.SCK.High()
	s.delay()
	inputBit := s.SDI.Get()
	s.delay()
	s.SCK.Low()
	s.delay()
	return inputBit
}

// delay represents a quarter of the clock cycle
//
//go:inline
func (s *SPIbb) delay() {
	for i := uint32(0); i < s.Delay; i++ {
		device.Asm("nop")
	}
}
