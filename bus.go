package cywbus

// Bus bring-up and register access follow the gSPI section of the CYW43439
// datasheet and bus.rs from embassy's cyw43 driver.

import (
	"errors"
	"io"
	"log/slog"
	"time"
)

var (
	// ErrBringup is returned when the chip fails the power-up handshake. The
	// Bus refuses further operations until a later Init succeeds.
	ErrBringup = errors.New("cywbus: bus bring-up failed")
	// ErrAddrMisaligned is returned by block backplane transfers to a non 4-byte aligned address.
	ErrAddrMisaligned = errors.New("cywbus: backplane address must be 4-byte aligned")
	// ErrTransferTooLarge is returned when a transfer does not fit in the command word length field.
	ErrTransferTooLarge = errors.New("cywbus: transfer exceeds 2047 bytes")
	// ErrUnknownCore is returned by core control methods for a Core other than CoreWLAN or CoreSOCSRAM.
	ErrUnknownCore = errors.New("cywbus: unknown core")
)

// Bus drives the gSPI protocol of a CYW43439 over a [Transport]. It keeps the
// cached backplane window and the status word of the last transaction.
// A Bus is not safe for concurrent use.
type Bus struct {
	pwr           OutputPin
	spi           Transport
	logger        *slog.Logger
	_traceenabled bool
	// sleep is time.Sleep outside of tests.
	sleep func(time.Duration)
	// backplaneWindow holds the address bits above BACKPLANE_ADDRESS_MASK
	// currently programmed into the chip.
	backplaneWindow uint32
	status          Status
	failed          bool
	// Low level buffers for readn/writen and block backplane transfers.
	rwBuf [2]uint32
	bpBuf [BACKPLANE_MAX_TRANSFER_SIZE/4 + 1]uint32
	log   logstate
}

// Config configures bus bring-up. The zero value is usable.
type Config struct {
	// EnableBluetooth also enables the F1 interrupt used by the Bluetooth HCI transport.
	EnableBluetooth bool
	// ReadyRetries bounds how many times the read-only test register is polled
	// after power up. Zero selects 128.
	ReadyRetries int
	// Logger receives bus logs. Nil disables logging.
	Logger *slog.Logger
}

// New returns a Bus that powers the chip through pwr (WL_REG_ON) and
// exchanges transactions through t. Call [Bus.Init] before use.
func New(pwr OutputPin, t Transport) *Bus {
	return &Bus{
		pwr:             pwr,
		spi:             t,
		sleep:           time.Sleep,
		backplaneWindow: backplaneWindowReset,
	}
}

// Init power cycles the chip and configures the gSPI interface for 32 bit
// words, high speed mode, status reporting and a 4 byte backplane read delay.
func (d *Bus) Init(cfg Config) (err error) {
	d.logger = cfg.Logger
	d._traceenabled = d.logenabled(levelTrace)
	d.info("Init:start")
	start := time.Now()
	d.failed = true
	d.backplaneWindow = backplaneWindowReset
	err = d.initBus(cfg)
	if err != nil {
		d.logerr("Init:failed", slog.String("err", err.Error()))
		return errors.Join(ErrBringup, err)
	}
	d.failed = false
	d.info("Init:done", slog.Duration("took", time.Since(start)))
	return nil
}

// Reset power cycles the chip by toggling WL_REG_ON.
func (d *Bus) Reset() {
	d.pwr(false)
	d.sleep(20 * time.Millisecond)
	d.pwr(true)
	d.sleep(250 * time.Millisecond)
}

func (d *Bus) initBus(cfg Config) error {
	d.Reset()
	retries := cfg.ReadyRetries
	if retries <= 0 {
		retries = 128
	}
	for {
		got, err := d.read32_swapped(REG_BUS_TEST_RO)
		if err == nil && got == FEEDBEAD {
			break
		} else if retries <= 0 {
			return errors.Join(errors.New("spi test failed:"+hex32(got)), err)
		}
		retries--
	}

	err := d.write32_swapped(REG_BUS_TEST_RW, TEST_PATTERN)
	if err != nil {
		return err
	}
	got, err := d.read32_swapped(REG_BUS_TEST_RW)
	if err != nil || got != TEST_PATTERN {
		return errors.Join(errors.New("spi test failed:"+hex32(got)+" wanted "+hex32(TEST_PATTERN)), err)
	}

	// Little endian 32 bit words. Status word appended to every transaction.
	const setupValue = WORD_LENGTH_32 | HIGH_SPEED | INTERRUPT_POLARITY_HIGH | WAKE_UP |
		BusControl(BACKPLANE_READ_PAD_SIZE)<<(8*REG_BUS_RESPONSE_DELAY) |
		BusControl(STATUS_ENABLE|INTR_WITH_STATUS)<<(8*REG_BUS_STATUS_ENABLE)

	val, err := d.read32_swapped(REG_BUS_CTRL)
	if err != nil {
		return err
	}
	err = d.write32_swapped(REG_BUS_CTRL, uint32(setupValue))
	if err != nil {
		return err
	}
	got8, err := d.read8(FuncBus, REG_BUS_CTRL)
	if err != nil {
		return err
	}
	d.debug("bus ctl", slog.String("was", hex32(val)), slog.String("wrote", hex32(uint32(setupValue))), slog.Uint64("readback", uint64(got8)))

	err = d.write8(FuncBus, REG_BUS_RESP_DELAY_F1, BACKPLANE_READ_PAD_SIZE)
	if err != nil {
		return err
	}

	got, err = d.read32(FuncBus, REG_BUS_TEST_RO)
	if err != nil || got != FEEDBEAD {
		return errors.Join(errors.New("spi RO test failed:"+hex32(got)), err)
	}
	got, err = d.read32(FuncBus, REG_BUS_TEST_RW)
	if err != nil || got != TEST_PATTERN {
		return errors.Join(errors.New("spi RW test failed:"+hex32(got)), err)
	}

	// Clear error interrupt bits left over from power up.
	err = d.write16(FuncBus, REG_BUS_INTERRUPT, uint16(IRQ_DATA_UNAVAILABLE|IRQ_COMMAND_ERROR|IRQ_DATA_ERROR|IRQ_F1_OVERFLOW))
	if err != nil {
		return err
	}
	irqs := IRQ_F2_F3_FIFO_RD_UNDERFLOW | IRQ_F2_F3_FIFO_WR_OVERFLOW |
		IRQ_COMMAND_ERROR | IRQ_DATA_ERROR | IRQ_F2_PACKET_AVAILABLE | IRQ_F1_OVERFLOW
	if cfg.EnableBluetooth {
		irqs |= IRQ_F1_INTR
	}
	return d.write16(FuncBus, REG_BUS_INTERRUPT_ENABLE, uint16(irqs))
}

// ready reports ErrBringup while the last Init has failed.
func (d *Bus) ready() error {
	if d.failed {
		return ErrBringup
	}
	return nil
}

// Status returns the status word of the last transaction.
func (d *Bus) Status() Status { return d.status }

// ReadStatus reads the status register.
func (d *Bus) ReadStatus() (Status, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	v, err := d.read32(FuncBus, REG_BUS_STATUS)
	return Status(v), err
}

// Interrupts reads the pending bus interrupts.
func (d *Bus) Interrupts() (Interrupts, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	v, err := d.read16(FuncBus, REG_BUS_INTERRUPT)
	return Interrupts(v), err
}

// ClearInterrupts acknowledges the interrupts set in irq.
func (d *Bus) ClearInterrupts(irq Interrupts) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.write16(FuncBus, REG_BUS_INTERRUPT, uint16(irq))
}

// WaitForEvent blocks until the transport reports a chip interrupt.
func (d *Bus) WaitForEvent() { d.spi.WaitForEvent() }

// WLANRead reads a packet of length bytes from the F2 FIFO into buf.
func (d *Bus) WLANRead(buf []uint32, length int) (err error) {
	if err = d.ready(); err != nil {
		return err
	}
	if length > MaxTransferSize || length < 0 {
		return ErrTransferTooLarge
	}
	lenU32 := (length + 3) / 4
	if len(buf) < lenU32 {
		return io.ErrShortBuffer
	}
	cmd := cmd_word(false, true, FuncWLAN, 0, uint32(length))
	status, err := d.spi.CmdRead(cmd, buf[:lenU32])
	d.status = Status(status)
	return err
}

// WLANWrite writes buf to the F2 FIFO.
func (d *Bus) WLANWrite(buf []uint32) (err error) {
	if err = d.ready(); err != nil {
		return err
	}
	plen := 4 * len(buf)
	if plen > MaxTransferSize {
		return ErrTransferTooLarge
	}
	cmd := cmd_word(true, true, FuncWLAN, 0, uint32(plen))
	status, err := d.spi.CmdWrite(cmd, buf)
	d.status = Status(status)
	return err
}

func (d *Bus) Read32(fn Function, addr uint32) (uint32, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	return d.read32(fn, addr)
}

func (d *Bus) Read16(fn Function, addr uint32) (uint16, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	return d.read16(fn, addr)
}

func (d *Bus) Read8(fn Function, addr uint32) (uint8, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	return d.read8(fn, addr)
}

func (d *Bus) Write32(fn Function, addr, val uint32) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.write32(fn, addr, val)
}

func (d *Bus) Write16(fn Function, addr uint32, val uint16) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.write16(fn, addr, val)
}

func (d *Bus) Write8(fn Function, addr uint32, val uint8) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.write8(fn, addr, val)
}

func (d *Bus) write32(fn Function, addr, val uint32) error {
	return d.writen(fn, addr, val, 4)
}
func (d *Bus) read32(fn Function, addr uint32) (uint32, error) {
	return d.readn(fn, addr, 4)
}
func (d *Bus) read16(fn Function, addr uint32) (uint16, error) {
	v, err := d.readn(fn, addr, 2)
	return uint16(v), err
}
func (d *Bus) read8(fn Function, addr uint32) (uint8, error) {
	v, err := d.readn(fn, addr, 1)
	return uint8(v), err
}
func (d *Bus) write16(fn Function, addr uint32, val uint16) error {
	return d.writen(fn, addr, uint32(val), 2)
}
func (d *Bus) write8(fn Function, addr uint32, val uint8) error {
	return d.writen(fn, addr, uint32(val), 1)
}

// writen is primitive SPI write function for <= 4 byte writes.
func (d *Bus) writen(fn Function, addr, val, size uint32) (err error) {
	cmd := cmd_word(true, true, fn, addr, size)
	d.rwBuf = [2]uint32{val, 0}
	status, err := d.spi.CmdWrite(cmd, d.rwBuf[:1])
	d.status = Status(status)
	return err
}

// readn is primitive SPI read function for <= 4 byte reads. Backplane reads
// are preceded by a response delay word which is discarded.
func (d *Bus) readn(fn Function, addr, size uint32) (result uint32, err error) {
	cmd := cmd_word(false, true, fn, addr, size)
	var padding uint32
	if fn == FuncBackplane {
		padding = 1
	}
	d.rwBuf = [2]uint32{}
	status, err := d.spi.CmdRead(cmd, d.rwBuf[:1+padding])
	d.status = Status(status)
	return d.rwBuf[padding], err
}

// read32_swapped reads a bus register while the chip is still in 16 bit word mode.
func (d *Bus) read32_swapped(addr uint32) (uint32, error) {
	cmd := cmd_word(false, true, FuncBus, addr, 4)
	d.rwBuf = [2]uint32{}
	status, err := d.spi.CmdRead(swap16(cmd), d.rwBuf[:1])
	d.status = Status(swap16(status))
	return swap16(d.rwBuf[0]), err
}

// write32_swapped writes a bus register while the chip is still in 16 bit word mode.
func (d *Bus) write32_swapped(addr uint32, value uint32) error {
	cmd := cmd_word(true, true, FuncBus, addr, 4)
	d.rwBuf = [2]uint32{swap16(value), 0}
	status, err := d.spi.CmdWrite(swap16(cmd), d.rwBuf[:1])
	d.status = Status(swap16(status))
	return err
}
