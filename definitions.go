package cywbus

import "strings"

// Function selects one of the gSPI function spaces. Encoded in bits 29:28 of
// the command word.
type Function uint32

const (
	// All SPI-specific registers.
	FuncBus Function = 0b00
	// Registers and memories belonging to other blocks in the chip (64 bytes max).
	FuncBackplane Function = 0b01
	// DMA channel 1. WLAN packets up to 2048 bytes.
	FuncWLAN Function = 0b10
	// DMA channel 2. Used by the Bluetooth HCI transport on some chips.
	FuncBT Function = 0b11
)

func (f Function) String() (s string) {
	switch f {
	case FuncBus:
		s = "bus"
	case FuncBackplane:
		s = "backplane"
	case FuncWLAN:
		s = "wlan"
	case FuncBT:
		s = "bt"
	default:
		s = "unknown"
	}
	return s
}

// Bus function (F0) registers.
const (
	REG_BUS_CTRL             = 0x0000 // 32 bit
	REG_BUS_RESPONSE_DELAY   = 0x0001 // byte 1 of REG_BUS_CTRL
	REG_BUS_STATUS_ENABLE    = 0x0002 // byte 2 of REG_BUS_CTRL
	REG_BUS_INTERRUPT        = 0x0004 // 16 bit, write 1 to clear.
	REG_BUS_INTERRUPT_ENABLE = 0x0006 // 16 bit
	REG_BUS_STATUS           = 0x0008 // 32 bit
	REG_BUS_TEST_RO          = 0x0014 // 32 bit, reads 0xFEEDBEAD.
	REG_BUS_TEST_RW          = 0x0018 // 32 bit
	REG_BUS_RESP_DELAY_F0    = 0x001c
	REG_BUS_RESP_DELAY_F1    = 0x001d
	REG_BUS_RESP_DELAY_F2    = 0x001e
	REG_BUS_RESP_DELAY_F3    = 0x001f
)

// Backplane function (F1) registers.
const (
	REG_BACKPLANE_GPIO_SELECT            = 0x10005
	REG_BACKPLANE_GPIO_OUTPUT            = 0x10006
	REG_BACKPLANE_GPIO_ENABLE            = 0x10007
	REG_BACKPLANE_FUNCTION2_WATERMARK    = 0x10008
	REG_BACKPLANE_DEVICE_CONTROL         = 0x10009
	REG_BACKPLANE_BACKPLANE_ADDRESS_LOW  = 0x1000a
	REG_BACKPLANE_BACKPLANE_ADDRESS_MID  = 0x1000b
	REG_BACKPLANE_BACKPLANE_ADDRESS_HIGH = 0x1000c
	REG_BACKPLANE_FRAME_CONTROL          = 0x1000d
	REG_BACKPLANE_CHIP_CLOCK_CSR         = 0x1000e
	REG_BACKPLANE_PULL_UP                = 0x1000f
	REG_BACKPLANE_READ_FRAME_BC_LOW      = 0x1001b
	REG_BACKPLANE_READ_FRAME_BC_HIGH     = 0x1001c
	REG_BACKPLANE_WAKEUP_CTRL            = 0x1001e
	REG_BACKPLANE_SLEEP_CSR              = 0x1001f
)

// Backplane window geometry.
const (
	BACKPLANE_WINDOW_SIZE        = 0x8000
	BACKPLANE_ADDRESS_MASK       = 0x7fff
	BACKPLANE_ADDRESS_32BIT_FLAG = 0x08000
	BACKPLANE_MAX_TRANSFER_SIZE  = 64
	// Extra bytes clocked before backplane read data arrives. Also the value
	// programmed into the F1 response delay register.
	BACKPLANE_READ_PAD_SIZE = 4

	// backplaneWindowReset is not a valid window and forces all three window
	// bytes to be written on first use.
	backplaneWindowReset uint32 = 0xaaaa_aaaa
)

// Bring-up test patterns.
const (
	FEEDBEAD     uint32 = 0xFEEDBEAD
	TEST_PATTERN uint32 = 0x12345678
)

// Chip addresses used by core control and the firmware console.
const (
	CHIPCOMMON_BASE_ADDRESS  = 0x18000000
	SDIO_BASE_ADDRESS        = 0x18002000
	WLAN_ARMCM3_BASE_ADDRESS = 0x18003000
	SOCSRAM_BASE_ADDRESS     = 0x18004000
	WRAPPER_REGISTER_OFFSET  = 0x100000

	AI_IOCTRL_OFFSET       = 0x408
	AI_IOCTRL_BIT_FGC      = 0x0002
	AI_IOCTRL_BIT_CLOCK_EN = 0x0001
	AI_IOCTRL_BIT_CPUHALT  = 0x0020
	AI_RESETCTRL_OFFSET    = 0x800
	AI_RESETCTRL_BIT_RESET = 1
)

// BusControl is the 32 bit REG_BUS_CTRL register. Byte 0 holds the bus
// configuration bits, byte 1 the response delay and byte 2 the status enable bits.
type BusControl uint32

// Byte 0 of REG_BUS_CTRL.
const (
	WORD_LENGTH_32          BusControl = 0x01
	ENDIAN_BIG              BusControl = 0x02
	CLOCK_PHASE             BusControl = 0x04
	CLOCK_POLARITY          BusControl = 0x08
	HIGH_SPEED              BusControl = 0x10
	INTERRUPT_POLARITY_HIGH BusControl = 0x20
	WAKE_UP                 BusControl = 0x80
)

// Status enable bits. Live in byte 2 of REG_BUS_CTRL, see [StatusEnable.Ctl].
type StatusEnable uint8

const (
	STATUS_ENABLE    StatusEnable = 0x01
	INTR_WITH_STATUS StatusEnable = 0x02
	RESP_DELAY_ALL   StatusEnable = 0x04
	DWORD_PKT_LEN_EN StatusEnable = 0x08
	CMD_ERR_CHK_EN   StatusEnable = 0x20
	DATA_ERR_CHK_EN  StatusEnable = 0x40
)

// Ctl places the status enable bits at their REG_BUS_CTRL position.
func (s StatusEnable) Ctl() BusControl { return BusControl(s) << (8 * REG_BUS_STATUS_ENABLE) }

// Status supports status notification to the host after a read/write
// transaction over gSPI. This status notification provides information
// about packet errors, protocol errors, available packets in the RX queue, etc.
// The status-reporting feature can be switched off using a register bit,
// without any timing overhead.
type Status uint32

const (
	STATUS_DATA_NOT_AVAILABLE Status = 0x00000001
	STATUS_UNDERFLOW          Status = 0x00000002
	STATUS_OVERFLOW           Status = 0x00000004
	STATUS_F2_INTR            Status = 0x00000008
	STATUS_F3_INTR            Status = 0x00000010
	STATUS_F2_RX_READY        Status = 0x00000020
	STATUS_F3_RX_READY        Status = 0x00000040
	STATUS_HOST_CMD_DATA_ERR  Status = 0x00000080
	STATUS_F2_PKT_AVAILABLE   Status = 0x00000100
	STATUS_F2_PKT_LEN_MASK    Status = 0x000FFE00
	STATUS_F2_PKT_LEN_SHIFT          = 9
	STATUS_F3_PKT_AVAILABLE   Status = 0x00100000
	STATUS_F3_PKT_LEN_MASK    Status = 0xFFE00000
	STATUS_F3_PKT_LEN_SHIFT          = 21
)

func (s Status) String() (str string) {
	if s == 0 {
		return "no status"
	}
	if s.HostCommandDataError() {
		str += "hostcmderr "
	}
	if s.DataUnavailable() {
		str += "dataunavailable "
	}
	if s.IsOverflow() {
		str += "overflow "
	}
	if s.IsUnderflow() {
		str += "underflow "
	}
	if s.F2PacketAvailable() || s.F3PacketAvailable() {
		str += "packetavail "
	}
	if s.F2RxReady() || s.F3RxReady() {
		str += "rxready "
	}
	return strings.TrimSuffix(str, " ")
}

// DataUnavailable returns true if requested read data is unavailable.
func (s Status) DataUnavailable() bool { return s&STATUS_DATA_NOT_AVAILABLE != 0 }

// IsUnderflow returns true if FIFO underflow occurred due to current (F2, F3) read command.
func (s Status) IsUnderflow() bool { return s&STATUS_UNDERFLOW != 0 }

// IsOverflow returns true if FIFO overflow occurred due to current (F1, F2, F3) write command.
func (s Status) IsOverflow() bool { return s&STATUS_OVERFLOW != 0 }

// F2Interrupt returns true if F2 channel interrupt set.
func (s Status) F2Interrupt() bool { return s&STATUS_F2_INTR != 0 }

// F3Interrupt returns true if F3 channel interrupt set.
func (s Status) F3Interrupt() bool { return s&STATUS_F3_INTR != 0 }

// F2RxReady returns true if F2 FIFO is ready to receive data (FIFO empty).
func (s Status) F2RxReady() bool { return s&STATUS_F2_RX_READY != 0 }

// F3RxReady returns true if F3 FIFO is ready to receive data (FIFO empty).
func (s Status) F3RxReady() bool { return s&STATUS_F3_RX_READY != 0 }

// HostCommandDataError returns true if the last command or data had an error
// detected by the chip's checksum logic.
func (s Status) HostCommandDataError() bool { return s&STATUS_HOST_CMD_DATA_ERR != 0 }

// F2PacketAvailable returns true if Packet is available/ready in F2 TX FIFO.
func (s Status) F2PacketAvailable() bool { return s&STATUS_F2_PKT_AVAILABLE != 0 }

// F3PacketAvailable returns true if Packet is available/ready in F3 TX FIFO.
func (s Status) F3PacketAvailable() bool { return s&STATUS_F3_PKT_AVAILABLE != 0 }

// F2PacketLength returns F2 packet length.
func (s Status) F2PacketLength() uint16 {
	return uint16((s & STATUS_F2_PKT_LEN_MASK) >> STATUS_F2_PKT_LEN_SHIFT)
}

// F3PacketLength returns F3 packet length.
func (s Status) F3PacketLength() uint16 {
	return uint16((s & STATUS_F3_PKT_LEN_MASK) >> STATUS_F3_PKT_LEN_SHIFT)
}

// Interrupts is the bit set held by REG_BUS_INTERRUPT and REG_BUS_INTERRUPT_ENABLE.
type Interrupts uint16

const (
	IRQ_DATA_UNAVAILABLE        Interrupts = 0x0001 // Requested data not available; Clear by writing a "1"
	IRQ_F2_F3_FIFO_RD_UNDERFLOW Interrupts = 0x0002
	IRQ_F2_F3_FIFO_WR_OVERFLOW  Interrupts = 0x0004
	IRQ_COMMAND_ERROR           Interrupts = 0x0008 // Cleared by writing 1
	IRQ_DATA_ERROR              Interrupts = 0x0010 // Cleared by writing 1
	IRQ_F2_PACKET_AVAILABLE     Interrupts = 0x0020
	IRQ_F3_PACKET_AVAILABLE     Interrupts = 0x0040
	IRQ_F1_OVERFLOW             Interrupts = 0x0080 // Due to last write. Bkplane has pending write requests
	IRQ_MISC_INTR0              Interrupts = 0x0100
	IRQ_MISC_INTR1              Interrupts = 0x0200
	IRQ_MISC_INTR2              Interrupts = 0x0400
	IRQ_MISC_INTR3              Interrupts = 0x0800
	IRQ_MISC_INTR4              Interrupts = 0x1000
	IRQ_F1_INTR                 Interrupts = 0x2000
	IRQ_F2_INTR                 Interrupts = 0x4000
	IRQ_F3_INTR                 Interrupts = 0x8000
)

var irqNames = [16]string{
	"dataunavailable", "rdunderflow", "wroverflow", "cmderr",
	"dataerr", "f2avail", "f3avail", "f1overflow",
	"misc0", "misc1", "misc2", "misc3",
	"misc4", "f1", "f2", "f3",
}

func (irq Interrupts) IsBusOverflowedOrUnderflowed() bool {
	return irq&(IRQ_F2_F3_FIFO_RD_UNDERFLOW|IRQ_F2_F3_FIFO_WR_OVERFLOW|IRQ_F1_OVERFLOW) != 0
}

func (irq Interrupts) IsF2Available() bool { return irq&IRQ_F2_PACKET_AVAILABLE != 0 }

func (irq Interrupts) IsDataUnavailable() bool { return irq&IRQ_DATA_UNAVAILABLE != 0 }

func (irq Interrupts) String() string {
	if irq == 0 {
		return "no interrupts"
	}
	var sb strings.Builder
	for i := 0; irq != 0; i++ {
		if irq&1 != 0 {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(irqNames[i])
		}
		irq >>= 1
	}
	return sb.String()
}

// Core identifies a chip core reachable through its AI wrapper registers.
type Core uint8

const (
	CoreWLAN Core = iota + 1
	CoreSOCSRAM
)

// base returns the wrapper base address of the core.
//
//	reference: get_core_address
func (c Core) base() (uint32, error) {
	switch c {
	case CoreWLAN:
		return WRAPPER_REGISTER_OFFSET + WLAN_ARMCM3_BASE_ADDRESS, nil
	case CoreSOCSRAM:
		return WRAPPER_REGISTER_OFFSET + SOCSRAM_BASE_ADDRESS, nil
	}
	return 0, ErrUnknownCore
}

func (c Core) String() string {
	switch c {
	case CoreWLAN:
		return "wlan"
	case CoreSOCSRAM:
		return "socsram"
	}
	return "unknown"
}
