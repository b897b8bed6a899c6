package cywbus

import "strconv"

// gSPI command word layout, MSB first:
//
//	| write:1 | incr:1 | func:2 | addr:17 | len:11 |
const (
	cmdAddrMask = 0x1ffff
	cmdSizeMask = 0x7ff
	// MaxTransferSize is the largest byte count a single command word can describe.
	MaxTransferSize = cmdSizeMask
)

// Cmd is the decoded form of a gSPI command word.
type Cmd struct {
	Write bool
	// AutoInc is set when the chip should increment the address after every word.
	AutoInc bool
	Fn      Function
	Addr    uint32
	Size    uint32
}

// DecodeCmd splits a command word into its fields.
func DecodeCmd(cmd uint32) Cmd {
	return Cmd{
		Write:   cmd&(1<<31) != 0,
		AutoInc: cmd&(1<<30) != 0,
		Fn:      Function(cmd>>28) & 0b11,
		Addr:    (cmd >> 11) & cmdAddrMask,
		Size:    cmd & cmdSizeMask,
	}
}

// Word encodes the command. Out of range address and size bits are masked off.
func (c Cmd) Word() uint32 {
	return cmd_word(c.Write, c.AutoInc, c.Fn, c.Addr, c.Size)
}

func (c Cmd) String() string {
	var buf [64]byte
	b := buf[:0]
	if c.Write {
		b = append(b, "wr "...)
	} else {
		b = append(b, "rd "...)
	}
	b = append(b, c.Fn.String()...)
	b = append(b, " addr=0x"...)
	b = strconv.AppendUint(b, uint64(c.Addr), 16)
	b = append(b, " len="...)
	b = strconv.AppendUint(b, uint64(c.Size), 10)
	if !c.AutoInc {
		b = append(b, " fixed"...)
	}
	return string(b)
}

//go:inline
func cmd_word(write, autoInc bool, fn Function, addr uint32, sz uint32) uint32 {
	return b2u32(write)<<31 | b2u32(autoInc)<<30 | (uint32(fn)&0b11)<<28 | (addr&cmdAddrMask)<<11 | sz&cmdSizeMask
}

//go:inline
func b2u32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// swap16 swaps lowest 16 bits with highest 16 bits of a uint32.
// The chip starts in 16 bit word mode so bring-up transactions are swapped.
func swap16(b uint32) uint32 {
	return (b >> 16) | (b << 16)
}
