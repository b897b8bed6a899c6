// Package regshell implements a line based command shell for poking CYW43439
// bus registers and backplane memory over a serial console.
//
// Each line is a command byte followed by a numeric argument, decimal or
// 0x prefixed hexadecimal:
//
//	f<n>     select function for register commands (0=bus 1=backplane 2=wlan)
//	t<n>     set the value written by write commands
//	y/x/r<a> read 8/16/32 bit register at a
//	u/v/w<a> write 8/16/32 bit register at a
//	b<a>     read 32 bit backplane word at a
//	B<a>     write 32 bit backplane word at a
//	c<n>     report whether core n (1=WLAN 2=SOCSRAM) is up
//	s0       read the status register
//	i0       read and clear pending interrupts
//	I<n>     initialize the bus, n>0 enables Bluetooth interrupts
//	Z0       power cycle the chip
package regshell

import (
	"bufio"
	"errors"
	"io"
	"strconv"

	"github.com/soypat/cywbus"
)

var errNoArgument = errors.New("regshell: command requires numeric argument")

// Shell executes register commands against a Bus.
type Shell struct {
	Bus *cywbus.Bus
	// Config is passed to Init by the I command.
	Config   cywbus.Config
	fn       cywbus.Function
	writeVal uint64
	out      []byte
}

// Run reads commands from r until EOF and writes one reply line per command to w.
func (s *Shell) Run(r io.Reader, w io.Writer) error {
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		line := scan.Bytes()
		if len(line) == 0 {
			continue
		}
		reply, err := s.Exec(line)
		if err != nil {
			reply = "shell error:\"" + err.Error() + "\""
		}
		_, err = io.WriteString(w, reply+"\r\n")
		if err != nil {
			return err
		}
	}
	return scan.Err()
}

// Exec runs a single command and returns its reply.
func (s *Shell) Exec(command []byte) (reply string, err error) {
	if len(command) < 2 {
		return "", errNoArgument
	}
	cmdByte := command[0]
	arg, err := parseArg(string(command[1:]))
	if err != nil {
		return "", err
	}
	addr := uint32(arg)
	var value uint64
	switch cmdByte {
	case 'f':
		if arg > 3 {
			return "", errors.New("regshell: function out of range")
		}
		s.fn = cywbus.Function(arg)
		return "fn=" + s.fn.String(), nil
	case 't':
		s.writeVal = arg
		return "val=" + s.hex(arg), nil
	case 'y':
		var v uint8
		v, err = s.Bus.Read8(s.fn, addr)
		value = uint64(v)
	case 'x':
		var v uint16
		v, err = s.Bus.Read16(s.fn, addr)
		value = uint64(v)
	case 'r':
		var v uint32
		v, err = s.Bus.Read32(s.fn, addr)
		value = uint64(v)
	case 'u':
		err = s.Bus.Write8(s.fn, addr, uint8(s.writeVal))
		value = s.writeVal & 0xff
	case 'v':
		err = s.Bus.Write16(s.fn, addr, uint16(s.writeVal))
		value = s.writeVal & 0xffff
	case 'w':
		err = s.Bus.Write32(s.fn, addr, uint32(s.writeVal))
		value = s.writeVal & 0xffffffff
	case 'b':
		var v uint32
		v, err = s.Bus.BackplaneRead32(addr)
		value = uint64(v)
	case 'B':
		err = s.Bus.BackplaneWrite32(addr, uint32(s.writeVal))
		value = s.writeVal & 0xffffffff
	case 'c':
		if arg < 1 || arg > 2 {
			return "", errors.New("regshell: unknown core")
		}
		core := cywbus.Core(arg)
		return core.String() + " up=" + strconv.FormatBool(s.Bus.CoreIsUp(core)), nil
	case 's':
		var st cywbus.Status
		st, err = s.Bus.ReadStatus()
		if err != nil {
			return "", err
		}
		return st.String(), nil
	case 'i':
		var irq cywbus.Interrupts
		irq, err = s.Bus.Interrupts()
		if err == nil && irq != 0 {
			err = s.Bus.ClearInterrupts(irq)
		}
		if err != nil {
			return "", err
		}
		return irq.String(), nil
	case 'I':
		cfg := s.Config
		cfg.EnableBluetooth = arg > 0
		err = s.Bus.Init(cfg)
		if err != nil {
			return "", err
		}
		return "init ok", nil
	case 'Z':
		s.Bus.Reset()
		return "reset", nil
	default:
		return "", errors.New("regshell: unknown command " + strconv.QuoteRune(rune(cmdByte)))
	}
	if err != nil {
		return "", err
	}
	return s.hex(value), nil
}

func (s *Shell) hex(v uint64) string {
	s.out = append(s.out[:0], "0x"...)
	s.out = strconv.AppendUint(s.out, v, 16)
	return string(s.out)
}

func parseArg(arg string) (uint64, error) {
	if len(arg) > 2 && arg[0] == '0' && (arg[1] == 'x' || arg[1] == 'X') {
		return strconv.ParseUint(arg[2:], 16, 32)
	}
	return strconv.ParseUint(arg, 10, 32)
}
