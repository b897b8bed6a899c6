package regshell

import (
	"strings"
	"testing"

	"github.com/soypat/cywbus"
)

// regTransport stores 32 bit words per (function, address) and ignores sizes.
type regTransport struct {
	regs map[uint32]uint32
	cmds []cywbus.Cmd
}

func key(c cywbus.Cmd) uint32 { return uint32(c.Fn)<<20 | c.Addr }

func (r *regTransport) CmdRead(cmd uint32, buf []uint32) (uint32, error) {
	c := cywbus.DecodeCmd(cmd)
	r.cmds = append(r.cmds, c)
	buf[len(buf)-1] = r.regs[key(c)]
	return 0, nil
}

func (r *regTransport) CmdWrite(cmd uint32, buf []uint32) (uint32, error) {
	c := cywbus.DecodeCmd(cmd)
	r.cmds = append(r.cmds, c)
	r.regs[key(c)] = buf[0]
	return 0, nil
}

func (r *regTransport) WaitForEvent() {}

func TestShellRun(t *testing.T) {
	tr := &regTransport{regs: map[uint32]uint32{cywbus.REG_BUS_TEST_RO: 0xfeedbead}}
	sh := Shell{Bus: cywbus.New(func(bool) {}, tr)}
	input := strings.Join([]string{
		"r0x14",
		"t0xbeef",
		"w24",
		"r24",
		"f1",
		"u0x1000a",
		"q1",
		"r",
		"f9",
	}, "\n")
	var out strings.Builder
	err := sh.Run(strings.NewReader(input), &out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\r\n"), "\r\n")
	want := []string{
		"0xfeedbead",
		"val=0xbeef",
		"0xbeef",
		"0xbeef",
		"fn=backplane",
		"0xef",
		`shell error:"regshell: unknown command 'q'"`,
		`shell error:"regshell: command requires numeric argument"`,
		`shell error:"regshell: function out of range"`,
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
	last := tr.cmds[len(tr.cmds)-1]
	if !last.Write || last.Fn != cywbus.FuncBackplane || last.Addr != cywbus.REG_BACKPLANE_BACKPLANE_ADDRESS_LOW || last.Size != 1 {
		t.Errorf("bad 8 bit backplane write %v", last)
	}
}

func TestParseArg(t *testing.T) {
	for _, test := range []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"10", 10, true},
		{"0x10", 16, true},
		{"0X1f", 31, true},
		{"0x", 0, false},
		{"-1", 0, false},
		{"0x100000000", 0, false},
	} {
		got, err := parseArg(test.in)
		if (err == nil) != test.ok || (test.ok && got != test.want) {
			t.Errorf("%q: got %d, %v", test.in, got, err)
		}
	}
}
