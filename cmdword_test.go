package cywbus

import (
	"math/rand"
	"testing"
)

func TestCmdWord(t *testing.T) {
	// Bring-up read of the read-only test register as seen on the wire.
	got := cmd_word(false, true, FuncBus, REG_BUS_TEST_RO, 4)
	if got != 0x4000a004 {
		t.Errorf("got %#x, want 0x4000a004", got)
	}
	if swap16(got) != 0xa0044000 {
		t.Errorf("swapped: got %#x", swap16(got))
	}
	if swap16(swap16(0x12345678)) != 0x12345678 {
		t.Error("swap16 not an involution")
	}
	c := Cmd{Write: true, AutoInc: true, Fn: FuncBackplane, Addr: REG_BACKPLANE_BACKPLANE_ADDRESS_HIGH, Size: 1}
	if c.String() != "wr backplane addr=0x1000c len=1" {
		t.Error(c.String())
	}
	// Out of range fields are masked.
	over := cmd_word(true, false, Function(7), 0x3ffff, 0xfff)
	dec := DecodeCmd(over)
	if dec.Fn != FuncBT || dec.Addr != cmdAddrMask || dec.Size != cmdSizeMask || dec.AutoInc {
		t.Errorf("masking: %+v", dec)
	}
}

func TestCmdRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100000; i++ {
		w := rng.Uint32()
		if got := DecodeCmd(w).Word(); got != w {
			t.Fatalf("round trip %#x: got %#x", w, got)
		}
	}
	for _, fn := range []Function{FuncBus, FuncBackplane, FuncWLAN, FuncBT} {
		c := Cmd{Write: true, Fn: fn, Addr: 0x1ffff, Size: MaxTransferSize}
		if DecodeCmd(c.Word()) != c {
			t.Errorf("%v: field round trip failed", fn)
		}
	}
}
