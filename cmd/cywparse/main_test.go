package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soypat/cywbus/internal/gspitrace"
)

func TestDescribeSwapped(t *testing.T) {
	// Bring-up write of 0x12345678 to the test register in 16 bit mode, plus status.
	raw := []byte{0xc0, 0x04, 0xc0, 0x00, 0x56, 0x78, 0x12, 0x34, 0, 0, 0, 0}
	var buf bytes.Buffer
	err := describe(&buf, &gspitrace.Decoder{}, raw, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := "16 wr bus addr=0x18 len=4 data=12345678\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestDescribeOmit(t *testing.T) {
	raw := []byte{0x40, 0x00, 0xa0, 0x04, 0xfe, 0xed, 0xbe, 0xad, 0, 0, 0, 0}
	omit, err := parseAddrs("0x14, 0x18")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	describe(&buf, &gspitrace.Decoder{}, raw, omit)
	if buf.Len() != 0 {
		t.Errorf("omitted address printed: %q", buf.String())
	}
	buf.Reset()
	describe(&buf, &gspitrace.Decoder{}, raw, nil)
	if !strings.HasPrefix(buf.String(), "BE rd bus addr=0x14 len=4 data=\n") {
		t.Errorf("got %q", buf.String())
	}
	if _, err = parseAddrs("zz"); err == nil {
		t.Error("bad address accepted")
	}
}
