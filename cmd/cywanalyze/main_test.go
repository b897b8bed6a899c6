package main

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/soypat/cywbus/internal/gspitrace"
)

func TestInterpretBytes(t *testing.T) {
	bus := BusCtl{
		Order:           binary.LittleEndian,
		WordInterpreter: binary.BigEndian,
	}
	data := []byte{0x01, 0x02, 0x03, 0x04}
	bus.interpretBytes(data)
	if !bytes.Equal(data, []byte{0x04, 0x03, 0x02, 0x01}) {
		t.Error("expected big endian", data)
	}
	bus = BusCtl{
		Order:           binary.BigEndian,
		WordInterpreter: binary.LittleEndian,
	}
	data = []byte{0x01, 0x02, 0x03, 0x04}
	bus.interpretBytes(data)
	if !bytes.Equal(data, []byte{0x04, 0x03, 0x02, 0x01}) {
		t.Error("expected big endian", data)
	}
	bus = BusCtl{
		Order:           binary.LittleEndian,
		WordInterpreter: binary.LittleEndian,
	}
	data = []byte{0x01, 0x02, 0x03, 0x04}
	bus.interpretBytes(data)
	if !bytes.Equal(data, []byte{0x01, 0x02, 0x03, 0x04}) {
		t.Fatal("expected big endian", data)
	}
	bus = BusCtl{
		Order:           binary.BigEndian,
		WordInterpreter: binary.BigEndian,
	}
	data = []byte{0x01, 0x02, 0x03, 0x04}
	bus.interpretBytes(data)
	if !bytes.Equal(data, []byte{0x01, 0x02, 0x03, 0x04}) {
		t.Fatal("expected big endian", data)
	}
}

func TestWriteRecords(t *testing.T) {
	dec := gspitrace.Decoder{}
	var txs []gspitrace.Transaction
	for _, raw := range [][]byte{
		{0x40, 0x00, 0xa0, 0x04, 0xfe, 0xed, 0xbe, 0xad},
		{0x40, 0x00, 0xa0, 0x04, 0xfe, 0xed, 0xbe, 0xad},
		{0xc0, 0x00, 0xc0, 0x04, 0x12, 0x34, 0x56, 0x78},
	} {
		tx, err := dec.Parse(raw)
		if err != nil {
			t.Fatal(err)
		}
		txs = append(txs, tx)
	}
	bus := BusCtl{Order: binary.BigEndian, WordInterpreter: binary.BigEndian, OmitWrite: true}
	var buf bytes.Buffer
	err := bus.write(&buf, nil, gspitrace.Compact(txs))
	if err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if got != "cmd× 2 rd bus addr=0x14 len=4 data=feedbead\n" {
		t.Errorf("got %q", got)
	}
}

func TestPadToWord(t *testing.T) {
	bus := BusCtl{WordInterpreter: binary.BigEndian}
	got := bus.padToWord([]byte{1, 2, 3, 4, 5})
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 0, 0, 0, 5}) {
		t.Errorf("big endian pad % x", got)
	}
	bus.WordInterpreter = binary.LittleEndian
	got = bus.padToWord([]byte{1, 2, 3, 4, 5})
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 5, 0, 0, 0}) {
		t.Errorf("little endian pad % x", got)
	}
}
