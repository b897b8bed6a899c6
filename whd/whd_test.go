package whd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestParseSDPCMHeader(t *testing.T) {
	packet := AlignedBuffer(16)
	packet[0] = 0x10
	packet[1] = 0x00
	binary.LittleEndian.PutUint16(packet[2:], ^uint16(16))
	packet[7] = SDPCM_HEADER_LEN
	copy(packet[12:], "abcd")

	hdr, payload, err := ParseSDPCMHeader(packet)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.Size != 16 || hdr.HeaderLength != 12 {
		t.Errorf("bad header decode %+v", hdr)
	}
	if string(payload) != "abcd" {
		t.Errorf("payload mismatch, got %q", payload)
	}
	if &payload[0] != &packet[12] {
		t.Error("payload must alias packet")
	}

	// Flip size so it no longer complements SizeCom.
	packet[0] = 0x11
	_, _, err = ParseSDPCMHeader(packet)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("want length mismatch on bad size, got %v", err)
	}
	packet[0] = 0x10
	binary.LittleEndian.PutUint16(packet[2:], ^uint16(17))
	_, _, err = ParseSDPCMHeader(packet)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("want length mismatch on bad complement, got %v", err)
	}
	// Consistent pair but disagreeing with actual length.
	binary.LittleEndian.PutUint16(packet[0:], 20)
	binary.LittleEndian.PutUint16(packet[2:], ^uint16(20))
	_, _, err = ParseSDPCMHeader(packet)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("want length mismatch on packet length, got %v", err)
	}
}

func TestParseSDPCMHeaderOffset(t *testing.T) {
	packet := AlignedBuffer(24)
	hdr := SDPCMHeader{
		Size:         24,
		SizeCom:      ^uint16(24),
		ChanAndFlags: uint8(DATA_HEADER),
		HeaderLength: 18, // padding after header.
	}
	hdr.Put(packet)
	got, payload, err := ParseSDPCMHeader(packet)
	if err != nil {
		t.Fatal(err)
	}
	if got != hdr {
		t.Errorf("decode mismatch: %+v != %+v", got, hdr)
	}
	if got.Type() != DATA_HEADER {
		t.Error("bad channel", got.Type())
	}
	if len(payload) != 6 {
		t.Error("payload must start at header length, got len", len(payload))
	}
	for _, hl := range []uint8{0, 11, 25} {
		packet[7] = hl
		_, _, err = ParseSDPCMHeader(packet)
		if !errors.Is(err, ErrLengthMismatch) {
			t.Errorf("header length %d: want length mismatch, got %v", hl, err)
		}
	}
}

func TestParseShortAndMisaligned(t *testing.T) {
	buf := AlignedBuffer(256)
	tests := []struct {
		name  string
		size  int
		align int
		parse func([]byte) error
	}{
		{"sdpcm", SDPCM_HEADER_LEN, 2, func(b []byte) error { _, _, err := ParseSDPCMHeader(b); return err }},
		{"cdc", CDC_HEADER_LEN, 2, func(b []byte) error { _, _, err := ParseCDCHeader(b); return err }},
		{"bdc", BDC_HEADER_LEN, 1, func(b []byte) error { _, _, err := ParseBDCHeader(b); return err }},
		{"event", EVENT_PACKET_LEN, 2, func(b []byte) error { _, _, err := ParseEventPacket(b); return err }},
		{"scanresults", SCAN_RESULTS_LEN, 2, func(b []byte) error { _, _, err := ParseScanResults(b); return err }},
		{"bssinfo", BSS_INFO_LEN, 2, func(b []byte) error { _, _, err := ParseBssInfo(b); return err }},
	}
	for _, test := range tests {
		err := test.parse(buf[:test.size-1])
		if !errors.Is(err, ErrShortBuffer) {
			t.Errorf("%s: want short buffer, got %v", test.name, err)
		}
		if test.align > 1 {
			err = test.parse(buf[1 : 1+test.size+8])
			if !errors.Is(err, ErrMisaligned) {
				t.Errorf("%s: want misaligned, got %v", test.name, err)
			}
		}
	}
}

func TestParseCDCHeader(t *testing.T) {
	buf := AlignedBuffer(CDC_HEADER_LEN + 8)
	hdr := CDCHeader{
		Cmd:    WLC_GET_VAR,
		Length: 5,
		Flags:  uint16(WWD_AP_INTERFACE)<<CDCF_IOC_IF_SHIFT | CDCF_IOC_ERROR,
		ID:     7,
		Status: 0xfffffffe,
	}
	hdr.Put(buf)
	copy(buf[CDC_HEADER_LEN:], "hello123")
	got, payload, err := ParseCDCHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != hdr {
		t.Errorf("decode mismatch: %+v != %+v", got, hdr)
	}
	if string(payload) != "hello" {
		t.Errorf("payload not truncated to length: %q", payload)
	}
	if got.Interface() != WWD_AP_INTERFACE || !got.IsError() {
		t.Error("bad flag accessors")
	}
	binary.LittleEndian.PutUint32(buf[4:], 9)
	_, _, err = ParseCDCHeader(buf)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("want length mismatch, got %v", err)
	}
}

func TestParseBDCHeader(t *testing.T) {
	buf := []byte{BDC_PROTO_VER << BDC_FLAG_VER_SHIFT, 0, 1, 1, 0xaa, 0xbb, 0xcc, 0xdd, 'x', 'y'}
	hdr, payload, err := ParseBDCHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.DataOffset != 1 || hdr.Interface() != 1 {
		t.Errorf("bad decode %+v", hdr)
	}
	if string(payload) != "xy" {
		t.Errorf("payload must skip data offset words, got %q", payload)
	}
	buf[3] = 3
	_, _, err = ParseBDCHeader(buf)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("want length mismatch, got %v", err)
	}
}

func newEventPacket(datalen uint32) EventPacket {
	ep := EventPacket{
		Eth: EthernetHeader{
			Destination: [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
			Source:      [6]byte{0x28, 0xcd, 0xc1, 0x00, 0x00, 0x01},
			EtherType:   ETHERTYPE_BRCM,
		},
		Hdr: EventHeader{
			Subtype:     0x8001,
			Length:      EVENT_MESSAGE_LEN + uint16(datalen),
			Version:     0,
			OUI:         BRCM_OUI,
			UserSubtype: 1,
		},
		Msg: EventMessage{
			Version:   2,
			Flags:     0x0102,
			EventType: EvESCAN_RESULT,
			Status:    EStatusPartial,
			Reason:    3,
			AuthType:  4,
			DataLen:   datalen,
			Addr:      [6]byte{1, 2, 3, 4, 5, 6},
			IfIdx:     0,
			BSSCfgIdx: 1,
		},
	}
	copy(ep.Msg.IfName[:], "wl0")
	return ep
}

func TestParseEventPacket(t *testing.T) {
	buf := AlignedBuffer(EVENT_PACKET_LEN + 8)
	want := newEventPacket(5)
	want.Put(buf)
	// DataLen is big endian on the wire.
	const datalenOffset = ETHERNET_HEADER_LEN + EVENT_HEADER_LEN + 20
	if !bytes.Equal(buf[datalenOffset:datalenOffset+4], []byte{0, 0, 0, 5}) {
		t.Fatalf("datalen not big endian: % x", buf[datalenOffset:datalenOffset+4])
	}
	if buf[12] != 0x88 || buf[13] != 0x6c {
		t.Fatal("ethertype not big endian")
	}
	copy(buf[EVENT_PACKET_LEN:], "12345678")

	got, payload, err := ParseEventPacket(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("decode mismatch:\n%+v\n%+v", got, want)
	}
	if got.Msg.DataLen != 5 || string(payload) != "12345" {
		t.Errorf("payload must be trimmed to datalen, got %q", payload)
	}
	if string(got.Msg.Interface()) != "wl0" {
		t.Errorf("bad interface name %q", got.Msg.Interface())
	}
	if got.Msg.EventType.String() != "ESCAN_RESULT" || got.Msg.Status.String() != "partial" {
		t.Error("bad event strings", got.Msg.EventType, got.Msg.Status)
	}

	_, _, err = ParseEventPacket(buf[:EVENT_PACKET_LEN+4])
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("want length mismatch with 4 data bytes, got %v", err)
	}
}

func TestParseScanResults(t *testing.T) {
	buf := AlignedBuffer(SCAN_RESULTS_LEN + BSS_INFO_LEN + 8)
	sr := ScanResults{BufLen: 12, Version: 109, SyncID: 0x1234, BSSCount: 0}
	sr.Put(buf)
	got, bss, err := ParseScanResults(buf[:SCAN_RESULTS_LEN])
	if err != nil {
		t.Fatal(err)
	}
	if got != sr || len(bss) != 0 {
		t.Errorf("bad empty scan result %+v %d", got, len(bss))
	}

	sr.BSSCount = 1
	sr.Put(buf)
	_, _, err = ParseScanResults(buf[:SCAN_RESULTS_LEN+BSS_INFO_LEN-1])
	if !errors.Is(err, ErrShortBuffer) {
		t.Errorf("want short buffer, got %v", err)
	}

	info := BssInfo{
		Version:      109,
		Length:       BSS_INFO_LEN + 8,
		BSSID:        [6]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01},
		BeaconPeriod: 100,
		Capability:   0x0411,
		SSIDLength:   6,
		ChanSpec:     0x1006,
		RSSI:         -47,
		PHYNoise:     -92,
		CtlCh:        6,
		IEOffset:     BSS_INFO_LEN,
		IELength:     8,
		SNR:          45,
	}
	copy(info.SSID[:], "tinygo")
	info.Put(buf[SCAN_RESULTS_LEN:])
	copy(buf[SCAN_RESULTS_LEN+BSS_INFO_LEN:], "\x00\x06tinyg")
	_, bss, err = ParseScanResults(buf)
	if err != nil {
		t.Fatal(err)
	}
	gotInfo, ies, err := ParseBssInfo(bss)
	if err != nil {
		t.Fatal(err)
	}
	if gotInfo != info {
		t.Errorf("bss decode mismatch:\n%+v\n%+v", gotInfo, info)
	}
	if string(gotInfo.SSIDBytes()) != "tinygo" {
		t.Errorf("bad ssid %q", gotInfo.SSIDBytes())
	}
	if len(ies) != 8 || ies[1] != 6 {
		t.Errorf("bad IEs % x", ies)
	}
	if int16(binary.LittleEndian.Uint16(bss[78:])) != -47 {
		t.Error("rssi must live at offset 78")
	}

	binary.LittleEndian.PutUint32(bss[120:], 9) // IELength past record length.
	_, _, err = ParseBssInfo(bss)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("want length mismatch, got %v", err)
	}
}

func TestEventMaskUnset(t *testing.T) {
	var em EventMask
	for i := range em.Events {
		em.Events[i] = 0xff
	}
	em.Unset(9)
	for i, b := range em.Events {
		want := byte(0xff)
		if i == 1 {
			want = 0xfd
		}
		if b != want {
			t.Errorf("byte %d: got %#x, want %#x", i, b, want)
		}
	}
	if em.IsSet(9) || !em.IsSet(8) || !em.IsSet(10) {
		t.Error("IsSet disagrees with Unset")
	}
	em.Set(9)
	if !em.IsSet(9) {
		t.Error("Set did not enable event")
	}
	em.Unset(EVENT_MASK_BYTES*8 + 3) // Out of range, no-op.

	buf := make([]byte, EVENT_MASK_LEN)
	em.Iface = 1
	em.Put(buf)
	if DecodeEventMask(buf) != em {
		t.Error("event mask layout mismatch")
	}
}

func TestDownloadHeaderLayout(t *testing.T) {
	dh := DownloadHeader{
		Flag:      DOWNLOAD_FLAG_HANDLER_VER | DOWNLOAD_FLAG_BEGIN | DOWNLOAD_FLAG_END,
		DloadType: DOWNLOAD_TYPE_CLM,
		Length:    1024,
		CRC:       0,
	}
	var buf [DOWNLOAD_HEADER_LEN]byte
	dh.Put(buf[:])
	want := []byte{0x06, 0x10, 0x02, 0x00, 0x00, 0x04, 0x00, 0x00, 0, 0, 0, 0}
	if !bytes.Equal(buf[:], want) {
		t.Errorf("got % x, want % x", buf, want)
	}
	if DecodeDownloadHeader(buf[:]) != dh {
		t.Error("round trip mismatch")
	}
}

func TestScanParamsLayout(t *testing.T) {
	sp := ScanParams{
		Version:     1,
		Action:      1,
		SyncID:      0x1234,
		SSIDLength:  4,
		BSSID:       [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		BSSType:     2,
		ScanType:    SCAN_TYPE_PASSIVE,
		NProbes:     0xffffffff,
		ActiveTime:  0xffffffff,
		PassiveTime: 0xffffffff,
		HomeTime:    0xffffffff,
		ChannelNum:  0,
		ChannelList: [1]uint16{0},
	}
	copy(sp.SSID[:], "home")
	buf := make([]byte, SCAN_PARAMS_LEN)
	sp.Put(buf)
	if DecodeScanParams(buf) != sp {
		t.Error("round trip mismatch")
	}
	if buf[50] != 2 || buf[51] != SCAN_TYPE_PASSIVE || string(buf[12:16]) != "home" {
		t.Errorf("bad layout % x", buf)
	}
}

func TestEncodeOnlyRecords(t *testing.T) {
	ci := MakeCountryInfo([2]byte{'X', 'X'}, -1)
	var cbuf [COUNTRY_INFO_LEN]byte
	ci.Put(cbuf[:])
	if !bytes.Equal(cbuf[:], []byte{'X', 'X', 0, 0, 0xff, 0xff, 0xff, 0xff, 'X', 'X', 0, 0}) {
		t.Errorf("country layout % x", cbuf)
	}
	if DecodeCountryInfo(cbuf[:]) != ci {
		t.Error("country round trip")
	}

	si := SSIDInfoWithIndex{Index: 1, SSID: SSIDInfo{Length: 3}}
	copy(si.SSID.SSID[:], "abc")
	sbuf := make([]byte, SSID_INFO_WITH_INDEX_LEN)
	si.Put(sbuf)
	if sbuf[0] != 1 || sbuf[4] != 3 || string(sbuf[8:11]) != "abc" {
		t.Errorf("ssid layout % x", sbuf)
	}
	if DecodeSSIDInfoWithIndex(sbuf) != si {
		t.Error("ssid round trip")
	}

	pi := PassphraseInfo{Length: 8, Flags: 1}
	copy(pi.Passphrase[:], "password")
	pbuf := make([]byte, PASSPHRASE_INFO_LEN)
	pi.Put(pbuf)
	if pbuf[0] != 8 || pbuf[2] != 1 || string(pbuf[4:12]) != "password" {
		t.Errorf("passphrase layout % x", pbuf[:12])
	}
	if DecodePassphraseInfo(pbuf) != pi {
		t.Error("passphrase round trip")
	}

	sae := SAEPassphraseInfo{Length: 3}
	copy(sae.Passphrase[:], "wpa")
	saebuf := make([]byte, SAE_PASSPHRASE_INFO_LEN)
	sae.Put(saebuf)
	if saebuf[0] != 3 || string(saebuf[2:5]) != "wpa" {
		t.Errorf("sae layout % x", saebuf[:5])
	}
	if DecodeSAEPassphraseInfo(saebuf) != sae {
		t.Error("sae round trip")
	}
}

func TestAlignedBuffer(t *testing.T) {
	for _, n := range []int{0, 1, 3, 4, 13, 2048} {
		buf := AlignedBuffer(n)
		if len(buf) != n {
			t.Errorf("len %d != %d", len(buf), n)
		}
		if n > 0 && checkRecord(buf, 1, 4) != nil {
			t.Errorf("buffer of %d bytes not word aligned", n)
		}
	}
}

func TestAsyncEventString(t *testing.T) {
	if EvSET_SSID.String() != "SET_SSID" {
		t.Error(EvSET_SSID.String())
	}
	if AsyncEventType(92).String() != "EV_92" {
		t.Error(AsyncEventType(92).String())
	}
	if EStatus(99).String() != "status(99)" {
		t.Error(EStatus(99).String())
	}
	// Wraps negative when converted to a 32 bit int.
	if EStatus(0xffffffff).String() != "status(4294967295)" {
		t.Error(EStatus(0xffffffff).String())
	}
}
