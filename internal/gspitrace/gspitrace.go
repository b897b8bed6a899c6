// Package gspitrace decodes captured CYW43439 gSPI transactions into
// human readable lines. WLAN function payloads are further decoded as
// SDPCM frames: ioctl responses, firmware events and Ethernet data.
package gspitrace

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/soypat/cywbus"
	"github.com/soypat/cywbus/whd"
	"github.com/soypat/seqs/eth"
)

var errShortCommand = errors.New("gspitrace: transaction shorter than command word")

// Transaction is one chip select assertion worth of bus traffic.
type Transaction struct {
	Cmd cywbus.Cmd
	// Data holds the bytes clocked after the command word. For backplane
	// reads the response delay word is already removed.
	Data []byte
	// Start is the capture timestamp in seconds, if known.
	Start float64
}

// Payload returns Data limited to the size described by the command word.
func (tx *Transaction) Payload() []byte {
	return tx.Data[:min(len(tx.Data), int(tx.Cmd.Size))]
}

// Decoder turns raw captured bytes into transactions.
type Decoder struct {
	// Order is the byte order of words on the wire. The chip clocks words
	// most significant byte first after bring-up, so nil selects big endian.
	Order binary.ByteOrder
	// TrimStatus removes a trailing status word when the data is exactly
	// one word longer than the command size.
	TrimStatus bool
	// Frames enables decoding of WLAN payloads as SDPCM frames.
	Frames bool
	// HexDump appends a full hex dump of the payload.
	HexDump bool
}

func (d *Decoder) order() binary.ByteOrder {
	if d.Order == nil {
		return binary.BigEndian
	}
	return d.Order
}

// Parse decodes the command word at the start of raw. The returned
// transaction aliases raw.
func (d *Decoder) Parse(raw []byte) (tx Transaction, err error) {
	if len(raw) < 4 {
		return tx, errShortCommand
	}
	tx.Cmd = cywbus.DecodeCmd(d.order().Uint32(raw))
	tx.Data = raw[4:]
	if tx.Cmd.Fn == cywbus.FuncBackplane && !tx.Cmd.Write && len(tx.Data) > 4 {
		tx.Data = tx.Data[4:] // response delay padding.
	}
	if d.TrimStatus && len(tx.Data)-int(tx.Cmd.Size) == 4 {
		tx.Data = tx.Data[:tx.Cmd.Size]
	}
	return tx, nil
}

// Record is a transaction repeated Count consecutive times.
type Record struct {
	Transaction
	Count int
}

// Compact merges consecutive identical transactions, as produced by
// register polling loops, into single records.
func Compact(txs []Transaction) []Record {
	var records []Record
	for i := 0; i < len(txs); i++ {
		rec := Record{Transaction: txs[i], Count: 1}
		for i+1 < len(txs) && txs[i+1].Cmd == rec.Cmd && bytes.Equal(txs[i+1].Data, rec.Data) {
			rec.Count++
			i++
		}
		records = append(records, rec)
	}
	return records
}

// Describe writes a line describing tx to w followed by any decoded frame lines.
func (d *Decoder) Describe(w io.Writer, tx Transaction) error {
	payload := tx.Payload()
	_, err := fmt.Fprintf(w, "%s data=%x", tx.Cmd.String(), payload)
	if err != nil {
		return err
	}
	if extra := tx.Data[len(payload):]; len(extra) > 0 {
		// Bytes after the command size are not part of the command.
		fmt.Fprintf(w, " %x", extra)
	}
	if _, err = fmt.Fprintln(w); err != nil {
		return err
	}
	if d.Frames && tx.Cmd.Fn == cywbus.FuncWLAN && len(payload) > 0 {
		err = DescribeFrame(w, payload)
	}
	if err == nil && d.HexDump && len(payload) > 0 {
		_, err = io.WriteString(w, hex.Dump(payload))
	}
	return err
}

// DescribeFrame decodes an SDPCM frame as read from or written to the WLAN
// function and writes one indented line per protocol layer. Decode errors
// are written as lines, only write errors are returned.
func DescribeFrame(w io.Writer, frame []byte) error {
	if len(frame) < whd.SDPCM_HEADER_LEN {
		return nil
	}
	// Transfers are padded to a word, the frame holds its real size.
	size := int(binary.LittleEndian.Uint16(frame))
	if size == 0 || size > len(frame) {
		_, err := fmt.Fprintf(w, "\tsdpcm: bad size %d of %d\n", size, len(frame))
		return err
	}
	hdr, payload, err := whd.ParseSDPCMHeader(aligned(frame[:size]))
	if err != nil {
		_, err = fmt.Fprintf(w, "\tsdpcm: %v\n", err)
		return err
	}
	_, err = fmt.Fprintf(w, "\tsdpcm %s seq=%d credit=%d len=%d\n", hdr.Type(), hdr.Seq, hdr.BusDataCredit, hdr.Size)
	if err != nil {
		return err
	}
	switch hdr.Type() {
	case whd.CONTROL_HEADER:
		return describeCDC(w, payload)
	case whd.ASYNCEVENT_HEADER:
		return describeBDC(w, payload, true)
	case whd.DATA_HEADER:
		return describeBDC(w, payload, false)
	}
	return nil
}

func describeCDC(w io.Writer, payload []byte) error {
	cdc, data, err := whd.ParseCDCHeader(aligned(payload))
	if err != nil {
		_, err = fmt.Fprintf(w, "\tcdc: %v\n", err)
		return err
	}
	_, err = fmt.Fprintf(w, "\tcdc %s id=%d if=%d len=%d status=%d err=%t data=%x\n",
		cdc.Cmd, cdc.ID, cdc.Interface(), cdc.Length, int32(cdc.Status), cdc.IsError(), data)
	return err
}

func describeBDC(w io.Writer, payload []byte, event bool) error {
	bdc, data, err := whd.ParseBDCHeader(payload)
	if err != nil {
		_, err = fmt.Fprintf(w, "\tbdc: %v\n", err)
		return err
	}
	if !event {
		if len(data) < eth.SizeEthernetHeader {
			_, err = fmt.Fprintf(w, "\tbdc if=%d short ethernet frame %x\n", bdc.Interface(), data)
			return err
		}
		ehdr := eth.DecodeEthernetHeader(data)
		_, err = fmt.Fprintf(w, "\teth if=%d %s len=%d\n", bdc.Interface(), ehdr.String(), len(data))
		return err
	}
	ep, evdata, err := whd.ParseEventPacket(aligned(data))
	if err != nil {
		_, err = fmt.Fprintf(w, "\tevent: %v\n", err)
		return err
	}
	if ep.Eth.EtherType != whd.ETHERTYPE_BRCM {
		_, err = fmt.Fprintf(w, "\tevent: unexpected ethertype %#04x\n", ep.Eth.EtherType)
		return err
	}
	_, err = fmt.Fprintf(w, "\tevent %s status=%s reason=%d if=%s addr=%x datalen=%d\n",
		ep.Msg.EventType, ep.Msg.Status, ep.Msg.Reason, ep.Msg.Interface(), ep.Msg.Addr, ep.Msg.DataLen)
	if err != nil || ep.Msg.EventType != whd.EvESCAN_RESULT || len(evdata) == 0 {
		return err
	}
	return describeScan(w, evdata)
}

func describeScan(w io.Writer, data []byte) error {
	sr, bss, err := whd.ParseScanResults(aligned(data))
	if err != nil {
		_, err = fmt.Fprintf(w, "\tscan: %v\n", err)
		return err
	}
	if sr.BSSCount == 0 {
		_, err = fmt.Fprintf(w, "\tscan sync=%d done\n", sr.SyncID)
		return err
	}
	info, _, err := whd.ParseBssInfo(aligned(bss))
	if err != nil {
		_, err = fmt.Fprintf(w, "\tbss: %v\n", err)
		return err
	}
	_, err = fmt.Fprintf(w, "\tbss ssid=%q bssid=%x rssi=%d ch=%d\n", info.SSIDBytes(), info.BSSID, info.RSSI, info.CtlCh)
	return err
}

// aligned returns a word aligned copy of b.
func aligned(b []byte) []byte {
	buf := whd.AlignedBuffer(len(b))
	copy(buf, b)
	return buf
}
