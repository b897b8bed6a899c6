package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/soypat/cywbus"
	"github.com/soypat/cywbus/internal/gspitrace"
)

func main() {
	fileName := flag.String("file", "digital.csv", "Path to the input file")
	omitAddrs := flag.String("omit-addrs", "", "Omit commands with these addresses. Comma separated list of hex addresses.")
	hexDump := flag.Bool("hex-dump", false, "Do full hex.Dump() of out data")
	frames := flag.Bool("frames", false, "Decode WLAN transfers as SDPCM frames.")
	flag.Parse()

	addrs, err := parseAddrs(*omitAddrs)
	if err != nil {
		log.Fatal(err)
	}
	file, err := os.Open(*fileName)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	transactions, err := gspitrace.ReadLogicCSV(file)
	if err != nil {
		log.Fatal(err)
	}
	dec := gspitrace.Decoder{HexDump: *hexDump, Frames: *frames}
	for _, raw := range transactions {
		err = describe(os.Stdout, &dec, raw, addrs)
		if err != nil {
			log.Fatal(err)
		}
	}
}

func parseAddrs(list string) (map[uint32]bool, error) {
	addrs := make(map[uint32]bool)
	if list == "" {
		return addrs, nil
	}
	for i, addr := range strings.Split(list, ",") {
		addr = strings.TrimPrefix(strings.TrimSpace(addr), "0x")
		v, err := strconv.ParseUint(addr, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing address %d: %w", i+1, err)
		}
		addrs[uint32(v)] = true
	}
	return addrs, nil
}

// describe writes raw's decoded command to w unless its address is omitted.
// Transactions clocked before the bus is switched to 32 bit words carry a
// halfword swapped command, detected by a zero length field.
func describe(w io.Writer, dec *gspitrace.Decoder, raw []byte, omit map[uint32]bool) error {
	if len(raw) < 8 {
		return nil
	}
	endian := "BE"
	cmd := binary.BigEndian.Uint32(raw)
	if cmd&cywbus.MaxTransferSize == 0 {
		endian = "16"
		swapHalves(raw)
	}
	tx, err := dec.Parse(raw[:len(raw)-4]) // Trailing status word.
	if err != nil || omit[tx.Cmd.Addr] {
		return err
	}
	if !tx.Cmd.Write {
		tx.Data = tx.Data[:0]
	}
	fmt.Fprintf(w, "%s ", endian)
	return dec.Describe(w, tx)
}

// swapHalves exchanges the 16 bit halves of every big endian word in data.
func swapHalves(data []byte) {
	for len(data) >= 4 {
		w := binary.BigEndian.Uint32(data)
		binary.BigEndian.PutUint32(data, w>>16|w<<16)
		data = data[4:]
	}
}
