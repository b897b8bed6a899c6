package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/soypat/cywbus/internal/gspitrace"
	"github.com/soypat/saleae"
	"github.com/soypat/saleae/analyzers"
)

// Optional flags.
var (
	timingsOutput string
)

type BusCtl struct {
	// Bus ordering.
	Order binary.ByteOrder
	// Interpret bytes as words.
	WordInterpreter binary.ByteOrder
	TrimForce       uint
	TrimStatus      bool
	OmitReadData    bool
	OmitRead        bool
	OmitWrite       bool
	OmitIneffectual bool
	PadDataToWord   bool
	Frames          bool
	logger          *slog.Logger
}

func main() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "cywanalyze - Process Binary Saleae digital data files corresponding to CYW43439 transactions.\n\tUsage:\n")
		flag.PrintDefaults()
	}
	sdio := flag.String("f-sd", "digital_1.bin", "Input filename: SPI SDO/SDI data.")
	enable := flag.String("f-cs", "digital_0.bin", "Input filename: SPI CS/SS data.")
	clk := flag.String("f-clk", "digital_2.bin", "Input filename: SPI CLK data.")
	output := flag.String("o-cmd", "commands.txt", "Output filename of CYW43439 command transactions.")

	flag.StringVar(&timingsOutput, "o-time", "", "Output timing data to a file corresponding to output command history line-by-line.")
	const defaultOrdering = "be"
	flagInterpretWords := flag.String("interpret-words", "", "Interpret byte data as uint32 words in this order. Accepts 'be' or 'le'. Defaults to bus order.")
	flagBusOrder := flag.String("bus-order", defaultOrdering, "Byte order of words on the bus.")
	flagTrimStatus := flag.Bool("trim-stat", false, "Trim status word. Will look at command length and trim 4 trailing bytes not part of actual command data.")
	flagTrimForce := flag.Uint("trim-force", 0, "Trims n bytes off the end of every command.")
	omitReadData := flag.Bool("omit-read-data", false, "Choose to omit read data in output.")
	omitReadAll := flag.Bool("omit-read", false, "Choose to omit read commands in output.")
	omitWriteAll := flag.Bool("omit-write", false, "Choose to omit write commands in output.")
	omitIneffectual := flag.Bool("omit-inef", false, "Omit data after the command size.")
	padDataToWord := flag.Bool("pad-data", false, "Pad data to word size (4 bytes).")
	frames := flag.Bool("frames", false, "Decode WLAN transfers as SDPCM frames.")
	flag.Parse()
	if *flagInterpretWords == "" {
		*flagInterpretWords = *flagBusOrder
	}
	getOrder := func(s string) binary.ByteOrder {
		switch s {
		case "be":
			return binary.BigEndian
		case "le":
			return binary.LittleEndian
		}
		log.Fatal("invalid ordering ", s)
		return nil
	}
	BUS := BusCtl{
		Order:           getOrder(*flagBusOrder),
		WordInterpreter: getOrder(*flagInterpretWords),
		TrimForce:       *flagTrimForce,
		TrimStatus:      *flagTrimStatus,
		OmitReadData:    *omitReadData,
		OmitRead:        *omitReadAll,
		OmitWrite:       *omitWriteAll,
		PadDataToWord:   *padDataToWord,
		OmitIneffectual: *omitIneffectual,
		Frames:          *frames,
		logger:          slog.New(handler),
	}
	if BUS.OmitRead && BUS.OmitWrite {
		log.Fatal("cannot omit both read and write commands")
	}
	start := time.Now()
	if err := BUS.run(*sdio, *enable, *clk, *output); err != nil {
		log.Fatal(err.Error())
	}
	BUS.logger.Info("finished", slog.Duration("took", time.Since(start)))
}

func (bus *BusCtl) run(sdio, enable, clk, output string) error {
	txs, err := bus.processSpiFiles(sdio, clk, enable)
	if err != nil {
		return err
	}
	fp, err := os.Create(output)
	if err != nil {
		return err
	}
	defer fp.Close()

	var timings *os.File
	if timingsOutput != "" {
		bus.logger.Info("creating timings file", slog.String("name", timingsOutput))
		timings, err = os.Create(timingsOutput)
		if err != nil {
			return err
		}
		defer timings.Close()
	}
	var tw io.Writer
	if timings != nil {
		tw = timings
	}
	return bus.write(fp, tw, gspitrace.Compact(txs))
}

// write outputs one line per record to w and the record start times to timings, if not nil.
func (bus *BusCtl) write(w, timings io.Writer, records []gspitrace.Record) error {
	dec := gspitrace.Decoder{Frames: bus.Frames}
	for _, rec := range records {
		if (bus.OmitRead && !rec.Cmd.Write) || (bus.OmitWrite && rec.Cmd.Write) {
			continue
		} else if bus.OmitReadData && !rec.Cmd.Write {
			rec.Data = []byte{}
		} else if bus.PadDataToWord && len(rec.Data)%4 != 0 {
			rec.Data = bus.padToWord(rec.Data)
		}
		if bus.OmitIneffectual && rec.Cmd.Size < uint32(len(rec.Data)) {
			rec.Data = rec.Data[:rec.Cmd.Size]
		}
		_, err := fmt.Fprintf(w, "cmd×%2d ", rec.Count)
		if err != nil {
			return err
		}
		err = dec.Describe(w, rec.Transaction)
		if err != nil {
			return err
		}
		if timings != nil {
			fmt.Fprintf(timings, "t=%f\tdata=%#x\n", rec.Start, rec.Data)
		}
	}
	return nil
}

func (bus *BusCtl) padToWord(data []byte) []byte {
	unpadded := len(data) - len(data)%4
	padded := append([]byte{}, data[:unpadded]...)
	if bus.WordInterpreter == binary.BigEndian {
		padded = append(padded, make([]byte, 4-len(data)%4)...)
		return append(padded, data[unpadded:]...)
	}
	padded = append(padded, data[unpadded:]...)
	return append(padded, make([]byte, 4-len(data)%4)...)
}

func (bus *BusCtl) processSpiFiles(fsdio, fclk, fenable string) ([]gspitrace.Transaction, error) {
	sdio, err := opendigital(fsdio)
	if err != nil {
		return nil, err
	}
	clk, err := opendigital(fclk)
	if err != nil {
		return nil, err
	}
	enable, err := opendigital(fenable)
	if err != nil {
		return nil, err
	}
	spi := analyzers.SPI{}
	txs, _ := spi.Scan(clk, enable, sdio, sdio)
	return bus.process(txs), nil
}

func opendigital(filename string) (*saleae.DigitalFile, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	df, err := saleae.ReadDigitalFile(fp)
	if err != nil {
		return nil, err
	}
	return df, nil
}

func (bus *BusCtl) process(txs []analyzers.TxSPI) (cytxs []gspitrace.Transaction) {
	dec := gspitrace.Decoder{Order: bus.Order, TrimStatus: bus.TrimStatus}
	for _, tx := range txs {
		cytx, err := dec.Parse(tx.SDO)
		if err != nil {
			bus.logger.Warn("skipping transaction", slog.Float64("t", tx.StartTime()), slog.String("err", err.Error()))
			continue
		}
		if bus.TrimForce > 0 {
			cytx.Data = cytx.Data[:max(0, len(cytx.Data)-int(bus.TrimForce))]
		}
		bus.interpretBytes(cytx.Data)
		cytx.Start = tx.StartTime()
		cytxs = append(cytxs, cytx)
	}
	return cytxs
}

func (bus *BusCtl) interpretBytes(data []byte) {
	if bus.WordInterpreter == bus.Order {
		return // Idempotent transformation.
	}
	for len(data) >= 4 {
		word := bus.Order.Uint32(data[:4])
		bus.WordInterpreter.PutUint32(data[:4], word)
		data = data[4:]
	}
}
