package gspitrace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ReadLogicCSV reads a logic analyzer export with columns time, CS, SDIO and
// CLK and returns the bytes sampled on the data line during each chip select
// assertion. Bits are sampled on the rising clock edge, MSB first. The first
// row is a header and is skipped. A row whose CS, SDIO or CLK column is not
// an integer is an error.
func ReadLogicCSV(r io.Reader) ([][]byte, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		records = records[1:]
	}
	var (
		transactions [][]byte
		current      []byte
		currentByte  uint8
		bitCounter   uint8
		prevCS       = 1
		prevCLK      int
	)
	for i, record := range records {
		if len(record) < 4 {
			continue
		}
		var levels [3]int
		for j := range levels {
			levels[j], err = strconv.Atoi(record[j+1])
			if err != nil {
				return nil, fmt.Errorf("gspitrace: csv line %d: %w", i+2, err)
			}
		}
		cs, sdio, clk := levels[0], levels[1], levels[2]

		if prevCS == 1 && cs == 0 {
			current = nil
			currentByte = 0
			bitCounter = 0
		}
		if cs == 0 && prevCLK == 0 && clk == 1 {
			currentByte = currentByte<<1 | uint8(sdio&1)
			bitCounter++
			if bitCounter == 8 {
				current = append(current, currentByte)
				bitCounter = 0
				currentByte = 0
			}
		}
		if prevCS == 0 && cs == 1 && len(current) > 0 {
			transactions = append(transactions, current)
		}
		prevCS = cs
		prevCLK = clk
	}
	return transactions, nil
}
