package cywbus

// Transport performs complete gSPI transactions. Each call asserts chip
// select, clocks the command word and payload, reads back the status word
// when status reporting is enabled and releases chip select.
//
// CmdRead clocks cmd out and then fills buf with the words the chip returns.
// CmdWrite clocks cmd out followed by buf. Both return the raw status word.
type Transport interface {
	CmdRead(cmd uint32, buf []uint32) (status uint32, err error)
	CmdWrite(cmd uint32, buf []uint32) (status uint32, err error)
	// WaitForEvent blocks until the chip signals an interrupt or the
	// implementation decides it is time to poll again.
	WaitForEvent()
}

// OutputPin sets a digital output. Used for WL_REG_ON and chip select.
type OutputPin func(level bool)
