package cywbus

import "tinygo.org/x/drivers"

// MirrorSPI wraps a drivers.SPI and replays every exchanged byte on a second
// bus, typically spare pins watched by a logic analyzer. Each mirrored byte is
// w|r: on a 3-wire bus the side not driving the shared data line reads zero,
// so this is the level seen on the line.
type MirrorSPI struct {
	drivers.SPI
	Mirror drivers.SPI
	buf    []byte
}

var _ drivers.SPI = (*MirrorSPI)(nil)

func (m *MirrorSPI) Tx(w, r []byte) error {
	err := m.SPI.Tx(w, r)
	if err != nil {
		return err
	}
	m.buf = m.buf[:0]
	for i := 0; i < max(len(w), len(r)); i++ {
		var b byte
		if i < len(w) {
			b = w[i]
		}
		if i < len(r) {
			b |= r[i]
		}
		m.buf = append(m.buf, b)
	}
	return m.Mirror.Tx(m.buf, nil)
}

func (m *MirrorSPI) Transfer(b byte) (byte, error) {
	r, err := m.SPI.Transfer(b)
	if err != nil {
		return r, err
	}
	_, err = m.Mirror.Transfer(b | r)
	return r, err
}
