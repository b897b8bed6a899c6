package whd

import (
	"encoding/binary"
)

// SDPCMHeader prefixes every frame on the WLAN function. Little endian.
type SDPCMHeader struct {
	Size         uint16
	SizeCom      uint16 // complement of size, so ^Size.
	Seq          uint8  // Rx/Tx sequence number
	ChanAndFlags uint8  // 4 MSB arbitrary flags, 4 LSB channel number.
	// length of next data frame, reserved for Tx
	NextLength      uint8
	HeaderLength    uint8 // data offset
	WirelessFlowCtl uint8 // flow control bits, reserved for Tx
	BusDataCredit   uint8 // maximum Sequence number allowed by firmware for Tx
	Reserved        [2]uint8
}

func (s SDPCMHeader) Type() SDPCMHeaderType { return SDPCMHeaderType(s.ChanAndFlags & 0xf) }

func DecodeSDPCMHeader(b []byte) (hdr SDPCMHeader) {
	_ = b[SDPCM_HEADER_LEN-1]
	hdr.Size = binary.LittleEndian.Uint16(b)
	hdr.SizeCom = binary.LittleEndian.Uint16(b[2:])
	hdr.Seq = b[4]
	hdr.ChanAndFlags = b[5]
	hdr.NextLength = b[6]
	hdr.HeaderLength = b[7]
	hdr.WirelessFlowCtl = b[8]
	hdr.BusDataCredit = b[9]
	copy(hdr.Reserved[:], b[10:12])
	return hdr
}

// Put puts all 12 bytes of sdpcmHeader in dst. Panics if dst is shorter than 12 bytes in length.
func (s *SDPCMHeader) Put(dst []byte) {
	_ = dst[SDPCM_HEADER_LEN-1]
	binary.LittleEndian.PutUint16(dst, s.Size)
	binary.LittleEndian.PutUint16(dst[2:], s.SizeCom)
	dst[4] = s.Seq
	dst[5] = s.ChanAndFlags
	dst[6] = s.NextLength
	dst[7] = s.HeaderLength
	dst[8] = s.WirelessFlowCtl
	dst[9] = s.BusDataCredit
	copy(dst[10:12], s.Reserved[:])
}

// ParseSDPCMHeader decodes the header at the start of packet, which must hold
// exactly one frame, and returns the frame payload.
func ParseSDPCMHeader(packet []byte) (hdr SDPCMHeader, payload []byte, err error) {
	if err = checkRecord(packet, SDPCM_HEADER_LEN, 2); err != nil {
		return hdr, nil, err
	}
	hdr = DecodeSDPCMHeader(packet)
	if hdr.Size != ^hdr.SizeCom {
		return hdr, nil, ErrLengthMismatch // size complement mismatch.
	}
	if int(hdr.Size) != len(packet) {
		return hdr, nil, ErrLengthMismatch
	}
	if hdr.HeaderLength < SDPCM_HEADER_LEN || int(hdr.HeaderLength) > len(packet) {
		return hdr, nil, ErrLengthMismatch
	}
	return hdr, packet[hdr.HeaderLength:], nil
}

// CDCHeader is the control channel (ioctl) header. Little endian.
type CDCHeader struct {
	Cmd    SDPCMCommand
	Length uint32
	Flags  uint16
	ID     uint16
	Status uint32
}

// Interface returns the interface index encoded in the flags.
func (cdc CDCHeader) Interface() IoctlInterface {
	return IoctlInterface((cdc.Flags & CDCF_IOC_IF_MASK) >> CDCF_IOC_IF_SHIFT)
}

// IsError returns true if firmware flagged the ioctl as failed.
func (cdc CDCHeader) IsError() bool { return cdc.Flags&CDCF_IOC_ERROR != 0 }

func DecodeCDCHeader(b []byte) (hdr CDCHeader) {
	_ = b[CDC_HEADER_LEN-1]
	hdr.Cmd = SDPCMCommand(binary.LittleEndian.Uint32(b))
	hdr.Length = binary.LittleEndian.Uint32(b[4:])
	hdr.Flags = binary.LittleEndian.Uint16(b[8:])
	hdr.ID = binary.LittleEndian.Uint16(b[10:])
	hdr.Status = binary.LittleEndian.Uint32(b[12:])
	return hdr
}

// Put puts all 16 bytes of cdc in b. Panics if b is shorter.
func (cdc *CDCHeader) Put(b []byte) {
	_ = b[CDC_HEADER_LEN-1]
	binary.LittleEndian.PutUint32(b, uint32(cdc.Cmd))
	binary.LittleEndian.PutUint32(b[4:], cdc.Length)
	binary.LittleEndian.PutUint16(b[8:], cdc.Flags)
	binary.LittleEndian.PutUint16(b[10:], cdc.ID)
	binary.LittleEndian.PutUint32(b[12:], cdc.Status)
}

// ParseCDCHeader decodes a CDC header and returns its payload truncated to the header's Length.
func ParseCDCHeader(packet []byte) (hdr CDCHeader, payload []byte, err error) {
	if err = checkRecord(packet, CDC_HEADER_LEN, 2); err != nil {
		return hdr, nil, err
	}
	hdr = DecodeCDCHeader(packet)
	payload = packet[CDC_HEADER_LEN:]
	if uint64(hdr.Length) > uint64(len(payload)) {
		return hdr, nil, ErrLengthMismatch
	}
	return hdr, payload[:hdr.Length], nil
}

// BDCHeader prefixes data and event frames.
type BDCHeader struct {
	Flags    uint8
	Priority uint8
	Flags2   uint8
	// DataOffset is the number of 4 byte words between the header and the payload.
	DataOffset uint8
}

// Interface returns the interface index held in Flags2.
func (bdc BDCHeader) Interface() IoctlInterface { return IoctlInterface(bdc.Flags2 & BDC_FLAG2_IF_MASK) }

func (bdc *BDCHeader) Put(b []byte) {
	_ = b[BDC_HEADER_LEN-1]
	b[0] = bdc.Flags
	b[1] = bdc.Priority
	b[2] = bdc.Flags2
	b[3] = bdc.DataOffset
}

func DecodeBDCHeader(b []byte) (hdr BDCHeader) {
	_ = b[BDC_HEADER_LEN-1]
	hdr.Flags = b[0]
	hdr.Priority = b[1]
	hdr.Flags2 = b[2]
	hdr.DataOffset = b[3]
	return hdr
}

// ParseBDCHeader decodes a BDC header and returns the payload found after the
// header and DataOffset padding words.
func ParseBDCHeader(packet []byte) (hdr BDCHeader, payload []byte, err error) {
	if err = checkRecord(packet, BDC_HEADER_LEN, 1); err != nil {
		return hdr, nil, err
	}
	hdr = DecodeBDCHeader(packet)
	off := BDC_HEADER_LEN + 4*int(hdr.DataOffset)
	if off > len(packet) {
		return hdr, nil, ErrLengthMismatch
	}
	return hdr, packet[off:], nil
}
