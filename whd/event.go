package whd

import (
	"bytes"
	"encoding/binary"
)

// Broadcom OUI carried in every [EventHeader].
var BRCM_OUI = [3]byte{0x00, 0x10, 0x18}

// EthernetHeader is the 14 byte Ethernet II header wrapping firmware events.
type EthernetHeader struct {
	Destination [6]byte
	Source      [6]byte
	EtherType   uint16 // big endian on the wire.
}

func DecodeEthernetHeader(b []byte) (hdr EthernetHeader) {
	_ = b[ETHERNET_HEADER_LEN-1]
	copy(hdr.Destination[:], b[0:6])
	copy(hdr.Source[:], b[6:12])
	hdr.EtherType = binary.BigEndian.Uint16(b[12:])
	return hdr
}

func (eth *EthernetHeader) Put(b []byte) {
	_ = b[ETHERNET_HEADER_LEN-1]
	copy(b[0:6], eth.Destination[:])
	copy(b[6:12], eth.Source[:])
	binary.BigEndian.PutUint16(b[12:], eth.EtherType)
}

// EventHeader is the Broadcom vendor header following the Ethernet header. Big endian.
type EventHeader struct {
	Subtype     uint16
	Length      uint16
	Version     uint8
	OUI         [3]byte
	UserSubtype uint16
}

func DecodeEventHeader(b []byte) (hdr EventHeader) {
	_ = b[EVENT_HEADER_LEN-1]
	hdr.Subtype = binary.BigEndian.Uint16(b)
	hdr.Length = binary.BigEndian.Uint16(b[2:])
	hdr.Version = b[4]
	copy(hdr.OUI[:], b[5:8])
	hdr.UserSubtype = binary.BigEndian.Uint16(b[8:])
	return hdr
}

func (eh *EventHeader) Put(b []byte) {
	_ = b[EVENT_HEADER_LEN-1]
	binary.BigEndian.PutUint16(b, eh.Subtype)
	binary.BigEndian.PutUint16(b[2:], eh.Length)
	b[4] = eh.Version
	copy(b[5:8], eh.OUI[:])
	binary.BigEndian.PutUint16(b[8:], eh.UserSubtype)
}

// EventMessage is the firmware event record. Big endian.
//
//	reference: cyw43_ll_parse_async_event
type EventMessage struct {
	Version   uint16
	Flags     uint16
	EventType AsyncEventType
	Status    EStatus
	Reason    uint32
	AuthType  uint32
	// DataLen is the number of event specific bytes following the message.
	DataLen   uint32
	Addr      [6]byte
	IfName    [16]byte
	IfIdx     uint8
	BSSCfgIdx uint8
}

// Interface returns IfName up to the first NUL byte.
func (em *EventMessage) Interface() []byte {
	name := em.IfName[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return name
}

func DecodeEventMessage(b []byte) (em EventMessage) {
	_ = b[EVENT_MESSAGE_LEN-1]
	em.Version = binary.BigEndian.Uint16(b)
	em.Flags = binary.BigEndian.Uint16(b[2:])
	em.EventType = AsyncEventType(binary.BigEndian.Uint32(b[4:]))
	em.Status = EStatus(binary.BigEndian.Uint32(b[8:]))
	em.Reason = binary.BigEndian.Uint32(b[12:])
	em.AuthType = binary.BigEndian.Uint32(b[16:])
	em.DataLen = binary.BigEndian.Uint32(b[20:])
	copy(em.Addr[:], b[24:30])
	copy(em.IfName[:], b[30:46])
	em.IfIdx = b[46]
	em.BSSCfgIdx = b[47]
	return em
}

func (em *EventMessage) Put(b []byte) {
	_ = b[EVENT_MESSAGE_LEN-1]
	binary.BigEndian.PutUint16(b, em.Version)
	binary.BigEndian.PutUint16(b[2:], em.Flags)
	binary.BigEndian.PutUint32(b[4:], uint32(em.EventType))
	binary.BigEndian.PutUint32(b[8:], uint32(em.Status))
	binary.BigEndian.PutUint32(b[12:], em.Reason)
	binary.BigEndian.PutUint32(b[16:], em.AuthType)
	binary.BigEndian.PutUint32(b[20:], em.DataLen)
	copy(b[24:30], em.Addr[:])
	copy(b[30:46], em.IfName[:])
	b[46] = em.IfIdx
	b[47] = em.BSSCfgIdx
}

// EventPacket is a complete firmware event as found after the BDC header.
type EventPacket struct {
	Eth EthernetHeader
	Hdr EventHeader
	Msg EventMessage
}

func DecodeEventPacket(b []byte) (ep EventPacket) {
	_ = b[EVENT_PACKET_LEN-1]
	ep.Eth = DecodeEthernetHeader(b)
	ep.Hdr = DecodeEventHeader(b[ETHERNET_HEADER_LEN:])
	ep.Msg = DecodeEventMessage(b[ETHERNET_HEADER_LEN+EVENT_HEADER_LEN:])
	return ep
}

func (ep *EventPacket) Put(b []byte) {
	_ = b[EVENT_PACKET_LEN-1]
	ep.Eth.Put(b)
	ep.Hdr.Put(b[ETHERNET_HEADER_LEN:])
	ep.Msg.Put(b[ETHERNET_HEADER_LEN+EVENT_HEADER_LEN:])
}

// ParseEventPacket decodes an event packet and returns its event data
// truncated to Msg.DataLen.
func ParseEventPacket(packet []byte) (ep EventPacket, payload []byte, err error) {
	if err = checkRecord(packet, EVENT_PACKET_LEN, 2); err != nil {
		return ep, nil, err
	}
	ep = DecodeEventPacket(packet)
	payload = packet[EVENT_PACKET_LEN:]
	if uint64(ep.Msg.DataLen) > uint64(len(payload)) {
		return ep, nil, ErrLengthMismatch
	}
	return ep, payload[:ep.Msg.DataLen], nil
}
