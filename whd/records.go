package whd

import "encoding/binary"

// Encode-only records sent to firmware through ioctls and iovars. All little
// endian. Decode functions exist for inspecting captured traffic.

// DownloadHeader prefixes each chunk of a CLM download ("clmload" iovar).
type DownloadHeader struct {
	Flag      uint16
	DloadType uint16
	Length    uint32
	CRC       uint32
}

func (dh *DownloadHeader) Put(b []byte) {
	_ = b[DOWNLOAD_HEADER_LEN-1]
	binary.LittleEndian.PutUint16(b, dh.Flag)
	binary.LittleEndian.PutUint16(b[2:], dh.DloadType)
	binary.LittleEndian.PutUint32(b[4:], dh.Length)
	binary.LittleEndian.PutUint32(b[8:], dh.CRC)
}

func DecodeDownloadHeader(b []byte) (dh DownloadHeader) {
	_ = b[DOWNLOAD_HEADER_LEN-1]
	dh.Flag = binary.LittleEndian.Uint16(b)
	dh.DloadType = binary.LittleEndian.Uint16(b[2:])
	dh.Length = binary.LittleEndian.Uint32(b[4:])
	dh.CRC = binary.LittleEndian.Uint32(b[8:])
	return dh
}

// CountryInfo is the value of the "country" iovar.
type CountryInfo struct {
	Abbrev [4]byte
	Rev    int32
	Code   [4]byte
}

// MakeCountryInfo returns the CountryInfo for a two letter country code.
// Use rev -1 to select the firmware default revision.
func MakeCountryInfo(code [2]byte, rev int32) CountryInfo {
	return CountryInfo{
		Abbrev: [4]byte{code[0], code[1]},
		Rev:    rev,
		Code:   [4]byte{code[0], code[1]},
	}
}

func (ci *CountryInfo) Put(b []byte) {
	_ = b[COUNTRY_INFO_LEN-1]
	copy(b[0:4], ci.Abbrev[:])
	binary.LittleEndian.PutUint32(b[4:], uint32(ci.Rev))
	copy(b[8:12], ci.Code[:])
}

func DecodeCountryInfo(b []byte) (ci CountryInfo) {
	_ = b[COUNTRY_INFO_LEN-1]
	copy(ci.Abbrev[:], b[0:4])
	ci.Rev = int32(binary.LittleEndian.Uint32(b[4:]))
	copy(ci.Code[:], b[8:12])
	return ci
}

// SSIDInfo is the argument to WLC_SET_SSID.
type SSIDInfo struct {
	Length uint32
	SSID   [MAX_SSID_LEN]byte
}

func (si *SSIDInfo) Put(b []byte) {
	_ = b[SSID_INFO_LEN-1]
	binary.LittleEndian.PutUint32(b, si.Length)
	copy(b[4:SSID_INFO_LEN], si.SSID[:])
}

func DecodeSSIDInfo(b []byte) (si SSIDInfo) {
	_ = b[SSID_INFO_LEN-1]
	si.Length = binary.LittleEndian.Uint32(b)
	copy(si.SSID[:], b[4:SSID_INFO_LEN])
	return si
}

// SSIDInfoWithIndex is the value of the "bsscfg:ssid" iovar.
type SSIDInfoWithIndex struct {
	Index uint32
	SSID  SSIDInfo
}

func (si *SSIDInfoWithIndex) Put(b []byte) {
	_ = b[SSID_INFO_WITH_INDEX_LEN-1]
	binary.LittleEndian.PutUint32(b, si.Index)
	si.SSID.Put(b[4:])
}

func DecodeSSIDInfoWithIndex(b []byte) (si SSIDInfoWithIndex) {
	_ = b[SSID_INFO_WITH_INDEX_LEN-1]
	si.Index = binary.LittleEndian.Uint32(b)
	si.SSID = DecodeSSIDInfo(b[4:])
	return si
}

// PassphraseInfo is the argument to WLC_SET_WSEC_PMK.
type PassphraseInfo struct {
	Length     uint16
	Flags      uint16
	Passphrase [MAX_PASSPHRASE_LEN]byte
}

func (pi *PassphraseInfo) Put(b []byte) {
	_ = b[PASSPHRASE_INFO_LEN-1]
	binary.LittleEndian.PutUint16(b, pi.Length)
	binary.LittleEndian.PutUint16(b[2:], pi.Flags)
	copy(b[4:PASSPHRASE_INFO_LEN], pi.Passphrase[:])
}

func DecodePassphraseInfo(b []byte) (pi PassphraseInfo) {
	_ = b[PASSPHRASE_INFO_LEN-1]
	pi.Length = binary.LittleEndian.Uint16(b)
	pi.Flags = binary.LittleEndian.Uint16(b[2:])
	copy(pi.Passphrase[:], b[4:PASSPHRASE_INFO_LEN])
	return pi
}

// SAEPassphraseInfo is the value of the "sae_password" iovar used by WPA3.
type SAEPassphraseInfo struct {
	Length     uint16
	Passphrase [MAX_SAE_PASSPHRASE_LEN]byte
}

func (pi *SAEPassphraseInfo) Put(b []byte) {
	_ = b[SAE_PASSPHRASE_INFO_LEN-1]
	binary.LittleEndian.PutUint16(b, pi.Length)
	copy(b[2:SAE_PASSPHRASE_INFO_LEN], pi.Passphrase[:])
}

func DecodeSAEPassphraseInfo(b []byte) (pi SAEPassphraseInfo) {
	_ = b[SAE_PASSPHRASE_INFO_LEN-1]
	pi.Length = binary.LittleEndian.Uint16(b)
	copy(pi.Passphrase[:], b[2:SAE_PASSPHRASE_INFO_LEN])
	return pi
}

// EventMask is the value of the "bsscfg:event_msgs" iovar. A set bit enables
// delivery of the corresponding [AsyncEventType].
type EventMask struct {
	Iface  uint32
	Events [EVENT_MASK_BYTES]byte
}

// Unset disables delivery of ev. Events outside the mask are ignored.
func (em *EventMask) Unset(ev AsyncEventType) {
	if ev/8 < EVENT_MASK_BYTES {
		em.Events[ev/8] &^= 1 << (ev % 8)
	}
}

// Set enables delivery of ev. Events outside the mask are ignored.
func (em *EventMask) Set(ev AsyncEventType) {
	if ev/8 < EVENT_MASK_BYTES {
		em.Events[ev/8] |= 1 << (ev % 8)
	}
}

// IsSet reports whether ev is enabled.
func (em *EventMask) IsSet(ev AsyncEventType) bool {
	return ev/8 < EVENT_MASK_BYTES && em.Events[ev/8]&(1<<(ev%8)) != 0
}

func (em *EventMask) Put(b []byte) {
	_ = b[EVENT_MASK_LEN-1]
	binary.LittleEndian.PutUint32(b, em.Iface)
	copy(b[4:EVENT_MASK_LEN], em.Events[:])
}

func DecodeEventMask(b []byte) (em EventMask) {
	_ = b[EVENT_MASK_LEN-1]
	em.Iface = binary.LittleEndian.Uint32(b)
	copy(em.Events[:], b[4:EVENT_MASK_LEN])
	return em
}
