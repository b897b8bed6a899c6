package whd

import "encoding/binary"

// Scan types for [ScanParams.ScanType].
const (
	SCAN_TYPE_ACTIVE  = 0
	SCAN_TYPE_PASSIVE = 1
)

// ScanParams are the escan parameters sent with the "escan" iovar. Little endian.
type ScanParams struct {
	Version uint32
	Action  uint16
	SyncID  uint16
	// 0=all
	SSIDLength uint32
	// SSID Name.
	SSID    [32]byte
	BSSID   [6]byte
	BSSType uint8
	// Scan type. 0=active, 1=passive.
	ScanType    uint8
	NProbes     uint32
	ActiveTime  uint32
	PassiveTime uint32
	HomeTime    uint32
	ChannelNum  uint32
	ChannelList [1]uint16
}

func (sp *ScanParams) Put(b []byte) {
	_ = b[SCAN_PARAMS_LEN-1]
	binary.LittleEndian.PutUint32(b, sp.Version)
	binary.LittleEndian.PutUint16(b[4:], sp.Action)
	binary.LittleEndian.PutUint16(b[6:], sp.SyncID)
	binary.LittleEndian.PutUint32(b[8:], sp.SSIDLength)
	copy(b[12:44], sp.SSID[:])
	copy(b[44:50], sp.BSSID[:])
	b[50] = sp.BSSType
	b[51] = sp.ScanType
	binary.LittleEndian.PutUint32(b[52:], sp.NProbes)
	binary.LittleEndian.PutUint32(b[56:], sp.ActiveTime)
	binary.LittleEndian.PutUint32(b[60:], sp.PassiveTime)
	binary.LittleEndian.PutUint32(b[64:], sp.HomeTime)
	binary.LittleEndian.PutUint32(b[68:], sp.ChannelNum)
	binary.LittleEndian.PutUint16(b[72:], sp.ChannelList[0])
}

func DecodeScanParams(b []byte) (sp ScanParams) {
	_ = b[SCAN_PARAMS_LEN-1]
	sp.Version = binary.LittleEndian.Uint32(b)
	sp.Action = binary.LittleEndian.Uint16(b[4:])
	sp.SyncID = binary.LittleEndian.Uint16(b[6:])
	sp.SSIDLength = binary.LittleEndian.Uint32(b[8:])
	copy(sp.SSID[:], b[12:44])
	copy(sp.BSSID[:], b[44:50])
	sp.BSSType = b[50]
	sp.ScanType = b[51]
	sp.NProbes = binary.LittleEndian.Uint32(b[52:])
	sp.ActiveTime = binary.LittleEndian.Uint32(b[56:])
	sp.PassiveTime = binary.LittleEndian.Uint32(b[60:])
	sp.HomeTime = binary.LittleEndian.Uint32(b[64:])
	sp.ChannelNum = binary.LittleEndian.Uint32(b[68:])
	sp.ChannelList[0] = binary.LittleEndian.Uint16(b[72:])
	return sp
}

// ScanResults is the header of an escan result event's data.
type ScanResults struct {
	BufLen   uint32
	Version  uint32
	SyncID   uint16
	BSSCount uint16
}

func DecodeScanResults(b []byte) (sr ScanResults) {
	_ = b[SCAN_RESULTS_LEN-1]
	sr.BufLen = binary.LittleEndian.Uint32(b)
	sr.Version = binary.LittleEndian.Uint32(b[4:])
	sr.SyncID = binary.LittleEndian.Uint16(b[8:])
	sr.BSSCount = binary.LittleEndian.Uint16(b[10:])
	return sr
}

func (sr *ScanResults) Put(b []byte) {
	_ = b[SCAN_RESULTS_LEN-1]
	binary.LittleEndian.PutUint32(b, sr.BufLen)
	binary.LittleEndian.PutUint32(b[4:], sr.Version)
	binary.LittleEndian.PutUint16(b[8:], sr.SyncID)
	binary.LittleEndian.PutUint16(b[10:], sr.BSSCount)
}

// ParseScanResults decodes the escan result header and returns the bytes
// following it, which hold BSSCount [BssInfo] records.
//
//	reference: cyw43_ll_wifi_parse_scan_result
func ParseScanResults(buf []byte) (sr ScanResults, bss []byte, err error) {
	if err = checkRecord(buf, SCAN_RESULTS_LEN, 2); err != nil {
		return sr, nil, err
	}
	sr = DecodeScanResults(buf)
	bss = buf[SCAN_RESULTS_LEN:]
	if sr.BSSCount > 0 && len(bss) < BSS_INFO_LEN {
		return sr, nil, ErrShortBuffer
	}
	return sr, bss, nil
}

// BssInfo describes one access point found during a scan.
type BssInfo struct {
	Version      uint32
	Length       uint32
	BSSID        [6]byte
	BeaconPeriod uint16
	Capability   uint16
	SSIDLength   uint8
	SSID         [32]byte
	RatesetCount uint32
	RatesetRates [16]uint8
	ChanSpec     uint16
	AtimWindow   uint16
	DtimPeriod   uint8
	RSSI         int16
	PHYNoise     int8
	NCap         uint8
	NBSSCap      uint32
	CtlCh        uint8
	Flags        uint8
	VHTCap       uint8
	BasicMCS     [16]uint8
	// IEOffset is relative to the start of the record.
	IEOffset uint16
	IELength uint32
	SNR      int16
}

// SSIDBytes returns the SSID truncated to SSIDLength.
func (bss *BssInfo) SSIDBytes() []byte {
	return bss.SSID[:min(int(bss.SSIDLength), len(bss.SSID))]
}

func DecodeBssInfo(b []byte) (bss BssInfo) {
	_ = b[BSS_INFO_LEN-1]
	bss.Version = binary.LittleEndian.Uint32(b)
	bss.Length = binary.LittleEndian.Uint32(b[4:])
	copy(bss.BSSID[:], b[8:14])
	bss.BeaconPeriod = binary.LittleEndian.Uint16(b[14:])
	bss.Capability = binary.LittleEndian.Uint16(b[16:])
	bss.SSIDLength = b[18]
	copy(bss.SSID[:], b[19:51])
	bss.RatesetCount = binary.LittleEndian.Uint32(b[52:])
	copy(bss.RatesetRates[:], b[56:72])
	bss.ChanSpec = binary.LittleEndian.Uint16(b[72:])
	bss.AtimWindow = binary.LittleEndian.Uint16(b[74:])
	bss.DtimPeriod = b[76]
	bss.RSSI = int16(binary.LittleEndian.Uint16(b[78:]))
	bss.PHYNoise = int8(b[80])
	bss.NCap = b[81]
	bss.NBSSCap = binary.LittleEndian.Uint32(b[84:])
	bss.CtlCh = b[88]
	bss.Flags = b[96]
	bss.VHTCap = b[97]
	copy(bss.BasicMCS[:], b[100:116])
	bss.IEOffset = binary.LittleEndian.Uint16(b[116:])
	bss.IELength = binary.LittleEndian.Uint32(b[120:])
	bss.SNR = int16(binary.LittleEndian.Uint16(b[124:]))
	return bss
}

// Put encodes bss into b. Reserved bytes are zeroed.
func (bss *BssInfo) Put(b []byte) {
	_ = b[BSS_INFO_LEN-1]
	clear(b[:BSS_INFO_LEN])
	binary.LittleEndian.PutUint32(b, bss.Version)
	binary.LittleEndian.PutUint32(b[4:], bss.Length)
	copy(b[8:14], bss.BSSID[:])
	binary.LittleEndian.PutUint16(b[14:], bss.BeaconPeriod)
	binary.LittleEndian.PutUint16(b[16:], bss.Capability)
	b[18] = bss.SSIDLength
	copy(b[19:51], bss.SSID[:])
	binary.LittleEndian.PutUint32(b[52:], bss.RatesetCount)
	copy(b[56:72], bss.RatesetRates[:])
	binary.LittleEndian.PutUint16(b[72:], bss.ChanSpec)
	binary.LittleEndian.PutUint16(b[74:], bss.AtimWindow)
	b[76] = bss.DtimPeriod
	binary.LittleEndian.PutUint16(b[78:], uint16(bss.RSSI))
	b[80] = uint8(bss.PHYNoise)
	b[81] = bss.NCap
	binary.LittleEndian.PutUint32(b[84:], bss.NBSSCap)
	b[88] = bss.CtlCh
	b[96] = bss.Flags
	b[97] = bss.VHTCap
	copy(b[100:116], bss.BasicMCS[:])
	binary.LittleEndian.PutUint16(b[116:], bss.IEOffset)
	binary.LittleEndian.PutUint32(b[120:], bss.IELength)
	binary.LittleEndian.PutUint16(b[124:], uint16(bss.SNR))
}

// ParseBssInfo decodes one BSS record and returns its information elements.
func ParseBssInfo(buf []byte) (bss BssInfo, ies []byte, err error) {
	if err = checkRecord(buf, BSS_INFO_LEN, 2); err != nil {
		return bss, nil, err
	}
	bss = DecodeBssInfo(buf)
	end := uint64(bss.IEOffset) + uint64(bss.IELength)
	if end > uint64(bss.Length) {
		return bss, nil, ErrLengthMismatch // IE end exceeds bss length.
	}
	if end > uint64(len(buf)) {
		return bss, nil, ErrShortBuffer
	}
	return bss, buf[bss.IEOffset:end], nil
}
