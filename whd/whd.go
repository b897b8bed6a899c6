// Package whd implements the wire records exchanged with Cypress/Infineon
// Wi-Fi Host Driver firmware over the CYW43439 WLAN function.
//
// Records are decoded from and encoded to byte slices field by field in the
// firmware's byte order. Parse functions validate lengths and alignment and
// return the payload as a sub-slice of the input without copying.
package whd

import (
	"errors"
	"unsafe"
)

// Fixed record sizes in bytes.
const (
	SDPCM_HEADER_LEN         = 12
	CDC_HEADER_LEN           = 16
	BDC_HEADER_LEN           = 4
	ETHERNET_HEADER_LEN      = 14
	EVENT_HEADER_LEN         = 10
	EVENT_MESSAGE_LEN        = 48
	EVENT_PACKET_LEN         = ETHERNET_HEADER_LEN + EVENT_HEADER_LEN + EVENT_MESSAGE_LEN
	DOWNLOAD_HEADER_LEN      = 12
	COUNTRY_INFO_LEN         = 12
	SSID_INFO_LEN            = 36
	SSID_INFO_WITH_INDEX_LEN = 4 + SSID_INFO_LEN
	PASSPHRASE_INFO_LEN      = 68
	SAE_PASSPHRASE_INFO_LEN  = 130
	EVENT_MASK_LEN           = 4 + EVENT_MASK_BYTES
	SCAN_PARAMS_LEN          = 74
	SCAN_RESULTS_LEN         = 12
	BSS_INFO_LEN             = 126
	EVENT_MASK_BYTES         = 24
	MAX_SSID_LEN             = 32
	MAX_PASSPHRASE_LEN       = 64
	MAX_SAE_PASSPHRASE_LEN   = 128
	IOCTL_HEADER_LEN         = CDC_HEADER_LEN
)

// ETHERTYPE_BRCM marks Ethernet frames carrying firmware events.
const ETHERTYPE_BRCM uint16 = 0x886c

var (
	// ErrShortBuffer is returned when a buffer is shorter than the record it should hold.
	ErrShortBuffer = errors.New("whd: buffer too short")
	// ErrLengthMismatch is returned when a length field disagrees with the buffer or with itself.
	ErrLengthMismatch = errors.New("whd: length mismatch")
	// ErrMisaligned is returned when a buffer does not meet the alignment of a packed record.
	ErrMisaligned = errors.New("whd: buffer misaligned")
)

// SDPCM channel numbers, low nibble of [SDPCMHeader.ChanAndFlags].
type SDPCMHeaderType uint8

const (
	CONTROL_HEADER    SDPCMHeaderType = 0
	ASYNCEVENT_HEADER SDPCMHeaderType = 1
	DATA_HEADER       SDPCMHeaderType = 2
)

func (t SDPCMHeaderType) String() (s string) {
	switch t {
	case CONTROL_HEADER:
		s = "control"
	case ASYNCEVENT_HEADER:
		s = "event"
	case DATA_HEADER:
		s = "data"
	default:
		s = "unknown"
	}
	return s
}

// CDC flag fields.
const (
	CDCF_IOC_ERROR    = 0x01
	CDCF_IOC_SET      = 0x02
	CDCF_IOC_IF_SHIFT = 12
	CDCF_IOC_IF_MASK  = 0xf000
)

// BDC protocol version, high nibble of [BDCHeader.Flags].
const (
	BDC_PROTO_VER      = 2
	BDC_FLAG_VER_SHIFT = 4
	BDC_FLAG_VER_MASK  = 0xf0
	BDC_PRIORITY_MASK  = 0x07
	BDC_FLAG2_IF_MASK  = 0x0f
)

// Download header flags for CLM and firmware blob chunks.
const (
	DOWNLOAD_FLAG_NO_CRC      uint16 = 0x0001
	DOWNLOAD_FLAG_BEGIN       uint16 = 0x0002
	DOWNLOAD_FLAG_END         uint16 = 0x0004
	DOWNLOAD_FLAG_HANDLER_VER uint16 = 0x1000
	DOWNLOAD_TYPE_CLM         uint16 = 2
)

type IoctlInterface uint8

const (
	WWD_STA_INTERFACE IoctlInterface = 0
	WWD_AP_INTERFACE  IoctlInterface = 1
	WWD_P2P_INTERFACE IoctlInterface = 2
)

const (
	SDPCM_GET = 0
	SDPCM_SET = 2
)

// SDPCMCommand is the ioctl command carried in [CDCHeader.Cmd].
type SDPCMCommand uint32

const (
	WLC_UP            SDPCMCommand = 2
	WLC_SET_INFRA     SDPCMCommand = 20
	WLC_SET_AUTH      SDPCMCommand = 22
	WLC_GET_BSSID     SDPCMCommand = 23
	WLC_GET_SSID      SDPCMCommand = 25
	WLC_SET_SSID      SDPCMCommand = 26
	WLC_SET_CHANNEL   SDPCMCommand = 30
	WLC_DISASSOC      SDPCMCommand = 52
	WLC_GET_ANTDIV    SDPCMCommand = 63
	WLC_SET_ANTDIV    SDPCMCommand = 64
	WLC_SET_DTIMPRD   SDPCMCommand = 78
	WLC_GET_PM        SDPCMCommand = 85
	WLC_SET_PM        SDPCMCommand = 86
	WLC_SET_GMODE     SDPCMCommand = 110
	WLC_SET_WSEC      SDPCMCommand = 134
	WLC_SET_BAND      SDPCMCommand = 142
	WLC_GET_ASSOCLIST SDPCMCommand = 159
	WLC_SET_WPA_AUTH  SDPCMCommand = 165
	WLC_GET_VAR       SDPCMCommand = 262
	WLC_SET_VAR       SDPCMCommand = 263
	WLC_SET_WSEC_PMK  SDPCMCommand = 268
)

func (c SDPCMCommand) String() (s string) {
	switch c {
	case WLC_UP:
		s = "up"
	case WLC_SET_INFRA:
		s = "set_infra"
	case WLC_SET_AUTH:
		s = "set_auth"
	case WLC_GET_BSSID:
		s = "get_bssid"
	case WLC_GET_SSID:
		s = "get_ssid"
	case WLC_SET_SSID:
		s = "set_ssid"
	case WLC_SET_CHANNEL:
		s = "set_channel"
	case WLC_DISASSOC:
		s = "disassoc"
	case WLC_GET_ANTDIV:
		s = "get_antdiv"
	case WLC_SET_ANTDIV:
		s = "set_antdiv"
	case WLC_SET_DTIMPRD:
		s = "set_dtimprd"
	case WLC_GET_PM:
		s = "get_pm"
	case WLC_SET_PM:
		s = "set_pm"
	case WLC_SET_GMODE:
		s = "set_gmode"
	case WLC_SET_WSEC:
		s = "set_wsec"
	case WLC_SET_BAND:
		s = "set_band"
	case WLC_GET_ASSOCLIST:
		s = "get_assoclist"
	case WLC_SET_WPA_AUTH:
		s = "set_wpa_auth"
	case WLC_GET_VAR:
		s = "get_var"
	case WLC_SET_VAR:
		s = "set_var"
	case WLC_SET_WSEC_PMK:
		s = "set_wsec_pmk"
	default:
		s = "ioctl?"
	}
	return s
}

// AlignedBuffer returns a zeroed byte slice of length n whose first element is
// 4-byte aligned, suitable for in-place parsing.
func AlignedBuffer(n int) []byte {
	words := make([]uint32, (n+3)/4)
	if len(words) == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), 4*len(words))[:n]
}

// checkRecord validates the length and alignment of buf for a record of
// size bytes. Firmware records are packed to at most 2 byte alignment.
func checkRecord(buf []byte, size int, align uintptr) error {
	if len(buf) < size {
		return ErrShortBuffer
	}
	if uintptr(unsafe.Pointer(&buf[0]))%align != 0 {
		return ErrMisaligned
	}
	return nil
}
