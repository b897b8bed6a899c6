package whd

import "strconv"

// AsyncEventType is the event_type field of an [EventMessage].
type AsyncEventType uint32

// Async event types as defined by WHD.
const (
	EvSET_SSID                       AsyncEventType = 0
	EvJOIN                           AsyncEventType = 1
	EvSTART                          AsyncEventType = 2
	EvAUTH                           AsyncEventType = 3
	EvAUTH_IND                       AsyncEventType = 4
	EvDEAUTH                         AsyncEventType = 5
	EvDEAUTH_IND                     AsyncEventType = 6
	EvASSOC                          AsyncEventType = 7
	EvASSOC_IND                      AsyncEventType = 8
	EvREASSOC                        AsyncEventType = 9
	EvREASSOC_IND                    AsyncEventType = 10
	EvDISASSOC                       AsyncEventType = 11
	EvDISASSOC_IND                   AsyncEventType = 12
	EvQUIET_START                    AsyncEventType = 13
	EvQUIET_END                      AsyncEventType = 14
	EvBEACON_RX                      AsyncEventType = 15
	EvLINK                           AsyncEventType = 16
	EvMIC_ERROR                      AsyncEventType = 17
	EvNDIS_LINK                      AsyncEventType = 18
	EvROAM                           AsyncEventType = 19
	EvTXFAIL                         AsyncEventType = 20
	EvPMKID_CACHE                    AsyncEventType = 21
	EvRETROGRADE_TSF                 AsyncEventType = 22
	EvPRUNE                          AsyncEventType = 23
	EvAUTOAUTH                       AsyncEventType = 24
	EvEAPOL_MSG                      AsyncEventType = 25
	EvSCAN_COMPLETE                  AsyncEventType = 26
	EvADDTS_IND                      AsyncEventType = 27
	EvDELTS_IND                      AsyncEventType = 28
	EvBCNSENT_IND                    AsyncEventType = 29
	EvBCNRX_MSG                      AsyncEventType = 30
	EvBCNLOST_MSG                    AsyncEventType = 31
	EvROAM_PREP                      AsyncEventType = 32
	EvPFN_NET_FOUND                  AsyncEventType = 33
	EvPFN_NET_LOST                   AsyncEventType = 34
	EvRESET_COMPLETE                 AsyncEventType = 35
	EvJOIN_START                     AsyncEventType = 36
	EvROAM_START                     AsyncEventType = 37
	EvASSOC_START                    AsyncEventType = 38
	EvIBSS_ASSOC                     AsyncEventType = 39
	EvRADIO                          AsyncEventType = 40
	EvPSM_WATCHDOG                   AsyncEventType = 41
	EvCCX_ASSOC_START                AsyncEventType = 42
	EvCCX_ASSOC_ABORT                AsyncEventType = 43
	EvPROBREQ_MSG                    AsyncEventType = 44
	EvSCAN_CONFIRM_IND               AsyncEventType = 45
	EvPSK_SUP                        AsyncEventType = 46
	EvCOUNTRY_CODE_CHANGED           AsyncEventType = 47
	EvEXCEEDED_MEDIUM_TIME           AsyncEventType = 48
	EvICV_ERROR                      AsyncEventType = 49
	EvUNICAST_DECODE_ERROR           AsyncEventType = 50
	EvMULTICAST_DECODE_ERROR         AsyncEventType = 51
	EvTRACE                          AsyncEventType = 52
	EvBTA_HCI_EVENT                  AsyncEventType = 53
	EvIF                             AsyncEventType = 54
	EvP2P_DISC_LISTEN_COMPLETE       AsyncEventType = 55
	EvRSSI                           AsyncEventType = 56
	EvPFN_BEST_BATCHING              AsyncEventType = 57
	EvEXTLOG_MSG                     AsyncEventType = 58
	EvACTION_FRAME                   AsyncEventType = 59
	EvACTION_FRAME_COMPLETE          AsyncEventType = 60
	EvPRE_ASSOC_IND                  AsyncEventType = 61
	EvPRE_REASSOC_IND                AsyncEventType = 62
	EvCHANNEL_ADOPTED                AsyncEventType = 63
	EvAP_STARTED                     AsyncEventType = 64
	EvDFS_AP_STOP                    AsyncEventType = 65
	EvDFS_AP_RESUME                  AsyncEventType = 66
	EvWAI_STA_EVENT                  AsyncEventType = 67
	EvWAI_MSG                        AsyncEventType = 68
	EvESCAN_RESULT                   AsyncEventType = 69
	EvACTION_FRAME_OFF_CHAN_COMPLETE AsyncEventType = 70
	EvPROBRESP_MSG                   AsyncEventType = 71
	EvP2P_PROBREQ_MSG                AsyncEventType = 72
	EvDCS_REQUEST                    AsyncEventType = 73
	EvFIFO_CREDIT_MAP                AsyncEventType = 74
	EvACTION_FRAME_RX                AsyncEventType = 75
	EvWAKE_EVENT                     AsyncEventType = 76
	EvRM_COMPLETE                    AsyncEventType = 77
	EvHTSFSYNC                       AsyncEventType = 78
	EvOVERLAY_REQ                    AsyncEventType = 79
	EvCSA_COMPLETE_IND               AsyncEventType = 80
	EvEXCESS_PM_WAKE_EVENT           AsyncEventType = 81
	EvPFN_SCAN_NONE                  AsyncEventType = 82
	EvPFN_SCAN_ALLGONE               AsyncEventType = 83
	EvGTK_PLUMBED                    AsyncEventType = 84
	EvASSOC_IND_NDIS                 AsyncEventType = 85
	EvREASSOC_IND_NDIS               AsyncEventType = 86
	EvASSOC_REQ_IE                   AsyncEventType = 87
	EvASSOC_RESP_IE                  AsyncEventType = 88
	EvASSOC_RECREATED                AsyncEventType = 89
	EvACTION_FRAME_RX_NDIS           AsyncEventType = 90
	EvAUTH_REQ                       AsyncEventType = 91
	EvSPEEDY_RECREATE_FAIL           AsyncEventType = 93
	EvNATIVE                         AsyncEventType = 94
	EvPKTDELAY_IND                   AsyncEventType = 95
	EvAWDL_AW                        AsyncEventType = 96
	EvAWDL_ROLE                      AsyncEventType = 97
	EvAWDL_EVENT                     AsyncEventType = 98
	EvNIC_AF_TXS                     AsyncEventType = 99
	EvNAN                            AsyncEventType = 100
	EvBEACON_FRAME_RX                AsyncEventType = 101
	EvSERVICE_FOUND                  AsyncEventType = 102
	EvGAS_FRAGMENT_RX                AsyncEventType = 103
	EvGAS_COMPLETE                   AsyncEventType = 104
	EvP2PO_ADD_DEVICE                AsyncEventType = 105
	EvP2PO_DEL_DEVICE                AsyncEventType = 106
	EvWNM_STA_SLEEP                  AsyncEventType = 107
	EvTXFAIL_THRESH                  AsyncEventType = 108
	EvPROXD                          AsyncEventType = 109
	EvAWDL_RX_PRB_RESP               AsyncEventType = 111
	EvAWDL_RX_ACT_FRAME              AsyncEventType = 112
	EvAWDL_WOWL_NULLPKT              AsyncEventType = 113
	EvAWDL_PHYCAL_STATUS             AsyncEventType = 114
	EvAWDL_OOB_AF_STATUS             AsyncEventType = 115
	EvAWDL_SCAN_STATUS               AsyncEventType = 116
	EvAWDL_AW_START                  AsyncEventType = 117
	EvAWDL_AW_END                    AsyncEventType = 118
	EvAWDL_AW_EXT                    AsyncEventType = 119
	EvAWDL_PEER_CACHE_CONTROL        AsyncEventType = 120
	EvCSA_START_IND                  AsyncEventType = 121
	EvCSA_DONE_IND                   AsyncEventType = 122
	EvCSA_FAILURE_IND                AsyncEventType = 123
	EvCCA_CHAN_QUAL                  AsyncEventType = 124
	EvBSSID                          AsyncEventType = 125
	EvTX_STAT_ERROR                  AsyncEventType = 126
	EvBCMC_CREDIT_SUPPORT            AsyncEventType = 127
	EvPSTA_PRIMARY_INTF_IND          AsyncEventType = 128
	EvBT_WIFI_HANDOVER_REQ           AsyncEventType = 130
	EvSPW_TXINHIBIT                  AsyncEventType = 131
	EvFBT_AUTH_REQ_IND               AsyncEventType = 132
	EvRSSI_LQM                       AsyncEventType = 133
	EvPFN_GSCAN_FULL_RESULT          AsyncEventType = 134
	EvPFN_SWC                        AsyncEventType = 135
	EvAUTHORIZED                     AsyncEventType = 136
	EvPROBREQ_MSG_RX                 AsyncEventType = 137
	EvPFN_SCAN_COMPLETE              AsyncEventType = 138
	EvRMC_EVENT                      AsyncEventType = 139
	EvDPSTA_INTF_IND                 AsyncEventType = 140
	EvRRM                            AsyncEventType = 141
	EvULP                            AsyncEventType = 146
	EvTKO                            AsyncEventType = 151
	EvEXT_AUTH_REQ                   AsyncEventType = 187
	EvEXT_AUTH_FRAME_RX              AsyncEventType = 188
	EvMGMT_FRAME_TXSTATUS            AsyncEventType = 189
)

var asyncEventNames = map[AsyncEventType]string{
	EvSET_SSID:                       "SET_SSID",
	EvJOIN:                           "JOIN",
	EvSTART:                          "START",
	EvAUTH:                           "AUTH",
	EvAUTH_IND:                       "AUTH_IND",
	EvDEAUTH:                         "DEAUTH",
	EvDEAUTH_IND:                     "DEAUTH_IND",
	EvASSOC:                          "ASSOC",
	EvASSOC_IND:                      "ASSOC_IND",
	EvREASSOC:                        "REASSOC",
	EvREASSOC_IND:                    "REASSOC_IND",
	EvDISASSOC:                       "DISASSOC",
	EvDISASSOC_IND:                   "DISASSOC_IND",
	EvQUIET_START:                    "QUIET_START",
	EvQUIET_END:                      "QUIET_END",
	EvBEACON_RX:                      "BEACON_RX",
	EvLINK:                           "LINK",
	EvMIC_ERROR:                      "MIC_ERROR",
	EvNDIS_LINK:                      "NDIS_LINK",
	EvROAM:                           "ROAM",
	EvTXFAIL:                         "TXFAIL",
	EvPMKID_CACHE:                    "PMKID_CACHE",
	EvRETROGRADE_TSF:                 "RETROGRADE_TSF",
	EvPRUNE:                          "PRUNE",
	EvAUTOAUTH:                       "AUTOAUTH",
	EvEAPOL_MSG:                      "EAPOL_MSG",
	EvSCAN_COMPLETE:                  "SCAN_COMPLETE",
	EvADDTS_IND:                      "ADDTS_IND",
	EvDELTS_IND:                      "DELTS_IND",
	EvBCNSENT_IND:                    "BCNSENT_IND",
	EvBCNRX_MSG:                      "BCNRX_MSG",
	EvBCNLOST_MSG:                    "BCNLOST_MSG",
	EvROAM_PREP:                      "ROAM_PREP",
	EvPFN_NET_FOUND:                  "PFN_NET_FOUND",
	EvPFN_NET_LOST:                   "PFN_NET_LOST",
	EvRESET_COMPLETE:                 "RESET_COMPLETE",
	EvJOIN_START:                     "JOIN_START",
	EvROAM_START:                     "ROAM_START",
	EvASSOC_START:                    "ASSOC_START",
	EvIBSS_ASSOC:                     "IBSS_ASSOC",
	EvRADIO:                          "RADIO",
	EvPSM_WATCHDOG:                   "PSM_WATCHDOG",
	EvCCX_ASSOC_START:                "CCX_ASSOC_START",
	EvCCX_ASSOC_ABORT:                "CCX_ASSOC_ABORT",
	EvPROBREQ_MSG:                    "PROBREQ_MSG",
	EvSCAN_CONFIRM_IND:               "SCAN_CONFIRM_IND",
	EvPSK_SUP:                        "PSK_SUP",
	EvCOUNTRY_CODE_CHANGED:           "COUNTRY_CODE_CHANGED",
	EvEXCEEDED_MEDIUM_TIME:           "EXCEEDED_MEDIUM_TIME",
	EvICV_ERROR:                      "ICV_ERROR",
	EvUNICAST_DECODE_ERROR:           "UNICAST_DECODE_ERROR",
	EvMULTICAST_DECODE_ERROR:         "MULTICAST_DECODE_ERROR",
	EvTRACE:                          "TRACE",
	EvBTA_HCI_EVENT:                  "BTA_HCI_EVENT",
	EvIF:                             "IF",
	EvP2P_DISC_LISTEN_COMPLETE:       "P2P_DISC_LISTEN_COMPLETE",
	EvRSSI:                           "RSSI",
	EvPFN_BEST_BATCHING:              "PFN_BEST_BATCHING",
	EvEXTLOG_MSG:                     "EXTLOG_MSG",
	EvACTION_FRAME:                   "ACTION_FRAME",
	EvACTION_FRAME_COMPLETE:          "ACTION_FRAME_COMPLETE",
	EvPRE_ASSOC_IND:                  "PRE_ASSOC_IND",
	EvPRE_REASSOC_IND:                "PRE_REASSOC_IND",
	EvCHANNEL_ADOPTED:                "CHANNEL_ADOPTED",
	EvAP_STARTED:                     "AP_STARTED",
	EvDFS_AP_STOP:                    "DFS_AP_STOP",
	EvDFS_AP_RESUME:                  "DFS_AP_RESUME",
	EvWAI_STA_EVENT:                  "WAI_STA_EVENT",
	EvWAI_MSG:                        "WAI_MSG",
	EvESCAN_RESULT:                   "ESCAN_RESULT",
	EvACTION_FRAME_OFF_CHAN_COMPLETE: "ACTION_FRAME_OFF_CHAN_COMPLETE",
	EvPROBRESP_MSG:                   "PROBRESP_MSG",
	EvP2P_PROBREQ_MSG:                "P2P_PROBREQ_MSG",
	EvDCS_REQUEST:                    "DCS_REQUEST",
	EvFIFO_CREDIT_MAP:                "FIFO_CREDIT_MAP",
	EvACTION_FRAME_RX:                "ACTION_FRAME_RX",
	EvWAKE_EVENT:                     "WAKE_EVENT",
	EvRM_COMPLETE:                    "RM_COMPLETE",
	EvHTSFSYNC:                       "HTSFSYNC",
	EvOVERLAY_REQ:                    "OVERLAY_REQ",
	EvCSA_COMPLETE_IND:               "CSA_COMPLETE_IND",
	EvEXCESS_PM_WAKE_EVENT:           "EXCESS_PM_WAKE_EVENT",
	EvPFN_SCAN_NONE:                  "PFN_SCAN_NONE",
	EvPFN_SCAN_ALLGONE:               "PFN_SCAN_ALLGONE",
	EvGTK_PLUMBED:                    "GTK_PLUMBED",
	EvASSOC_IND_NDIS:                 "ASSOC_IND_NDIS",
	EvREASSOC_IND_NDIS:               "REASSOC_IND_NDIS",
	EvASSOC_REQ_IE:                   "ASSOC_REQ_IE",
	EvASSOC_RESP_IE:                  "ASSOC_RESP_IE",
	EvASSOC_RECREATED:                "ASSOC_RECREATED",
	EvACTION_FRAME_RX_NDIS:           "ACTION_FRAME_RX_NDIS",
	EvAUTH_REQ:                       "AUTH_REQ",
	EvSPEEDY_RECREATE_FAIL:           "SPEEDY_RECREATE_FAIL",
	EvNATIVE:                         "NATIVE",
	EvPKTDELAY_IND:                   "PKTDELAY_IND",
	EvAWDL_AW:                        "AWDL_AW",
	EvAWDL_ROLE:                      "AWDL_ROLE",
	EvAWDL_EVENT:                     "AWDL_EVENT",
	EvNIC_AF_TXS:                     "NIC_AF_TXS",
	EvNAN:                            "NAN",
	EvBEACON_FRAME_RX:                "BEACON_FRAME_RX",
	EvSERVICE_FOUND:                  "SERVICE_FOUND",
	EvGAS_FRAGMENT_RX:                "GAS_FRAGMENT_RX",
	EvGAS_COMPLETE:                   "GAS_COMPLETE",
	EvP2PO_ADD_DEVICE:                "P2PO_ADD_DEVICE",
	EvP2PO_DEL_DEVICE:                "P2PO_DEL_DEVICE",
	EvWNM_STA_SLEEP:                  "WNM_STA_SLEEP",
	EvTXFAIL_THRESH:                  "TXFAIL_THRESH",
	EvPROXD:                          "PROXD",
	EvAWDL_RX_PRB_RESP:               "AWDL_RX_PRB_RESP",
	EvAWDL_RX_ACT_FRAME:              "AWDL_RX_ACT_FRAME",
	EvAWDL_WOWL_NULLPKT:              "AWDL_WOWL_NULLPKT",
	EvAWDL_PHYCAL_STATUS:             "AWDL_PHYCAL_STATUS",
	EvAWDL_OOB_AF_STATUS:             "AWDL_OOB_AF_STATUS",
	EvAWDL_SCAN_STATUS:               "AWDL_SCAN_STATUS",
	EvAWDL_AW_START:                  "AWDL_AW_START",
	EvAWDL_AW_END:                    "AWDL_AW_END",
	EvAWDL_AW_EXT:                    "AWDL_AW_EXT",
	EvAWDL_PEER_CACHE_CONTROL:        "AWDL_PEER_CACHE_CONTROL",
	EvCSA_START_IND:                  "CSA_START_IND",
	EvCSA_DONE_IND:                   "CSA_DONE_IND",
	EvCSA_FAILURE_IND:                "CSA_FAILURE_IND",
	EvCCA_CHAN_QUAL:                  "CCA_CHAN_QUAL",
	EvBSSID:                          "BSSID",
	EvTX_STAT_ERROR:                  "TX_STAT_ERROR",
	EvBCMC_CREDIT_SUPPORT:            "BCMC_CREDIT_SUPPORT",
	EvPSTA_PRIMARY_INTF_IND:          "PSTA_PRIMARY_INTF_IND",
	EvBT_WIFI_HANDOVER_REQ:           "BT_WIFI_HANDOVER_REQ",
	EvSPW_TXINHIBIT:                  "SPW_TXINHIBIT",
	EvFBT_AUTH_REQ_IND:               "FBT_AUTH_REQ_IND",
	EvRSSI_LQM:                       "RSSI_LQM",
	EvPFN_GSCAN_FULL_RESULT:          "PFN_GSCAN_FULL_RESULT",
	EvPFN_SWC:                        "PFN_SWC",
	EvAUTHORIZED:                     "AUTHORIZED",
	EvPROBREQ_MSG_RX:                 "PROBREQ_MSG_RX",
	EvPFN_SCAN_COMPLETE:              "PFN_SCAN_COMPLETE",
	EvRMC_EVENT:                      "RMC_EVENT",
	EvDPSTA_INTF_IND:                 "DPSTA_INTF_IND",
	EvRRM:                            "RRM",
	EvULP:                            "ULP",
	EvTKO:                            "TKO",
	EvEXT_AUTH_REQ:                   "EXT_AUTH_REQ",
	EvEXT_AUTH_FRAME_RX:              "EXT_AUTH_FRAME_RX",
	EvMGMT_FRAME_TXSTATUS:            "MGMT_FRAME_TXSTATUS",
}

func (ev AsyncEventType) String() string {
	if s, ok := asyncEventNames[ev]; ok {
		return s
	}
	return "EV_" + strconv.FormatUint(uint64(ev), 10)
}

// EStatus is the status field of an [EventMessage].
type EStatus uint32

const (
	EStatusSuccess     EStatus = 0  // operation was successful
	EStatusFail        EStatus = 1  // operation failed
	EStatusTimeout     EStatus = 2  // operation timed out
	EStatusNoNetworks  EStatus = 3  // no matching network found
	EStatusAbort       EStatus = 4  // operation was aborted
	EStatusNoAck       EStatus = 5  // protocol failure: packet not ack'd
	EStatusUnsolicited EStatus = 6  // AUTH or ASSOC packet was unsolicited, or keys exchanged on PSK_SUP
	EStatusAttempt     EStatus = 7  // attempt to assoc to an auto auth configuration
	EStatusPartial     EStatus = 8  // scan results are incomplete
	EStatusNewscan     EStatus = 9  // scan aborted by another scan
	EStatusNewassoc    EStatus = 10 // scan aborted due to assoc in progress
	EStatus11hQuiet    EStatus = 11 // 802.11h quiet period started
	EStatusSuppress    EStatus = 12 // user disabled scanning
	EStatusNochans     EStatus = 13 // no allowable channels to scan
	EStatusCcxFastRoam EStatus = 14 // scan aborted due to CCX fast roam
	EStatusCsAbort     EStatus = 15 // abort channel select
)

var estatusNames = [...]string{
	EStatusSuccess:     "success",
	EStatusFail:        "fail",
	EStatusTimeout:     "timeout",
	EStatusNoNetworks:  "nonetworks",
	EStatusAbort:       "abort",
	EStatusNoAck:       "noack",
	EStatusUnsolicited: "unsolicited",
	EStatusAttempt:     "attempt",
	EStatusPartial:     "partial",
	EStatusNewscan:     "newscan",
	EStatusNewassoc:    "newassoc",
	EStatus11hQuiet:    "11hquiet",
	EStatusSuppress:    "suppress",
	EStatusNochans:     "nochans",
	EStatusCcxFastRoam: "ccxfastroam",
	EStatusCsAbort:     "csabort",
}

func (s EStatus) String() string {
	if s < EStatus(len(estatusNames)) {
		return estatusNames[s]
	}
	return "status(" + strconv.FormatUint(uint64(s), 10) + ")"
}
