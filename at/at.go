// Package at defines the W55RP20-S2E AT command vocabulary and the helpers
// that build command lines and parse GET responses.
//
// Commands are two ASCII characters, optionally followed by a parameter and
// terminated with CRLF, modeled on Hayes modem command sets. The package is
// transport-agnostic: the spi and uart packages move the bytes, this package
// only knows what they mean.
package at

const (
	CRLF = "\r\n"

	// Escape is the command-mode entry sequence. The line must be silent
	// for the guard time on each side of it.
	Escape = "+++"
)

// Device info commands (read-only).
const (
	CmdMAC      = "MC" // MAC address
	CmdVersion  = "VR" // firmware version
	CmdModel    = "MN" // product name
	CmdStatus   = "ST" // operation status
	CmdUARTName = "UN" // UART interface string
	CmdUARTCode = "UI" // UART interface code
)

// Network configuration commands.
const (
	CmdNetMode    = "OP" // 0 TCP client, 1 TCP server, 2 mixed, 3 UDP, 4 SSL, 5 MQTT, 6 MQTTS
	CmdIPAlloc    = "IM" // 0 static, 1 DHCP
	CmdLocalIP    = "LI"
	CmdSubnet     = "SM"
	CmdGateway    = "GW"
	CmdDNS        = "DS"
	CmdLocalPort  = "LP"
	CmdRemoteHost = "RH"
	CmdRemotePort = "RP"
)

// Serial line configuration commands.
const (
	CmdBaud     = "BR"
	CmdDataBits = "DB"
	CmdParity   = "PR"
	CmdStopBits = "SB"
	CmdFlowCtrl = "FL"
	CmdEcho     = "EC"
)

// Data packing delimiter commands.
const (
	CmdPackTime  = "PT" // time delimiter, ms
	CmdPackSize  = "PS" // size delimiter, bytes
	CmdPackDelim = "PD" // character delimiter, hex
)

// Option commands.
const (
	CmdInactivity   = "IT"
	CmdReconnect    = "RI"
	CmdConnPassOn   = "CP"
	CmdConnPass     = "NP"
	CmdSearchID     = "SP"
	CmdDebugMsg     = "DG"
	CmdKeepAlive    = "KA"
	CmdKAInitial    = "KI"
	CmdKARetry      = "KE"
	CmdSSLTimeout   = "SO"
	CmdMQTTUser     = "QU"
	CmdMQTTPass     = "QP"
	CmdMQTTClientID = "QC"
	CmdMQTTKeep     = "QK"
	CmdMQTTPubTopic = "PU"
	CmdMQTTSub0     = "U0"
	CmdMQTTSub1     = "U1"
	CmdMQTTSub2     = "U2"
	CmdMQTTQoS      = "QO"
)

// Lifecycle commands. These take no parameter but are still SET-shaped on
// the wire.
const (
	CmdSave         = "SV"
	CmdReboot       = "RT"
	CmdFactoryReset = "FR"
	CmdExit         = "EX"
)

// Status tokens reported by CmdStatus. Callers pattern-match on these, for
// example polling for StatusConnect after a reboot.
const (
	StatusBoot    = "BOOT"
	StatusOpen    = "OPEN"
	StatusConnect = "CONNECT"
	StatusUpgrade = "UPGRADE"
	StatusATMode  = "ATMODE"
)

// actionCommands are the codes that perform an action rather than read a
// value, so they dispatch as SET even with an empty parameter.
var actionCommands = map[string]bool{
	CmdSave:         true,
	CmdReboot:       true,
	CmdFactoryReset: true,
	CmdExit:         true,
}

// IsAction reports whether code belongs to the no-parameter SET set
// (SV, RT, FR, EX).
func IsAction(code string) bool {
	return actionCommands[code]
}

// Line builds the ASCII wire form of a command: CODE+param+CRLF.
func Line(code, param string) []byte {
	b := make([]byte, 0, len(code)+len(param)+len(CRLF))
	b = append(b, code...)
	b = append(b, param...)
	b = append(b, CRLF...)
	return b
}
