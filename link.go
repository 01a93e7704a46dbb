package s2e

// Buffer and frame limits shared by both transports.
const (
	// RecvBufSize is the fixed capacity of the receive buffer each link
	// owns. Responses and data frames longer than this are captured up to
	// capacity and the remainder drained from the wire.
	RecvBufSize = 2048

	// MaxDataLen is the largest payload a single frame can carry; the wire
	// length field is 16 bits.
	MaxDataLen = 0xFFFF
)

// Link is the logical channel contract both transport engines implement.
// The SPI and UART wire encodings differ completely, but callers see one
// shape: an AT command channel (SetCommand/GetCommand) and a raw data
// channel (SendData/RecvData) sharing the transport.
//
// A Link is single-owner: no method may be called while another is in
// flight, and views returned by GetCommand or RecvData alias the link's
// receive buffer, so they are only valid until the next receiving call.
// Callers that need the bytes longer must copy them first.
type Link interface {
	// SetCommand transmits a complete command line ("LI192.168.11.2\r\n")
	// as a SET frame and confirms its acceptance. The returned error, if
	// any, matches one of the sentinel errors in this package.
	SetCommand(line []byte) error

	// GetCommand transmits a 2-character query and returns the raw
	// response payload as a view into the receive buffer. An empty view
	// with a nil error is a valid zero-length response.
	GetCommand(code string) ([]byte, error)

	// SendData transmits raw payload bytes on the data channel.
	SendData(p []byte) error

	// RecvData polls the data channel once. ok is false with a nil error
	// when no data is pending, which is the normal idle case and not a
	// failure. On ok, p is a view into the receive buffer.
	RecvData() (p []byte, ok bool, err error)
}

// ModeSwitcher is implemented by links that need an explicit escape
// sequence to move between data and command mode. The UART transport
// needs the guard-timed "+++" entry; SPI is always command-capable and
// does not implement it.
type ModeSwitcher interface {
	EnterCommandMode() error
	ExitCommandMode() error
}
