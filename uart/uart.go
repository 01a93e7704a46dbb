// Package uart implements the UART protocol engine for the W55RP20-S2E
// module. Unlike SPI there is no framing on the wire: commands are ASCII
// lines, responses are whatever bytes arrive until an idle window elapses,
// and the data path is the raw byte stream. Command mode is entered and
// left with guard-timed escape sequences.
package uart

import (
	"fmt"
	"time"

	"github.com/wiznet-go/s2e"
	"github.com/wiznet-go/s2e/at"
	"github.com/wiznet-go/s2e/ticks"
)

// Port is the byte-level UART access the link needs. Read must never block
// past what the hardware has buffered: it returns whatever is available,
// with n == 0 meaning no data. machine.UART on TinyGo satisfies this
// directly; SerialPort adapts a host serial port.
type Port interface {
	Write(p []byte) (n int, err error)
	Buffered() int
	Read(p []byte) (n int, err error)
}

// Config holds the timing constants of the UART protocol.
type Config struct {
	// ReadWindow is the idle window that marks a response as complete:
	// aggregation stops once this much time passes with no new bytes.
	ReadWindow time.Duration
	// PollInterval is the pause between buffer polls while aggregating.
	PollInterval time.Duration
	// GuardTime is the enforced silence around the escape sequence. The
	// module requires at least 500ms; the default leaves margin.
	GuardTime time.Duration

	// Clock is the tick source for deadlines and delays.
	Clock ticks.Source
}

func (c *Config) setDefaults() {
	if c.ReadWindow == 0 {
		c.ReadWindow = 200 * time.Millisecond
	}
	if c.PollInterval == 0 {
		c.PollInterval = 10 * time.Millisecond
	}
	if c.GuardTime == 0 {
		c.GuardTime = 600 * time.Millisecond
	}
	if c.Clock == nil {
		c.Clock = ticks.NewSystem()
	}
}

// Link is the UART implementation of the s2e.Link contract. It owns the
// receive buffer; views returned by GetCommand and RecvData alias link
// storage and are valid only until the next receiving call.
type Link struct {
	port Port
	clk  ticks.Source
	cfg  Config

	rx    [s2e.RecvBufSize]byte
	resp  []byte
	chunk [256]byte
}

var (
	_ s2e.Link         = (*Link)(nil)
	_ s2e.ModeSwitcher = (*Link)(nil)
)

// New creates a UART link over the given port. Zero fields in cfg take the
// protocol defaults.
func New(port Port, cfg Config) *Link {
	cfg.setDefaults()
	return &Link{
		port: port,
		clk:  cfg.Clock,
		cfg:  cfg,
		resp: make([]byte, 0, 512),
	}
}

// flush drains stale bytes so a response cannot be polluted by leftovers
// from earlier traffic.
func (l *Link) flush() {
	for l.port.Buffered() > 0 {
		if n, _ := l.port.Read(l.chunk[:]); n == 0 {
			return
		}
	}
}

// readResponse aggregates incoming bytes until the idle window elapses.
// Every arrival pushes the deadline out, which distinguishes "more data
// still arriving" from "response complete". An empty result means nothing
// arrived within the initial window.
func (l *Link) readResponse() []byte {
	l.resp = l.resp[:0]
	dl := ticks.After(l.clk, l.cfg.ReadWindow)
	got := false

	for {
		if l.port.Buffered() > 0 {
			n, _ := l.port.Read(l.chunk[:])
			if n > 0 {
				l.resp = append(l.resp, l.chunk[:n]...)
				got = true
				dl = ticks.After(l.clk, l.cfg.ReadWindow)
			}
		}
		if got && ticks.Expired(l.clk, dl) {
			break
		}
		l.clk.Sleep(l.cfg.PollInterval)
		if !got && ticks.Expired(l.clk, dl) {
			break
		}
	}
	return l.resp
}

// SetCommand writes a command line and classifies the response. The module
// often stays silent on an accepted SET, so no response is success; a
// response matching the error vocabulary is an explicit rejection.
func (l *Link) SetCommand(line []byte) error {
	if len(line) < 2 {
		return fmt.Errorf("%w: line shorter than a command code", s2e.ErrBadCommand)
	}
	l.flush()
	if _, err := l.port.Write(line); err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	resp := l.readResponse()
	if len(resp) == 0 {
		return nil
	}
	if at.IsErrorResponse(at.DecodeASCII(resp)) {
		return fmt.Errorf("module response %q: %w", resp, s2e.ErrNack)
	}
	return nil
}

// GetCommand writes a query line and aggregates the response. A query that
// produces nothing within the read window is link silence, a timeout.
func (l *Link) GetCommand(code string) ([]byte, error) {
	if len(code) != 2 {
		return nil, fmt.Errorf("%w: code %q", s2e.ErrBadCommand, code)
	}
	l.flush()
	if _, err := l.port.Write(at.Line(code, "")); err != nil {
		return nil, fmt.Errorf("write query: %w", err)
	}
	resp := l.readResponse()
	if len(resp) == 0 {
		return nil, fmt.Errorf("query %s: %w", code, s2e.ErrTimeout)
	}
	return resp, nil
}

// SendData writes raw payload bytes to the stream.
func (l *Link) SendData(p []byte) error {
	if _, err := l.port.Write(p); err != nil {
		return fmt.Errorf("data send: %w", err)
	}
	return nil
}

// RecvData performs one non-blocking read into the shared receive buffer.
// Zero bytes buffered is the silent no-data result, not an error.
func (l *Link) RecvData() ([]byte, bool, error) {
	n, err := l.port.Read(l.rx[:])
	if err != nil {
		return nil, false, fmt.Errorf("data receive: %w", err)
	}
	if n == 0 {
		return nil, false, nil
	}
	return l.rx[:n], true, nil
}

// EnterCommandMode runs the guard-timed escape: silence, "+++", silence.
// This is a timing contract only; the module sends no acknowledgment.
func (l *Link) EnterCommandMode() error {
	l.clk.Sleep(l.cfg.GuardTime)
	if _, err := l.port.Write([]byte(at.Escape)); err != nil {
		return fmt.Errorf("escape sequence: %w", err)
	}
	l.clk.Sleep(l.cfg.GuardTime)
	return nil
}

// ExitCommandMode sends the EX command and waits out a guard interval so
// the module has settled back into data mode before the stream is used.
func (l *Link) ExitCommandMode() error {
	l.flush()
	if _, err := l.port.Write(at.Line(at.CmdExit, "")); err != nil {
		return fmt.Errorf("exit command: %w", err)
	}
	l.clk.Sleep(l.cfg.GuardTime)
	return nil
}
