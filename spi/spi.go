// Package spi implements the SPI master protocol engine for the
// W55RP20-S2E module: byte-wise polled transfers with chip-select framing,
// the ACK/NACK handshake, and the 0xB0/0xB1/0xA0 command/response frame
// protocol, gated on receive by the module interrupt line.
//
// The engine is a cooperative, single-threaded state machine. Every wait
// is a bounded busy-poll against a wraparound-safe tick deadline plus a
// byte-scan budget, so no call can block indefinitely even if the timing
// math misbehaves.
package spi

import (
	"time"

	"github.com/wiznet-go/s2e"
	"github.com/wiznet-go/s2e/ticks"
)

// Wire sentinels of the SPI frame protocol.
const (
	Dummy = 0xFF // filler byte clocked out while polling
	Ack   = 0x0A // phase accepted
	Nack  = 0x0B // phase rejected
	CmdB0 = 0xB0 // master: request pending data
	RspB1 = 0xB1 // slave: response frame header
	TxA0  = 0xA0 // master: data transmit header
)

// Bus performs one 8-bit full-duplex exchange on an already configured SPI
// bus. Implementations are hardware-level and always succeed; chip-select
// framing is the Link's job, not the bus's.
type Bus interface {
	Transfer(b byte) byte
}

// ChipSelect drives the chip-select line around each byte exchange.
type ChipSelect interface {
	Assert()
	Release()
}

// IntLine reports the module interrupt line. The module drives it low when
// received data is pending.
type IntLine interface {
	Low() bool
}

// Config holds the timing and loop-bound constants of the protocol. The
// chip-select timings are correctness requirements of the module, not
// tuning knobs: violating the hold or gap risks the peer dropping the
// link.
type Config struct {
	// CSHold is the minimum time chip-select stays asserted before the
	// transfer starts.
	CSHold time.Duration
	// CSGap is the minimum time between releasing chip-select and the
	// next assertion.
	CSGap time.Duration
	// IntCSDelay is the pause after the interrupt line goes low, giving
	// the module time to stage the response.
	IntCSDelay time.Duration

	// IntTimeout bounds the interrupt wait after a GET command.
	IntTimeout time.Duration
	// AckTimeout bounds each ACK/NACK handshake phase.
	AckTimeout time.Duration
	// RxTimeout bounds the response header scan.
	RxTimeout time.Duration
	// DataPollWait bounds the interrupt poll in RecvData; keep it short,
	// RecvData is called from a hot loop.
	DataPollWait time.Duration

	// AckScanMax, RespScanMax and DataScanMax cap the number of byte
	// exchanges in the corresponding scans, independent of the clock.
	AckScanMax  int
	RespScanMax int
	DataScanMax int

	// Clock is the tick source for deadlines and delays. Defaults to the
	// system clock; tests inject a simulated one.
	Clock ticks.Source
}

func (c *Config) setDefaults() {
	if c.CSHold == 0 {
		c.CSHold = 2 * time.Microsecond
	}
	if c.CSGap == 0 {
		c.CSGap = 20 * time.Microsecond
	}
	if c.IntCSDelay == 0 {
		c.IntCSDelay = 200 * time.Microsecond
	}
	if c.IntTimeout == 0 {
		c.IntTimeout = 200 * time.Millisecond
	}
	if c.AckTimeout == 0 {
		c.AckTimeout = 2 * time.Second
	}
	if c.RxTimeout == 0 {
		c.RxTimeout = 2 * time.Second
	}
	if c.DataPollWait == 0 {
		c.DataPollWait = 10 * time.Millisecond
	}
	if c.AckScanMax == 0 {
		c.AckScanMax = 4096
	}
	if c.RespScanMax == 0 {
		c.RespScanMax = 8192
	}
	if c.DataScanMax == 0 {
		c.DataScanMax = 16384
	}
	if c.Clock == nil {
		c.Clock = ticks.NewSystem()
	}
}

// Link is the SPI implementation of the s2e.Link contract. It owns the
// receive buffer; views returned by GetCommand and RecvData alias it and
// are valid only until the next receiving call.
type Link struct {
	bus Bus
	cs  ChipSelect
	irq IntLine
	clk ticks.Source
	cfg Config

	rx [s2e.RecvBufSize]byte
}

var _ s2e.Link = (*Link)(nil)

// New creates an SPI link over the given bus and control lines. Zero
// fields in cfg take the protocol defaults.
func New(bus Bus, cs ChipSelect, irq IntLine, cfg Config) *Link {
	cfg.setDefaults()
	return &Link{
		bus: bus,
		cs:  cs,
		irq: irq,
		clk: cfg.Clock,
		cfg: cfg,
	}
}
