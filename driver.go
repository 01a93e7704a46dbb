// Package s2e drives a WIZnet W55RP20-S2E serial-to-Ethernet co-processor
// over SPI or UART. The transport engines in the spi and uart subpackages
// implement the Link contract; this package provides the AT command facade
// and the raw data path on top of it.
//
// The driver is strictly single-threaded: all waits are bounded polls, no
// internal goroutines exist, and concurrent calls from two goroutines race
// on the shared receive buffer and bus lines. Applications that need
// concurrency must funnel every driver call through one goroutine.
package s2e

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/wiznet-go/s2e/at"
)

// Driver is the AT command facade and data path over one Link. Construct
// it once with New and keep exclusive ownership; it holds no global state.
type Driver struct {
	link Link
	log  *slog.Logger
	help io.Writer
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger attaches a structured logger. The driver only logs at debug
// level; without this option nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithHelpWriter redirects the HELP/? output, which goes to stdout by
// default.
func WithHelpWriter(w io.Writer) Option {
	return func(d *Driver) { d.help = w }
}

// New creates a Driver over the given link.
func New(link Link, opts ...Option) (*Driver, error) {
	if link == nil {
		return nil, ErrNoLink
	}
	d := &Driver{
		link: link,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		help: os.Stdout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// SendCommand issues one AT command and returns the normalized Outcome.
//
// Dispatch: a non-empty param, or a code in the action set (SV, RT, FR,
// EX), issues a SET; otherwise a GET. HELP and ? print the command
// reference without touching the transport.
func (d *Driver) SendCommand(code, param string) Outcome {
	c := strings.ToUpper(strings.TrimSpace(code))

	if c == "HELP" || c == "?" {
		d.Help()
		return Outcome{Kind: KindHelp, Status: StatusOK}
	}

	if param != "" || at.IsAction(c) {
		return d.set(c, param)
	}
	return d.get(c)
}

func (d *Driver) set(code, param string) Outcome {
	out := Outcome{Kind: KindSet}
	if len(code) < 2 {
		out.Status, out.Err = StatusUnknown, fmt.Errorf("%w: code %q", ErrBadCommand, code)
		return out
	}
	line := at.Line(code, param)
	if err := d.link.SetCommand(line); err != nil {
		d.log.Debug("set command failed", "code", code, "error", err)
		out.Status, out.Err = StatusOf(err), err
		return out
	}
	out.Status = StatusOK
	return out
}

func (d *Driver) get(code string) Outcome {
	out := Outcome{Kind: KindGet}
	if len(code) != 2 {
		out.Status, out.Err = StatusUnknown, fmt.Errorf("%w: code %q", ErrBadCommand, code)
		return out
	}
	payload, err := d.link.GetCommand(code)
	if err != nil {
		d.log.Debug("get command failed", "code", code, "error", err)
		out.Status, out.Err = StatusOf(err), err
		return out
	}
	raw := at.DecodeASCII(payload)
	out.Status = StatusOK
	out.Raw = strings.Trim(raw, "\r\n")
	out.Value = at.ParseValue(code, raw)
	return out
}

// SendData transmits raw payload bytes on the data channel.
func (d *Driver) SendData(p []byte) Outcome {
	out := Outcome{Kind: KindDataTx, Len: len(p)}
	if err := d.link.SendData(p); err != nil {
		d.log.Debug("data send failed", "len", len(p), "error", err)
		out.Status, out.Err = StatusOf(err), err
		return out
	}
	out.Status = StatusOK
	return out
}

// RecvData polls the data channel once. The idle link returns a NoData
// outcome with StatusOK; Outcome.Data on success is a view into the shared
// receive buffer and must be consumed or copied before the next receive.
func (d *Driver) RecvData() Outcome {
	out := Outcome{Kind: KindDataRx}
	p, ok, err := d.link.RecvData()
	switch {
	case err != nil:
		d.log.Debug("data receive failed", "error", err)
		out.Status, out.Err = StatusOf(err), err
	case !ok:
		out.Status, out.NoData = StatusOK, true
	default:
		out.Status, out.Data, out.Len = StatusOK, p, len(p)
	}
	return out
}

// EnterCommandMode performs the transport's command-mode entry sequence.
// On SPI this is a no-op; on UART it runs the guard-timed escape.
func (d *Driver) EnterCommandMode() error {
	if ms, ok := d.link.(ModeSwitcher); ok {
		return ms.EnterCommandMode()
	}
	return nil
}

// ExitCommandMode leaves command mode where the transport distinguishes
// modes; a no-op on SPI.
func (d *Driver) ExitCommandMode() error {
	if ms, ok := d.link.(ModeSwitcher); ok {
		return ms.ExitCommandMode()
	}
	return nil
}

// Help writes the AT command reference to the configured help writer.
func (d *Driver) Help() {
	io.WriteString(d.help, HelpText)
}

// PollConfig bounds a status polling loop.
type PollConfig struct {
	// Interval is the time between polls.
	Interval time.Duration
	// Timeout is the maximum total time to wait.
	Timeout time.Duration
	// MaxRetries caps the number of polls.
	MaxRetries int
}

// WaitForStatus polls the ST command until its value contains token (for
// example at.StatusConnect after a reboot) or the poll budget runs out.
// The context cancels the wait between polls; a frame already in flight
// runs to completion first.
func (d *Driver) WaitForStatus(ctx context.Context, token string, cfg PollConfig) error {
	if cfg.Interval <= 0 {
		cfg.Interval = 500 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = int(cfg.Timeout / cfg.Interval)
	}
	token = strings.ToUpper(token)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for retries := 0; ; {
		select {
		case <-ctx.Done():
			return fmt.Errorf("status wait for %q: %w", token, ctx.Err())
		case <-ticker.C:
			retries++
			if retries > cfg.MaxRetries {
				return fmt.Errorf("status wait for %q: %w after %d polls", token, ErrTimeout, cfg.MaxRetries)
			}
			out := d.SendCommand(at.CmdStatus, "")
			if !out.OK() {
				continue
			}
			v := out.Value
			if v == "" {
				v = out.Raw
			}
			if strings.Contains(strings.ToUpper(v), token) {
				return nil
			}
		}
	}
}
