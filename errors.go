package s2e

import "errors"

var (
	// ErrNack is returned when the module explicitly rejects a frame phase
	// with the NACK sentinel. Distinct from ErrTimeout: the link is alive
	// and said no.
	ErrNack = errors.New("module rejected frame (NACK)")

	// ErrTimeout is returned when no response arrives within the bounded
	// wait, either the configured deadline or the byte-scan budget.
	ErrTimeout = errors.New("response timeout")

	// ErrInvalidHeader is returned when response parsing encounters an
	// unexpected sentinel or malformed framing.
	ErrInvalidHeader = errors.New("invalid response header")

	// ErrBadCommand is returned when a command line or code is malformed
	// before anything is put on the wire (empty, wrong code length, or a
	// payload exceeding MaxDataLen).
	ErrBadCommand = errors.New("malformed command")

	// ErrNoLink is returned when a Driver is constructed without a Link.
	ErrNoLink = errors.New("no link configured")
)
