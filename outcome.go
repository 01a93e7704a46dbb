package s2e

import "errors"

// Status is the numeric result code surfaced to callers. The values are
// part of the module contract and stable across both transports.
type Status int

const (
	StatusOK            Status = 0
	StatusNack          Status = -1
	StatusTimeout       Status = -2
	StatusInvalidHeader Status = -3
	StatusUnknown       Status = -99
)

// String returns the short name of the status code.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNack:
		return "nack"
	case StatusTimeout:
		return "timeout"
	case StatusInvalidHeader:
		return "invalid-header"
	case StatusUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// StatusOf collapses any link-layer error into one of the status codes.
// Failures that match none of the sentinel errors become StatusUnknown;
// higher layers never see transport-specific error kinds.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNack):
		return StatusNack
	case errors.Is(err, ErrTimeout):
		return StatusTimeout
	case errors.Is(err, ErrInvalidHeader):
		return StatusInvalidHeader
	default:
		return StatusUnknown
	}
}

// Kind identifies which driver operation produced an Outcome.
type Kind int

const (
	KindGet Kind = iota
	KindSet
	KindDataTx
	KindDataRx
	KindHelp
)

func (k Kind) String() string {
	switch k {
	case KindGet:
		return "get"
	case KindSet:
		return "set"
	case KindDataTx:
		return "data_tx"
	case KindDataRx:
		return "data_rx"
	case KindHelp:
		return "help"
	default:
		return "invalid"
	}
}

// Outcome is the normalized result of every public driver operation. It is
// returned by value and never retained by the driver.
//
// For KindDataRx, Data is a view into the link's receive buffer and is only
// valid until the next receiving call; copy it to keep it. NoData marks the
// idle case, which carries StatusOK because an idle link is not a broken
// link.
type Outcome struct {
	Kind   Kind
	Status Status
	NoData bool   // KindDataRx only: nothing pending
	Value  string // KindGet only: parsed value
	Raw    string // KindGet only: trimmed raw response text
	Data   []byte // KindDataRx only: payload view
	Len    int    // payload length for data operations
	Err    error  // underlying error when Status != StatusOK
}

// OK reports whether the operation succeeded and produced a result. The
// no-data outcome reports false here while still carrying StatusOK.
func (o Outcome) OK() bool {
	return o.Status == StatusOK && !o.NoData
}
