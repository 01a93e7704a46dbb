package spi

import (
	"fmt"
	"time"

	"github.com/wiznet-go/s2e"
	"github.com/wiznet-go/s2e/ticks"
)

// readResponse scans dummy exchanges for a 0xB1 response frame and reads
// its payload into the receive buffer.
//
// Frame layout after the 0xB1 sentinel: length low byte, length high byte,
// one pad byte, then exactly length payload bytes. A declared length above
// the buffer capacity is captured up to capacity and the excess drained
// from the wire so the bus framing stays aligned; the truncation is
// silent.
//
// A NACK during the scan is an explicit rejection. The master-only
// sentinels 0xB0 and 0xA0 appearing on MISO mean the frame stream is
// desynchronized and map to s2e.ErrInvalidHeader.
func (l *Link) readResponse(timeout time.Duration, scanMax int) ([]byte, error) {
	dl := ticks.After(l.clk, timeout)
	for scanned := 0; scanned < scanMax && !ticks.Expired(l.clk, dl); scanned++ {
		switch b := l.exchange(Dummy); b {
		case Nack:
			return nil, s2e.ErrNack

		case CmdB0, TxA0:
			return nil, fmt.Errorf("sentinel 0x%02X while scanning for response: %w", b, s2e.ErrInvalidHeader)

		case RspB1:
			lenLo := l.exchange(Dummy)
			lenHi := l.exchange(Dummy)
			l.exchange(Dummy) // pad
			length := int(lenLo) | int(lenHi)<<8
			if length == 0 {
				return l.rx[:0], nil
			}
			rd := min(length, len(l.rx))
			for i := 0; i < rd; i++ {
				l.rx[i] = l.exchange(Dummy)
			}
			for i := rd; i < length; i++ {
				l.exchange(Dummy)
			}
			return l.rx[:rd], nil
		}
	}
	return nil, s2e.ErrTimeout
}

// SetCommand transmits a command line as a SET frame:
// [c0 c1 lenLo lenHi] -> ACK -> payload -> ACK. The length counts every
// byte after the 2-character code, CRLF included.
func (l *Link) SetCommand(line []byte) error {
	if len(line) < 2 {
		return fmt.Errorf("%w: line shorter than a command code", s2e.ErrBadCommand)
	}
	dataLen := len(line) - 2
	if dataLen > s2e.MaxDataLen {
		return fmt.Errorf("%w: %d byte parameter", s2e.ErrBadCommand, dataLen)
	}

	l.exchange(line[0])
	l.exchange(line[1])
	l.exchange(byte(dataLen))
	l.exchange(byte(dataLen >> 8))

	if err := l.waitAck(l.cfg.AckTimeout, l.cfg.AckScanMax); err != nil {
		return fmt.Errorf("command header: %w", err)
	}
	for _, b := range line[2:] {
		l.exchange(b)
	}
	if err := l.waitAck(l.cfg.AckTimeout, l.cfg.AckScanMax); err != nil {
		return fmt.Errorf("command payload: %w", err)
	}
	return nil
}

// GetCommand transmits a query frame [c0 c1 CR LF] and scans for the
// response. The interrupt wait is best effort; the response scan is the
// authority on whether anything arrived.
func (l *Link) GetCommand(code string) ([]byte, error) {
	if len(code) != 2 {
		return nil, fmt.Errorf("%w: code %q", s2e.ErrBadCommand, code)
	}
	l.exchange(code[0])
	l.exchange(code[1])
	l.exchange('\r')
	l.exchange('\n')

	l.waitIntLow(l.cfg.IntTimeout)
	p, err := l.readResponse(l.cfg.RxTimeout, l.cfg.RespScanMax)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", code, err)
	}
	return p, nil
}

// SendData transmits raw payload bytes as a DATA TX frame:
// [0xA0 lenLo lenHi 0xFF] -> ACK -> payload -> ACK.
func (l *Link) SendData(p []byte) error {
	if len(p) > s2e.MaxDataLen {
		return fmt.Errorf("%w: %d byte payload", s2e.ErrBadCommand, len(p))
	}

	l.exchange(TxA0)
	l.exchange(byte(len(p)))
	l.exchange(byte(len(p) >> 8))
	l.exchange(Dummy)

	if err := l.waitAck(l.cfg.AckTimeout, l.cfg.AckScanMax); err != nil {
		return fmt.Errorf("data header: %w", err)
	}
	for _, b := range p {
		l.exchange(b)
	}
	if err := l.waitAck(l.cfg.AckTimeout, l.cfg.AckScanMax); err != nil {
		return fmt.Errorf("data payload: %w", err)
	}
	return nil
}

// RecvData polls the data channel once. Reception is gated on the
// interrupt line: when it stays high for DataPollWait there is nothing
// pending and the call returns the silent no-data result. Otherwise the
// 0xB0 request is issued and the response frame read into the shared
// buffer.
func (l *Link) RecvData() ([]byte, bool, error) {
	if !l.waitIntLow(l.cfg.DataPollWait) {
		return nil, false, nil
	}
	if l.cfg.IntCSDelay > 0 {
		l.clk.Sleep(l.cfg.IntCSDelay)
	}

	l.exchange(CmdB0)
	l.exchange(Dummy)
	l.exchange(Dummy)
	l.exchange(Dummy)

	p, err := l.readResponse(l.cfg.RxTimeout, l.cfg.DataScanMax)
	if err != nil {
		return nil, false, fmt.Errorf("data receive: %w", err)
	}
	return p, true, nil
}
