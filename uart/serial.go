package uart

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// SerialPort adapts a host serial port to the non-blocking Port contract.
// The underlying port is opened with a short read timeout and incoming
// bytes are stashed, so Buffered and Read behave like a microcontroller
// UART with a hardware FIFO.
type SerialPort struct {
	port  serial.Port
	stash []byte
	buf   [512]byte
}

var _ Port = (*SerialPort)(nil)

// Open opens the named serial port at the given baud rate, 8N1.
func Open(name string, baud int) (*SerialPort, error) {
	if name == "" {
		return nil, fmt.Errorf("serial port name is required")
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	// A short timeout turns the blocking Read into a poll.
	if err := port.SetReadTimeout(time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}
	return &SerialPort{port: port}, nil
}

func (s *SerialPort) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// fill moves whatever the OS has buffered into the stash.
func (s *SerialPort) fill() error {
	n, err := s.port.Read(s.buf[:])
	if n > 0 {
		s.stash = append(s.stash, s.buf[:n]...)
	}
	return err
}

func (s *SerialPort) Buffered() int {
	s.fill()
	return len(s.stash)
}

func (s *SerialPort) Read(p []byte) (int, error) {
	err := s.fill()
	if len(s.stash) == 0 {
		return 0, err
	}
	n := copy(p, s.stash)
	rest := copy(s.stash, s.stash[n:])
	s.stash = s.stash[:rest]
	return n, nil
}

// Close closes the underlying port.
func (s *SerialPort) Close() error {
	return s.port.Close()
}
