package spi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiznet-go/s2e"
	"github.com/wiznet-go/s2e/ticks"
)

func newTestLink(bus *fakeBus, irq *fakeInt) (*Link, *fakeCS) {
	cs := &fakeCS{}
	bus.cs = cs
	if irq == nil {
		irq = &fakeInt{}
	}
	l := New(bus, cs, irq, Config{Clock: &ticks.Sim{Step: 1}})
	return l, cs
}

func TestSetCommandFrame(t *testing.T) {
	// Header ACK at the first poll after the 4 header bytes, payload ACK
	// at the first poll after the 15 payload bytes.
	bus := &fakeBus{rx: script(27, map[int]byte{4: Ack, 23: Ack})}
	l, cs := newTestLink(bus, nil)

	require.NoError(t, l.SetCommand([]byte("LI192.168.11.37\r\n")))

	// Header: code bytes then little-endian length 15 (parameter + CRLF).
	require.Equal(t, []byte{'L', 'I', 0x0F, 0x00}, bus.tx[:4])
	// ACK poll and trailer are dummy exchanges.
	require.Equal(t, []byte{Dummy, Dummy, Dummy, Dummy}, bus.tx[4:8])
	// Payload phase carries everything after the code, CRLF included.
	require.Equal(t, []byte("192.168.11.37\r\n"), bus.tx[8:23])

	assert.False(t, cs.unbalance)
	assert.False(t, bus.csBroken)
	assert.Equal(t, cs.asserts, cs.releases)
}

func TestSetCommandHeaderNack(t *testing.T) {
	bus := &fakeBus{rx: script(5, map[int]byte{4: Nack})}
	l, _ := newTestLink(bus, nil)

	err := l.SetCommand([]byte("OP0\r\n"))
	require.ErrorIs(t, err, s2e.ErrNack)
	// A rejected header aborts the frame: nothing after the NACK poll.
	require.Len(t, bus.tx, 5)
}

func TestSetCommandPayloadNack(t *testing.T) {
	bus := &fakeBus{rx: script(11, map[int]byte{4: Ack, 10: Nack})}
	l, _ := newTestLink(bus, nil)

	err := l.SetCommand([]byte("SV\r\n"))
	require.ErrorIs(t, err, s2e.ErrNack)
}

func TestSetCommandRejectsShortLine(t *testing.T) {
	bus := &fakeBus{}
	l, _ := newTestLink(bus, nil)

	require.ErrorIs(t, l.SetCommand([]byte("X")), s2e.ErrBadCommand)
	require.Empty(t, bus.tx, "nothing may reach the wire")
}

func TestWaitAckScanBudget(t *testing.T) {
	bus := &fakeBus{} // silent line, dummy forever
	l, _ := newTestLink(bus, nil)
	l.cfg.AckScanMax = 8

	err := l.waitAck(l.cfg.AckTimeout, l.cfg.AckScanMax)
	require.ErrorIs(t, err, s2e.ErrTimeout)
	require.Len(t, bus.tx, 8, "scan budget bounds the poll even with a frozen clock")
}

func TestWaitAckDeadline(t *testing.T) {
	bus := &fakeBus{}
	clk := &ticks.Sim{Step: 50}
	l := New(bus, &fakeCS{}, &fakeInt{}, Config{Clock: clk})

	err := l.waitAck(200*time.Millisecond, 1<<20)
	require.ErrorIs(t, err, s2e.ErrTimeout)
	require.Less(t, len(bus.tx), 16, "deadline must cut the scan long before the byte budget")
}

func TestGetCommandResponse(t *testing.T) {
	payload := "VR1.0.0\r\n"
	overrides := map[int]byte{
		// Two filler bytes before the header exercise the scan skip.
		4: 0x00, 5: 0x00,
		6: RspB1,
		7: byte(len(payload)), 8: 0x00, // little-endian length
		// 9 is the pad byte.
	}
	for i := 0; i < len(payload); i++ {
		overrides[10+i] = payload[i]
	}
	bus := &fakeBus{rx: script(10+len(payload), overrides)}
	l, _ := newTestLink(bus, &fakeInt{level: true})

	p, err := l.GetCommand("VR")
	require.NoError(t, err)
	require.Equal(t, []byte(payload), p)
	require.Equal(t, []byte{'V', 'R', 0x0D, 0x0A}, bus.tx[:4])
}

func TestGetCommandEmptyResponse(t *testing.T) {
	bus := &fakeBus{rx: script(7, map[int]byte{4: RspB1, 5: 0x00, 6: 0x00})}
	l, _ := newTestLink(bus, &fakeInt{level: true})

	p, err := l.GetCommand("ST")
	require.NoError(t, err)
	require.Empty(t, p)
}

func TestGetCommandNack(t *testing.T) {
	bus := &fakeBus{rx: script(5, map[int]byte{4: Nack})}
	l, _ := newTestLink(bus, &fakeInt{level: true})

	_, err := l.GetCommand("ST")
	require.ErrorIs(t, err, s2e.ErrNack)
}

func TestGetCommandRejectsBadCode(t *testing.T) {
	bus := &fakeBus{}
	l, _ := newTestLink(bus, nil)

	_, err := l.GetCommand("STX")
	require.ErrorIs(t, err, s2e.ErrBadCommand)
	require.Empty(t, bus.tx)
}

func TestResponseScanInvalidHeader(t *testing.T) {
	// A master-only sentinel on MISO while scanning means the frame
	// stream is desynchronized.
	bus := &fakeBus{rx: script(5, map[int]byte{4: TxA0})}
	l, _ := newTestLink(bus, &fakeInt{level: true})

	_, err := l.GetCommand("MC")
	require.ErrorIs(t, err, s2e.ErrInvalidHeader)
}

func TestResponseScanTimeout(t *testing.T) {
	bus := &fakeBus{} // nothing but filler
	l, _ := newTestLink(bus, &fakeInt{level: true})
	l.cfg.RespScanMax = 32

	_, err := l.GetCommand("MC")
	require.ErrorIs(t, err, s2e.ErrTimeout)
}

func TestSendDataFrame(t *testing.T) {
	bus := &fakeBus{rx: script(17, map[int]byte{4: Ack, 13: Ack})}
	l, _ := newTestLink(bus, nil)

	require.NoError(t, l.SendData([]byte("hello")))
	require.Equal(t, []byte{TxA0, 0x05, 0x00, Dummy}, bus.tx[:4])
	require.Equal(t, []byte("hello"), bus.tx[8:13])
}

func TestSendDataEmptyPayload(t *testing.T) {
	bus := &fakeBus{rx: script(12, map[int]byte{4: Ack, 8: Ack})}
	l, _ := newTestLink(bus, nil)

	require.NoError(t, l.SendData(nil))
	require.Equal(t, []byte{TxA0, 0x00, 0x00, Dummy}, bus.tx[:4])
}

func TestRecvDataNoData(t *testing.T) {
	bus := &fakeBus{}
	l, _ := newTestLink(bus, &fakeInt{level: false})

	p, ok, err := l.RecvData()
	require.NoError(t, err, "idle link is not an error")
	require.False(t, ok)
	require.Nil(t, p)
	require.Empty(t, bus.tx, "no bus traffic without the interrupt")
}

func recvScript(payload []byte) []byte {
	overrides := map[int]byte{
		4: RspB1,
		5: byte(len(payload)), 6: byte(len(payload) >> 8),
	}
	for i, b := range payload {
		overrides[8+i] = b
	}
	return script(8+len(payload), overrides)
}

func TestRecvData(t *testing.T) {
	bus := &fakeBus{rx: recvScript([]byte("ping"))}
	l, _ := newTestLink(bus, &fakeInt{level: true})

	p, ok, err := l.RecvData()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("ping"), p)
	require.Equal(t, []byte{CmdB0, Dummy, Dummy, Dummy}, bus.tx[:4])
}

func TestRecvDataBufferAliasing(t *testing.T) {
	bus := &fakeBus{rx: recvScript([]byte("first"))}
	l, _ := newTestLink(bus, &fakeInt{level: true})

	p1, ok, err := l.RecvData()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("first"), p1)

	bus.rx = recvScript([]byte("SECND"))
	p2, ok, err := l.RecvData()
	require.NoError(t, err)
	require.True(t, ok)

	// Both views alias the link's one receive buffer: the second receive
	// overwrites what the first view sees. Callers must copy before the
	// next call.
	require.Same(t, &p1[0], &p2[0])
	require.Equal(t, []byte("SECND"), p1)
}

func TestRecvDataTruncation(t *testing.T) {
	const declared = 3000
	payload := make([]byte, declared)
	for i := range payload {
		payload[i] = byte(i)
	}
	bus := &fakeBus{rx: recvScript(payload)}
	l, _ := newTestLink(bus, &fakeInt{level: true})

	p, ok, err := l.RecvData()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, p, s2e.RecvBufSize)
	require.Equal(t, payload[:s2e.RecvBufSize], p)

	// The excess beyond capacity must still be clocked off the wire to
	// keep framing aligned: 4 command + 1 header + 2 length + 1 pad +
	// the full declared payload.
	require.Len(t, bus.tx, 4+4+declared)
}
