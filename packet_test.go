package mqttcodec

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hexBytes parses space separated hex, e.g. "10 1e 00 04".
func hexBytes(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

// roundTrip encodes p and decodes the result in strict mode.
func roundTrip(t *testing.T, p Packet) Packet {
	t.Helper()

	data, err := Encode(p)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, p.Type(), decoded.Type())

	// Re-encoding the decoded packet yields the same bytes.
	again, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	return decoded
}

// decodeBody decodes a body with the header a codec would have produced.
func decodeBody(p Packet, header FixedHeader, body []byte, mode Mode) error {
	header.RemainingLength = uint32(len(body))
	return p.Decode(NewCursor(body), header, mode)
}

func allPacketTypes() []Packet {
	return []Packet{
		&ConnectPacket{},
		&ConnackPacket{},
		&PublishPacket{},
		&PubackPacket{},
		&PubrecPacket{},
		&PubrelPacket{},
		&PubcompPacket{},
		&SubscribePacket{},
		&SubackPacket{},
		&UnsubscribePacket{},
		&UnsubackPacket{},
		&PingreqPacket{},
		&PingrespPacket{},
		&DisconnectPacket{},
	}
}

func TestPacketTypes(t *testing.T) {
	seen := make(map[PacketType]bool)
	for _, p := range allPacketTypes() {
		assert.True(t, p.Type().Valid())
		assert.False(t, seen[p.Type()], "duplicate %s", p.Type())
		seen[p.Type()] = true

		fresh, err := NewPacket(p.Type())
		require.NoError(t, err)
		assert.IsType(t, p, fresh)
	}
	assert.Len(t, seen, 14)
}

func TestPacketWithID(t *testing.T) {
	withID := map[PacketType]bool{
		PacketPUBLISH:     true,
		PacketPUBACK:      true,
		PacketPUBREC:      true,
		PacketPUBREL:      true,
		PacketPUBCOMP:     true,
		PacketSUBSCRIBE:   true,
		PacketSUBACK:      true,
		PacketUNSUBSCRIBE: true,
		PacketUNSUBACK:    true,
	}

	for _, p := range allPacketTypes() {
		pid, ok := p.(PacketWithID)
		assert.Equal(t, withID[p.Type()], ok, p.Type().String())
		if ok {
			pid.SetPacketID(4242)
			assert.Equal(t, uint16(4242), pid.GetPacketID())
		}
	}
}

func TestDecodeWrongHeaderType(t *testing.T) {
	for _, p := range allPacketTypes() {
		other := PacketPINGREQ
		if p.Type() == PacketPINGREQ {
			other = PacketPINGRESP
		}
		err := p.Decode(NewCursor(nil), FixedHeader{PacketType: other}, ModeLenient)
		assert.ErrorIs(t, err, ErrMalformedPacket, p.Type().String())
	}
}

func TestWritePacketValidates(t *testing.T) {
	var buf bytes.Buffer
	_, err := (&PubackPacket{}).Encode(&buf)
	assert.ErrorIs(t, err, ErrInvalidPacketID)
	assert.Equal(t, 0, buf.Len())
}

func TestWritePacketCountsBytes(t *testing.T) {
	p := &PublishPacket{Topic: "a", Payload: bytes.Repeat([]byte{0x01}, 200)}

	var buf bytes.Buffer
	n, err := p.Encode(&buf)
	require.NoError(t, err)

	// 1 type byte, 2 length bytes, 3 topic bytes, 200 payload bytes
	assert.Equal(t, 206, n)
	assert.Equal(t, n, buf.Len())
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("write failed")
	}
	w.after--
	return len(p), nil
}

func TestWritePacketWriterError(t *testing.T) {
	p := &PubackPacket{PacketID: 1}

	_, err := p.Encode(&failingWriter{after: 0})
	assert.EqualError(t, err, "write failed")

	n, err := p.Encode(&failingWriter{after: 1})
	assert.EqualError(t, err, "write failed")
	assert.Equal(t, 2, n)
}

func TestCheckConsumed(t *testing.T) {
	header := FixedHeader{PacketType: PacketPUBACK, RemainingLength: 2}

	c := NewCursor([]byte{0x00, 0x01, 0x02})
	_, _ = c.ReadUint16()
	assert.NoError(t, checkConsumed(c, 0, header))

	_, _ = c.ReadByte()
	assert.ErrorIs(t, checkConsumed(c, 0, header), ErrMalformedPacket)
}

func TestRemainingBody(t *testing.T) {
	header := FixedHeader{PacketType: PacketPUBLISH, RemainingLength: 3}
	c := NewCursor([]byte{0x01, 0x02, 0x03, 0x04})

	left, err := remainingBody(c, 0, header)
	require.NoError(t, err)
	assert.Equal(t, 3, left)

	_, _ = c.ReadN(4)
	_, err = remainingBody(c, 0, header)
	assert.ErrorIs(t, err, ErrMalformedPacket)
}
