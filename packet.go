package mqttcodec

import (
	"bytes"
	"fmt"
	"io"
)

// Packet is the interface that all MQTT control packets implement.
// The set of implementations is closed: one type per PacketType, all
// defined in this package.
type Packet interface {
	// Type returns the packet type.
	Type() PacketType

	// PacketHeader returns the fixed header the packet was decoded with.
	// It is the zero value for packets built by hand.
	PacketHeader() FixedHeader

	// Encode writes the packet, fixed header included, to the writer.
	// Returns the number of bytes written.
	Encode(w io.Writer) (int, error)

	// Decode reads the variable header and payload from c.
	// The fixed header must already be decoded.
	Decode(c *Cursor, header FixedHeader, mode Mode) error

	// Validate validates the packet contents before encoding.
	Validate() error

	encodeBody(buf *bytes.Buffer) error
	fixedHeader(remaining uint32) FixedHeader
}

// PacketWithID is implemented by packets that have a packet identifier.
type PacketWithID interface {
	Packet

	// GetPacketID returns the packet identifier.
	GetPacketID() uint16

	// SetPacketID sets the packet identifier.
	SetPacketID(id uint16)
}

// writePacket validates p, encodes its body into a pooled buffer and writes
// the fixed header followed by the body.
func writePacket(w io.Writer, p Packet) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	buf := getBuffer()
	defer putBuffer(buf)

	if err := p.encodeBody(buf); err != nil {
		return 0, err
	}

	if buf.Len() > maxVarint {
		return 0, ErrVarintTooLarge
	}

	header := p.fixedHeader(uint32(buf.Len()))
	total, err := header.Encode(w)
	if err != nil {
		return total, err
	}

	n, err := w.Write(buf.Bytes())
	return total + n, err
}

func checkType(header FixedHeader, want PacketType) error {
	if header.PacketType != want {
		return fmt.Errorf("%w: %s header passed to %s decoder", ErrMalformedPacket, header.PacketType, want)
	}
	return nil
}

// checkConsumed enforces that a body decoder consumed exactly
// header.RemainingLength bytes since start.
func checkConsumed(c *Cursor, start int, header FixedHeader) error {
	consumed := c.Pos() - start
	if consumed != int(header.RemainingLength) {
		return fmt.Errorf("%w: %s consumed %d of %d bytes",
			ErrMalformedPacket, header.PacketType, consumed, header.RemainingLength)
	}
	return nil
}

// remainingBody returns how many body bytes are still unread, or an error if
// the decoder already read past header.RemainingLength.
func remainingBody(c *Cursor, start int, header FixedHeader) (int, error) {
	left := int(header.RemainingLength) - (c.Pos() - start)
	if left < 0 {
		return 0, fmt.Errorf("%w: %s fields exceed remaining length %d",
			ErrMalformedPacket, header.PacketType, header.RemainingLength)
	}
	return left, nil
}
