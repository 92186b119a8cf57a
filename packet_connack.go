package mqttcodec

import (
	"bytes"
	"io"
)

// ConnackPacket represents an MQTT CONNACK packet.
// MQTT 3.1.1 spec: Section 3.2
type ConnackPacket struct {
	Header FixedHeader

	// Flags carries the session present bit.
	Flags ConnackFlags

	// ReturnCode is the connection result.
	ReturnCode ConnectReturnCode
}

// Type returns the packet type.
func (p *ConnackPacket) Type() PacketType {
	return PacketCONNACK
}

// PacketHeader returns the decoded fixed header.
func (p *ConnackPacket) PacketHeader() FixedHeader {
	return p.Header
}

func (p *ConnackPacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketCONNACK, remaining)
}

// Encode writes the packet to the writer.
func (p *ConnackPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *ConnackPacket) encodeBody(buf *bytes.Buffer) error {
	// Connect Acknowledge Flags
	buf.WriteByte(p.Flags.Byte())

	// Return Code
	buf.WriteByte(byte(p.ReturnCode))

	return nil
}

// Decode reads the packet from the cursor.
func (p *ConnackPacket) Decode(c *Cursor, header FixedHeader, mode Mode) error {
	if err := checkType(header, PacketCONNACK); err != nil {
		return err
	}
	p.Header = header
	start := c.Pos()

	// Connect Acknowledge Flags
	flags, err := c.ReadByte()
	if err != nil {
		return fieldError("connack_flags", err)
	}
	if p.Flags, err = DecodeConnackFlags(flags, mode); err != nil {
		return err
	}

	// Return Code
	code, err := c.ReadByte()
	if err != nil {
		return fieldError("return_code", err)
	}
	p.ReturnCode = ConnectReturnCode(code)

	if mode == ModeStrict {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	return checkConsumed(c, start, header)
}

// Validate validates the packet contents.
func (p *ConnackPacket) Validate() error {
	if !p.ReturnCode.Valid() {
		return fieldError("return_code", ErrInvalidReturnCode)
	}

	// If the connection is refused, session present must be false
	if p.ReturnCode != ConnectAccepted && p.Flags.SessionPresent {
		return fieldError("connack_flags", ErrReservedBitsSet)
	}

	return nil
}
