package mqttcodec

import (
	"bytes"
	"io"
)

// PublishPacket represents an MQTT PUBLISH packet.
// MQTT 3.1.1 spec: Section 3.3
//
// DUP, QoS and Retain are taken from Header on encode.
type PublishPacket struct {
	Header FixedHeader

	// PacketID is the packet identifier (only for QoS > 0).
	PacketID uint16

	// Topic is the topic name.
	Topic string

	// Payload is the application message. It is not length-prefixed on the
	// wire; its size follows from the remaining length.
	Payload []byte
}

// Type returns the packet type.
func (p *PublishPacket) Type() PacketType {
	return PacketPUBLISH
}

// PacketHeader returns the decoded fixed header.
func (p *PublishPacket) PacketHeader() FixedHeader {
	return p.Header
}

// GetPacketID returns the packet identifier.
func (p *PublishPacket) GetPacketID() uint16 {
	return p.PacketID
}

// SetPacketID sets the packet identifier.
func (p *PublishPacket) SetPacketID(id uint16) {
	p.PacketID = id
}

func (p *PublishPacket) fixedHeader(remaining uint32) FixedHeader {
	return FixedHeader{
		PacketType:      PacketPUBLISH,
		DUP:             p.Header.DUP,
		QoS:             p.Header.QoS,
		Retain:          p.Header.Retain,
		RemainingLength: remaining,
	}
}

// Encode writes the packet to the writer.
func (p *PublishPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *PublishPacket) encodeBody(buf *bytes.Buffer) error {
	// Topic Name
	if _, err := encodeString(buf, "topic", p.Topic); err != nil {
		return err
	}

	// Packet Identifier (only for QoS > 0)
	if p.Header.QoS > QoSAtMostOnce {
		encodeUint16(buf, p.PacketID)
	}

	// Payload
	buf.Write(p.Payload)

	return nil
}

// Decode reads the packet from the cursor.
func (p *PublishPacket) Decode(c *Cursor, header FixedHeader, mode Mode) error {
	if err := checkType(header, PacketPUBLISH); err != nil {
		return err
	}
	if !header.QoS.Valid() {
		return ErrInvalidQoS
	}
	p.Header = header
	start := c.Pos()

	// Topic Name
	var err error
	if p.Topic, err = decodeString(c, "topic"); err != nil {
		return err
	}
	if mode == ModeStrict && p.Topic == "" {
		return fieldError("topic", ErrTopicNameEmpty)
	}

	// Packet Identifier (only for QoS > 0)
	if header.QoS > QoSAtMostOnce {
		if p.PacketID, err = decodeUint16(c, "packet_id"); err != nil {
			return err
		}
		if mode == ModeStrict && p.PacketID == 0 {
			return fieldError("packet_id", ErrInvalidPacketID)
		}
	}

	// Payload - the rest of the remaining length
	payloadLen, err := remainingBody(c, start, header)
	if err != nil {
		return err
	}
	p.Payload = nil
	if payloadLen > 0 {
		payload, err := c.ReadN(payloadLen)
		if err != nil {
			return fieldError("payload", err)
		}
		p.Payload = make([]byte, payloadLen)
		copy(p.Payload, payload)
	}

	return checkConsumed(c, start, header)
}

// Validate validates the packet contents.
func (p *PublishPacket) Validate() error {
	if !p.Header.QoS.Valid() {
		return ErrInvalidQoS
	}

	if p.Topic == "" {
		return fieldError("topic", ErrTopicNameEmpty)
	}

	// DUP must be 0 for QoS 0
	if p.Header.QoS == QoSAtMostOnce && p.Header.DUP {
		return ErrInvalidPacketFlags
	}

	// Packet ID is required for QoS > 0
	if p.Header.QoS > QoSAtMostOnce && p.PacketID == 0 {
		return fieldError("packet_id", ErrInvalidPacketID)
	}

	return nil
}
