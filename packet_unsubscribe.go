package mqttcodec

import (
	"bytes"
	"io"
)

// UnsubscribePacket represents an MQTT UNSUBSCRIBE packet.
// MQTT 3.1.1 spec: Section 3.10
//
// Only topic names are on the wire. Decoded topics have QoS 0 and encoding a
// topic with a non-zero QoS fails validation.
type UnsubscribePacket struct {
	Header   FixedHeader
	PacketID uint16
	Topics   []Topic
}

// Type returns the packet type.
func (p *UnsubscribePacket) Type() PacketType { return PacketUNSUBSCRIBE }

// PacketHeader returns the decoded fixed header.
func (p *UnsubscribePacket) PacketHeader() FixedHeader { return p.Header }

// GetPacketID returns the packet identifier.
func (p *UnsubscribePacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *UnsubscribePacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *UnsubscribePacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketUNSUBSCRIBE, remaining)
}

// Encode writes the packet to the writer.
func (p *UnsubscribePacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *UnsubscribePacket) encodeBody(buf *bytes.Buffer) error {
	// Packet Identifier
	encodeUint16(buf, p.PacketID)

	// Payload: topic filters
	for _, t := range p.Topics {
		if err := encodeTopic(buf, t, false); err != nil {
			return err
		}
	}

	return nil
}

// Decode reads the packet from the cursor.
func (p *UnsubscribePacket) Decode(c *Cursor, header FixedHeader, mode Mode) error {
	if err := checkType(header, PacketUNSUBSCRIBE); err != nil {
		return err
	}
	p.Header = header

	var err error
	p.PacketID, p.Topics, err = decodeTopicList(c, header, false, mode)
	return err
}

// Validate validates the packet contents.
func (p *UnsubscribePacket) Validate() error {
	if p.PacketID == 0 {
		return fieldError("packet_id", ErrInvalidPacketID)
	}
	if len(p.Topics) == 0 {
		return ErrNoTopics
	}
	for _, t := range p.Topics {
		if t.Name == "" {
			return fieldError("topic_filter", ErrTopicNameEmpty)
		}
		if t.QoS != QoSAtMostOnce {
			return fieldError("topic_filter", ErrInvalidQoS)
		}
	}
	return nil
}

// TopicNames returns the topic filters in order.
func (p *UnsubscribePacket) TopicNames() []string {
	names := make([]string, len(p.Topics))
	for i, t := range p.Topics {
		names[i] = t.Name
	}
	return names
}
