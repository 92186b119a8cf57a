package mqttcodec

import (
	"bytes"
	"io"
)

// SubscribePacket represents an MQTT SUBSCRIBE packet.
// MQTT 3.1.1 spec: Section 3.8
type SubscribePacket struct {
	Header   FixedHeader
	PacketID uint16
	Topics   []Topic
}

// Type returns the packet type.
func (p *SubscribePacket) Type() PacketType { return PacketSUBSCRIBE }

// PacketHeader returns the decoded fixed header.
func (p *SubscribePacket) PacketHeader() FixedHeader { return p.Header }

// GetPacketID returns the packet identifier.
func (p *SubscribePacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *SubscribePacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *SubscribePacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketSUBSCRIBE, remaining)
}

// Encode writes the packet to the writer.
func (p *SubscribePacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *SubscribePacket) encodeBody(buf *bytes.Buffer) error {
	// Packet Identifier
	encodeUint16(buf, p.PacketID)

	// Payload: topic filter + requested QoS
	for _, t := range p.Topics {
		if err := encodeTopic(buf, t, true); err != nil {
			return err
		}
	}

	return nil
}

// Decode reads the packet from the cursor.
func (p *SubscribePacket) Decode(c *Cursor, header FixedHeader, mode Mode) error {
	if err := checkType(header, PacketSUBSCRIBE); err != nil {
		return err
	}
	p.Header = header

	var err error
	p.PacketID, p.Topics, err = decodeTopicList(c, header, true, mode)
	return err
}

// Validate validates the packet contents.
func (p *SubscribePacket) Validate() error {
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
		if !t.QoS.Valid() {
			return fieldError("requested_qos", ErrInvalidQoS)
		}
	}
	return nil
}

// decodeTopicList reads the packet identifier and then topics until exactly
// header.RemainingLength bytes have been consumed. SUBSCRIBE topics carry a
// QoS byte; UNSUBSCRIBE topics are names only.
func decodeTopicList(c *Cursor, header FixedHeader, withQoS bool, mode Mode) (uint16, []Topic, error) {
	start := c.Pos()

	// Packet Identifier
	packetID, err := decodeUint16(c, "packet_id")
	if err != nil {
		return 0, nil, err
	}
	if mode == ModeStrict && packetID == 0 {
		return 0, nil, fieldError("packet_id", ErrInvalidPacketID)
	}

	var topics []Topic
	for {
		left, err := remainingBody(c, start, header)
		if err != nil {
			return 0, nil, err
		}
		if left == 0 {
			break
		}

		t, err := decodeTopic(c, withQoS, mode)
		if err != nil {
			return 0, nil, err
		}
		topics = append(topics, t)
	}

	if mode == ModeStrict && len(topics) == 0 {
		return 0, nil, ErrNoTopics
	}

	return packetID, topics, nil
}
