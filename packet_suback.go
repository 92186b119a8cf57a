package mqttcodec

import (
	"bytes"
	"fmt"
	"io"
)

// SubackPacket represents an MQTT SUBACK packet.
// MQTT 3.1.1 spec: Section 3.9
type SubackPacket struct {
	Header   FixedHeader
	PacketID uint16

	// ReturnCodes holds one code per topic of the acknowledged SUBSCRIBE,
	// in the same order.
	ReturnCodes []SubackReturnCode
}

// Type returns the packet type.
func (p *SubackPacket) Type() PacketType { return PacketSUBACK }

// PacketHeader returns the decoded fixed header.
func (p *SubackPacket) PacketHeader() FixedHeader { return p.Header }

// GetPacketID returns the packet identifier.
func (p *SubackPacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *SubackPacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *SubackPacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketSUBACK, remaining)
}

// Encode writes the packet to the writer.
func (p *SubackPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *SubackPacket) encodeBody(buf *bytes.Buffer) error {
	// Packet Identifier
	encodeUint16(buf, p.PacketID)

	// Payload: return codes
	for _, rc := range p.ReturnCodes {
		buf.WriteByte(byte(rc))
	}

	return nil
}

// Decode reads the packet from the cursor.
func (p *SubackPacket) Decode(c *Cursor, header FixedHeader, mode Mode) error {
	if err := checkType(header, PacketSUBACK); err != nil {
		return err
	}
	p.Header = header
	start := c.Pos()

	// Packet Identifier
	var err error
	if p.PacketID, err = decodeUint16(c, "packet_id"); err != nil {
		return err
	}
	if mode == ModeStrict && p.PacketID == 0 {
		return fieldError("packet_id", ErrInvalidPacketID)
	}

	// Payload: one byte per topic, up to the remaining length
	count, err := remainingBody(c, start, header)
	if err != nil {
		return err
	}
	if mode == ModeStrict && count == 0 {
		return ErrNoTopics
	}

	codes, err := c.ReadN(count)
	if err != nil {
		return fieldError("return_codes", err)
	}

	p.ReturnCodes = nil
	if count > 0 {
		p.ReturnCodes = make([]SubackReturnCode, count)
	}
	for i, b := range codes {
		rc := SubackReturnCode(b)
		if mode == ModeStrict && !rc.Valid() {
			return fieldError("return_codes", ErrInvalidReturnCode)
		}
		p.ReturnCodes[i] = rc
	}

	return checkConsumed(c, start, header)
}

// Validate validates the packet contents.
func (p *SubackPacket) Validate() error {
	if p.PacketID == 0 {
		return fieldError("packet_id", ErrInvalidPacketID)
	}
	if len(p.ReturnCodes) == 0 {
		return ErrNoTopics
	}
	for _, rc := range p.ReturnCodes {
		if !rc.Valid() {
			return fieldError("return_codes", ErrInvalidReturnCode)
		}
	}
	return nil
}

// Matches reports whether p acknowledges req: the packet identifiers must be
// equal and there must be one return code per requested topic. The SUBACK
// alone cannot tell how many topics were requested, so the caller supplies
// the SUBSCRIBE it sent.
func (p *SubackPacket) Matches(req *SubscribePacket) error {
	if p.PacketID != req.PacketID {
		return fmt.Errorf("%w: SUBACK packet id %d, SUBSCRIBE packet id %d",
			ErrMalformedPacket, p.PacketID, req.PacketID)
	}
	if len(p.ReturnCodes) != len(req.Topics) {
		return fmt.Errorf("%w: SUBACK has %d return codes for %d topics",
			ErrMalformedPacket, len(p.ReturnCodes), len(req.Topics))
	}
	return nil
}
