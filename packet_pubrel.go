//nolint:dupl // each acknowledgment is its own packet type with the same layout
package mqttcodec

import (
	"bytes"
	"io"
)

// PubrelPacket represents an MQTT PUBREL packet.
// MQTT 3.1.1 spec: Section 3.6
type PubrelPacket struct {
	Header   FixedHeader
	PacketID uint16
}

// Type returns the packet type.
func (p *PubrelPacket) Type() PacketType { return PacketPUBREL }

// PacketHeader returns the decoded fixed header.
func (p *PubrelPacket) PacketHeader() FixedHeader { return p.Header }

// GetPacketID returns the packet identifier.
func (p *PubrelPacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *PubrelPacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *PubrelPacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketPUBREL, remaining)
}

// Encode writes the packet to the writer.
func (p *PubrelPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *PubrelPacket) encodeBody(buf *bytes.Buffer) error {
	return encodeAck(buf, p.PacketID)
}

// Decode reads the packet from the cursor.
func (p *PubrelPacket) Decode(c *Cursor, header FixedHeader, mode Mode) error {
	id, err := decodeAck(c, header, PacketPUBREL, mode)
	if err != nil {
		return err
	}
	p.Header = header
	p.PacketID = id
	return nil
}

// Validate validates the packet contents.
func (p *PubrelPacket) Validate() error {
	return validateAck(p.PacketID)
}
