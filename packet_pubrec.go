//nolint:dupl // each acknowledgment is its own packet type with the same layout
package mqttcodec

import (
	"bytes"
	"io"
)

// PubrecPacket represents an MQTT PUBREC packet.
// MQTT 3.1.1 spec: Section 3.5
type PubrecPacket struct {
	Header   FixedHeader
	PacketID uint16
}

// Type returns the packet type.
func (p *PubrecPacket) Type() PacketType { return PacketPUBREC }

// PacketHeader returns the decoded fixed header.
func (p *PubrecPacket) PacketHeader() FixedHeader { return p.Header }

// GetPacketID returns the packet identifier.
func (p *PubrecPacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *PubrecPacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *PubrecPacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketPUBREC, remaining)
}

// Encode writes the packet to the writer.
func (p *PubrecPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *PubrecPacket) encodeBody(buf *bytes.Buffer) error {
	return encodeAck(buf, p.PacketID)
}

// Decode reads the packet from the cursor.
func (p *PubrecPacket) Decode(c *Cursor, header FixedHeader, mode Mode) error {
	id, err := decodeAck(c, header, PacketPUBREC, mode)
	if err != nil {
		return err
	}
	p.Header = header
	p.PacketID = id
	return nil
}

// Validate validates the packet contents.
func (p *PubrecPacket) Validate() error {
	return validateAck(p.PacketID)
}
