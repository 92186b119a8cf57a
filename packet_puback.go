//nolint:dupl // each acknowledgment is its own packet type with the same layout
package mqttcodec

import (
	"bytes"
	"io"
)

// PubackPacket represents an MQTT PUBACK packet.
// MQTT 3.1.1 spec: Section 3.4
type PubackPacket struct {
	Header   FixedHeader
	PacketID uint16
}

// Type returns the packet type.
func (p *PubackPacket) Type() PacketType { return PacketPUBACK }

// PacketHeader returns the decoded fixed header.
func (p *PubackPacket) PacketHeader() FixedHeader { return p.Header }

// GetPacketID returns the packet identifier.
func (p *PubackPacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *PubackPacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *PubackPacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketPUBACK, remaining)
}

// Encode writes the packet to the writer.
func (p *PubackPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *PubackPacket) encodeBody(buf *bytes.Buffer) error {
	return encodeAck(buf, p.PacketID)
}

// Decode reads the packet from the cursor.
func (p *PubackPacket) Decode(c *Cursor, header FixedHeader, mode Mode) error {
	id, err := decodeAck(c, header, PacketPUBACK, mode)
	if err != nil {
		return err
	}
	p.Header = header
	p.PacketID = id
	return nil
}

// Validate validates the packet contents.
func (p *PubackPacket) Validate() error {
	return validateAck(p.PacketID)
}
