//nolint:dupl // each acknowledgment is its own packet type with the same layout
package mqttcodec

import (
	"bytes"
	"io"
)

// UnsubackPacket represents an MQTT UNSUBACK packet.
// MQTT 3.1.1 spec: Section 3.11
type UnsubackPacket struct {
	Header   FixedHeader
	PacketID uint16
}

// Type returns the packet type.
func (p *UnsubackPacket) Type() PacketType { return PacketUNSUBACK }

// PacketHeader returns the decoded fixed header.
func (p *UnsubackPacket) PacketHeader() FixedHeader { return p.Header }

// GetPacketID returns the packet identifier.
func (p *UnsubackPacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *UnsubackPacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *UnsubackPacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketUNSUBACK, remaining)
}

// Encode writes the packet to the writer.
func (p *UnsubackPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *UnsubackPacket) encodeBody(buf *bytes.Buffer) error {
	return encodeAck(buf, p.PacketID)
}

// Decode reads the packet from the cursor.
func (p *UnsubackPacket) Decode(c *Cursor, header FixedHeader, mode Mode) error {
	id, err := decodeAck(c, header, PacketUNSUBACK, mode)
	if err != nil {
		return err
	}
	p.Header = header
	p.PacketID = id
	return nil
}

// Validate validates the packet contents.
func (p *UnsubackPacket) Validate() error {
	return validateAck(p.PacketID)
}
