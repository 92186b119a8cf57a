//nolint:dupl // each acknowledgment is its own packet type with the same layout
package mqttcodec

import (
	"bytes"
	"io"
)

// PubcompPacket represents an MQTT PUBCOMP packet.
// MQTT 3.1.1 spec: Section 3.7
type PubcompPacket struct {
	Header   FixedHeader
	PacketID uint16
}

// Type returns the packet type.
func (p *PubcompPacket) Type() PacketType { return PacketPUBCOMP }

// PacketHeader returns the decoded fixed header.
func (p *PubcompPacket) PacketHeader() FixedHeader { return p.Header }

// GetPacketID returns the packet identifier.
func (p *PubcompPacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *PubcompPacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *PubcompPacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketPUBCOMP, remaining)
}

// Encode writes the packet to the writer.
func (p *PubcompPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *PubcompPacket) encodeBody(buf *bytes.Buffer) error {
	return encodeAck(buf, p.PacketID)
}

// Decode reads the packet from the cursor.
func (p *PubcompPacket) Decode(c *Cursor, header FixedHeader, mode Mode) error {
	id, err := decodeAck(c, header, PacketPUBCOMP, mode)
	if err != nil {
		return err
	}
	p.Header = header
	p.PacketID = id
	return nil
}

// Validate validates the packet contents.
func (p *PubcompPacket) Validate() error {
	return validateAck(p.PacketID)
}
