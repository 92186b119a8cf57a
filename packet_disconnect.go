package mqttcodec

import (
	"bytes"
	"io"
)

// DisconnectPacket represents an MQTT DISCONNECT packet.
// MQTT 3.1.1 spec: Section 3.14
type DisconnectPacket struct {
	Header FixedHeader
}

// Type returns the packet type.
func (p *DisconnectPacket) Type() PacketType { return PacketDISCONNECT }

// PacketHeader returns the decoded fixed header.
func (p *DisconnectPacket) PacketHeader() FixedHeader { return p.Header }

func (p *DisconnectPacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketDISCONNECT, remaining)
}

// Encode writes the packet to the writer.
func (p *DisconnectPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *DisconnectPacket) encodeBody(_ *bytes.Buffer) error { return nil }

// Decode checks that the packet has no body.
func (p *DisconnectPacket) Decode(c *Cursor, header FixedHeader, _ Mode) error {
	if err := decodeEmpty(c, header, PacketDISCONNECT); err != nil {
		return err
	}
	p.Header = header
	return nil
}

// Validate validates the packet contents.
func (p *DisconnectPacket) Validate() error {
	return nil
}
