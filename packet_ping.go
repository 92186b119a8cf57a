package mqttcodec

import (
	"bytes"
	"io"
)

// PingreqPacket represents an MQTT PINGREQ packet.
// MQTT 3.1.1 spec: Section 3.12
type PingreqPacket struct {
	Header FixedHeader
}

// Type returns the packet type.
func (p *PingreqPacket) Type() PacketType { return PacketPINGREQ }

// PacketHeader returns the decoded fixed header.
func (p *PingreqPacket) PacketHeader() FixedHeader { return p.Header }

func (p *PingreqPacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketPINGREQ, remaining)
}

// Encode writes the packet to the writer.
func (p *PingreqPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *PingreqPacket) encodeBody(_ *bytes.Buffer) error { return nil }

// Decode checks that the packet has no body.
func (p *PingreqPacket) Decode(c *Cursor, header FixedHeader, _ Mode) error {
	if err := decodeEmpty(c, header, PacketPINGREQ); err != nil {
		return err
	}
	p.Header = header
	return nil
}

// Validate validates the packet contents.
func (p *PingreqPacket) Validate() error {
	return nil
}

// PingrespPacket represents an MQTT PINGRESP packet.
// MQTT 3.1.1 spec: Section 3.13
type PingrespPacket struct {
	Header FixedHeader
}

// Type returns the packet type.
func (p *PingrespPacket) Type() PacketType { return PacketPINGRESP }

// PacketHeader returns the decoded fixed header.
func (p *PingrespPacket) PacketHeader() FixedHeader { return p.Header }

func (p *PingrespPacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketPINGRESP, remaining)
}

// Encode writes the packet to the writer.
func (p *PingrespPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *PingrespPacket) encodeBody(_ *bytes.Buffer) error { return nil }

// Decode checks that the packet has no body.
func (p *PingrespPacket) Decode(c *Cursor, header FixedHeader, _ Mode) error {
	if err := decodeEmpty(c, header, PacketPINGRESP); err != nil {
		return err
	}
	p.Header = header
	return nil
}

// Validate validates the packet contents.
func (p *PingrespPacket) Validate() error {
	return nil
}
