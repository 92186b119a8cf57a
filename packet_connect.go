package mqttcodec

import (
	"bytes"
	"io"
)

// CONNECT packet constants.
const (
	protocolName    = "MQTT"
	protocolVersion = 4
)

// ConnectPacket represents an MQTT CONNECT packet.
// MQTT 3.1.1 spec: Section 3.1
type ConnectPacket struct {
	Header FixedHeader

	// Flags decides which of the optional payload fields are on the wire.
	Flags ConnectFlags

	// KeepAlive is the keep alive interval in seconds.
	KeepAlive uint16

	// ClientID is always present, possibly empty.
	ClientID string

	// Present only when Flags.UsernamePresent / Flags.PasswordPresent.
	Username string
	Password string

	// Present only when Flags.WillPresent.
	WillTopic   string
	WillMessage string
}

// Type returns the packet type.
func (p *ConnectPacket) Type() PacketType {
	return PacketCONNECT
}

// PacketHeader returns the decoded fixed header.
func (p *ConnectPacket) PacketHeader() FixedHeader {
	return p.Header
}

func (p *ConnectPacket) fixedHeader(remaining uint32) FixedHeader {
	return headerFor(PacketCONNECT, remaining)
}

// Encode writes the packet to the writer.
func (p *ConnectPacket) Encode(w io.Writer) (int, error) {
	return writePacket(w, p)
}

func (p *ConnectPacket) encodeBody(buf *bytes.Buffer) error {
	// Protocol Name
	if _, err := encodeString(buf, "protocol_name", protocolName); err != nil {
		return err
	}

	// Protocol Version
	buf.WriteByte(protocolVersion)

	// Connect Flags
	buf.WriteByte(p.Flags.Byte())

	// Keep Alive
	encodeUint16(buf, p.KeepAlive)

	// Payload

	// Client ID
	if _, err := encodeString(buf, "client_id", p.ClientID); err != nil {
		return err
	}

	// Will Topic, Message
	if p.Flags.WillPresent {
		if _, err := encodeString(buf, "will_topic", p.WillTopic); err != nil {
			return err
		}
		if _, err := encodeString(buf, "will_message", p.WillMessage); err != nil {
			return err
		}
	}

	// Username
	if p.Flags.UsernamePresent {
		if _, err := encodeString(buf, "username", p.Username); err != nil {
			return err
		}
	}

	// Password
	if p.Flags.PasswordPresent {
		if _, err := encodeString(buf, "password", p.Password); err != nil {
			return err
		}
	}

	return nil
}

// Decode reads the packet from the cursor.
func (p *ConnectPacket) Decode(c *Cursor, header FixedHeader, mode Mode) error {
	if err := checkType(header, PacketCONNECT); err != nil {
		return err
	}
	p.Header = header
	start := c.Pos()

	// Protocol Name
	name, err := decodeString(c, "protocol_name")
	if err != nil {
		return err
	}
	if name != protocolName {
		return fieldError("protocol_name", ErrInvalidProtocolName)
	}

	// Protocol Version
	version, err := c.ReadByte()
	if err != nil {
		return fieldError("protocol_version", err)
	}
	if version != protocolVersion {
		return fieldError("protocol_version", ErrInvalidProtocolVersion)
	}

	// Connect Flags
	flags, err := c.ReadByte()
	if err != nil {
		return fieldError("connect_flags", err)
	}
	if p.Flags, err = DecodeConnectFlags(flags, mode); err != nil {
		return err
	}

	// Keep Alive
	if p.KeepAlive, err = decodeUint16(c, "keepalive"); err != nil {
		return err
	}

	// Payload

	// Client ID
	if p.ClientID, err = decodeString(c, "client_id"); err != nil {
		return err
	}

	// Will Topic, Message
	if p.Flags.WillPresent {
		if p.WillTopic, err = decodeString(c, "will_topic"); err != nil {
			return err
		}
		if p.WillMessage, err = decodeString(c, "will_message"); err != nil {
			return err
		}
	}

	// Username
	if p.Flags.UsernamePresent {
		if p.Username, err = decodeString(c, "username"); err != nil {
			return err
		}
	}

	// Password
	if p.Flags.PasswordPresent {
		if p.Password, err = decodeString(c, "password"); err != nil {
			return err
		}
	}

	return checkConsumed(c, start, header)
}

// Validate validates the packet contents.
func (p *ConnectPacket) Validate() error {
	if p.Flags.WillPresent && !p.Flags.WillQoS.Valid() {
		return fieldError("will_qos", ErrInvalidQoS)
	}
	return nil
}
