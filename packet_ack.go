package mqttcodec

import "bytes"

// encodeAck writes the body of an acknowledgment that carries only a packet
// identifier (PUBACK, PUBREC, PUBREL, PUBCOMP, UNSUBACK).
func encodeAck(buf *bytes.Buffer, packetID uint16) error {
	_, err := encodeUint16(buf, packetID)
	return err
}

// decodeAck reads the body of a packet-identifier-only acknowledgment.
func decodeAck(c *Cursor, header FixedHeader, want PacketType, mode Mode) (uint16, error) {
	if err := checkType(header, want); err != nil {
		return 0, err
	}
	start := c.Pos()

	// Packet Identifier
	packetID, err := decodeUint16(c, "packet_id")
	if err != nil {
		return 0, err
	}
	if mode == ModeStrict && packetID == 0 {
		return 0, fieldError("packet_id", ErrInvalidPacketID)
	}

	return packetID, checkConsumed(c, start, header)
}

func validateAck(packetID uint16) error {
	if packetID == 0 {
		return fieldError("packet_id", ErrInvalidPacketID)
	}
	return nil
}

// decodeEmpty checks the body of a packet without variable header or payload
// (PINGREQ, PINGRESP, DISCONNECT).
func decodeEmpty(c *Cursor, header FixedHeader, want PacketType) error {
	if err := checkType(header, want); err != nil {
		return err
	}
	return checkConsumed(c, c.Pos(), header)
}
