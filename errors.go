package mqttcodec

import (
	"errors"
	"fmt"
)

// Error kinds - check with errors.Is().
//
// The wire format has no resynchronisation point, so a decode error of any
// kind leaves the stream at an unknown offset. Callers should drop the
// connection rather than try to skip the offending packet.
var (
	// ErrMalformedVarInt is returned when a remaining length uses more than
	// four bytes.
	ErrMalformedVarInt = errors.New("mqttcodec: malformed variable byte integer")

	// ErrUnknownPacketType is returned when the 4-bit packet type is 0 or 15.
	ErrUnknownPacketType = errors.New("mqttcodec: unknown packet type")

	// ErrInvalidUTF8 is returned when a string field is not valid UTF-8.
	// It is usually wrapped in a *FieldError naming the field.
	ErrInvalidUTF8 = errors.New("mqttcodec: invalid UTF-8 string")

	// ErrMalformedPacket is returned when the declared remaining length does
	// not match the bytes the packet layout requires, or when a field holds a
	// value the protocol forbids.
	ErrMalformedPacket = errors.New("mqttcodec: malformed packet")

	// ErrValueOutOfRange is returned on encode when a value does not fit its
	// wire width.
	ErrValueOutOfRange = errors.New("mqttcodec: value out of range")
)

// Malformed packet refinements. All of them match ErrMalformedPacket.
var (
	ErrInvalidProtocolName    = fmt.Errorf("%w: invalid protocol name", ErrMalformedPacket)
	ErrInvalidProtocolVersion = fmt.Errorf("%w: unsupported protocol version", ErrMalformedPacket)
	ErrInvalidPacketFlags     = fmt.Errorf("%w: invalid fixed header flags", ErrMalformedPacket)
	ErrReservedBitsSet        = fmt.Errorf("%w: reserved bits set", ErrMalformedPacket)
	ErrInvalidQoS             = fmt.Errorf("%w: invalid QoS level", ErrMalformedPacket)
	ErrInvalidPacketID        = fmt.Errorf("%w: invalid packet identifier", ErrMalformedPacket)
	ErrInvalidReturnCode      = fmt.Errorf("%w: invalid return code", ErrMalformedPacket)
	ErrNoTopics               = fmt.Errorf("%w: topic list is empty", ErrMalformedPacket)
	ErrTopicNameEmpty         = fmt.Errorf("%w: topic name is empty", ErrMalformedPacket)
	ErrTrailingBytes          = fmt.Errorf("%w: trailing bytes after packet", ErrMalformedPacket)
	ErrShortBuffer            = fmt.Errorf("%w: not enough bytes", ErrMalformedPacket)
)

// Value out of range refinements. All of them match ErrValueOutOfRange.
var (
	ErrStringTooLong  = fmt.Errorf("%w: string exceeds 65535 bytes", ErrValueOutOfRange)
	ErrBinaryTooLong  = fmt.Errorf("%w: binary data exceeds 65535 bytes", ErrValueOutOfRange)
	ErrVarintTooLarge = fmt.Errorf("%w: variable byte integer exceeds 268435455", ErrValueOutOfRange)
	ErrPacketTooLarge = fmt.Errorf("%w: packet exceeds maximum size", ErrValueOutOfRange)
)

// FieldError annotates an error with the packet field it occurred in.
// Extract with errors.As().
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldError(field string, err error) error {
	if err == nil {
		return nil
	}
	return &FieldError{Field: field, Err: err}
}

// Error kind labels returned by ErrorKind.
const (
	KindMalformedVarInt   = "malformed_varint"
	KindUnknownPacketType = "unknown_packet_type"
	KindInvalidUTF8       = "invalid_utf8"
	KindMalformedPacket   = "malformed_packet"
	KindValueOutOfRange   = "value_out_of_range"
	KindIO                = "io"
	KindNone              = ""
)

// ErrorKind returns a stable label for the kind of err.
// It returns KindNone for a nil error and KindIO for errors that did not
// originate in the codec.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMalformedVarInt):
		return KindMalformedVarInt
	case errors.Is(err, ErrUnknownPacketType):
		return KindUnknownPacketType
	case errors.Is(err, ErrInvalidUTF8):
		return KindInvalidUTF8
	case errors.Is(err, ErrMalformedPacket):
		return KindMalformedPacket
	case errors.Is(err, ErrValueOutOfRange):
		return KindValueOutOfRange
	default:
		return KindIO
	}
}
