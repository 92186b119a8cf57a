package mqttcodec

import (
	"fmt"
	"io"
	"strconv"
)

// PacketType represents an MQTT control packet type.
type PacketType byte

// MQTT control packet types as defined in MQTT 3.1.1 section 2.2.1.
const (
	PacketCONNECT     PacketType = 1
	PacketCONNACK     PacketType = 2
	PacketPUBLISH     PacketType = 3
	PacketPUBACK      PacketType = 4
	PacketPUBREC      PacketType = 5
	PacketPUBREL      PacketType = 6
	PacketPUBCOMP     PacketType = 7
	PacketSUBSCRIBE   PacketType = 8
	PacketSUBACK      PacketType = 9
	PacketUNSUBSCRIBE PacketType = 10
	PacketUNSUBACK    PacketType = 11
	PacketPINGREQ     PacketType = 12
	PacketPINGRESP    PacketType = 13
	PacketDISCONNECT  PacketType = 14
)

// String returns the string representation of the packet type.
func (p PacketType) String() string {
	switch p {
	case PacketCONNECT:
		return "CONNECT"
	case PacketCONNACK:
		return "CONNACK"
	case PacketPUBLISH:
		return "PUBLISH"
	case PacketPUBACK:
		return "PUBACK"
	case PacketPUBREC:
		return "PUBREC"
	case PacketPUBREL:
		return "PUBREL"
	case PacketPUBCOMP:
		return "PUBCOMP"
	case PacketSUBSCRIBE:
		return "SUBSCRIBE"
	case PacketSUBACK:
		return "SUBACK"
	case PacketUNSUBSCRIBE:
		return "UNSUBSCRIBE"
	case PacketUNSUBACK:
		return "UNSUBACK"
	case PacketPINGREQ:
		return "PINGREQ"
	case PacketPINGRESP:
		return "PINGRESP"
	case PacketDISCONNECT:
		return "DISCONNECT"
	default:
		return "UNKNOWN"
	}
}

// Valid returns true if the packet type is valid.
func (p PacketType) Valid() bool {
	return p >= PacketCONNECT && p <= PacketDISCONNECT
}

// ParsePacketType converts the high nibble value of a fixed header byte into
// a PacketType. Values outside 1..14 fail with ErrUnknownPacketType.
func ParsePacketType(v byte) (PacketType, error) {
	p := PacketType(v)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPacketType, v)
	}
	return p, nil
}

// QoS is the delivery guarantee level of a message or subscription.
type QoS byte

// QoS levels.
const (
	QoSAtMostOnce  QoS = 0
	QoSAtLeastOnce QoS = 1
	QoSExactlyOnce QoS = 2
)

// Valid returns true for QoS 0, 1 and 2.
func (q QoS) Valid() bool {
	return q <= QoSExactlyOnce
}

// String returns the string representation of the QoS level.
func (q QoS) String() string {
	switch q {
	case QoSAtMostOnce:
		return "AtMostOnce"
	case QoSAtLeastOnce:
		return "AtLeastOnce"
	case QoSExactlyOnce:
		return "ExactlyOnce"
	default:
		return "QoS(" + strconv.Itoa(int(q)) + ")"
	}
}

// Fixed header flag bits.
const (
	headerFlagRetain = 0x01
	headerFlagQoS    = 0x06
	headerFlagDUP    = 0x08

	// PUBREL, SUBSCRIBE and UNSUBSCRIBE carry this fixed flag value.
	headerFlagsReserved = 0x02
)

// FixedHeader represents the fixed header of an MQTT control packet.
type FixedHeader struct {
	PacketType PacketType

	// DUP, QoS and Retain are meaningful only for PUBLISH. PUBREL, SUBSCRIBE
	// and UNSUBSCRIBE carry QoS 1 as a fixed flag value.
	DUP    bool
	QoS    QoS
	Retain bool

	// RemainingLength is the number of bytes after the fixed header.
	RemainingLength uint32
}

// Flags returns the low nibble of the first header byte.
func (h *FixedHeader) Flags() byte {
	var flags byte
	if h.DUP {
		flags |= headerFlagDUP
	}
	flags |= (byte(h.QoS) << 1) & headerFlagQoS
	if h.Retain {
		flags |= headerFlagRetain
	}
	return flags
}

func (h *FixedHeader) setFlags(flags byte) {
	h.DUP = flags&headerFlagDUP != 0
	h.QoS = QoS((flags & headerFlagQoS) >> 1)
	h.Retain = flags&headerFlagRetain != 0
}

// Encode writes the fixed header to the writer.
// Returns the number of bytes written.
func (h *FixedHeader) Encode(w io.Writer) (int, error) {
	if !h.PacketType.Valid() {
		return 0, ErrUnknownPacketType
	}
	if h.RemainingLength > maxVarint {
		return 0, ErrVarintTooLarge
	}

	// First byte: packet type (4 bits) | flags (4 bits)
	var buf [1 + varintMaxBytes]byte
	buf[0] = byte(h.PacketType)<<4 | h.Flags()

	// Remaining length as variable byte integer
	b := bufferWriter{buf: buf[:1]}
	if _, err := encodeVarint(&b, h.RemainingLength); err != nil {
		return 0, err
	}

	return w.Write(b.buf)
}

// Decode reads the fixed header from the reader.
// Returns the number of bytes read. Reading from a *Cursor reports truncated
// input as ErrMalformedPacket; other readers surface their own errors.
func (h *FixedHeader) Decode(r io.Reader) (int, error) {
	br := asByteReader(r)

	first, err := br.ReadByte()
	if err != nil {
		return 0, err
	}
	n := 1

	packetType, err := ParsePacketType(first >> 4)
	if err != nil {
		return n, err
	}
	h.PacketType = packetType
	h.setFlags(first & 0x0F)

	// Read remaining length
	length, n2, err := decodeVarint(br)
	n += n2
	if err != nil {
		return n, fieldError("remaining_length", err)
	}

	h.RemainingLength = length
	return n, nil
}

// Size returns the encoded size of the fixed header in bytes.
func (h *FixedHeader) Size() int {
	return 1 + varintSize(h.RemainingLength)
}

// ValidateFlags validates the flags for the packet type.
// QoS 3 on PUBLISH is always rejected with ErrInvalidQoS. In strict mode
// every other type must carry its fixed flag value, or ErrInvalidPacketFlags
// is returned.
func (h *FixedHeader) ValidateFlags(mode Mode) error {
	switch h.PacketType {
	case PacketPUBLISH:
		if !h.QoS.Valid() {
			return ErrInvalidQoS
		}
		if mode == ModeStrict && h.QoS == QoSAtMostOnce && h.DUP {
			return ErrInvalidPacketFlags
		}
		return nil

	case PacketPUBREL, PacketSUBSCRIBE, PacketUNSUBSCRIBE:
		if mode == ModeStrict && h.Flags() != headerFlagsReserved {
			return ErrInvalidPacketFlags
		}
		return nil

	case PacketCONNECT, PacketCONNACK, PacketPUBACK, PacketPUBREC,
		PacketPUBCOMP, PacketSUBACK, PacketUNSUBACK, PacketPINGREQ,
		PacketPINGRESP, PacketDISCONNECT:
		if mode == ModeStrict && h.Flags() != 0x00 {
			return ErrInvalidPacketFlags
		}
		return nil

	default:
		return ErrUnknownPacketType
	}
}

// headerFor builds the header an encoder emits for packet type t.
func headerFor(t PacketType, remaining uint32) FixedHeader {
	h := FixedHeader{PacketType: t, RemainingLength: remaining}
	switch t {
	case PacketPUBREL, PacketSUBSCRIBE, PacketUNSUBSCRIBE:
		h.setFlags(headerFlagsReserved)
	}
	return h
}

// bufferWriter appends to a caller-provided slice.
type bufferWriter struct {
	buf []byte
}

func (b *bufferWriter) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}
