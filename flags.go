package mqttcodec

// Mode controls how a decoder treats reserved bits and values the protocol
// forbids but that do not affect framing.
type Mode int

const (
	// ModeStrict rejects non-zero reserved bits with ErrMalformedPacket.
	ModeStrict Mode = iota
	// ModeLenient ignores reserved bits.
	ModeLenient
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLenient:
		return "lenient"
	default:
		return "unknown"
	}
}

// Connect flag bit positions.
const (
	connectFlagReserved     = 0x01
	connectFlagCleanSession = 0x02
	connectFlagWillFlag     = 0x04
	connectFlagWillQoS      = 0x18
	connectFlagWillRetain   = 0x20
	connectFlagPasswordFlag = 0x40
	connectFlagUsernameFlag = 0x80
)

// ConnectFlags is the bit-packed flags byte of a CONNECT variable header.
//
//	bit  7         6         5            4-3       2     1              0
//	     username  password  will retain  will QoS  will  clean session  reserved
type ConnectFlags struct {
	UsernamePresent bool
	PasswordPresent bool
	WillRetain      bool
	WillQoS         QoS
	WillPresent     bool
	CleanSession    bool
}

// DecodeConnectFlags unpacks a CONNECT flags byte.
// Will QoS and will retain are ignored when the will flag is clear.
func DecodeConnectFlags(b byte, mode Mode) (ConnectFlags, error) {
	if mode == ModeStrict && b&connectFlagReserved != 0 {
		return ConnectFlags{}, fieldError("connect_flags", ErrReservedBitsSet)
	}

	f := ConnectFlags{
		UsernamePresent: b&connectFlagUsernameFlag != 0,
		PasswordPresent: b&connectFlagPasswordFlag != 0,
		WillPresent:     b&connectFlagWillFlag != 0,
		CleanSession:    b&connectFlagCleanSession != 0,
	}

	if f.WillPresent {
		f.WillQoS = QoS((b & connectFlagWillQoS) >> 3)
		f.WillRetain = b&connectFlagWillRetain != 0
		if !f.WillQoS.Valid() {
			return ConnectFlags{}, fieldError("will_qos", ErrInvalidQoS)
		}
	}

	return f, nil
}

// Byte packs the flags. Will QoS and will retain are forced to zero when
// WillPresent is false; the reserved bit is always zero.
func (f ConnectFlags) Byte() byte {
	var b byte

	if f.CleanSession {
		b |= connectFlagCleanSession
	}

	if f.WillPresent {
		b |= connectFlagWillFlag
		b |= (byte(f.WillQoS) << 3) & connectFlagWillQoS
		if f.WillRetain {
			b |= connectFlagWillRetain
		}
	}

	if f.PasswordPresent {
		b |= connectFlagPasswordFlag
	}

	if f.UsernamePresent {
		b |= connectFlagUsernameFlag
	}

	return b
}

const (
	connackFlagSessionPresent = 0x01
	connackFlagReserved       = 0xFE
)

// ConnackFlags is the acknowledge flags byte of a CONNACK packet.
// Bits 7-1 are reserved, bit 0 is session present.
type ConnackFlags struct {
	SessionPresent bool
}

// DecodeConnackFlags unpacks a CONNACK acknowledge flags byte.
func DecodeConnackFlags(b byte, mode Mode) (ConnackFlags, error) {
	if mode == ModeStrict && b&connackFlagReserved != 0 {
		return ConnackFlags{}, fieldError("connack_flags", ErrReservedBitsSet)
	}
	return ConnackFlags{SessionPresent: b&connackFlagSessionPresent != 0}, nil
}

// Byte packs the flags with all reserved bits zero.
func (f ConnackFlags) Byte() byte {
	if f.SessionPresent {
		return connackFlagSessionPresent
	}
	return 0
}
