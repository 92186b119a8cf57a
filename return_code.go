package mqttcodec

import "strconv"

// ConnectReturnCode is the result of a connection attempt carried by CONNACK.
type ConnectReturnCode byte

// Connect return codes as defined in MQTT 3.1.1 section 3.2.2.3.
const (
	ConnectAccepted                   ConnectReturnCode = 0x00
	ConnectRefusedProtocolVersion     ConnectReturnCode = 0x01
	ConnectRefusedIdentifierRejected  ConnectReturnCode = 0x02
	ConnectRefusedServerUnavailable   ConnectReturnCode = 0x03
	ConnectRefusedBadUsernamePassword ConnectReturnCode = 0x04
	ConnectRefusedNotAuthorized       ConnectReturnCode = 0x05
)

// String returns a human-readable description of the return code.
func (c ConnectReturnCode) String() string {
	switch c {
	case ConnectAccepted:
		return "Connection Accepted"
	case ConnectRefusedProtocolVersion:
		return "Unacceptable Protocol Version"
	case ConnectRefusedIdentifierRejected:
		return "Identifier Rejected"
	case ConnectRefusedServerUnavailable:
		return "Server Unavailable"
	case ConnectRefusedBadUsernamePassword:
		return "Bad User Name or Password"
	case ConnectRefusedNotAuthorized:
		return "Not Authorized"
	default:
		return "Unknown(0x" + strconv.FormatUint(uint64(c), 16) + ")"
	}
}

// Valid returns true for the return codes defined by the protocol.
func (c ConnectReturnCode) Valid() bool {
	return c <= ConnectRefusedNotAuthorized
}

// SubackReturnCode is the per-topic result carried by SUBACK.
type SubackReturnCode byte

// SUBACK return codes as defined in MQTT 3.1.1 section 3.9.3.
const (
	SubackGrantedQoS0 SubackReturnCode = 0x00
	SubackGrantedQoS1 SubackReturnCode = 0x01
	SubackGrantedQoS2 SubackReturnCode = 0x02
	SubackFailure     SubackReturnCode = 0x80
)

// String returns a human-readable description of the return code.
func (c SubackReturnCode) String() string {
	switch c {
	case SubackGrantedQoS0:
		return "Granted QoS 0"
	case SubackGrantedQoS1:
		return "Granted QoS 1"
	case SubackGrantedQoS2:
		return "Granted QoS 2"
	case SubackFailure:
		return "Failure"
	default:
		return "Unknown(0x" + strconv.FormatUint(uint64(c), 16) + ")"
	}
}

// Valid returns true for the return codes defined by the protocol.
func (c SubackReturnCode) Valid() bool {
	return c <= SubackGrantedQoS2 || c == SubackFailure
}

// GrantedQoS returns the granted QoS level and true, or false for a failure.
func (c SubackReturnCode) GrantedQoS() (QoS, bool) {
	if c > SubackGrantedQoS2 {
		return 0, false
	}
	return QoS(c), true
}

// SubackCodeFor returns the success return code granting qos.
func SubackCodeFor(qos QoS) SubackReturnCode {
	if !qos.Valid() {
		return SubackFailure
	}
	return SubackReturnCode(qos)
}
