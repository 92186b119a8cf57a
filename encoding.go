package mqttcodec

import (
	"encoding/binary"
	"io"
	"unicode/utf8"
)

const (
	maxUint16         = 65535
	maxVarint         = 268435455 // 0x0FFFFFFF
	varintContinueBit = 0x80
	varintValueMask   = 0x7F
	varintMaxBytes    = 4
)

// encodeString writes a UTF-8 string with 2-byte length prefix to w.
// Returns the number of bytes written.
func encodeString(w io.Writer, field, s string) (int, error) {
	if len(s) > maxUint16 {
		return 0, fieldError(field, ErrStringTooLong)
	}

	if !utf8.ValidString(s) {
		return 0, fieldError(field, ErrInvalidUTF8)
	}

	n, err := encodeUint16(w, uint16(len(s)))
	if err != nil {
		return n, err
	}

	n2, err := io.WriteString(w, s)
	return n + n2, err
}

// decodeString reads a UTF-8 string with 2-byte length prefix from c.
func decodeString(c *Cursor, field string) (string, error) {
	buf, err := decodeBinaryRef(c, field)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(buf) {
		return "", fieldError(field, ErrInvalidUTF8)
	}

	return string(buf), nil
}

// encodeBinary writes binary data with 2-byte length prefix to w.
// Returns the number of bytes written.
func encodeBinary(w io.Writer, field string, data []byte) (int, error) {
	if len(data) > maxUint16 {
		return 0, fieldError(field, ErrBinaryTooLong)
	}

	n, err := encodeUint16(w, uint16(len(data)))
	if err != nil {
		return n, err
	}

	n2, err := w.Write(data)
	return n + n2, err
}

// decodeBinary reads binary data with 2-byte length prefix from c.
// The result is a copy and does not alias the cursor.
func decodeBinary(c *Cursor, field string) ([]byte, error) {
	buf, err := decodeBinaryRef(c, field)
	if err != nil || len(buf) == 0 {
		return nil, err
	}

	out := make([]byte, len(buf))
	copy(out, buf)
	return out, nil
}

func decodeBinaryRef(c *Cursor, field string) ([]byte, error) {
	length, err := c.ReadUint16()
	if err != nil {
		return nil, fieldError(field, err)
	}

	buf, err := c.ReadN(int(length))
	if err != nil {
		return nil, fieldError(field, err)
	}

	return buf, nil
}

// encodeUint16 writes a big-endian two byte integer to w.
func encodeUint16(w io.Writer, v uint16) (int, error) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return w.Write(buf[:])
}

func decodeUint16(c *Cursor, field string) (uint16, error) {
	v, err := c.ReadUint16()
	if err != nil {
		return 0, fieldError(field, err)
	}
	return v, nil
}

// encodeVarint writes a variable byte integer to w.
// Returns the number of bytes written.
func encodeVarint(w io.Writer, value uint32) (int, error) {
	if value > maxVarint {
		return 0, ErrVarintTooLarge
	}

	var buf [varintMaxBytes]byte
	n := 0

	for {
		encodedByte := byte(value & varintValueMask)
		value >>= 7

		if value > 0 {
			encodedByte |= varintContinueBit
		}

		buf[n] = encodedByte
		n++

		if value == 0 {
			break
		}
	}

	return w.Write(buf[:n])
}

// decodeVarint reads a variable byte integer from r.
// Returns the value, number of bytes read, and any error.
func decodeVarint(r io.ByteReader) (uint32, int, error) {
	var value uint32
	var multiplier uint32 = 1
	bytesRead := 0

	for {
		encodedByte, err := r.ReadByte()
		if err != nil {
			return 0, bytesRead, err
		}
		bytesRead++

		value += uint32(encodedByte&varintValueMask) * multiplier

		if encodedByte&varintContinueBit == 0 {
			break
		}

		multiplier *= 128
		if multiplier > 128*128*128 {
			return 0, bytesRead, ErrMalformedVarInt
		}
	}

	return value, bytesRead, nil
}

// varintSize returns the number of bytes needed to encode a variable byte integer.
func varintSize(value uint32) int {
	switch {
	case value < 128:
		return 1
	case value < 16384:
		return 2
	case value < 2097152:
		return 3
	default:
		return 4
	}
}

// byteReader adapts an io.Reader that lacks ReadByte.
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (br *byteReader) ReadByte() (byte, error) {
	_, err := io.ReadFull(br.r, br.buf[:])
	return br.buf[0], err
}

func asByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &byteReader{r: r}
}
