package mqttcodec

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Cursor is a read position over an in-memory byte slice.
// Reads past the end fail with an error matching ErrMalformedPacket and leave
// the position unchanged.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	return len(c.data) - c.pos
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int {
	return c.pos
}

// ReadByte reads a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, shortBuffer(1, 0)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// ReadUint16 reads a big-endian two byte integer.
func (c *Cursor) ReadUint16() (uint16, error) {
	if c.Len() < 2 {
		return 0, shortBuffer(2, c.Len())
	}
	v := binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadN returns the next n bytes. The returned slice aliases the cursor's
// backing array.
func (c *Cursor) ReadN(n int) ([]byte, error) {
	if n < 0 || c.Len() < n {
		return nil, shortBuffer(n, c.Len())
	}
	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

// Read implements io.Reader.
func (c *Cursor) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	n := copy(p, c.data[c.pos:])
	c.pos += n
	return n, nil
}

func (c *Cursor) reset(data []byte) {
	c.data = data
	c.pos = 0
}

func shortBuffer(want, have int) error {
	return fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, want, have)
}
