package mqttcodec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"
)

var errNilPacket = fmt.Errorf("%w: nil packet", ErrMalformedPacket)

// Codec decodes and encodes MQTT 3.1.1 control packets.
// A Codec holds no per-packet state and is safe for concurrent use.
type Codec struct {
	mode          Mode
	maxPacketSize uint32
	logger        Logger
	metrics       *CodecMetrics
}

// NewCodec creates a codec. Without options it decodes in strict mode with no
// packet size limit.
func NewCodec(opts ...CodecOption) *Codec {
	config := defaultCodecConfig()
	for _, opt := range opts {
		opt(config)
	}

	return &Codec{
		mode:          config.mode,
		maxPacketSize: config.maxPacketSize,
		logger:        config.logger,
		metrics:       NewCodecMetrics(config.metrics),
	}
}

// Mode returns the decode mode.
func (c *Codec) Mode() Mode {
	return c.mode
}

// MaxPacketSize returns the packet size limit, 0 if unlimited.
func (c *Codec) MaxPacketSize() uint32 {
	return c.maxPacketSize
}

// NewPacket returns an empty packet of type t.
func NewPacket(t PacketType) (Packet, error) {
	switch t {
	case PacketCONNECT:
		return &ConnectPacket{}, nil
	case PacketCONNACK:
		return &ConnackPacket{}, nil
	case PacketPUBLISH:
		return &PublishPacket{}, nil
	case PacketPUBACK:
		return &PubackPacket{}, nil
	case PacketPUBREC:
		return &PubrecPacket{}, nil
	case PacketPUBREL:
		return &PubrelPacket{}, nil
	case PacketPUBCOMP:
		return &PubcompPacket{}, nil
	case PacketSUBSCRIBE:
		return &SubscribePacket{}, nil
	case PacketSUBACK:
		return &SubackPacket{}, nil
	case PacketUNSUBSCRIBE:
		return &UnsubscribePacket{}, nil
	case PacketUNSUBACK:
		return &UnsubackPacket{}, nil
	case PacketPINGREQ:
		return &PingreqPacket{}, nil
	case PacketPINGRESP:
		return &PingrespPacket{}, nil
	case PacketDISCONNECT:
		return &DisconnectPacket{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPacketType, byte(t))
	}
}

// DecodeCursor decodes one packet starting at the cursor position.
// On success the cursor is left at the first byte after the packet, so
// consecutive packets can be decoded from one buffer.
func (c *Codec) DecodeCursor(cur *Cursor) (Packet, error) {
	start := time.Now()
	begin := cur.Pos()

	var header FixedHeader
	if _, err := header.Decode(cur); err != nil {
		return nil, c.decodeFailed(header, err)
	}

	if err := c.checkSize(header); err != nil {
		return nil, c.decodeFailed(header, err)
	}

	body, err := cur.ReadN(int(header.RemainingLength))
	if err != nil {
		return nil, c.decodeFailed(header, fieldError("body", err))
	}

	p, err := c.decodeBody(header, body)
	if err != nil {
		return nil, c.decodeFailed(header, err)
	}

	c.metrics.PacketDecoded(header.PacketType, cur.Pos()-begin, time.Since(start))
	return p, nil
}

// Decode decodes exactly one packet from data. Bytes after the packet are
// rejected with ErrTrailingBytes.
func (c *Codec) Decode(data []byte) (Packet, error) {
	cur := getCursor(data)
	defer putCursor(cur)

	p, err := c.DecodeCursor(cur)
	if err != nil {
		return nil, err
	}

	if cur.Len() > 0 {
		err := fmt.Errorf("%w: %d bytes after %s", ErrTrailingBytes, cur.Len(), p.Type())
		return nil, c.decodeFailed(p.PacketHeader(), err)
	}

	return p, nil
}

// ReadPacket reads one complete packet from the reader.
// Returns the packet and the number of bytes read. Packets larger than the
// configured maximum fail with ErrPacketTooLarge before the body is read.
func (c *Codec) ReadPacket(r io.Reader) (Packet, int, error) {
	start := time.Now()

	var header FixedHeader
	n, err := header.Decode(r)
	if err != nil {
		// A clean end of stream between packets is not a codec failure.
		if n == 0 && errors.Is(err, io.EOF) {
			return nil, 0, err
		}
		return nil, n, c.decodeFailed(header, err)
	}

	if err := c.checkSize(header); err != nil {
		return nil, n, c.decodeFailed(header, err)
	}

	// Read remaining bytes
	body := make([]byte, header.RemainingLength)
	if header.RemainingLength > 0 {
		rn, err := io.ReadFull(r, body)
		n += rn
		if err != nil {
			return nil, n, c.decodeFailed(header, err)
		}
	}

	p, err := c.decodeBody(header, body)
	if err != nil {
		return nil, n, c.decodeFailed(header, err)
	}

	c.metrics.PacketDecoded(header.PacketType, n, time.Since(start))
	return p, n, nil
}

// Encode validates p and returns its wire form.
func (c *Codec) Encode(p Packet) ([]byte, error) {
	if p == nil {
		return nil, c.encodeFailed(nil, errNilPacket)
	}

	var buf bytes.Buffer
	if _, err := p.Encode(&buf); err != nil {
		return nil, c.encodeFailed(p, err)
	}

	if c.maxPacketSize > 0 && uint32(buf.Len()) > c.maxPacketSize {
		err := fmt.Errorf("%w: %d bytes, limit %d", ErrPacketTooLarge, buf.Len(), c.maxPacketSize)
		return nil, c.encodeFailed(p, err)
	}

	c.metrics.PacketEncoded(p.Type(), buf.Len())
	return buf.Bytes(), nil
}

// WritePacket validates p and writes its wire form to the writer.
// Returns the number of bytes written.
func (c *Codec) WritePacket(w io.Writer, p Packet) (int, error) {
	if p == nil {
		return 0, c.encodeFailed(nil, errNilPacket)
	}

	// Without a size limit the packet is streamed directly.
	if c.maxPacketSize == 0 {
		n, err := p.Encode(w)
		if err != nil {
			return n, c.encodeFailed(p, err)
		}
		c.metrics.PacketEncoded(p.Type(), n)
		return n, nil
	}

	data, err := c.Encode(p)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return n, c.encodeFailed(p, err)
	}
	return n, nil
}

func (c *Codec) checkSize(header FixedHeader) error {
	if c.maxPacketSize == 0 {
		return nil
	}

	size := uint64(header.Size()) + uint64(header.RemainingLength)
	if size > uint64(c.maxPacketSize) {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrPacketTooLarge, size, c.maxPacketSize)
	}
	return nil
}

// decodeBody runs the typed decoder over exactly the packet body.
func (c *Codec) decodeBody(header FixedHeader, body []byte) (Packet, error) {
	if err := header.ValidateFlags(c.mode); err != nil {
		return nil, err
	}

	p, err := NewPacket(header.PacketType)
	if err != nil {
		return nil, err
	}

	bc := getCursor(body)
	defer putCursor(bc)

	if err := p.Decode(bc, header, c.mode); err != nil {
		return nil, err
	}
	if bc.Len() != 0 {
		return nil, fmt.Errorf("%w: %s left %d body bytes unread", ErrMalformedPacket, header.PacketType, bc.Len())
	}

	return p, nil
}

func (c *Codec) decodeFailed(header FixedHeader, err error) error {
	c.metrics.CodecError(opDecode, err)
	c.logger.Debug("packet decode failed", LogFields{
		LogFieldOp:              opDecode,
		LogFieldPacketType:      header.PacketType.String(),
		LogFieldRemainingLength: header.RemainingLength,
		LogFieldError:           err.Error(),
		LogFieldErrorKind:       ErrorKind(err),
	})
	return err
}

func (c *Codec) encodeFailed(p Packet, err error) error {
	fields := LogFields{
		LogFieldOp:        opEncode,
		LogFieldError:     err.Error(),
		LogFieldErrorKind: ErrorKind(err),
	}
	if p != nil {
		fields[LogFieldPacketType] = p.Type().String()
		if pid, ok := p.(PacketWithID); ok {
			fields[LogFieldPacketID] = pid.GetPacketID()
		}
	}

	c.metrics.CodecError(opEncode, err)
	c.logger.Debug("packet encode failed", fields)
	return err
}

// defaultCodec backs the package-level functions.
var defaultCodec = NewCodec()

// Decode decodes exactly one packet from data in strict mode.
func Decode(data []byte) (Packet, error) {
	return defaultCodec.Decode(data)
}

// DecodeCursor decodes one packet from the cursor in strict mode.
func DecodeCursor(cur *Cursor) (Packet, error) {
	return defaultCodec.DecodeCursor(cur)
}

// ReadPacket reads a complete MQTT packet from the reader in strict mode.
// If maxSize is greater than 0, packets larger than maxSize will return ErrPacketTooLarge.
func ReadPacket(r io.Reader, maxSize uint32) (Packet, int, error) {
	if maxSize == 0 {
		return defaultCodec.ReadPacket(r)
	}
	return NewCodec(WithMaxPacketSize(maxSize)).ReadPacket(r)
}

// Encode returns the wire form of p.
func Encode(p Packet) ([]byte, error) {
	return defaultCodec.Encode(p)
}

// WritePacket writes a complete MQTT packet to the writer.
// If maxSize is greater than 0, packets larger than maxSize will return ErrPacketTooLarge.
func WritePacket(w io.Writer, p Packet, maxSize uint32) (int, error) {
	if maxSize == 0 {
		return defaultCodec.WritePacket(w, p)
	}
	return NewCodec(WithMaxPacketSize(maxSize)).WritePacket(w, p)
}
