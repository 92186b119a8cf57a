package mqttcodec

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAckPacketEncodeDecode(t *testing.T) {
	tests := []struct {
		name      string
		packet    PacketWithID
		wantFirst byte
	}{
		{name: "PUBACK", packet: &PubackPacket{PacketID: 1}, wantFirst: 0x40},
		{name: "PUBREC", packet: &PubrecPacket{PacketID: 100}, wantFirst: 0x50},
		{name: "PUBREL", packet: &PubrelPacket{PacketID: 12345}, wantFirst: 0x62},
		{name: "PUBCOMP", packet: &PubcompPacket{PacketID: 65535}, wantFirst: 0x70},
		{name: "UNSUBACK", packet: &UnsubackPacket{PacketID: 2}, wantFirst: 0xB0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.packet)
			require.NoError(t, err)

			id := tt.packet.GetPacketID()
			assert.Equal(t, []byte{tt.wantFirst, 0x02, byte(id >> 8), byte(id)}, data)

			decoded := roundTrip(t, tt.packet)
			assert.Equal(t, id, decoded.(PacketWithID).GetPacketID())
		})
	}
}

func TestDecodeAck(t *testing.T) {
	header := FixedHeader{PacketType: PacketPUBACK, RemainingLength: 2}

	id, err := decodeAck(NewCursor([]byte{0x12, 0x34}), header, PacketPUBACK, ModeStrict)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), id)

	_, err = decodeAck(NewCursor([]byte{0x12, 0x34}), header, PacketPUBREC, ModeStrict)
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

func TestDecodeAckErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      []byte
		strictErr error
		lenientOK bool
	}{
		{
			name:      "zero packet id",
			body:      []byte{0x00, 0x00},
			strictErr: ErrInvalidPacketID,
			lenientOK: true,
		},
		{
			name:      "partial packet id",
			body:      []byte{0x01},
			strictErr: ErrMalformedPacket,
		},
		{
			name:      "empty body",
			body:      []byte{},
			strictErr: ErrMalformedPacket,
		},
		{
			name:      "extra body byte",
			body:      []byte{0x00, 0x01, 0x00},
			strictErr: ErrMalformedPacket,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := FixedHeader{PacketType: PacketPUBCOMP, RemainingLength: uint32(len(tt.body))}

			_, err := decodeAck(NewCursor(tt.body), header, PacketPUBCOMP, ModeStrict)
			assert.ErrorIs(t, err, tt.strictErr)

			_, err = decodeAck(NewCursor(tt.body), header, PacketPUBCOMP, ModeLenient)
			if tt.lenientOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMalformedPacket)
			}
		})
	}
}

func TestValidateAck(t *testing.T) {
	assert.NoError(t, validateAck(1))
	assert.ErrorIs(t, validateAck(0), ErrInvalidPacketID)
}

func TestDecodeEmpty(t *testing.T) {
	assert.NoError(t, decodeEmpty(NewCursor(nil), FixedHeader{PacketType: PacketPINGREQ}, PacketPINGREQ))

	err := decodeEmpty(NewCursor([]byte{0x00}), FixedHeader{PacketType: PacketPINGREQ, RemainingLength: 1}, PacketPINGREQ)
	assert.ErrorIs(t, err, ErrMalformedPacket)

	err = decodeEmpty(NewCursor(nil), FixedHeader{PacketType: PacketPINGRESP}, PacketPINGREQ)
	assert.ErrorIs(t, err, ErrMalformedPacket)
}

func BenchmarkAckPacketEncode(b *testing.B) {
	p := &PubackPacket{PacketID: 1}
	var buf bytes.Buffer

	b.ReportAllocs()
	for b.Loop() {
		buf.Reset()
		_, _ = p.Encode(&buf)
	}
}

func BenchmarkAckPacketDecode(b *testing.B) {
	data := []byte{0x40, 0x02, 0x00, 0x01}

	b.ReportAllocs()
	for b.Loop() {
		_, _ = Decode(data)
	}
}

func FuzzAckPacketDecode(f *testing.F) {
	f.Add(byte(0x40), []byte{0x00, 0x01})
	f.Add(byte(0x62), []byte{0xFF, 0xFF})
	f.Add(byte(0xB0), []byte{0x00})

	for range 10 {
		size := rand.IntN(4) + 1
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(rand.IntN(256))
		}
		f.Add(byte(rand.IntN(256)), data)
	}

	f.Fuzz(func(t *testing.T, first byte, body []byte) {
		header := FixedHeader{PacketType: PacketType(first >> 4), RemainingLength: uint32(len(body))}
		header.setFlags(first & 0x0F)

		switch header.PacketType {
		case PacketPUBACK, PacketPUBREC, PacketPUBREL, PacketPUBCOMP, PacketUNSUBACK:
		default:
			return
		}

		id, err := decodeAck(NewCursor(body), header, header.PacketType, ModeLenient)
		if err != nil {
			return
		}
		require.Len(t, body, 2)
		assert.Equal(t, uint16(body[0])<<8|uint16(body[1]), id)
	})
}
