package mqttcodec

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribePacketType(t *testing.T) {
	p := &SubscribePacket{}
	assert.Equal(t, PacketSUBSCRIBE, p.Type())
}

func TestSubscribePacketEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		packet SubscribePacket
	}{
		{
			name: "single topic",
			packet: SubscribePacket{
				PacketID: 1,
				Topics:   []Topic{NewTopic("mytopic", QoSAtLeastOnce)},
			},
		},
		{
			name: "multiple topics",
			packet: SubscribePacket{
				PacketID: 10,
				Topics: []Topic{
					NewTopic("sensors/+/temperature", QoSAtMostOnce),
					NewTopic("alerts/#", QoSExactlyOnce),
					NewTopic("status", QoSAtLeastOnce),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded := roundTrip(t, &tt.packet)

			got := decoded.(*SubscribePacket)
			assert.Equal(t, tt.packet.PacketID, got.PacketID)
			assert.Equal(t, tt.packet.Topics, got.Topics)
			assert.Equal(t, QoSAtLeastOnce, got.Header.QoS, "fixed flags 0x02")
		})
	}
}

func TestSubscribePacketWire(t *testing.T) {
	p := &SubscribePacket{PacketID: 1, Topics: []Topic{NewTopic("mytopic", QoSAtLeastOnce)}}

	data, err := Encode(p)
	require.NoError(t, err)
	assert.Equal(t, hexBytes(t, "82 0c 00 01 00 07 6d 79 74 6f 70 69 63 01"), data)
}

func TestSubscribePacketDecodeErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       []byte
		strictErr  error
		lenientErr error
	}{
		{
			name:      "no topics",
			body:      []byte{0x00, 0x01},
			strictErr: ErrNoTopics,
		},
		{
			name:      "zero packet id",
			body:      []byte{0x00, 0x00, 0x00, 0x01, 'a', 0x00},
			strictErr: ErrInvalidPacketID,
		},
		{
			name:      "reserved option bits",
			body:      []byte{0x00, 0x01, 0x00, 0x01, 'a', 0x41},
			strictErr: ErrReservedBitsSet,
		},
		{
			name:       "QoS 3",
			body:       []byte{0x00, 0x01, 0x00, 0x01, 'a', 0x03},
			strictErr:  ErrInvalidQoS,
			lenientErr: ErrInvalidQoS,
		},
		{
			name:       "missing QoS byte",
			body:       []byte{0x00, 0x01, 0x00, 0x01, 'a'},
			strictErr:  ErrMalformedPacket,
			lenientErr: ErrMalformedPacket,
		},
		{
			name:       "truncated topic",
			body:       []byte{0x00, 0x01, 0x00, 0x09, 'a'},
			strictErr:  ErrMalformedPacket,
			lenientErr: ErrMalformedPacket,
		},
		{
			name:       "missing packet id",
			body:       []byte{0x00},
			strictErr:  ErrMalformedPacket,
			lenientErr: ErrMalformedPacket,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := headerFor(PacketSUBSCRIBE, 0)

			var p SubscribePacket
			err := decodeBody(&p, header, tt.body, ModeStrict)
			assert.ErrorIs(t, err, tt.strictErr)

			err = decodeBody(&p, header, tt.body, ModeLenient)
			if tt.lenientErr != nil {
				assert.ErrorIs(t, err, tt.lenientErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubscribePacketValidate(t *testing.T) {
	tests := []struct {
		name    string
		packet  SubscribePacket
		wantErr error
	}{
		{
			name:    "zero packet id",
			packet:  SubscribePacket{Topics: []Topic{NewTopic("a", QoSAtMostOnce)}},
			wantErr: ErrInvalidPacketID,
		},
		{
			name:    "no topics",
			packet:  SubscribePacket{PacketID: 1},
			wantErr: ErrNoTopics,
		},
		{
			name:    "empty topic filter",
			packet:  SubscribePacket{PacketID: 1, Topics: []Topic{NewTopic("", QoSAtMostOnce)}},
			wantErr: ErrTopicNameEmpty,
		},
		{
			name:    "invalid QoS",
			packet:  SubscribePacket{PacketID: 1, Topics: []Topic{NewTopic("a", QoS(3))}},
			wantErr: ErrInvalidQoS,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(&tt.packet)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func FuzzSubscribePacketDecode(f *testing.F) {
	f.Add([]byte{0x00, 0x01, 0x00, 0x07, 'm', 'y', 't', 'o', 'p', 'i', 'c', 0x01})
	f.Add([]byte{0x00, 0x01})

	for range 10 {
		size := rand.IntN(32) + 1
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(rand.IntN(256))
		}
		f.Add(data)
	}

	f.Fuzz(func(t *testing.T, body []byte) {
		var p SubscribePacket
		if err := decodeBody(&p, headerFor(PacketSUBSCRIBE, 0), body, ModeStrict); err != nil {
			return
		}
		require.NotEmpty(t, p.Topics)
		require.NoError(t, p.Validate())
	})
}
