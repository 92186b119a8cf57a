package mqttcodec_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vitalvas/mqttcodec"
)

func ExampleDecode() {
	data := []byte{0x33, 0x0e, 0x00, 0x04, 'i', 'n', 'f', 'o', 0x00, 0x02, 'C', 'e', 'd', 'a', 'l', 'o'}

	pkt, err := mqttcodec.Decode(data)
	if err != nil {
		fmt.Println(err)
		return
	}

	publish := pkt.(*mqttcodec.PublishPacket)
	fmt.Println(publish.Type(), publish.Topic, publish.Header.QoS, publish.PacketID, string(publish.Payload))
	// Output: PUBLISH info AtLeastOnce 2 Cedalo
}

func ExampleEncode() {
	data, err := mqttcodec.Encode(&mqttcodec.SubscribePacket{
		PacketID: 1,
		Topics:   []mqttcodec.Topic{mqttcodec.NewTopic("mytopic", mqttcodec.QoSAtLeastOnce)},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("% x\n", data)
	// Output: 82 0c 00 01 00 07 6d 79 74 6f 70 69 63 01
}

func ExampleReadPacket() {
	var stream bytes.Buffer
	mqttcodec.WritePacket(&stream, &mqttcodec.PingreqPacket{}, 0)
	mqttcodec.WritePacket(&stream, &mqttcodec.PubackPacket{PacketID: 7}, 0)

	for {
		pkt, n, err := mqttcodec.ReadPacket(&stream, 0)
		if err != nil {
			break
		}
		fmt.Println(pkt.Type(), n)
	}
	// Output:
	// PINGREQ 2
	// PUBACK 4
}

func ExampleCodec_Decode_lenient() {
	// PINGREQ with a non-zero flag nibble.
	data := []byte{0xC1, 0x00}

	_, err := mqttcodec.Decode(data)
	fmt.Println(errors.Is(err, mqttcodec.ErrMalformedPacket))

	codec := mqttcodec.NewCodec(mqttcodec.WithMode(mqttcodec.ModeLenient))
	pkt, err := codec.Decode(data)
	fmt.Println(pkt.Type(), err)
	// Output:
	// true
	// PINGREQ <nil>
}

func ExampleErrorKind() {
	_, err := mqttcodec.Decode([]byte{0xF0, 0x00})
	fmt.Println(mqttcodec.ErrorKind(err))
	// Output: unknown_packet_type
}
