// Package mqttcodec decodes and encodes MQTT 3.1.1 control packets.
//
// This package implements the wire format of the MQTT Version 3.1.1 OASIS Standard:
// https://docs.oasis-open.org/mqtt/mqtt/v3.1.1/mqtt-v3.1.1.html
//
// It covers framing only. Connection handling, sessions, QoS retry and topic
// matching are left to the caller.
//
// # Packet Types
//
// The package provides structs for all 14 MQTT 3.1.1 control packets:
//
//   - ConnectPacket, ConnackPacket: Connection establishment
//   - PublishPacket, PubackPacket, PubrecPacket, PubrelPacket, PubcompPacket: Message delivery
//   - SubscribePacket, SubackPacket: Topic subscription
//   - UnsubscribePacket, UnsubackPacket: Topic unsubscription
//   - PingreqPacket, PingrespPacket: Keep-alive
//   - DisconnectPacket: Connection termination
//
// The Packet interface is sealed: only the types above implement it, so a
// type switch over a decoded Packet is exhaustive.
//
// # Decoding
//
// Decode parses exactly one packet from a byte slice. DecodeCursor parses one
// packet and leaves the cursor at the next one, which suits buffers holding
// several packets:
//
//	cur := mqttcodec.NewCursor(data)
//	for cur.Len() > 0 {
//	    pkt, err := mqttcodec.DecodeCursor(cur)
//	    if err != nil {
//	        return err
//	    }
//	    switch p := pkt.(type) {
//	    case *mqttcodec.PublishPacket:
//	        handle(p.Topic, p.Payload)
//	    }
//	}
//
// Use ReadPacket and WritePacket to read/write packets from/to connections:
//
//	// Read a packet
//	pkt, n, err := mqttcodec.ReadPacket(conn, maxPacketSize)
//
//	// Write a packet
//	n, err := mqttcodec.WritePacket(conn, packet, maxPacketSize)
//
// # Strict and Lenient Modes
//
// A Codec decodes in ModeStrict by default: reserved bits, fixed header flags,
// zero packet identifiers and empty topic lists are rejected. ModeLenient
// ignores them and accepts what a tolerant peer would:
//
//	codec := mqttcodec.NewCodec(
//	    mqttcodec.WithMode(mqttcodec.ModeLenient),
//	    mqttcodec.WithMaxPacketSize(256*1024),
//	)
//	pkt, err := codec.Decode(data)
//
// # Errors
//
// Errors match one of ErrMalformedVarInt, ErrUnknownPacketType,
// ErrInvalidUTF8, ErrMalformedPacket or ErrValueOutOfRange with errors.Is.
// Field level failures are wrapped in a *FieldError naming the field.
// After any decode error the stream position is unknown and the connection
// should be closed.
//
// # Metrics
//
// Use the built-in metrics collectors for codec metrics:
//
//	metrics := mqttcodec.NewMemoryMetrics()
//	codec := mqttcodec.NewCodec(mqttcodec.WithMetrics(metrics))
//
// # Logging
//
// Implement the Logger interface for structured logging. The codec reports
// decode and encode failures at debug level:
//
//	logger := mqttcodec.NewStdLogger(os.Stderr, mqttcodec.LogLevelDebug)
//	codec := mqttcodec.NewCodec(mqttcodec.WithLogger(logger))
package mqttcodec
