package mqttcodec

import (
	"bytes"
	"strconv"
)

// Topic is a topic filter with its requested QoS, the repeated element of
// SUBSCRIBE and UNSUBSCRIBE payloads. The filter is stored verbatim; no
// wildcard validation or matching is done here.
type Topic struct {
	Name string
	QoS  QoS
}

// NewTopic returns a Topic.
func NewTopic(name string, qos QoS) Topic {
	return Topic{Name: name, QoS: qos}
}

// String returns the topic as "name@qos".
func (t Topic) String() string {
	return t.Name + "@" + strconv.Itoa(int(t.QoS))
}

// subscribe options byte: bits 1-0 requested QoS, bits 7-2 reserved.
const subscribeOptionsReserved = 0xFC

func encodeTopic(buf *bytes.Buffer, t Topic, withQoS bool) error {
	if _, err := encodeString(buf, "topic_filter", t.Name); err != nil {
		return err
	}
	if withQoS {
		return buf.WriteByte(byte(t.QoS))
	}
	return nil
}

func decodeTopic(c *Cursor, withQoS bool, mode Mode) (Topic, error) {
	name, err := decodeString(c, "topic_filter")
	if err != nil {
		return Topic{}, err
	}

	if mode == ModeStrict && name == "" {
		return Topic{}, fieldError("topic_filter", ErrTopicNameEmpty)
	}

	t := Topic{Name: name}
	if !withQoS {
		return t, nil
	}

	options, err := c.ReadByte()
	if err != nil {
		return Topic{}, fieldError("requested_qos", err)
	}
	if mode == ModeStrict && options&subscribeOptionsReserved != 0 {
		return Topic{}, fieldError("requested_qos", ErrReservedBitsSet)
	}

	t.QoS = QoS(options &^ subscribeOptionsReserved)
	if !t.QoS.Valid() {
		return Topic{}, fieldError("requested_qos", ErrInvalidQoS)
	}

	return t, nil
}
