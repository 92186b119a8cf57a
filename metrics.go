package mqttcodec

import (
	"time"
)

// MetricType represents the type of metric.
type MetricType int

const (
	// MetricTypeCounter is a monotonically increasing counter.
	MetricTypeCounter MetricType = 0
	// MetricTypeGauge is a value that can go up and down.
	MetricTypeGauge MetricType = 1
	// MetricTypeHistogram tracks distribution of values.
	MetricTypeHistogram MetricType = 2
)

// String returns the string representation of the metric type.
func (t MetricType) String() string {
	switch t {
	case MetricTypeCounter:
		return "counter"
	case MetricTypeGauge:
		return "gauge"
	case MetricTypeHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// MetricLabels represents key-value pairs for metric labels.
type MetricLabels map[string]string

// Metrics defines the interface for collecting metrics.
type Metrics interface {
	// Counter returns a counter metric.
	Counter(name string, labels MetricLabels) Counter

	// Gauge returns a gauge metric.
	Gauge(name string, labels MetricLabels) Gauge

	// Histogram returns a histogram metric.
	Histogram(name string, labels MetricLabels) Histogram
}

// Counter is a monotonically increasing counter.
type Counter interface {
	Inc()
	Add(delta float64)
	Value() float64
}

// Gauge is a metric that can go up and down.
type Gauge interface {
	Set(value float64)
	Inc()
	Dec()
	Add(delta float64)
	Sub(delta float64)
	Value() float64
}

// Histogram tracks the distribution of values.
type Histogram interface {
	Observe(value float64)
	ObserveDuration(d time.Duration)
	Count() uint64
	Sum() float64
}

// NoOpMetrics is a no-op implementation of Metrics.
type NoOpMetrics struct{}

// Counter returns a no-op counter.
func (n *NoOpMetrics) Counter(_ string, _ MetricLabels) Counter {
	return noOpCounter{}
}

// Gauge returns a no-op gauge.
func (n *NoOpMetrics) Gauge(_ string, _ MetricLabels) Gauge {
	return noOpGauge{}
}

// Histogram returns a no-op histogram.
func (n *NoOpMetrics) Histogram(_ string, _ MetricLabels) Histogram {
	return noOpHistogram{}
}

type noOpCounter struct{}

func (noOpCounter) Inc()           {}
func (noOpCounter) Add(_ float64)  {}
func (noOpCounter) Value() float64 { return 0 }

type noOpGauge struct{}

func (noOpGauge) Set(_ float64)  {}
func (noOpGauge) Inc()           {}
func (noOpGauge) Dec()           {}
func (noOpGauge) Add(_ float64)  {}
func (noOpGauge) Sub(_ float64)  {}
func (noOpGauge) Value() float64 { return 0 }

type noOpHistogram struct{}

func (noOpHistogram) Observe(_ float64)               {}
func (noOpHistogram) ObserveDuration(_ time.Duration) {}
func (noOpHistogram) Count() uint64                   { return 0 }
func (noOpHistogram) Sum() float64                    { return 0 }

// Standard metric names for the codec.
const (
	// MetricPacketsDecoded is the total number of packets decoded.
	MetricPacketsDecoded = "mqtt_packets_decoded_total"

	// MetricPacketsEncoded is the total number of packets encoded.
	MetricPacketsEncoded = "mqtt_packets_encoded_total"

	// MetricBytesDecoded is the total bytes of successfully decoded packets.
	MetricBytesDecoded = "mqtt_bytes_decoded_total"

	// MetricBytesEncoded is the total bytes of encoded packets.
	MetricBytesEncoded = "mqtt_bytes_encoded_total"

	// MetricCodecErrors is the total number of failed decode or encode calls.
	MetricCodecErrors = "mqtt_codec_errors_total"

	// MetricPacketSize is the size distribution of packets in bytes.
	MetricPacketSize = "mqtt_packet_size_bytes"

	// MetricDecodeLatency is the time spent decoding a packet.
	MetricDecodeLatency = "mqtt_decode_latency_seconds"
)

// Standard metric labels.
const (
	// LabelPacketType is the packet type label.
	LabelPacketType = "packet_type"

	// LabelOp is the codec operation label ("decode" or "encode").
	LabelOp = "op"

	// LabelErrorKind is the error kind label, see ErrorKind.
	LabelErrorKind = "error_kind"
)

// Codec operations used in labels and log fields.
const (
	opDecode = "decode"
	opEncode = "encode"
)

// CodecMetrics provides convenience methods for the codec's metrics.
type CodecMetrics struct {
	metrics Metrics
}

// NewCodecMetrics creates a new CodecMetrics instance.
func NewCodecMetrics(m Metrics) *CodecMetrics {
	if m == nil {
		m = &NoOpMetrics{}
	}
	return &CodecMetrics{metrics: m}
}

// PacketDecoded records a decoded packet of n bytes.
func (c *CodecMetrics) PacketDecoded(packetType PacketType, n int, d time.Duration) {
	labels := MetricLabels{LabelPacketType: packetType.String()}
	c.metrics.Counter(MetricPacketsDecoded, labels).Inc()
	c.metrics.Counter(MetricBytesDecoded, nil).Add(float64(n))
	c.metrics.Histogram(MetricPacketSize, MetricLabels{LabelOp: opDecode}).Observe(float64(n))
	c.metrics.Histogram(MetricDecodeLatency, nil).ObserveDuration(d)
}

// PacketEncoded records an encoded packet of n bytes.
func (c *CodecMetrics) PacketEncoded(packetType PacketType, n int) {
	labels := MetricLabels{LabelPacketType: packetType.String()}
	c.metrics.Counter(MetricPacketsEncoded, labels).Inc()
	c.metrics.Counter(MetricBytesEncoded, nil).Add(float64(n))
	c.metrics.Histogram(MetricPacketSize, MetricLabels{LabelOp: opEncode}).Observe(float64(n))
}

// CodecError records a failed decode or encode.
func (c *CodecMetrics) CodecError(op string, err error) {
	labels := MetricLabels{LabelOp: op, LabelErrorKind: ErrorKind(err)}
	c.metrics.Counter(MetricCodecErrors, labels).Inc()
}
