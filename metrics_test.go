package mqttcodec

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricType(t *testing.T) {
	assert.Equal(t, "counter", MetricTypeCounter.String())
	assert.Equal(t, "gauge", MetricTypeGauge.String())
	assert.Equal(t, "histogram", MetricTypeHistogram.String())
	assert.Equal(t, "unknown", MetricType(99).String())
}

func TestNoOpMetrics(t *testing.T) {
	metrics := &NoOpMetrics{}

	counter := metrics.Counter("c", nil)
	counter.Inc()
	counter.Add(5)
	assert.Equal(t, float64(0), counter.Value())

	gauge := metrics.Gauge("g", nil)
	gauge.Set(10)
	gauge.Inc()
	gauge.Dec()
	gauge.Add(1)
	gauge.Sub(1)
	assert.Equal(t, float64(0), gauge.Value())

	histogram := metrics.Histogram("h", nil)
	histogram.Observe(1)
	histogram.ObserveDuration(time.Second)
	assert.Equal(t, uint64(0), histogram.Count())
	assert.Equal(t, float64(0), histogram.Sum())
}

func TestMetricsInterface(_ *testing.T) {
	var _ Metrics = (*NoOpMetrics)(nil)
	var _ Metrics = (*MemoryMetrics)(nil)
}

func TestCodecMetricsRecording(t *testing.T) {
	t.Run("nil falls back to no-op", func(t *testing.T) {
		m := NewCodecMetrics(nil)
		require.NotNil(t, m)

		m.PacketDecoded(PacketPUBLISH, 10, time.Millisecond)
		m.PacketEncoded(PacketPUBLISH, 10)
		m.CodecError(opDecode, ErrMalformedPacket)
	})

	t.Run("decoded", func(t *testing.T) {
		mem := NewMemoryMetrics()
		m := NewCodecMetrics(mem)

		m.PacketDecoded(PacketPUBLISH, 16, 2*time.Millisecond)
		m.PacketDecoded(PacketPUBLISH, 4, time.Millisecond)
		m.PacketDecoded(PacketPINGREQ, 2, time.Millisecond)

		assert.Equal(t, float64(2), mem.CounterValue(MetricPacketsDecoded, MetricLabels{LabelPacketType: "PUBLISH"}))
		assert.Equal(t, float64(1), mem.CounterValue(MetricPacketsDecoded, MetricLabels{LabelPacketType: "PINGREQ"}))
		assert.Equal(t, float64(22), mem.CounterValue(MetricBytesDecoded, nil))

		latency := mem.GetHistogram(MetricDecodeLatency, nil)
		require.NotNil(t, latency)
		assert.Equal(t, uint64(3), latency.Count())
		assert.InDelta(t, 0.004, latency.Sum(), 1e-9)
	})

	t.Run("encoded", func(t *testing.T) {
		mem := NewMemoryMetrics()
		m := NewCodecMetrics(mem)

		m.PacketEncoded(PacketCONNECT, 32)

		assert.Equal(t, float64(1), mem.CounterValue(MetricPacketsEncoded, MetricLabels{LabelPacketType: "CONNECT"}))
		assert.Equal(t, float64(32), mem.CounterValue(MetricBytesEncoded, nil))

		sizes := mem.GetHistogram(MetricPacketSize, MetricLabels{LabelOp: opEncode})
		require.NotNil(t, sizes)
		assert.Equal(t, float64(32), sizes.Sum())
		assert.Nil(t, mem.GetHistogram(MetricPacketSize, MetricLabels{LabelOp: opDecode}))
	})

	t.Run("errors by kind", func(t *testing.T) {
		mem := NewMemoryMetrics()
		m := NewCodecMetrics(mem)

		m.CodecError(opDecode, ErrMalformedVarInt)
		m.CodecError(opDecode, fieldError("topic", ErrInvalidUTF8))
		m.CodecError(opDecode, ErrInvalidQoS)
		m.CodecError(opEncode, ErrStringTooLong)
		m.CodecError(opDecode, errors.New("connection reset"))

		tests := []struct {
			op   string
			kind string
		}{
			{op: opDecode, kind: KindMalformedVarInt},
			{op: opDecode, kind: KindInvalidUTF8},
			{op: opDecode, kind: KindMalformedPacket},
			{op: opEncode, kind: KindValueOutOfRange},
			{op: opDecode, kind: KindIO},
		}
		for _, tt := range tests {
			labels := MetricLabels{LabelOp: tt.op, LabelErrorKind: tt.kind}
			assert.Equal(t, float64(1), mem.CounterValue(MetricCodecErrors, labels), "%s/%s", tt.op, tt.kind)
		}
	})
}

func BenchmarkCodecMetricsNoOp(b *testing.B) {
	m := NewCodecMetrics(nil)

	b.ReportAllocs()
	for b.Loop() {
		m.PacketDecoded(PacketPUBLISH, 16, time.Microsecond)
	}
}
