package mqttcodec

// CodecOption configures a Codec.
type CodecOption func(*codecConfig)

type codecConfig struct {
	mode          Mode
	maxPacketSize uint32
	logger        Logger
	metrics       Metrics
}

func defaultCodecConfig() *codecConfig {
	return &codecConfig{
		mode:          ModeStrict,
		maxPacketSize: 0, // unlimited
		logger:        NewNoOpLogger(),
		metrics:       &NoOpMetrics{},
	}
}

// WithMode sets how reserved bits and fixed flag values are checked on decode.
func WithMode(mode Mode) CodecOption {
	return func(c *codecConfig) {
		c.mode = mode
	}
}

// WithMaxPacketSize sets the maximum packet size in bytes, fixed header
// included. 0 means unlimited.
func WithMaxPacketSize(size uint32) CodecOption {
	return func(c *codecConfig) {
		c.maxPacketSize = size
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger Logger) CodecOption {
	return func(c *codecConfig) {
		if logger == nil {
			logger = NewNoOpLogger()
		}
		c.logger = logger
	}
}

// WithMetrics sets the metrics collector. A nil collector disables metrics.
func WithMetrics(metrics Metrics) CodecOption {
	return func(c *codecConfig) {
		if metrics == nil {
			metrics = &NoOpMetrics{}
		}
		c.metrics = metrics
	}
}
