package mqttcodec

import (
	"bytes"
	"sync"
)

// Pools for reducing allocations in hot paths.
var (
	// cursorPool for packet body decoding
	cursorPool = sync.Pool{
		New: func() any {
			return &Cursor{}
		},
	}

	// bufferPool for packet body encoding
	bufferPool = sync.Pool{
		New: func() any {
			return &bytes.Buffer{}
		},
	}
)

// maxPooledBuffer is the largest buffer capacity returned to the pool (64KB).
const maxPooledBuffer = 65536

// getCursor returns a pooled cursor over data.
func getCursor(data []byte) *Cursor {
	c := cursorPool.Get().(*Cursor)
	c.reset(data)
	return c
}

// putCursor returns a cursor to the pool.
func putCursor(c *Cursor) {
	if c == nil {
		return
	}
	c.reset(nil)
	cursorPool.Put(c)
}

// getBuffer returns an empty pooled buffer.
func getBuffer() *bytes.Buffer {
	b := bufferPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

// putBuffer returns a buffer to the pool.
func putBuffer(b *bytes.Buffer) {
	if b == nil {
		return
	}
	if b.Cap() <= maxPooledBuffer {
		b.Reset()
		bufferPool.Put(b)
	}
}
