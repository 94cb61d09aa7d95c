package bufsync

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// A buffer that's safe to write from a subprocess goroutine
// while a test reads it.
type ThreadSafeBuffer struct {
	buf *bytes.Buffer
	mu  sync.Mutex
}

func NewThreadSafeBuffer() *ThreadSafeBuffer {
	return &ThreadSafeBuffer{
		buf: bytes.NewBuffer(nil),
	}
}

func (b *ThreadSafeBuffer) Write(bs []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(bs)
}

func (b *ThreadSafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Lines returns the non-empty lines written so far.
func (b *ThreadSafeBuffer) Lines() []string {
	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

var _ io.Writer = &ThreadSafeBuffer{}
