package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter holds writes in memory until Release, then forwards
// everything, buffered and later, to the released destination. It keeps
// log output away from a terminal owned by a full-screen program. Safe for
// concurrent use.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	out io.Writer
}

// Write buffers p, or forwards it once the writer has been released.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.out != nil {
		return d.out.Write(p)
	}
	return d.buf.Write(p)
}

// Release writes the buffered data to w and sends all further writes
// straight to it. Releasing twice switches the destination.
func (d *DeferredWriter) Release(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.out = w
	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.buf.WriteTo(w)
	return err
}

// Buffered returns the number of bytes held.
func (d *DeferredWriter) Buffered() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}
