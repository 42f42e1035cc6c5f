package output

import (
	"bytes"
	"io"
)

// CRLFWriter rewrites bare "\n" as "\r\n". A terminal in raw mode no longer
// returns the carriage on line feed, so console text written while keys are
// being polled goes through one of these.
type CRLFWriter struct {
	w    io.Writer
	last byte
}

// NewCRLFWriter wraps w.
func NewCRLFWriter(w io.Writer) *CRLFWriter {
	return &CRLFWriter{w: w}
}

// Write implements io.Writer. The returned count refers to p, not to the
// expanded bytes written to the underlying writer.
func (c *CRLFWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var buf bytes.Buffer
	buf.Grow(len(p) + bytes.Count(p, []byte{'\n'}))
	prev := c.last
	for _, b := range p {
		if b == '\n' && prev != '\r' {
			buf.WriteByte('\r')
		}
		buf.WriteByte(b)
		prev = b
	}
	if _, err := c.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	c.last = p[len(p)-1]
	return len(p), nil
}
