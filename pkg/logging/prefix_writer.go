package logging

import (
	"bytes"
	"io"
	"sync"
)

// PrefixWriter writes prefix before every complete line it receives. A
// trailing partial line is held back until its newline arrives or Flush
// is called.
type PrefixWriter struct {
	mu      sync.Mutex
	prefix  []byte
	writer  io.Writer
	pending []byte
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{prefix: []byte(prefix), writer: w}
}

// Write implements io.Writer.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	data := append(pw.pending, p...)
	pw.pending = nil

	var out bytes.Buffer
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		out.Write(pw.prefix)
		out.Write(data[:i+1])
		data = data[i+1:]
	}
	if len(data) > 0 {
		pw.pending = append([]byte(nil), data...)
	}

	if out.Len() > 0 {
		if _, err := pw.writer.Write(out.Bytes()); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush writes any held-back partial line.
func (pw *PrefixWriter) Flush() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if len(pw.pending) == 0 {
		return nil
	}
	line := append(append([]byte(nil), pw.prefix...), pw.pending...)
	pw.pending = nil
	_, err := pw.writer.Write(line)
	return err
}
