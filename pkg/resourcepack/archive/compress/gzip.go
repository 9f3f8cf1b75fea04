package compress

import (
	"compress/gzip"
	"fmt"
	"io"
)

func init() {
	// Register GZIP compressor on package init
	Register(NewGzipCompressor())
}

// GzipCompressor implements GZIP compression
type GzipCompressor struct {
	BaseCompressor
}

// NewGzipCompressor creates a new GZIP compressor
func NewGzipCompressor() *GzipCompressor {
	return &GzipCompressor{
		BaseCompressor: BaseCompressor{
			OpID:   OP_GZIP,
			OpName: "gzip",
		},
	}
}

// Writer compresses everything written to it into w
func (c *GzipCompressor) Writer(w io.Writer) (io.WriteCloser, error) {
	gw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("creating gzip writer: %w", err)
	}
	return gw, nil
}

// Reader decompresses a GZIP stream
func (c *GzipCompressor) Reader(r io.Reader) (io.ReadCloser, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	return gr, nil
}
