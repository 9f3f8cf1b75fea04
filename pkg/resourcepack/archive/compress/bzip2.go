package compress

import (
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

func init() {
	Register(NewBzip2Compressor())
}

// Bzip2Compressor implements BZIP2 compression
type Bzip2Compressor struct {
	BaseCompressor
}

// NewBzip2Compressor creates a new BZIP2 compressor
func NewBzip2Compressor() *Bzip2Compressor {
	return &Bzip2Compressor{
		BaseCompressor: BaseCompressor{
			OpID:   OP_BZIP2,
			OpName: "bzip2",
		},
	}
}

// Writer compresses everything written to it into w
func (c *Bzip2Compressor) Writer(w io.Writer) (io.WriteCloser, error) {
	bw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: 9})
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 writer: %w", err)
	}
	return bw, nil
}

// Reader decompresses a BZIP2 stream
func (c *Bzip2Compressor) Reader(r io.Reader) (io.ReadCloser, error) {
	br, err := bzip2.NewReader(r, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 reader: %w", err)
	}
	return br, nil
}
