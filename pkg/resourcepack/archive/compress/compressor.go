// Package compress provides the stream compressors used for tar archives.
package compress

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Compressor identifiers. The values follow the builder's operation codes.
const (
	OP_GZIP  = 0x10 // GZIP compression
	OP_BZIP2 = 0x13 // BZIP2 compression
)

// Compressor wraps streams in a compression format.
type Compressor interface {
	// ID returns the compressor identifier (e.g., OP_GZIP)
	ID() uint8

	// Name returns the lower-case format name used in archive format strings
	Name() string

	// Writer returns a compressing writer; closing it flushes the trailer
	// but does not close w.
	Writer(w io.Writer) (io.WriteCloser, error)

	// Reader returns a decompressing reader over r.
	Reader(r io.Reader) (io.ReadCloser, error)
}

// BaseCompressor provides the identity half of a Compressor.
type BaseCompressor struct {
	OpID   uint8
	OpName string
}

func (c *BaseCompressor) ID() uint8 {
	return c.OpID
}

func (c *BaseCompressor) Name() string {
	return c.OpName
}

// Registry maps compressor IDs to implementations
var Registry = make(map[uint8]Compressor)

// Register registers a compressor implementation
func Register(c Compressor) {
	Registry[c.ID()] = c
}

// Get retrieves a compressor by ID
func Get(id uint8) (Compressor, error) {
	c, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown compressor: 0x%02x", id)
	}
	return c, nil
}

// ByName retrieves a compressor by name or common alias (gz, bz2).
func ByName(name string) (Compressor, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	for _, c := range Registry {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown compressor: %q (known: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the registered compressor names, sorted.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for _, c := range Registry {
		names = append(names, c.Name())
	}
	sort.Strings(names)
	return names
}

var aliases = map[string]string{
	"gz":  "gzip",
	"bz2": "bzip2",
}
