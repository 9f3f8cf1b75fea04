package archive

import (
	"fmt"
	"strings"

	"github.com/provide-io/rankpack/pkg/resourcepack/archive/compress"
)

// Format selects the archive container.
type Format string

const (
	FormatZip    Format = "zip"
	FormatTarGz  Format = "tar.gz"
	FormatTarBz2 Format = "tar.bz2"
)

// Short names that are not tar.<compressor>
var namedFormats = map[string]Format{
	"zip":  FormatZip,
	"tgz":  FormatTarGz,
	"tbz2": FormatTarBz2,
}

// Compressed tar formats keyed by compressor ID
var tarFormats = map[uint8]Format{
	compress.OP_GZIP:  FormatTarGz,
	compress.OP_BZIP2: FormatTarBz2,
}

// ParseFormat parses a format name or alias. An empty string means zip.
// "tar.<compressor>" accepts any registered compressor name or alias, so
// "tar.gz", "tar.gzip", "tar.bz2" and "tar.bzip2" are all valid.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatZip, nil
	}
	if f, ok := namedFormats[s]; ok {
		return f, nil
	}
	name, ok := strings.CutPrefix(s, "tar.")
	if !ok {
		return "", fmt.Errorf("unknown archive format: %s", s)
	}
	c, err := compress.ByName(name)
	if err != nil {
		return "", fmt.Errorf("unknown archive format %s: %w", s, err)
	}
	f, ok := tarFormats[c.ID()]
	if !ok {
		return "", fmt.Errorf("no tar format for compressor %s", c.Name())
	}
	return f, nil
}

// Extension returns the file suffix for the format, dot included.
func (f Format) Extension() string {
	return "." + string(f)
}

// compressor returns the stream compressor of a tar format.
func (f Format) compressor() (compress.Compressor, error) {
	switch f {
	case FormatTarGz:
		return compress.Get(compress.OP_GZIP)
	case FormatTarBz2:
		return compress.Get(compress.OP_BZIP2)
	default:
		return nil, fmt.Errorf("format %s is not a compressed tar", f)
	}
}

// FormatOf infers the format from an archive path.
func FormatOf(path string) (Format, error) {
	lower := strings.ToLower(path)
	for _, f := range []Format{FormatTarBz2, FormatTarGz, FormatZip} {
		if strings.HasSuffix(lower, f.Extension()) {
			return f, nil
		}
	}
	return "", fmt.Errorf("cannot infer archive format of %s", path)
}
