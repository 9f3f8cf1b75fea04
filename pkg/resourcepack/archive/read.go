package archive

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// maxMemberSize bounds members read back into memory.
const maxMemberSize = 1 << 30

// ReadMembers returns every file stored in the archive at path, keyed by
// member name. The format is inferred from the extension.
func ReadMembers(path string) (map[string][]byte, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == FormatZip {
		return readZip(path)
	}
	return readTar(path, format)
}

func readZip(path string) (map[string][]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ZIP file: %w", err)
	}
	defer zr.Close()

	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.UncompressedSize64 > maxMemberSize {
			return nil, fmt.Errorf("member %s too large: %d bytes", f.Name, f.UncompressedSize64)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening member %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading member %s: %w", f.Name, err)
		}
		out[f.Name] = data
	}
	return out, nil
}

func readTar(path string, format Format) (map[string][]byte, error) {
	c, err := format.compressor()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr, err := c.Reader(f)
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	out := make(map[string][]byte)
	tr := tar.NewReader(cr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar header: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if header.Size < 0 || header.Size > maxMemberSize {
			return nil, fmt.Errorf("invalid file size: %d", header.Size)
		}
		data := make([]byte, header.Size)
		if _, err := io.ReadFull(tr, data); err != nil {
			return nil, fmt.Errorf("reading tar data: %w", err)
		}
		out[header.Name] = data
	}
	return out, nil
}
