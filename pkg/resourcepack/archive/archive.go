// Package archive packs a materialized pack directory into one file.
//
// Member names are paths relative to the pack directory with forward
// slashes. Only regular files are stored; directories are implied.
package archive

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
)

// Options configures a Packager.
type Options struct {
	Logger hclog.Logger
	Format Format // empty means zip
}

// Packager writes pack archives.
type Packager struct {
	logger hclog.Logger
	format Format
}

// New creates a Packager.
func New(opts Options) *Packager {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	format := opts.Format
	if format == "" {
		format = FormatZip
	}
	return &Packager{logger: logger.Named("archive"), format: format}
}

// Format returns the archive format in use.
func (p *Packager) Format() Format {
	return p.format
}

// PathFor returns the archive path for packDir: a sibling named after it.
func (p *Packager) PathFor(packDir string) string {
	return filepath.Clean(packDir) + p.format.Extension()
}

type member struct {
	path string // on disk
	name string // inside the archive
	info fs.FileInfo
}

// Pack archives every regular file under packDir and returns the archive
// path. The archive is written to a temporary sibling and renamed into
// place, so a failed run never leaves a truncated archive behind.
func (p *Packager) Pack(packDir string) (archivePath string, err error) {
	packDir = filepath.Clean(packDir)
	archivePath = p.PathFor(packDir)

	members, err := collect(packDir)
	if err != nil {
		return "", fmt.Errorf("%w: walking %s: %w", rperrors.ErrArchive, packDir, err)
	}
	p.logger.Info("📦 Archiving pack", "dir", packDir, "format", p.format, "files", len(members))

	tmp, err := os.CreateTemp(filepath.Dir(archivePath), "."+filepath.Base(archivePath)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating archive: %w", rperrors.ErrArchive, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath) // Best-effort cleanup on error path
		}
	}()

	switch p.format {
	case FormatZip:
		err = p.writeZip(tmp, members)
	case FormatTarGz, FormatTarBz2:
		err = p.writeTar(tmp, members)
	default:
		err = fmt.Errorf("unsupported archive format: %s", p.format)
	}
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", rperrors.ErrArchive, err)
	}

	if err = os.Rename(tmpPath, archivePath); err != nil {
		return "", fmt.Errorf("%w: moving archive into place: %w", rperrors.ErrArchive, err)
	}

	p.logger.Info("✅ Archive written", "path", archivePath)
	return archivePath, nil
}

// collect walks root in lexical order and returns its regular files.
func collect(root string) ([]member, error) {
	var members []member
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info: %w", err)
		}
		members = append(members, member{path: path, name: filepath.ToSlash(rel), info: info})
		return nil
	})
	return members, err
}

func (p *Packager) writeZip(out io.Writer, members []member) error {
	zw := zip.NewWriter(out)
	for _, m := range members {
		header, err := zip.FileInfoHeader(m.info)
		if err != nil {
			return fmt.Errorf("failed to create file header: %w", err)
		}
		header.Name = m.name
		header.Method = zip.Deflate

		w, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create ZIP entry %s: %w", m.name, err)
		}
		if err := copyMember(w, m.path); err != nil {
			return err
		}
		p.logger.Trace("➕ Added member", "name", m.name, "size", m.info.Size())
	}
	return zw.Close()
}

func (p *Packager) writeTar(out io.Writer, members []member) error {
	c, err := p.format.compressor()
	if err != nil {
		return err
	}
	cw, err := c.Writer(out)
	if err != nil {
		return err
	}

	tw := tar.NewWriter(cw)
	for _, m := range members {
		header, err := tar.FileInfoHeader(m.info, "")
		if err != nil {
			return fmt.Errorf("failed to create tar header: %w", err)
		}
		header.Name = m.name

		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("writing tar header for %s: %w", m.name, err)
		}
		if err := copyMember(tw, m.path); err != nil {
			return err
		}
		p.logger.Trace("➕ Added member", "name", m.name, "size", m.info.Size())
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing tar writer: %w", err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("closing %s writer: %w", c.Name(), err)
	}
	return nil
}

func copyMember(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write file data for %s: %w", path, err)
	}
	return nil
}
