// Package layout writes a pack's directory tree to disk.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/rankpack/pkg/resourcepack"
	"github.com/provide-io/rankpack/pkg/resourcepack/descriptor"
	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
	"github.com/provide-io/rankpack/pkg/utils/checksum"
)

// Options configures a Builder.
type Options struct {
	Logger           hclog.Logger
	FileMode         os.FileMode
	DirMode          os.FileMode
	TextureNamespace string             // empty means resourcepack.DefaultTextureNamespace
	Checksum         checksum.Algorithm // texture copy verification
}

// Builder materializes packs.
type Builder struct {
	logger    hclog.Logger
	fileMode  os.FileMode
	dirMode   os.FileMode
	namespace string
	algo      checksum.Algorithm
}

// New creates a Builder.
func New(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	fileMode := opts.FileMode
	if fileMode == 0 {
		fileMode = resourcepack.DefaultFilePerms
	}
	dirMode := opts.DirMode
	if dirMode == 0 {
		dirMode = resourcepack.DefaultDirPerms
	}
	namespace := opts.TextureNamespace
	if namespace == "" {
		namespace = resourcepack.DefaultTextureNamespace
	}
	return &Builder{
		logger:    logger.Named("layout"),
		fileMode:  fileMode,
		dirMode:   dirMode,
		namespace: namespace,
		algo:      opts.Checksum,
	}
}

// Materialize writes p under saveRoot and returns the pack directory.
//
// Staged images are copied and verified, never moved, so a failure at any
// later point leaves the staging area intact for a retry. Nothing written
// before a failure is rolled back.
func (b *Builder) Materialize(p *resourcepack.Pack, saveRoot string) (string, error) {
	images := p.Images()
	if len(images) != len(p.Assignments) || len(images) != len(p.Descriptor.Providers) {
		return "", fmt.Errorf("%w: %d images, %d assignments, %d providers",
			rperrors.ErrLayout, len(images), len(p.Assignments), len(p.Descriptor.Providers))
	}

	textures, err := resourcepack.ParseTextureNamespace(b.namespace)
	if err != nil {
		return "", fmt.Errorf("%w: %w", rperrors.ErrLayout, err)
	}
	paths := NewPaths(saveRoot, p.Name, textures)
	b.logger.Info("📁 Materializing pack", "dir", paths.Root(), "images", len(images))

	for _, dir := range paths.Directories() {
		if err := os.MkdirAll(dir, b.dirMode); err != nil {
			return "", fmt.Errorf("%w: creating %s: %w", rperrors.ErrLayout, dir, err)
		}
	}

	descriptorData, err := descriptor.Marshal(p.Descriptor)
	if err != nil {
		return "", fmt.Errorf("%w: %w", rperrors.ErrLayout, err)
	}
	if err := b.writeFile(paths.Descriptor(), descriptorData); err != nil {
		return "", err
	}

	for i, img := range images {
		if img.Label != p.Assignments[i].Label {
			return "", fmt.Errorf("%w: image %d is %q but assignment is %q",
				rperrors.ErrLayout, i, img.Label, p.Assignments[i].Label)
		}
		if err := b.copyVerified(img.SourcePath, paths.Texture(img.Label)); err != nil {
			return "", err
		}
	}

	if err := b.writeFile(paths.Mappings(), descriptor.RenderMappings(p.Assignments)); err != nil {
		return "", err
	}

	manifestData, err := descriptor.Marshal(p.Manifest)
	if err != nil {
		return "", fmt.Errorf("%w: %w", rperrors.ErrLayout, err)
	}
	if err := b.writeFile(paths.Manifest(), manifestData); err != nil {
		return "", err
	}

	b.logger.Info("✅ Pack materialized", "dir", paths.Root())
	return paths.Root(), nil
}

func (b *Builder) writeFile(path string, data []byte) error {
	b.logger.Trace("✍️ Writing file", "path", path, "size", len(data))
	if err := os.WriteFile(path, data, b.fileMode); err != nil {
		return fmt.Errorf("%w: writing %s: %w", rperrors.ErrLayout, filepath.Base(path), err)
	}
	return nil
}

// copyVerified copies src to dst and checks the written bytes against the
// staged image's checksum.
func (b *Builder) copyVerified(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("%w: reading staged image %s: %w", rperrors.ErrLayout, src, err)
	}
	if err := b.writeFile(dst, data); err != nil {
		return err
	}

	want := checksum.Bytes(data, b.algo)
	written, err := os.ReadFile(dst)
	if err != nil {
		return fmt.Errorf("%w: verifying %s: %w", rperrors.ErrLayout, dst, err)
	}
	ok, err := checksum.Verify(written, want)
	if err != nil {
		return fmt.Errorf("%w: verifying %s: %w", rperrors.ErrLayout, dst, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s does not match staged image %s", rperrors.ErrLayout, dst, want)
	}
	b.logger.Debug("🖼️ Texture placed", "path", dst, "checksum", want)
	return nil
}
