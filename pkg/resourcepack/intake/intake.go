// Package intake checks operator images and stages them as {label}.png.
package intake

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/rankpack/internal/staging"
	"github.com/provide-io/rankpack/pkg/resourcepack"
	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
	"github.com/provide-io/rankpack/pkg/resourcepack/label"
)

// Options configures an Intake.
type Options struct {
	Logger      hclog.Logger
	Decoder     Decoder
	MaxHeight   int    // inclusive; zero means resourcepack.DefaultMaxImageHeight
	StagingRoot string // parent of the session directory; empty means staging.Root()
}

// Intake validates images and keeps the staged copies of one session.
type Intake struct {
	logger    hclog.Logger
	decoder   Decoder
	maxHeight int
	dir       string
	created   bool
}

// New creates an Intake with its own session directory. The directory is
// created on the first staged image.
func New(opts Options) *Intake {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	decoder := opts.Decoder
	if decoder == nil {
		decoder = StdDecoder{}
	}
	maxHeight := opts.MaxHeight
	if maxHeight <= 0 {
		maxHeight = resourcepack.DefaultMaxImageHeight
	}
	return &Intake{
		logger:    logger.Named("intake"),
		decoder:   decoder,
		maxHeight: maxHeight,
		dir:       staging.SessionPath(opts.StagingRoot),
	}
}

// Dir returns the session staging directory.
func (in *Intake) Dir() string {
	return in.dir
}

// Stage validates the image at sourcePath and copies it into the session
// directory as {label}.png. A second image under the same label replaces
// the staged file.
func (in *Intake) Stage(sourcePath, rawLabel string) (resourcepack.StagedImage, error) {
	name, err := label.Validate(rawLabel)
	if err != nil {
		return resourcepack.StagedImage{}, err
	}

	info, err := in.decoder.Probe(sourcePath)
	if err != nil {
		in.logger.Error("❌ Failed to read image", "label", name, "path", sourcePath, "error", err)
		return resourcepack.StagedImage{}, fmt.Errorf("%w: %s: %w", rperrors.ErrDecode, sourcePath, err)
	}
	if info.Height > in.maxHeight {
		in.logger.Error("❌ Image too tall", "label", name, "height", info.Height, "max", in.maxHeight)
		return resourcepack.StagedImage{}, fmt.Errorf("%w: %s is %dpx tall, limit is %dpx", rperrors.ErrTooTall, name, info.Height, in.maxHeight)
	}

	if !in.created {
		if err := staging.Ensure(in.dir, 0o700); err != nil {
			return resourcepack.StagedImage{}, fmt.Errorf("%w: %w", rperrors.ErrStaging, err)
		}
		in.created = true
		in.logger.Debug("📁 Staging directory ready", "dir", in.dir)
	}

	target := filepath.Join(in.dir, name+resourcepack.TextureExt)
	if err := in.write(sourcePath, info, target); err != nil {
		return resourcepack.StagedImage{}, err
	}

	in.logger.Debug("🖼️ Staged image", "label", name, "format", info.Format, "height", info.Height, "path", target)
	return resourcepack.StagedImage{
		Label:      name,
		SourcePath: target,
		Height:     info.Height,
	}, nil
}

// write decodes the whole source so corrupt files fail here rather than in
// the game. PNG bytes are kept as-is; other formats are re-encoded.
func (in *Intake) write(sourcePath string, info Info, target string) error {
	img, err := in.decoder.Decode(sourcePath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", rperrors.ErrDecode, sourcePath, err)
	}

	tmp, err := os.CreateTemp(in.dir, ".stage-*")
	if err != nil {
		return fmt.Errorf("%w: creating staging file: %w", rperrors.ErrStaging, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if info.Format == "png" {
		err = copyFile(sourcePath, tmp)
	} else {
		err = png.Encode(tmp, img)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: writing staged image %s: %w", rperrors.ErrStaging, target, err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("%w: moving staged image into place: %w", rperrors.ErrStaging, err)
	}
	return nil
}

// Cleanup removes the session directory and every staged file in it.
func (in *Intake) Cleanup() error {
	if !in.created {
		return nil
	}
	if err := staging.Remove(in.dir); err != nil {
		return err
	}
	in.created = false
	in.logger.Debug("🧹 Staging directory removed", "dir", in.dir)
	return nil
}

func copyFile(src string, dst io.Writer) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(dst, f)
	return err
}
