// Package assembler runs the pack pipeline: intake, allocation, descriptor,
// layout and archive, in that order, stopping at the first failure.
package assembler

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/rankpack/pkg/resourcepack"
	"github.com/provide-io/rankpack/pkg/resourcepack/archive"
	"github.com/provide-io/rankpack/pkg/resourcepack/codepoint"
	"github.com/provide-io/rankpack/pkg/resourcepack/descriptor"
	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
	"github.com/provide-io/rankpack/pkg/resourcepack/intake"
	"github.com/provide-io/rankpack/pkg/resourcepack/label"
	"github.com/provide-io/rankpack/pkg/resourcepack/layout"
	"github.com/provide-io/rankpack/pkg/utils/checksum"
	"github.com/provide-io/rankpack/pkg/utils/diskspace"
)

// Entry is one operator-supplied image.
type Entry struct {
	Label     string
	ImagePath string
}

// Request is everything one build needs from the operator.
type Request struct {
	SaveRoot string
	PackName string
	Entries  []Entry
}

// Result describes a finished pack.
type Result struct {
	Pack        *resourcepack.Pack
	PackDir     string
	ArchivePath string
	Checksum    string
}

// Options configures an Assembler.
type Options struct {
	Logger      hclog.Logger
	Settings    resourcepack.Settings
	Decoder     intake.Decoder // nil uses intake.StdDecoder
	StagingRoot string         // empty uses the per-user cache
	KeepStaging bool           // leave staged images after success
}

// Assembler owns one build at a time.
type Assembler struct {
	logger   hclog.Logger
	opts     Options
	settings resourcepack.Settings

	allocator *codepoint.Allocator
	builder   *descriptor.Builder
	layout    *layout.Builder
	packager  *archive.Packager
	checksum  checksum.Algorithm

	intake   *intake.Intake
	stage    Stage
	failedAt Stage
	err      error
}

// New validates the settings and wires the pipeline components.
func New(opts Options) (*Assembler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	settings := opts.Settings
	allocator, err := codepoint.New(settings)
	if err != nil {
		return nil, err
	}
	format, err := archive.ParseFormat(settings.ArchiveFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rperrors.ErrInvalidSettings, err)
	}
	algo, err := checksum.ParseAlgorithm(settings.Checksum)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rperrors.ErrInvalidSettings, err)
	}

	return &Assembler{
		logger:    logger,
		opts:      opts,
		settings:  settings,
		allocator: allocator,
		builder:   descriptor.NewBuilder(settings),
		layout: layout.New(layout.Options{
			Logger:           logger,
			FileMode:         fileMode(settings.FilePerms),
			DirMode:          fileMode(settings.DirPerms),
			TextureNamespace: settings.TextureNamespace,
			Checksum:         algo,
		}),
		packager: archive.New(archive.Options{Logger: logger, Format: format}),
		checksum: algo,
		stage:    StageEmpty,
	}, nil
}

// Stage returns the current state.
func (a *Assembler) Stage() Stage {
	return a.stage
}

// Failure returns the stage that failed and its error, if the last build failed.
func (a *Assembler) Failure() (Stage, error) {
	return a.failedAt, a.err
}

// StagingDir returns the staging directory of the last build.
func (a *Assembler) StagingDir() string {
	if a.intake == nil {
		return ""
	}
	return a.intake.Dir()
}

// Assemble runs every stage for req. On failure the returned error is a
// *errors.StageError and files written so far stay on disk, staged images
// included; call Cleanup to drop them.
func (a *Assembler) Assemble(req Request) (*Result, error) {
	a.stage, a.failedAt, a.err = StageEmpty, StageEmpty, nil
	a.intake = intake.New(intake.Options{
		Logger:      a.logger,
		Decoder:     a.opts.Decoder,
		MaxHeight:   a.settings.MaxImageHeight,
		StagingRoot: a.opts.StagingRoot,
	})

	a.enter(StageValidating)
	p, err := a.validate(req)
	if err != nil {
		return nil, a.fail(err)
	}

	a.enter(StageAllocating)
	p.Assignments, err = a.allocator.Allocate(p.Images())
	if err != nil {
		return nil, a.fail(err)
	}
	for _, as := range p.Assignments {
		a.logger.Debug("🔢 Assigned code point", "label", as.Label, "ordinal", as.Ordinal, "codepoint", "U+"+as.Hex())
	}

	a.enter(StageDescripting)
	p.Descriptor = a.builder.Build(p.Assignments)
	p.Manifest = descriptor.NewManifest(p.Name, a.settings.PackFormat)

	a.enter(StageMaterializing)
	if err := a.checkDiskSpace(p); err != nil {
		return nil, a.fail(err)
	}
	packDir, err := a.layout.Materialize(p, p.SaveRoot)
	if err != nil {
		return nil, a.fail(err)
	}

	a.enter(StageArchiving)
	archivePath, err := a.packager.Pack(packDir)
	if err != nil {
		return nil, a.fail(err)
	}
	sum, err := checksum.File(archivePath, a.checksum)
	if err != nil {
		return nil, a.fail(fmt.Errorf("%w: %w", rperrors.ErrArchive, err))
	}

	a.enter(StageDone)
	a.logger.Info("🎉 Pack assembled", "archive", archivePath, "checksum", sum, "ranks", p.Len())

	if !a.opts.KeepStaging {
		if err := a.Cleanup(); err != nil {
			a.logger.Warn("⚠️ Failed to remove staging directory", "dir", a.intake.Dir(), "error", err)
		}
	}

	return &Result{Pack: p, PackDir: packDir, ArchivePath: archivePath, Checksum: sum}, nil
}

// Cleanup removes the staged images of the last build.
func (a *Assembler) Cleanup() error {
	if a.intake == nil {
		return nil
	}
	return a.intake.Cleanup()
}

func (a *Assembler) validate(req Request) (*resourcepack.Pack, error) {
	name, err := label.ValidatePackName(req.PackName)
	if err != nil {
		return nil, err
	}
	if req.SaveRoot == "" {
		return nil, fmt.Errorf("%w: save location is required", rperrors.ErrValidation)
	}

	p := resourcepack.New(name, req.SaveRoot)
	for _, e := range req.Entries {
		l, err := label.Validate(e.Label)
		if err != nil {
			return nil, err
		}
		if p.Has(l) && a.settings.Duplicates == resourcepack.DuplicateReject {
			return nil, fmt.Errorf("%w: %w: %q", rperrors.ErrValidation, rperrors.ErrDuplicateLabel, l)
		}

		img, err := a.intake.Stage(e.ImagePath, l)
		if err != nil {
			return nil, err
		}
		prev, seen := p.Staged(l)
		p.Put(img)
		switch {
		case seen && prev.Label != l:
			a.logger.Warn("⚠️ Labels differ only by case, keeping the newer image", "label", l, "replaces", prev.Label, "path", e.ImagePath)
		case seen:
			a.logger.Warn("⚠️ Label staged twice, keeping the newer image", "label", l, "path", e.ImagePath)
		}
	}
	return p, nil
}

// descriptorReserve covers default.json, pack.mcmeta and the mappings file.
const descriptorReserve = 64 << 10

// checkDiskSpace refuses to lay out a pack the save root cannot hold. A
// volume that cannot be queried is not an error.
func (a *Assembler) checkDiskSpace(p *resourcepack.Pack) error {
	var needed int64 = descriptorReserve
	for _, img := range p.Images() {
		if info, err := os.Stat(img.SourcePath); err == nil {
			needed += info.Size() * diskspace.Multiplier
		}
	}

	free, err := diskspace.Check(p.SaveRoot, needed)
	switch {
	case errors.Is(err, diskspace.ErrInsufficient):
		return fmt.Errorf("%w: %w", rperrors.ErrLayout, err)
	case err != nil:
		a.logger.Warn("⚠️ Could not check disk space", "path", p.SaveRoot, "error", err)
		return nil
	}
	a.logger.Debug("💾 Disk space check", "needed", diskspace.Human(needed), "available", diskspace.Human(free))
	return nil
}

func (a *Assembler) enter(s Stage) {
	a.stage = s
	a.logger.Debug("🔄 Stage", "stage", s.String())
}

func (a *Assembler) fail(err error) error {
	a.failedAt, a.err = a.stage, err
	a.stage = StageFailed
	a.logger.Error("❌ Pack assembly failed", "stage", a.failedAt.String(), "error", err)
	if dir := a.StagingDir(); dir != "" {
		a.logger.Debug("📁 Staged images kept", "dir", dir)
	}
	return &rperrors.StageError{Stage: a.failedAt.String(), Err: err}
}

func fileMode(perm uint32) os.FileMode {
	return os.FileMode(perm).Perm()
}
