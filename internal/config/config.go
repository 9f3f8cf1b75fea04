// Package config loads rank pack build manifests.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/provide-io/rankpack/pkg/resourcepack"
	"github.com/provide-io/rankpack/pkg/utils/permissions"
)

// CurrentConfigVersion marks the supported manifest version.
const CurrentConfigVersion = 1

// Config is a build manifest.
type Config struct {
	ConfigVersion int           `mapstructure:"config_version" yaml:"config_version"`
	Name          string        `mapstructure:"name" yaml:"name"`
	SaveRoot      string        `mapstructure:"save_root" yaml:"save_root"`
	Duplicates    string        `mapstructure:"duplicates" yaml:"duplicates"`
	Entries       []EntryConfig `mapstructure:"entries" yaml:"entries"`
	Glyphs        GlyphsConfig  `mapstructure:"glyphs" yaml:"glyphs"`
	Intake        IntakeConfig  `mapstructure:"intake" yaml:"intake"`
	Pack          PackConfig    `mapstructure:"pack" yaml:"pack"`
	Archive       ArchiveConfig `mapstructure:"archive" yaml:"archive"`
	Output        OutputConfig  `mapstructure:"output" yaml:"output"`
}

// EntryConfig is one rank image.
type EntryConfig struct {
	Label string `mapstructure:"label" yaml:"label"`
	Image string `mapstructure:"image" yaml:"image"`
}

// GlyphsConfig controls code points and provider metrics.
type GlyphsConfig struct {
	// BaseCodePoint accepts "E800", "U+E800" or "0xE800"; bare digits are decimal.
	BaseCodePoint    string `mapstructure:"base_code_point" yaml:"base_code_point"`
	MaxEntries       int    `mapstructure:"max_entries" yaml:"max_entries"`
	Ascent           int    `mapstructure:"ascent" yaml:"ascent"`
	Height           int    `mapstructure:"height" yaml:"height"`
	TextureNamespace string `mapstructure:"texture_namespace" yaml:"texture_namespace"`
}

// IntakeConfig controls image acceptance and staging.
type IntakeConfig struct {
	MaxHeight  int    `mapstructure:"max_height" yaml:"max_height"`
	StagingDir string `mapstructure:"staging_dir" yaml:"staging_dir"`
}

// PackConfig controls pack.mcmeta.
type PackConfig struct {
	Format int `mapstructure:"format" yaml:"format"`
}

// ArchiveConfig selects the archive container and checksum.
type ArchiveConfig struct {
	Format   string `mapstructure:"format" yaml:"format"`
	Checksum string `mapstructure:"checksum" yaml:"checksum"` // sha256, sha512 or adler32
}

// OutputConfig sets modes for written files and directories.
type OutputConfig struct {
	FileMode string `mapstructure:"file_mode" yaml:"file_mode"`
	DirMode  string `mapstructure:"dir_mode" yaml:"dir_mode"`
}

// Default returns a manifest with every default filled in and no entries.
func Default() Config {
	s := resourcepack.DefaultSettings()
	return Config{
		ConfigVersion: CurrentConfigVersion,
		SaveRoot:      ".",
		Duplicates:    s.Duplicates,
		Glyphs: GlyphsConfig{
			BaseCodePoint:    fmt.Sprintf("%04X", s.BaseCodePoint),
			MaxEntries:       s.MaxEntries,
			Ascent:           s.Ascent,
			Height:           s.GlyphHeight,
			TextureNamespace: s.TextureNamespace,
		},
		Intake:  IntakeConfig{MaxHeight: s.MaxImageHeight},
		Pack:    PackConfig{Format: s.PackFormat},
		Archive: ArchiveConfig{Format: s.ArchiveFormat, Checksum: s.Checksum},
		Output: OutputConfig{
			FileMode: permissions.FormatOctal(permissions.DefaultFileMode),
			DirMode:  permissions.FormatOctal(permissions.DefaultDirMode),
		},
	}
}

// Settings converts the manifest into validated pipeline settings.
func (c Config) Settings() (resourcepack.Settings, error) {
	base, err := ParseCodePoint(c.Glyphs.BaseCodePoint)
	if err != nil {
		return resourcepack.Settings{}, err
	}
	fileMode, err := permissions.ParseOctalString(c.Output.FileMode, permissions.DefaultFileMode)
	if err != nil {
		return resourcepack.Settings{}, fmt.Errorf("output.file_mode: %w", err)
	}
	// The archive step reads every written file back.
	if !permissions.OwnerCanRead(fileMode) {
		return resourcepack.Settings{}, fmt.Errorf("output.file_mode %s leaves files unreadable", permissions.FormatOctal(fileMode))
	}
	dirMode, err := permissions.ParseOctalString(c.Output.DirMode, permissions.DefaultDirMode)
	if err != nil {
		return resourcepack.Settings{}, fmt.Errorf("output.dir_mode: %w", err)
	}
	if !permissions.IsTraversable(dirMode) {
		return resourcepack.Settings{}, fmt.Errorf("output.dir_mode %s leaves directories untraversable", permissions.FormatOctal(dirMode))
	}

	s := resourcepack.Settings{
		BaseCodePoint:    base,
		MaxEntries:       c.Glyphs.MaxEntries,
		Ascent:           c.Glyphs.Ascent,
		GlyphHeight:      c.Glyphs.Height,
		TextureNamespace: c.Glyphs.TextureNamespace,
		MaxImageHeight:   c.Intake.MaxHeight,
		PackFormat:       c.Pack.Format,
		ArchiveFormat:    c.Archive.Format,
		Checksum:         c.Archive.Checksum,
		FilePerms:        uint32(fileMode),
		DirPerms:         uint32(dirMode),
		Duplicates:       c.Duplicates,
	}
	if err := s.Validate(); err != nil {
		return resourcepack.Settings{}, err
	}
	return s, nil
}

// ParseCodePoint parses "E800", "U+E800", "0xE800" (hex) or "59392" (decimal).
func ParseCodePoint(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return resourcepack.DefaultBaseCodePoint, nil
	}

	upper := strings.ToUpper(s)
	base := 16
	switch {
	case strings.HasPrefix(upper, "U+"):
		upper = upper[2:]
	case strings.HasPrefix(upper, "0X"):
		upper = upper[2:]
	case strings.Trim(upper, "0123456789") == "":
		base = 10
	}

	v, err := strconv.ParseUint(upper, base, 32)
	if err != nil {
		return 0, fmt.Errorf("glyphs.base_code_point %q: %w", s, err)
	}
	return rune(v), nil
}
