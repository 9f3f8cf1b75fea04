package resourcepack

import (
	"fmt"
	"unicode/utf8"

	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
	"github.com/provide-io/rankpack/pkg/utils/checksum"
)

// =================================
// Glyph defaults
// =================================
const (
	DefaultBaseCodePoint    = 0xE800 // Start of the pack's private-use slots
	DefaultMaxEntries       = 100    // Two-digit ordinal space
	DefaultAscent           = 8
	DefaultGlyphHeight      = 8
	DefaultTextureNamespace = "minecraft:textures/ranks"
)

// =================================
// Intake defaults
// =================================
const (
	DefaultMaxImageHeight = 200 // Inclusive pixel ceiling
)

// =================================
// Output defaults
// =================================
const (
	DefaultPackFormat    = 32
	DefaultArchiveFormat = "zip"
	DefaultChecksum      = "sha256"
	DefaultFilePerms     = 0o644
	DefaultDirPerms      = 0o755
)

// =================================
// Layout names
// =================================
const (
	AssetsDir       = "assets"
	NamespaceDir    = "minecraft"
	TexturesDir     = "textures"
	FontDir         = "font"
	DescriptorFile  = "default.json"
	ManifestFile    = "pack.mcmeta"
	MappingsFile    = "unicode_mappings.txt"
	TextureExt      = ".png"
	MappingsHeader  = "Here are the unicode mappings!"
	ProviderBitmap  = "bitmap"
	DuplicateRenew  = "overwrite"
	DuplicateReject = "error"
)

// Settings collects the tunables of one build. The zero value is not usable;
// start from DefaultSettings.
type Settings struct {
	BaseCodePoint    rune
	MaxEntries       int
	Ascent           int
	GlyphHeight      int
	TextureNamespace string
	MaxImageHeight   int
	PackFormat       int
	ArchiveFormat    string
	Checksum         string // archive and texture checksum algorithm
	FilePerms        uint32
	DirPerms         uint32
	Duplicates       string
}

// DefaultSettings returns the settings classic rank packs were built with.
func DefaultSettings() Settings {
	return Settings{
		BaseCodePoint:    DefaultBaseCodePoint,
		MaxEntries:       DefaultMaxEntries,
		Ascent:           DefaultAscent,
		GlyphHeight:      DefaultGlyphHeight,
		TextureNamespace: DefaultTextureNamespace,
		MaxImageHeight:   DefaultMaxImageHeight,
		PackFormat:       DefaultPackFormat,
		ArchiveFormat:    DefaultArchiveFormat,
		Checksum:         DefaultChecksum,
		FilePerms:        DefaultFilePerms,
		DirPerms:         DefaultDirPerms,
		Duplicates:       DuplicateRenew,
	}
}

// Validate checks that the settings describe a usable code-point window and
// sane output parameters.
func (s Settings) Validate() error {
	if s.MaxEntries <= 0 {
		return fmt.Errorf("%w: max entries must be positive, got %d", rperrors.ErrInvalidSettings, s.MaxEntries)
	}
	if s.BaseCodePoint < 0 {
		return fmt.Errorf("%w: negative base code point", rperrors.ErrInvalidSettings)
	}
	last := s.BaseCodePoint + rune(s.MaxEntries-1)
	if last > utf8.MaxRune {
		return fmt.Errorf("%w: code point window U+%04X..U+%04X exceeds U+10FFFF", rperrors.ErrInvalidSettings, s.BaseCodePoint, last)
	}
	// Surrogates are not scalar values and cannot be rendered as characters.
	if s.BaseCodePoint <= 0xDFFF && last >= 0xD800 {
		return fmt.Errorf("%w: code point window U+%04X..U+%04X overlaps surrogates", rperrors.ErrInvalidSettings, s.BaseCodePoint, last)
	}
	if s.MaxImageHeight <= 0 {
		return fmt.Errorf("%w: max image height must be positive", rperrors.ErrInvalidSettings)
	}
	if s.TextureNamespace == "" {
		return fmt.Errorf("%w: texture namespace is empty", rperrors.ErrInvalidSettings)
	}
	if _, err := ParseTextureNamespace(s.TextureNamespace); err != nil {
		return err
	}
	if _, err := checksum.ParseAlgorithm(s.Checksum); err != nil {
		return fmt.Errorf("%w: %w", rperrors.ErrInvalidSettings, err)
	}
	switch s.Duplicates {
	case DuplicateRenew, DuplicateReject:
	default:
		return fmt.Errorf("%w: unknown duplicate policy %q", rperrors.ErrInvalidSettings, s.Duplicates)
	}
	return nil
}
