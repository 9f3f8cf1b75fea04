// Package descriptor builds the documents written into a pack: the bitmap
// font descriptor, the pack manifest and the human-readable mapping report.
package descriptor

import (
	"strings"

	"github.com/provide-io/rankpack/pkg/resourcepack"
)

// Builder turns code point assignments into a Descriptor.
type Builder struct {
	Namespace string // texture reference prefix, e.g. "minecraft:textures/ranks"
	Ascent    int
	Height    int
}

// NewBuilder returns a builder configured from settings.
func NewBuilder(settings resourcepack.Settings) *Builder {
	return &Builder{
		Namespace: settings.TextureNamespace,
		Ascent:    settings.Ascent,
		Height:    settings.GlyphHeight,
	}
}

// DefaultBuilder returns a builder with the stock namespace and 8px metrics.
func DefaultBuilder() *Builder {
	return NewBuilder(resourcepack.DefaultSettings())
}

// TextureRef returns the namespaced texture reference for label.
func (b *Builder) TextureRef(label string) string {
	return strings.TrimSuffix(b.Namespace, "/") + "/" + label + resourcepack.TextureExt
}

// Build emits one provider per assignment, in the order given.
func (b *Builder) Build(assignments []resourcepack.Assignment) resourcepack.Descriptor {
	providers := make([]resourcepack.Provider, 0, len(assignments))
	for _, a := range assignments {
		providers = append(providers, resourcepack.Provider{
			Type:   resourcepack.ProviderBitmap,
			File:   b.TextureRef(a.Label),
			Ascent: b.Ascent,
			Height: b.Height,
			Chars:  []string{a.Char()},
		})
	}
	return resourcepack.Descriptor{Providers: providers}
}
