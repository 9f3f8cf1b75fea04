package layout

import (
	"path/filepath"

	"github.com/provide-io/rankpack/pkg/resourcepack"
)

// Paths names every location inside one pack directory.
type Paths struct {
	root     string
	textures resourcepack.TextureLocation
}

// NewPaths returns the paths of {saveRoot}/{packName}, with textures placed
// where the descriptor's references resolve.
func NewPaths(saveRoot, packName string, textures resourcepack.TextureLocation) *Paths {
	return &Paths{root: filepath.Join(saveRoot, packName), textures: textures}
}

// Root returns the pack directory.
func (p *Paths) Root() string {
	return p.root
}

// ==================== Directories ====================

// Textures returns assets/<namespace>/textures/<dir>, by default
// assets/minecraft/textures/ranks.
func (p *Paths) Textures() string {
	return filepath.Join(p.root, resourcepack.AssetsDir, p.textures.Namespace, resourcepack.TexturesDir, filepath.FromSlash(p.textures.Dir))
}

// Font returns assets/minecraft/font; the descriptor replaces the default font.
func (p *Paths) Font() string {
	return filepath.Join(p.root, resourcepack.AssetsDir, resourcepack.NamespaceDir, resourcepack.FontDir)
}

// ==================== Files ====================

// Descriptor returns the font descriptor path.
func (p *Paths) Descriptor() string {
	return filepath.Join(p.Font(), resourcepack.DescriptorFile)
}

// Texture returns the texture path for label.
func (p *Paths) Texture(label string) string {
	return filepath.Join(p.Textures(), label+resourcepack.TextureExt)
}

// Manifest returns pack.mcmeta.
func (p *Paths) Manifest() string {
	return filepath.Join(p.root, resourcepack.ManifestFile)
}

// Mappings returns unicode_mappings.txt.
func (p *Paths) Mappings() string {
	return filepath.Join(p.root, resourcepack.MappingsFile)
}

// Directories lists the directories a pack needs, parents first.
func (p *Paths) Directories() []string {
	return []string{p.root, p.Textures(), p.Font()}
}
