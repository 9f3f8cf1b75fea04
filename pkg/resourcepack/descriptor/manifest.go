package descriptor

import "github.com/provide-io/rankpack/pkg/resourcepack"

// NewManifest describes a pack by its name.
func NewManifest(packName string, packFormat int) resourcepack.Manifest {
	return resourcepack.Manifest{
		Pack: resourcepack.ManifestPack{PackFormat: packFormat, Description: packName},
	}
}
