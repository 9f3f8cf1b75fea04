package resourcepack

import (
	"fmt"
	"strings"

	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
)

// TextureLocation is where a texture namespace points inside a pack.
type TextureLocation struct {
	Namespace string // assets/<Namespace>
	Dir       string // slash path under assets/<Namespace>/textures, may be empty
}

// ParseTextureNamespace splits a reference prefix such as
// "minecraft:textures/ranks" into its asset namespace and the directory
// under textures/. The leading "textures/" segment is optional, so
// "minecraft:textures/ranks" and "minecraft:ranks" both resolve to
// assets/minecraft/textures/ranks.
func ParseTextureNamespace(s string) (TextureLocation, error) {
	ns, path, ok := strings.Cut(strings.TrimSuffix(s, "/"), ":")
	if !ok {
		return TextureLocation{}, fmt.Errorf("%w: texture namespace %q is not namespace:path", rperrors.ErrInvalidSettings, s)
	}
	if ns == "" || strings.Trim(ns, "abcdefghijklmnopqrstuvwxyz0123456789_.-") != "" {
		return TextureLocation{}, fmt.Errorf("%w: texture namespace %q has an invalid namespace %q", rperrors.ErrInvalidSettings, s, ns)
	}

	path = strings.TrimPrefix(path, "/")
	if path == TexturesDir {
		path = ""
	}
	path = strings.TrimPrefix(path, TexturesDir+"/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			if seg == "" || seg == "." || seg == ".." || strings.Trim(seg, "abcdefghijklmnopqrstuvwxyz0123456789_.-") != "" {
				return TextureLocation{}, fmt.Errorf("%w: texture namespace %q has an invalid path segment %q", rperrors.ErrInvalidSettings, s, seg)
			}
		}
	}
	return TextureLocation{Namespace: ns, Dir: path}, nil
}
