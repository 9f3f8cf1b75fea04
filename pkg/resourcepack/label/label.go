// Package label validates rank labels and pack names.
//
// Labels only need to be present. Casing and inner spaces are accepted even
// though operators are asked to avoid them. Because a label becomes a file
// name, separators and dot-only names are refused as well.
package label

import (
	"fmt"
	"strings"

	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
)

// Validate trims surrounding whitespace from raw and rejects what remains if
// it cannot name a texture file.
func Validate(raw string) (string, error) {
	return check("label", raw)
}

// ValidatePackName applies the label rules to a pack name, which becomes the
// pack directory and archive base name.
func ValidatePackName(raw string) (string, error) {
	return check("pack name", raw)
}

func check(kind, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: %s is required", rperrors.ErrValidation, kind)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %s %q contains a path separator", rperrors.ErrValidation, kind, name)
	}
	if name == "." || name == ".." {
		return "", fmt.Errorf("%w: %s %q is not a file name", rperrors.ErrValidation, kind, name)
	}
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %s contains a NUL byte", rperrors.ErrValidation, kind)
	}
	return name, nil
}
