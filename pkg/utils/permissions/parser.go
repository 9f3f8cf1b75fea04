// Package permissions parses the octal mode strings used in build manifests
package permissions

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default modes for pack output. Packs are meant to be shared, so they are
// world-readable.
const (
	DefaultFileMode os.FileMode = 0o644
	DefaultDirMode  os.FileMode = 0o755
)

// ParseOctalString parses "644", "0644" or "0o644". An empty string yields fallback.
func ParseOctalString(s string, fallback os.FileMode) (os.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}

	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")
	if trimmed == "" {
		trimmed = "0"
	}

	val, err := strconv.ParseUint(trimmed, 8, 32)
	if err != nil {
		return fallback, fmt.Errorf("invalid permission string %q: %w", s, err)
	}
	if val > 0o777 {
		return fallback, fmt.Errorf("permission string %q sets bits outside 0777", s)
	}

	return os.FileMode(val), nil
}

// FormatOctal formats a mode as a leading-zero octal string
func FormatOctal(mode os.FileMode) string {
	return fmt.Sprintf("0%o", mode.Perm())
}

// OwnerCanRead reports whether the owner read bit is set.
func OwnerCanRead(mode os.FileMode) bool {
	return mode&0o400 != 0
}

// IsTraversable checks the owner execute bit directories need
func IsTraversable(mode os.FileMode) bool {
	return mode&0o100 != 0
}
