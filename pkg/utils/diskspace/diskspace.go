// Package diskspace reports free space on the volume holding a path.
package diskspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInsufficient reports a volume with less free space than required.
var ErrInsufficient = errors.New("❌ insufficient disk space")

// Multiplier scales payload size into the space a build needs: the pack
// tree plus an archive that is at most as large, with headroom.
const Multiplier = 3

// Available returns the bytes available to the current user on the volume
// holding path. A path that does not exist yet is resolved to its nearest
// existing ancestor.
func Available(path string) (int64, error) {
	dir, err := existingAncestor(path)
	if err != nil {
		return 0, err
	}
	return available(dir)
}

// Check returns the free bytes on the volume holding path. It fails with
// ErrInsufficient when fewer than needed bytes are free; any other error
// means the volume could not be queried.
func Check(path string, needed int64) (int64, error) {
	free, err := Available(path)
	if err != nil {
		return 0, err
	}
	if free < needed {
		return free, fmt.Errorf("%w at %s: need %s, have %s", ErrInsufficient, path, Human(needed), Human(free))
	}
	return free, nil
}

// Human formats a byte count with a binary unit.
func Human(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func existingAncestor(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(abs); err == nil {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no existing ancestor for %s", path)
		}
		abs = parent
	}
}
