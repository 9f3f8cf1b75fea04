// Package staging resolves where intake keeps images before a pack is laid out
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// SessionPrefix starts every session directory name.
const SessionPrefix = "session-"

// StaleAfter is how old an abandoned session must be before Sweep removes it.
const StaleAfter = 24 * time.Hour

// Root returns the directory that holds staging sessions
func Root() string {
	// Check environment variable first
	if dir := os.Getenv("RANKPACK_STAGING_DIR"); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Caches", "rankpack", "staging")
		}
	case "linux":
		if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
			return filepath.Join(xdgCache, "rankpack", "staging")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".cache", "rankpack", "staging")
		}
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "rankpack", "staging")
		}
	}

	return filepath.Join(os.TempDir(), "rankpack", "staging")
}

// SessionPath returns a fresh, not yet created session directory under root.
// An empty root falls back to Root().
func SessionPath(root string) string {
	if root == "" {
		root = Root()
	}
	return filepath.Join(root, SessionPrefix+uuid.NewString())
}

// Ensure creates path if it is missing.
func Ensure(path string, mode os.FileMode) error {
	if mode == 0 {
		mode = 0o755
	}
	if err := os.MkdirAll(path, mode); err != nil {
		return fmt.Errorf("failed to create staging directory %s: %w", path, err)
	}
	return nil
}

// Remove deletes a session directory and everything in it.
func Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove staging directory %s: %w", path, err)
	}
	return nil
}

// Sweep removes session directories under root last modified more than
// maxAge ago. Sessions of crashed or interrupted builds end up here. It
// returns how many sessions were removed.
func Sweep(root string, maxAge time.Duration, logger hclog.Logger) (int, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if root == "" {
		root = Root()
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), SessionPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		stale := filepath.Join(root, entry.Name())
		logger.Info("🧹 Removing stale staging session", "dir", stale, "modified", info.ModTime().UTC().Format(time.RFC3339))
		if err := os.RemoveAll(stale); err != nil {
			logger.Debug("⚠️ Failed to remove stale session", "dir", stale, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
