// Package reveal opens a file with the host's default handler.
package reveal

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Command returns the opener invocation for path on goos.
func Command(goos, path string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{path}, nil
	case "windows":
		return "explorer", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, fmt.Errorf("no file opener known for %s", goos)
	}
}

// File opens path without waiting for the handler to exit.
func File(path string) error {
	name, args, err := Command(runtime.GOOS, path)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
