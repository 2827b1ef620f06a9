package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/angelospk/freesound-mcp/internal/constants"
)

// DefaultDownloadDir returns ~/.freesound-mcp/downloads for the current user.
func DefaultDownloadDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}
	return filepath.Join(home, filepath.FromSlash(constants.DefaultDownloadDir)), nil
}

// ResolveDownloadDir picks the first non-empty of requested and fallback, and the
// per-user default when both are empty. A leading "~/" is expanded to the home directory.
// The directory is not created here; see WriteFile.
func ResolveDownloadDir(requested, fallback string) (string, error) {
	dir := requested
	if dir == "" {
		dir = fallback
	}
	if dir == "" {
		return DefaultDownloadDir()
	}
	return expandHome(dir)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not expand %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// WriteFile creates dir (recursively) if needed and writes data to dir/name in a
// single call, replacing any existing file. It returns the absolute path written.
func WriteFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create download directory %s: %w", dir, err)
	}

	filePath, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("could not resolve path for %s: %w", name, err)
	}

	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file '%s': %w", filePath, err)
	}
	return filePath, nil
}
