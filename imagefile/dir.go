package imagefile

import (
	"fmt"
	"os"
	"path/filepath"
)

// ScanDir returns the absolute form of path after checking it names a directory.
func ScanDir(path string) (string, error) {
	dir, err := filepath.Abs(path)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(dir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return "", fmt.Errorf("invalid scan path %q: %w", path, err)
	}
	return dir, nil
}

// DestDir resolves dest against base unless it is already absolute.
func DestDir(base, dest string) string {
	if filepath.IsAbs(dest) {
		return dest
	}
	return filepath.Join(base, dest)
}
