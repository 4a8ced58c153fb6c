package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempPath returns the path a file is staged at before WriteAtomic moves it
// into place. The extension is kept so format-sniffing writers still work.
// Example: out/Scraped.xlsx → out/.Scraped.tmp.xlsx
func TempPath(path string) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	return filepath.Join(dir, "."+base[:len(base)-len(ext)]+".tmp"+ext)
}

// WriteAtomic calls write with a temporary path next to path and renames
// the result over path once write succeeds. On failure the temporary file
// is removed and any existing file at path is left untouched.
func WriteAtomic(path string, write func(tmpPath string) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := TempPath(path)
	if err := write(tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("moving %s into place: %w", path, err)
	}
	return nil
}
