// Package download stores converted PDFs on the local file system.
package download

import (
	"fmt"
	"os"
	"path/filepath"
)

// Saved describes a file written by FileSaver.
type Saved struct {
	Path string
	Size int64
}

// FileSaver writes PDFs under Dir. A name that is already absolute is used
// as-is; missing parent directories are created.
type FileSaver struct {
	Dir string
}

// NewFileSaver returns a FileSaver rooted at dir ("" means the working directory).
func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{Dir: dir}
}

// Resolve returns the absolute path name would be written to.
func (s *FileSaver) Resolve(name string) (string, error) {
	p := name
	if !filepath.IsAbs(p) && s.Dir != "" {
		p = filepath.Join(s.Dir, p)
	}
	return filepath.Abs(p)
}

// Save writes data to name and reports where it landed.
func (s *FileSaver) Save(name string, data []byte) (Saved, error) {
	p, err := s.Resolve(name)
	if err != nil {
		return Saved{}, fmt.Errorf("resolve %s: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return Saved{}, fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return Saved{}, err
	}
	return Saved{Path: p, Size: int64(len(data))}, nil
}

// HumanSize formats a byte count in megabytes with two decimals.
func HumanSize(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
}
