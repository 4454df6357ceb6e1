// Package sink provides output destinations for generated extension files.
package sink

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// OutputSink receives generated file content.
// Implementations must be safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to the slash-separated relative path.
	// The sink decides the actual location.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes generated files below a root directory.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite replaces existing files. When false, writing to an existing
	// file fails.
	Overwrite bool

	// SkipUnchanged leaves a file alone when its content already matches, so
	// its modification time only moves when the generated code changes.
	SkipUnchanged bool
}

// NewFilesystemSink creates a FilesystemSink writing to root.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{
		Root:          root,
		Mode:          0644,
		Overwrite:     true,
		SkipUnchanged: true,
	}
}

// WriteFile writes content to p within the root directory, creating parent
// directories as needed. Writes are atomic: content goes to a temp file in
// the target directory which is then renamed (or linked when not
// overwriting).
func (s *FilesystemSink) WriteFile(ctx context.Context, p string, content []byte) error {
	if err := ValidatePath(p); err != nil {
		return errors.Wrapf(err, "invalid path %q", p)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.resolve(p)
	if err != nil {
		return err
	}

	if s.Overwrite && s.SkipUnchanged {
		if existing, err := os.ReadFile(fullPath); err == nil && bytes.Equal(existing, content) {
			return nil
		}
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create directories")
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}

	tmp, err := os.CreateTemp(dir, ".enumext-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	// Leftover temp files keep the .enumext- prefix for manual cleanup.
	cleanup := func() { _ = os.Remove(tmpPath) }

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	switch {
	case writeErr != nil:
		cleanup()
		return errors.Wrap(writeErr, "write temp file")
	case closeErr != nil:
		cleanup()
		return errors.Wrap(closeErr, "close temp file")
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return errors.Wrap(err, "set file mode")
	}

	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tmpPath, fullPath); err != nil {
			cleanup()
			return errors.Wrap(err, "rename temp file")
		}
		return nil
	}

	// os.Link fails with EEXIST when the target exists, without a stat+rename race.
	err = os.Link(tmpPath, fullPath)
	cleanup()
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return errors.Newf("file already exists: %q", p)
		}
		return errors.Wrap(err, "create file")
	}
	return nil
}

// resolve joins p to the root and checks the result stays inside it.
func (s *FilesystemSink) resolve(p string) (string, error) {
	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return "", errors.Wrap(err, "resolve root directory")
	}
	absPath, err := filepath.Abs(filepath.Join(s.Root, filepath.FromSlash(p)))
	if err != nil {
		return "", errors.Wrap(err, "resolve path")
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", errors.Newf("path escapes root directory: %q", p)
	}
	return absPath, nil
}

// MemorySink keeps generated files in memory. It is safe for concurrent use.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under p.
func (s *MemorySink) WriteFile(ctx context.Context, p string, content []byte) error {
	if err := ValidatePath(p); err != nil {
		return errors.Wrapf(err, "invalid path %q", p)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[p] = bytes.Clone(content)
	return nil
}

// Files returns a copy of all written files.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(s.files))
	for p, content := range s.files {
		out[p] = bytes.Clone(content)
	}
	return out
}

// Paths returns the written paths in sorted order.
func (s *MemorySink) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Get returns a copy of one file, or nil if it was not written.
func (s *MemorySink) Get(p string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[p]
	if !ok {
		return nil
	}
	return bytes.Clone(content)
}

// Reset clears all stored files.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string][]byte)
}

// ValidatePath checks that p is usable as an output path: relative,
// slash-separated, clean, and free of ".." elements.
func ValidatePath(p string) error {
	if p == "" {
		return errors.New("path is empty")
	}
	if strings.HasPrefix(p, "/") || filepath.IsAbs(p) {
		return errors.New("absolute paths not allowed")
	}
	if len(p) >= 2 && p[1] == ':' && ((p[0] >= 'A' && p[0] <= 'Z') || (p[0] >= 'a' && p[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(p, `\`) {
		return errors.New("backslashes not allowed")
	}
	for _, elem := range strings.Split(p, "/") {
		if elem == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	if cleaned := path.Clean(p); cleaned != p {
		return errors.Newf("path is not clean (expected %q, got %q)", cleaned, p)
	}
	return nil
}
