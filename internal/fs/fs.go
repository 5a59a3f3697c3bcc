// Package fs implements the file-system collaborator behind the directory
// commands: listing, directory creation and working-directory validation.
package fs

import (
	"os"
	"path/filepath"
	"sort"

	"tedit/internal/errors"

	"github.com/gobwas/glob"
)

// Lister lists directory entries, hiding names matched by the configured
// ignore globs.
type Lister struct {
	ignore []glob.Glob
}

// NewLister compiles the ignore patterns. An invalid pattern is an error so
// a broken config is caught at startup, not silently dropped.
func NewLister(patterns []string) (*Lister, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid ignore pattern %q", p)
		}
		globs = append(globs, g)
	}
	return &Lister{ignore: globs}, nil
}

// List returns the sorted entry names of dir, directories suffixed with a
// separator. Ignored names are skipped.
func (l *Lister) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewFileError("not a directory", dir, errors.NotADirectory, nil)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if l.ignored(name) {
			continue
		}
		if entry.IsDir() {
			name += string(os.PathSeparator)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (l *Lister) ignored(name string) bool {
	for _, g := range l.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// MakeDir creates the directory at path. Unlike MkdirAll it fails when the
// path already exists, so the user is told instead of silently succeeding.
func MakeDir(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.NewFileError("already exists", path, errors.AlreadyExists, nil)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.NewFileError("cannot create directory", path, errors.IOError, err)
	}
	return nil
}

// ResolveDir resolves path against base and verifies it is an existing
// directory, returning the cleaned absolute path.
func ResolveDir(base, path string) (string, error) {
	resolved := Resolve(base, path)
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", errors.NewFileError("not a directory", path, errors.NotADirectory, nil)
	}
	return resolved, nil
}

// Resolve joins a possibly relative path onto base and cleans it. Absolute
// paths are returned cleaned but otherwise untouched.
func Resolve(base, path string) string {
	if path == "" {
		return base
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(base, path))
}
