// Package searchpath holds the ordered list of directories a Renderer scans
// for template files, and the lookup that resolves a file name against it.
package searchpath

import (
	"os"
	"strings"
)

// Separators that may terminate a directory entry or mark a file name
// as a path. Both are honoured regardless of the host platform.
const (
	slash     = "/"
	backslash = `\`
)

// List is an ordered set of directories. Order is priority: the first
// directory containing a file wins. Duplicates are kept.
type List struct {
	paths []string
}

// New returns a List holding a copy of paths.
func New(paths ...string) *List {
	return &List{paths: append([]string(nil), paths...)}
}

// Paths returns a copy of the directories in priority order.
func (l *List) Paths() []string {
	return append([]string(nil), l.paths...)
}

func (l *List) Len() int {
	return len(l.paths)
}

// Append adds path to the end of the list.
func (l *List) Append(path string) {
	l.paths = append(l.paths, path)
}

// Prepend adds path to the front of the list.
func (l *List) Prepend(path string) {
	l.paths = append([]string{path}, l.paths...)
}

// RemoveFirstN removes up to n directories from the front of the list and
// returns them in removal order.
func (l *List) RemoveFirstN(n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n > len(l.paths) {
		n = len(l.paths)
	}

	removed := append([]string(nil), l.paths[:n]...)
	l.paths = append([]string(nil), l.paths[n:]...)

	return removed
}

// RemoveLastN removes up to n directories from the end of the list. The
// removed suffix is returned in its original relative order.
func (l *List) RemoveLastN(n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n > len(l.paths) {
		n = len(l.paths)
	}

	cut := len(l.paths) - n
	removed := append([]string(nil), l.paths[cut:]...)
	l.paths = append([]string(nil), l.paths[:cut]...)

	return removed
}

// Has reports whether path is in the list.
func (l *List) Has(path string) bool {
	for _, p := range l.paths {
		if p == path {
			return true
		}
	}
	return false
}

// Locate resolves name against the list. See the package level Locate.
func (l *List) Locate(name string) (string, bool) {
	return Locate(name, l.paths)
}

// Locate finds the file to render for name.
//
// A name carrying a directory component that already points at a regular
// file is returned unchanged. Otherwise each directory in dirs is tried in
// order and the first regular file found is returned. Bare names are never
// resolved against the working directory.
func Locate(name string, dirs []string) (string, bool) {
	if name == "" {
		return "", false
	}

	if hasDirComponent(name) && isRegularFile(name) {
		return name, true
	}

	for _, dir := range dirs {
		candidate := NormalizeDir(dir) + string(os.PathSeparator) + name
		if isRegularFile(candidate) {
			return candidate, true
		}
	}

	return "", false
}

// NormalizeDir strips trailing separators from dir. Forward slashes are
// stripped first; backslashes only when that removed nothing.
func NormalizeDir(dir string) string {
	trimmed := strings.TrimRight(dir, slash)
	if trimmed == dir {
		trimmed = strings.TrimRight(dir, backslash)
	}
	return trimmed
}

func hasDirComponent(name string) bool {
	return strings.Contains(name, slash) || strings.Contains(name, backslash)
}

// isRegularFile reports whether path names a regular file. Symlinks,
// directories and devices do not count.
func isRegularFile(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
