package renderer

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// FileNotFoundError is returned when neither the requested file nor the
// renderer's default file could be located in any search path.
type FileNotFoundError struct {
	Name        string
	SearchPaths []string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("could not locate file %q in any of the search paths [%s]",
		e.Name, strings.Join(e.SearchPaths, ", "),
	)
}

func (e *FileNotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// UndefinedKeyError is returned when reading a data key that was never set.
// Known is a snapshot of the data at the time of the read.
type UndefinedKeyError struct {
	Key   string
	Known Data
}

func (e *UndefinedKeyError) Error() string {
	keys := make([]string, 0, len(e.Known))
	for k := range e.Known {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return fmt.Sprintf("item with key %q does not exist; known keys: [%s]",
		e.Key, strings.Join(keys, ", "),
	)
}

// ExecutionError wraps any failure raised while parsing or executing a
// located template file.
type ExecutionError struct {
	Path string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("error executing template %q: %v", e.Path, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
