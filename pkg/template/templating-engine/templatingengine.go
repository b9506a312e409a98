// Package templatingengine defines how the renderer parses and executes
// template files, independently of the template language behind them.
package templatingengine

import (
	"errors"
	"io"
)

// Default is the engine used when none is configured. Importing an engine
// implementation sets it.
var Default TemplatingEngine

var (
	ErrDelimsEmpty     = errors.New("delimiters cannot be empty strings")
	ErrDelimsSymmetric = errors.New("left and right delimiters cannot be the same")
)

// Template is a parsed template file ready to be executed any number of
// times.
type Template interface {
	Execute(io.Writer, any) error
}

type TemplatingEngine interface {
	ParseFile(path string, opts Options) (Template, error)
}
