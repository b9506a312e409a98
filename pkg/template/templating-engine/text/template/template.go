package template

import (
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	templatingengine "github.com/raphaelreyna/filerender/pkg/template/templating-engine"
)

func init() {
	templatingengine.Default = &TemplatingEngine{}
}

type _template struct {
	t *template.Template
}

func (t *_template) Execute(out io.Writer, data any) error {
	return t.t.Execute(out, data)
}

type TemplatingEngine struct {
}

func NewTemplatingEngine() *TemplatingEngine {
	return &TemplatingEngine{}
}

// ParseFile parses the file at path as a text/template named after the
// file's base name.
func (te *TemplatingEngine) ParseFile(path string, opts templatingengine.Options) (templatingengine.Template, error) {
	if err := opts.Delims.Validate(); err != nil {
		return nil, err
	}

	var tmplt = template.New(filepath.Base(path))

	if !opts.Delims.IsZero() {
		tmplt = tmplt.Delims(opts.Delims.Left, opts.Delims.Right)
	}

	var mko = missingKeyOpt(opts.MissingKeyHandler)
	if !mko.Valid() {
		mko = mk_error
	}

	tmplt = tmplt.Option(mko.Val())

	if opts.FuncMap != nil {
		tmplt = tmplt.Funcs(template.FuncMap(opts.FuncMap))
	}

	tmplt, err := tmplt.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing template file: %w", err)
	}

	return &_template{tmplt}, nil
}

// missingKeyOpt controls how missing keys are handled when filling in a template
type missingKeyOpt string

var (
	// mk_error will cause an error if the data is missing a key used in the template
	mk_error missingKeyOpt = "error"
	// mk_zero will cause values whose keys are missing from the data to be replaced with a zero value.
	mk_zero missingKeyOpt = "zero"
	// mk_nothing will cause missing keys to be ignored.
	mk_nothing missingKeyOpt = "nothing"
)

func (mko missingKeyOpt) Valid() bool {
	return mko == mk_error || mko == mk_zero || mko == mk_nothing
}

func (mko missingKeyOpt) Val() string {
	switch mko {
	case "":
		fallthrough
	case mk_nothing:
		return "missingkey=default"
	default:
		return "missingkey=" + string(mko)
	}
}
