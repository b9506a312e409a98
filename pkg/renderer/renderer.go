// Package renderer renders template files found through an ordered list of
// search directories, with a default data set in scope and selected data
// fields escaped for their output context.
//
// A Renderer is not safe for concurrent use.
package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raphaelreyna/filerender/pkg/escape"
	"github.com/raphaelreyna/filerender/pkg/log"
	"github.com/raphaelreyna/filerender/pkg/searchpath"
	templatingengine "github.com/raphaelreyna/filerender/pkg/template/templating-engine"
	_ "github.com/raphaelreyna/filerender/pkg/template/templating-engine/text/template"
)

// Data is the variable scope a template is executed with.
type Data = map[string]any

type Config struct {
	// FileName is rendered when a render call names no file, or names one
	// that can't be located.
	FileName string
	// Data is the default scope of every render. Call-time data overrides
	// it key by key.
	Data Data
	// SearchPaths are tried in order when locating a bare file name.
	SearchPaths []string

	// EscapeEncoding is used when a render doesn't name one.
	// Defaults to utf-8.
	EscapeEncoding string
	// EscapeKeys are escaped on every render, in addition to the keys
	// named by the render call.
	EscapeKeys escape.KeySets

	// TemplatingEngine parses located files. Defaults to text/template.
	TemplatingEngine  templatingengine.TemplatingEngine
	MissingKeyHandler templatingengine.MissingKeyHandler
	Delims            templatingengine.Delims

	// GuardSize bounds the number of escaped data fingerprints remembered.
	// Zero or less remembers them all.
	GuardSize int

	// Stdout receives the output of RenderToScreen. Defaults to os.Stdout.
	Stdout io.Writer
}

func (c *Config) validate() error {
	if c.MissingKeyHandler != "" && !c.MissingKeyHandler.Valid() {
		return fmt.Errorf("invalid missing key handler %q", c.MissingKeyHandler)
	}

	if err := c.Delims.Validate(); err != nil {
		return err
	}

	if c.TemplatingEngine == nil {
		c.TemplatingEngine = templatingengine.Default
	}
	if c.TemplatingEngine == nil {
		return errors.New("templating engine is required")
	}

	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}

	return nil
}

// Options override a Renderer's defaults for a single render.
type Options struct {
	// Encoding replaces the renderer's escape encoding when not empty.
	Encoding string
	// EscapeKeys are merged with the renderer's own escape keys.
	EscapeKeys escape.KeySets
}

type Renderer struct {
	fileName string
	data     Data
	paths    *searchpath.List

	encoding     string
	escapeKeys   escape.KeySets
	orchestrator *escape.Orchestrator

	engine            templatingengine.TemplatingEngine
	missingKeyHandler templatingengine.MissingKeyHandler
	delims            templatingengine.Delims

	stdout io.Writer
}

func New(c *Config) (*Renderer, error) {
	if c == nil {
		c = &Config{}
	}

	err := c.validate()
	if err != nil {
		return nil, fmt.Errorf("invalid renderer config: %w", err)
	}

	orchestrator, err := escape.New(c.EscapeEncoding, c.GuardSize)
	if err != nil {
		return nil, fmt.Errorf("error creating escape guard: %w", err)
	}

	data := make(Data, len(c.Data))
	for k, v := range c.Data {
		data[k] = v
	}

	return &Renderer{
		fileName:          c.FileName,
		data:              data,
		paths:             searchpath.New(c.SearchPaths...),
		encoding:          c.EscapeEncoding,
		escapeKeys:        c.EscapeKeys.Clone(),
		orchestrator:      orchestrator,
		engine:            c.TemplatingEngine,
		missingKeyHandler: c.MissingKeyHandler,
		delims:            c.Delims,
		stdout:            c.Stdout,
	}, nil
}

// Render locates name, falling back to the renderer's default file, and
// executes it into w with the default data overridden by data. Escaping is
// applied to a copy of the merged data; the renderer's defaults and data
// are never modified.
//
// Nothing is written to w unless the template executes successfully.
func (r *Renderer) Render(ctx context.Context, w io.Writer, name string, data Data, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	path, err := r.resolve(name)
	if err != nil {
		return err
	}

	encoding := opts.Encoding
	if encoding == "" {
		encoding = r.EscapeEncoding()
	}

	scope := escape.DeepCopy(r.data)
	for k, v := range escape.DeepCopy(data) {
		scope[k] = v
	}

	keys := r.escapeKeys.Merge(opts.EscapeKeys)
	if err := r.orchestrator.Escape(scope, encoding, keys); err != nil {
		return fmt.Errorf("error escaping data: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	log.Debug(ctx, "rendering template", nil, "path", path, "encoding", encoding)

	tmplt, err := r.engine.ParseFile(path, templatingengine.Options{
		MissingKeyHandler: r.missingKeyHandler,
		Delims:            r.delims,
		FuncMap:           escapeFuncs(encoding),
	})
	if err != nil {
		return &ExecutionError{Path: path, Err: err}
	}

	var buf bytes.Buffer
	if err := tmplt.Execute(&buf, scope); err != nil {
		return &ExecutionError{Path: path, Err: err}
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("error writing rendered output: %w", err)
	}

	return nil
}

// RenderToString is Render into a string.
func (r *Renderer) RenderToString(name string, data Data, opts *Options) (string, error) {
	var sb strings.Builder
	if err := r.Render(context.Background(), &sb, name, data, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderToScreen is Render into the configured Stdout.
func (r *Renderer) RenderToScreen(name string, data Data, opts *Options) error {
	return r.Render(context.Background(), r.stdout, name, data, opts)
}

// String renders the default file with the default data. Errors are
// logged and produce an empty string, which lets a Renderer be used as a
// value inside another Renderer's data.
func (r *Renderer) String() string {
	s, err := r.RenderToString("", nil, nil)
	if err != nil {
		log.Error(context.Background(), "unable to render", err, "file", r.fileName)
		return ""
	}
	return s
}

func (r *Renderer) resolve(name string) (string, error) {
	if path, ok := r.paths.Locate(name); ok {
		return path, nil
	}

	if path, ok := r.paths.Locate(r.fileName); ok {
		return path, nil
	}

	if name == "" {
		name = r.fileName
	}

	return "", &FileNotFoundError{Name: name, SearchPaths: r.paths.Paths()}
}

// Locate resolves name against the renderer's search paths without the
// fallback to the default file.
func (r *Renderer) Locate(name string) (string, bool) {
	return r.paths.Locate(name)
}

func (r *Renderer) FileName() string {
	return r.fileName
}
