package renderer

import (
	"github.com/raphaelreyna/filerender/pkg/escaper"
)

// EscapeEncoding returns the encoding escapes use when a render doesn't
// name one.
func (r *Renderer) EscapeEncoding() string {
	return r.orchestrator.Encoding()
}

func (r *Renderer) EscapeHTML(s string) (string, error) {
	return escapeWith(r.EscapeEncoding(), (*escaper.Escaper).HTML, s)
}

func (r *Renderer) EscapeHTMLAttr(s string) (string, error) {
	return escapeWith(r.EscapeEncoding(), (*escaper.Escaper).HTMLAttr, s)
}

func (r *Renderer) EscapeCSS(s string) (string, error) {
	return escapeWith(r.EscapeEncoding(), (*escaper.Escaper).CSS, s)
}

func (r *Renderer) EscapeJS(s string) (string, error) {
	return escapeWith(r.EscapeEncoding(), (*escaper.Escaper).JS, s)
}

func (r *Renderer) EscapeURL(s string) (string, error) {
	return escapeWith(r.EscapeEncoding(), (*escaper.Escaper).URL, s)
}

func escapeWith(encoding string, fn func(*escaper.Escaper, string) (string, error), s string) (string, error) {
	e, err := escaper.New(encoding)
	if err != nil {
		return "", err
	}
	return fn(e, s)
}

// escapeFuncs are available to every template, bound to the render's
// encoding.
func escapeFuncs(encoding string) map[string]any {
	bind := func(fn func(*escaper.Escaper, string) (string, error)) func(string) (string, error) {
		return func(s string) (string, error) {
			return escapeWith(encoding, fn, s)
		}
	}

	return map[string]any{
		"escapeHtml":     bind((*escaper.Escaper).HTML),
		"escapeHtmlAttr": bind((*escaper.Escaper).HTMLAttr),
		"escapeCss":      bind((*escaper.Escaper).CSS),
		"escapeJs":       bind((*escaper.Escaper).JS),
		"escapeUrl":      bind((*escaper.Escaper).URL),
	}
}
