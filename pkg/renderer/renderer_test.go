package renderer_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/raphaelreyna/filerender/pkg/escape"
	"github.com/raphaelreyna/filerender/pkg/escaper"
	"github.com/raphaelreyna/filerender/pkg/renderer"
	templatingengine "github.com/raphaelreyna/filerender/pkg/template/templating-engine"
)

const rawScript = `<script>alert("x")</script>`

// writeFiles writes each name/content pair into dir and returns dir.
func writeFiles(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("error creating directory for %q: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("error writing %q: %v", name, err)
		}
	}
	return dir
}

func newRenderer(t *testing.T, c *renderer.Config) *renderer.Renderer {
	t.Helper()
	r, err := renderer.New(c)
	if err != nil {
		t.Fatalf("error creating renderer: %v", err)
	}
	return r
}

func TestRenderToString(t *testing.T) {
	dir := writeFiles(t, t.TempDir(), map[string]string{
		"default.tpl": "default {{ .a }}",
		"view.tpl":    "a={{ .a }} b={{ .b }}",
	})

	r := newRenderer(t, &renderer.Config{
		FileName:    "default.tpl",
		Data:        renderer.Data{"a": "default", "b": "kept"},
		SearchPaths: []string{dir},
	})

	t.Run("merge precedence", func(t *testing.T) {
		got, err := r.RenderToString("view.tpl", renderer.Data{"a": "override"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "a=override b=kept" {
			t.Fatalf("unexpected output %q", got)
		}
		if v, _ := r.Get("a"); v != "default" {
			t.Fatalf("expected defaults to be untouched, got %v", v)
		}
	})

	t.Run("default file", func(t *testing.T) {
		got, err := r.RenderToString("", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != "default default" {
			t.Fatalf("unexpected output %q", got)
		}
	})

	t.Run("falls back to default file", func(t *testing.T) {
		got, err := r.RenderToString("missing.tpl", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != "default default" {
			t.Fatalf("unexpected output %q", got)
		}
	})

	t.Run("direct path", func(t *testing.T) {
		got, err := r.RenderToString(filepath.Join(dir, "view.tpl"), nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != "a=default b=kept" {
			t.Fatalf("unexpected output %q", got)
		}
	})
}

func TestRenderToString_FileNotFound(t *testing.T) {
	paths := []string{"/a", "/b", "/c"}
	r := newRenderer(t, &renderer.Config{SearchPaths: paths})

	_, err := r.RenderToString("missing.tpl", nil, nil)

	var fnf *renderer.FileNotFoundError
	if !errors.As(err, &fnf) {
		t.Fatalf("expected *FileNotFoundError, got %v", err)
	}
	if fnf.Name != "missing.tpl" {
		t.Fatalf("expected name %q, got %q", "missing.tpl", fnf.Name)
	}
	if !reflect.DeepEqual(fnf.SearchPaths, paths) {
		t.Fatalf("expected search paths %v, got %v", paths, fnf.SearchPaths)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("expected error to match fs.ErrNotExist")
	}

	// no explicit name reports the default one
	r = newRenderer(t, &renderer.Config{FileName: "default.tpl", SearchPaths: paths})
	_, err = r.RenderToString("", nil, nil)
	if !errors.As(err, &fnf) || fnf.Name != "default.tpl" {
		t.Fatalf("expected *FileNotFoundError for default.tpl, got %v", err)
	}
}

func TestRender_Escaping(t *testing.T) {
	dir := writeFiles(t, t.TempDir(), map[string]string{
		"view.tpl": "{{ .html }}|{{ .plain }}|{{ .nested.html }}",
	})

	r := newRenderer(t, &renderer.Config{
		SearchPaths: []string{dir},
		Data: renderer.Data{
			"html":   rawScript,
			"plain":  "<p>",
			"nested": map[string]any{"html": rawScript},
		},
		EscapeKeys: escape.KeySets{HTML: []string{"html"}},
	})

	const expected = `&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;|<p>|&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;`
	for i := 0; i < 2; i++ {
		got, err := r.RenderToString("view.tpl", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != expected {
			t.Fatalf("render #%d: expected %q, got %q", i, expected, got)
		}
	}

	// escaping works on a copy
	if v, _ := r.Get("html"); v != rawScript {
		t.Fatalf("expected default data untouched, got %v", v)
	}
	nested, _ := r.Get("nested")
	if nested.(map[string]any)["html"] != rawScript {
		t.Fatal("expected nested default data untouched")
	}

	// call-time keys are merged with the defaults
	got, err := r.RenderToString("view.tpl", nil, &renderer.Options{
		EscapeKeys: escape.KeySets{HTML: []string{"plain"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "|&lt;p&gt;|") || strings.Contains(got, rawScript) {
		t.Fatalf("expected both keys escaped, got %q", got)
	}
}

func TestRender_EscapingIsStable(t *testing.T) {
	dir := writeFiles(t, t.TempDir(), map[string]string{
		"pair.tpl": "{{ .a.x }}|{{ .b.x }}",
	})

	expected := "&amp;lt;|&lt;"
	for i := 0; i < 100; i++ {
		r := newRenderer(t, &renderer.Config{
			SearchPaths: []string{dir},
			EscapeKeys:  escape.KeySets{HTML: []string{"x"}},
		})
		got, err := r.RenderToString("pair.tpl", renderer.Data{
			"a": map[string]any{"x": "&lt;"},
			"b": map[string]any{"x": "<"},
		}, nil)
		if err != nil {
			t.Fatalf("render #%d: unexpected error: %v", i, err)
		}
		if got != expected {
			t.Fatalf("render #%d: expected %q, got %q", i, expected, got)
		}
	}
}

func TestRender_EscapeFuncs(t *testing.T) {
	dir := writeFiles(t, t.TempDir(), map[string]string{
		"funcs.tpl": `{{ escapeUrl .q }} {{ escapeJs .q }} {{ escapeHtml .q }}`,
	})
	r := newRenderer(t, &renderer.Config{SearchPaths: []string{dir}})

	got, err := r.RenderToString("funcs.tpl", renderer.Data{"q": "a&b"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != `a%26b a\x26b a&amp;b` {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRender_Errors(t *testing.T) {
	dir := writeFiles(t, t.TempDir(), map[string]string{
		"broken.tpl": "before {{ .missing }} after",
		"syntax.tpl": "{{ .x ",
		"ok.tpl":     "{{ .x }}",
	})
	r := newRenderer(t, &renderer.Config{SearchPaths: []string{dir}})

	t.Run("execution", func(t *testing.T) {
		var buf bytes.Buffer
		err := r.Render(context.Background(), &buf, "broken.tpl", renderer.Data{}, nil)

		var execErr *renderer.ExecutionError
		if !errors.As(err, &execErr) {
			t.Fatalf("expected *ExecutionError, got %v", err)
		}
		if execErr.Path != filepath.Join(dir, "broken.tpl") {
			t.Fatalf("unexpected path %q", execErr.Path)
		}
		if buf.Len() != 0 {
			t.Fatalf("expected nothing written on failure, got %q", buf.String())
		}
	})

	t.Run("parse", func(t *testing.T) {
		_, err := r.RenderToString("syntax.tpl", nil, nil)
		var execErr *renderer.ExecutionError
		if !errors.As(err, &execErr) {
			t.Fatalf("expected *ExecutionError, got %v", err)
		}
	})

	t.Run("unsupported encoding", func(t *testing.T) {
		_, err := r.RenderToString("ok.tpl", renderer.Data{"x": "<"}, &renderer.Options{
			Encoding:   "utf-16",
			EscapeKeys: escape.KeySets{HTML: []string{"x"}},
		})
		if !errors.Is(err, escaper.ErrUnsupportedEncoding) {
			t.Fatalf("expected ErrUnsupportedEncoding, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := r.Render(ctx, &bytes.Buffer{}, "ok.tpl", renderer.Data{"x": 1}, nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestRenderToScreen(t *testing.T) {
	dir := writeFiles(t, t.TempDir(), map[string]string{"hello.tpl": "Hello {{ .name }}"})

	var stdout bytes.Buffer
	r := newRenderer(t, &renderer.Config{
		SearchPaths: []string{dir},
		Stdout:      &stdout,
	})

	if err := r.RenderToScreen("hello.tpl", renderer.Data{"name": "World"}, nil); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "Hello World" {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestString_Composition(t *testing.T) {
	dir := writeFiles(t, t.TempDir(), map[string]string{
		"layout.tpl":  "<main>{{ .content }}</main>",
		"content.tpl": "Hi {{ .name }}",
	})

	content := newRenderer(t, &renderer.Config{
		FileName:    "content.tpl",
		SearchPaths: []string{dir},
		Data:        renderer.Data{"name": "<b>"},
		EscapeKeys:  escape.KeySets{HTML: []string{"name"}},
	})
	layout := newRenderer(t, &renderer.Config{
		FileName:    "layout.tpl",
		SearchPaths: []string{dir},
	})
	layout.Set("content", content)

	got := layout.String()
	if got != "<main>Hi &lt;b&gt;</main>" {
		t.Fatalf("unexpected output %q", got)
	}

	broken := newRenderer(t, &renderer.Config{FileName: "missing.tpl"})
	if s := broken.String(); s != "" {
		t.Fatalf("expected empty string for a failed render, got %q", s)
	}
}

func TestData(t *testing.T) {
	r := newRenderer(t, &renderer.Config{Data: renderer.Data{"a": 1}})

	r.Set("b", 2).Set("c", 3)
	for _, k := range []string{"a", "b", "c"} {
		if !r.Has(k) {
			t.Errorf("expected key %q to be set", k)
		}
	}

	r.Remove("c")
	_, err := r.Get("c")
	var undef *renderer.UndefinedKeyError
	if !errors.As(err, &undef) {
		t.Fatalf("expected *UndefinedKeyError, got %v", err)
	}
	if undef.Key != "c" || !reflect.DeepEqual(undef.Known, renderer.Data{"a": 1, "b": 2}) {
		t.Fatalf("unexpected error contents: %+v", undef)
	}
	if !strings.Contains(err.Error(), "[a, b]") {
		t.Fatalf("expected known keys in message, got %q", err.Error())
	}

	d := r.Data()
	d["z"] = 26
	if r.Has("z") {
		t.Fatal("Data should return a copy")
	}
}

func TestSearchPaths(t *testing.T) {
	r := newRenderer(t, &renderer.Config{SearchPaths: []string{"/b", "/c"}})
	r.PrependPath("/a")
	r.AppendPath("/d")

	if !reflect.DeepEqual(r.SearchPaths(), []string{"/a", "/b", "/c", "/d"}) {
		t.Fatalf("unexpected paths %v", r.SearchPaths())
	}
	if !r.HasPath("/c") || r.HasPath("/z") {
		t.Fatal("unexpected HasPath result")
	}
	if removed := r.RemoveFirstNPaths(1); !reflect.DeepEqual(removed, []string{"/a"}) {
		t.Fatalf("unexpected removed paths %v", removed)
	}
	if removed := r.RemoveLastNPaths(2); !reflect.DeepEqual(removed, []string{"/c", "/d"}) {
		t.Fatalf("unexpected removed paths %v", removed)
	}
	if !reflect.DeepEqual(r.SearchPaths(), []string{"/b"}) {
		t.Fatalf("unexpected paths %v", r.SearchPaths())
	}
}

func TestEscapePassthroughs(t *testing.T) {
	r := newRenderer(t, nil)
	if r.EscapeEncoding() != "utf-8" {
		t.Fatalf("unexpected default encoding %q", r.EscapeEncoding())
	}

	type test struct {
		name     string
		fn       func(string) (string, error)
		expected string
	}
	tests := []test{
		{name: "html", fn: r.EscapeHTML, expected: `&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;`},
		{name: "attr", fn: r.EscapeHTMLAttr, expected: `&lt;script&gt;alert&#x28;&quot;x&quot;&#x29;&lt;&#x2F;script&gt;`},
		{name: "css", fn: r.EscapeCSS, expected: `\3C script\3E alert\28 \22 x\22 \29 \3C \2F script\3E `},
		{name: "js", fn: r.EscapeJS, expected: `\x3Cscript\x3Ealert\x28\x22x\x22\x29\x3C\x2Fscript\x3E`},
		{name: "url", fn: r.EscapeURL, expected: `%3Cscript%3Ealert%28%22x%22%29%3C%2Fscript%3E`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(rawScript)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}

	bad := newRenderer(t, &renderer.Config{EscapeEncoding: "utf-16"})
	if _, err := bad.EscapeHTML("x"); !errors.Is(err, escaper.ErrUnsupportedEncoding) {
		t.Fatalf("expected ErrUnsupportedEncoding, got %v", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := map[string]*renderer.Config{
		"missing key handler": {MissingKeyHandler: "explode"},
		"symmetric delims":    {Delims: templatingengine.Delims{Left: "%", Right: "%"}},
	}
	for name, c := range tests {
		if _, err := renderer.New(c); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
