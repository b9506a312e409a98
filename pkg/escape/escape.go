// Package escape applies context escapers to selected keys of template
// data, recursing into nested maps.
//
// An Orchestrator records a fingerprint of every map it has escaped along
// with the parameters used, so escaping the same data twice with the same
// parameters leaves it unchanged the second time.
package escape

import (
	"sort"

	"github.com/raphaelreyna/filerender/pkg/escaper"
)

// Params is everything that affects how data gets escaped.
type Params struct {
	Encoding string
	Keys     KeySets
}

func (p Params) Equal(other Params) bool {
	return p.Encoding == other.Encoding && p.Keys.Equal(other.Keys)
}

// Orchestrator escapes data maps in place.
type Orchestrator struct {
	encoding string
	guard    Guard
}

// New returns an Orchestrator that falls back to defaultEncoding when
// Escape is called without one. guardSize bounds the number of remembered
// fingerprints; zero or less keeps them all.
func New(defaultEncoding string, guardSize int) (*Orchestrator, error) {
	guard, err := NewGuard(guardSize)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{encoding: defaultEncoding, guard: guard}, nil
}

// Encoding returns the encoding used when Escape is called without one.
func (o *Orchestrator) Encoding() string {
	if o.encoding == "" {
		return escaper.DefaultEncoding
	}
	return o.encoding
}

// GuardLen returns how many fingerprints are remembered.
func (o *Orchestrator) GuardLen() int {
	return o.guard.Len()
}

// Escape rewrites the string values in data whose keys are selected by
// keys. Nested maps are escaped with the same keys. Contexts are applied
// in the order HTML, HTML attribute, CSS, JS.
//
// The escaper for encoding is only built once a string needs escaping, so
// an unsupported encoding is reported then and not before.
func (o *Orchestrator) Escape(data map[string]any, encoding string, keys KeySets) error {
	if encoding == "" {
		encoding = o.Encoding()
	}

	p := Params{Encoding: encoding, Keys: keys}
	return o.escape(data, p, &lazyEscaper{encoding: encoding})
}

func (o *Orchestrator) escape(data map[string]any, p Params, e *lazyEscaper) error {
	if len(data) == 0 || p.Keys.Empty() {
		return nil
	}

	fp, err := Fingerprint(data)
	if err != nil {
		return err
	}
	if prev, ok := o.guard.Get(fp); ok && prev.Equal(p) {
		return nil
	}

	// Keys are visited in order since a nested map escaped earlier can
	// guard an identical sibling.
	for _, key := range sortedKeys(data) {
		escaped, err := o.value(key, data[key], p, e)
		if err != nil {
			return err
		}
		data[key] = escaped
	}

	if fp, err = Fingerprint(data); err != nil {
		return err
	}
	o.guard.Add(fp, p)

	return nil
}

func sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// value escapes a single map entry.
func (o *Orchestrator) value(key string, value any, p Params, e *lazyEscaper) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, o.escape(v, p, e)
	case []any:
		return v, o.list(v, p, e)
	case string:
		return e.apply(key, v, p.Keys)
	default:
		return value, nil
	}
}

// list escapes the elements of a list. Elements have no key, so only a
// wildcard selects their string values.
func (o *Orchestrator) list(l []any, p Params, e *lazyEscaper) error {
	for i, elem := range l {
		switch v := elem.(type) {
		case map[string]any:
			if err := o.escape(v, p, e); err != nil {
				return err
			}
		case []any:
			if err := o.list(v, p, e); err != nil {
				return err
			}
		case string:
			s, err := e.applyWildcard(v, p.Keys)
			if err != nil {
				return err
			}
			l[i] = s
		}
	}
	return nil
}

type lazyEscaper struct {
	encoding string
	e        *escaper.Escaper
}

func (l *lazyEscaper) get() (*escaper.Escaper, error) {
	if l.e != nil {
		return l.e, nil
	}

	e, err := escaper.New(l.encoding)
	if err != nil {
		return nil, err
	}
	l.e = e

	return e, nil
}

func (l *lazyEscaper) apply(key, s string, keys KeySets) (string, error) {
	return l.run(s, keys, func(list []string) bool { return selects(list, key) })
}

func (l *lazyEscaper) applyWildcard(s string, keys KeySets) (string, error) {
	return l.run(s, keys, func(list []string) bool {
		for _, k := range list {
			if k == Wildcard {
				return true
			}
		}
		return false
	})
}

func (l *lazyEscaper) run(s string, keys KeySets, selected func([]string) bool) (string, error) {
	contexts := []struct {
		keys []string
		fn   func(*escaper.Escaper, string) (string, error)
	}{
		{keys.HTML, (*escaper.Escaper).HTML},
		{keys.HTMLAttr, (*escaper.Escaper).HTMLAttr},
		{keys.CSS, (*escaper.Escaper).CSS},
		{keys.JS, (*escaper.Escaper).JS},
	}

	for _, c := range contexts {
		if !selected(c.keys) {
			continue
		}

		e, err := l.get()
		if err != nil {
			return "", err
		}
		if s, err = c.fn(e, s); err != nil {
			return "", err
		}
	}

	return s, nil
}
