// Package escaper escapes strings for the output contexts a template writes
// into: HTML body, HTML attribute values, CSS, JavaScript and URLs.
//
// Escapers work on UTF-8. For any other supported encoding the input is
// decoded to UTF-8 first and the result encoded back, so callers always get
// text in the encoding they asked for.
package escaper

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// DefaultEncoding is used when no encoding is configured anywhere.
const DefaultEncoding = "utf-8"

var (
	ErrEmptyEncoding       = errors.New("encoding cannot be empty")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrInvalidUTF8         = errors.New("string is not valid utf-8 or could not be converted")
)

// EncodingError is returned when an escaper can't be built for an encoding
// or a string can't be converted to or from it.
type EncodingError struct {
	Encoding string
	Err      error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("escaper: encoding %q: %v", e.Encoding, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// encodings lists every supported encoding name. A nil value means the
// text is already UTF-8.
//
// big5-hkscs is served by plain Big5 and gb2312 by GBK, so HKSCS
// extension characters do not round-trip.
var encodings = map[string]encoding.Encoding{
	"utf-8":        nil,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-5":   charmap.ISO8859_5,
	"iso-8859-15":  charmap.ISO8859_15,
	"cp866":        charmap.CodePage866,
	"ibm866":       charmap.CodePage866,
	"866":          charmap.CodePage866,
	"cp1251":       charmap.Windows1251,
	"windows-1251": charmap.Windows1251,
	"win-1251":     charmap.Windows1251,
	"1251":         charmap.Windows1251,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"1252":         charmap.Windows1252,
	"koi8-r":       charmap.KOI8R,
	"koi8-ru":      charmap.KOI8R,
	"koi8r":        charmap.KOI8R,
	"big5":         traditionalchinese.Big5,
	"950":          traditionalchinese.Big5,
	"big5-hkscs":   traditionalchinese.Big5,
	"gb2312":       simplifiedchinese.GBK,
	"936":          simplifiedchinese.GBK,
	"shift_jis":    japanese.ShiftJIS,
	"sjis":         japanese.ShiftJIS,
	"sjis-win":     japanese.ShiftJIS,
	"cp932":        japanese.ShiftJIS,
	"932":          japanese.ShiftJIS,
	"euc-jp":       japanese.EUCJP,
	"eucjp":        japanese.EUCJP,
	"eucjp-win":    japanese.EUCJP,
	"macroman":     charmap.Macintosh,
}

// Supported reports whether name is a known encoding.
func Supported(name string) bool {
	_, ok := encodings[strings.ToLower(name)]
	return ok
}

// Escaper escapes strings held in a single encoding.
type Escaper struct {
	encoding string
	enc      encoding.Encoding
}

// New returns an Escaper for the named encoding. Names are matched
// case-insensitively.
func New(name string) (*Escaper, error) {
	if name == "" {
		return nil, &EncodingError{Encoding: name, Err: ErrEmptyEncoding}
	}

	enc, ok := encodings[strings.ToLower(name)]
	if !ok {
		return nil, &EncodingError{Encoding: name, Err: ErrUnsupportedEncoding}
	}

	return &Escaper{encoding: strings.ToLower(name), enc: enc}, nil
}

func (e *Escaper) Encoding() string {
	return e.encoding
}

// HTML escapes s for an HTML body. Invalid UTF-8 is replaced rather than
// rejected.
func (e *Escaper) HTML(s string) (string, error) {
	if e.enc == nil {
		return escapeHTML(strings.ToValidUTF8(s, "\uFFFD")), nil
	}
	return e.convert(s, escapeHTML)
}

// HTMLAttr escapes s for use inside an HTML attribute value, quoted or not.
func (e *Escaper) HTMLAttr(s string) (string, error) {
	return e.convert(s, escapeHTMLAttr)
}

// JS escapes s for a JavaScript string literal.
func (e *Escaper) JS(s string) (string, error) {
	return e.convert(s, escapeJS)
}

// CSS escapes s for a CSS string or identifier.
func (e *Escaper) CSS(s string) (string, error) {
	return e.convert(s, escapeCSS)
}

// URL percent-encodes s for a URL component. The input bytes are encoded
// as-is, without conversion.
func (e *Escaper) URL(s string) (string, error) {
	return escapeURL(s), nil
}

// convert runs fn over the UTF-8 form of s and returns the result in the
// escaper's encoding.
func (e *Escaper) convert(s string, fn func(string) string) (string, error) {
	if e.enc == nil {
		if !utf8.ValidString(s) {
			return "", &EncodingError{Encoding: e.encoding, Err: ErrInvalidUTF8}
		}
		return fn(s), nil
	}

	u, err := e.enc.NewDecoder().String(s)
	if err != nil || !utf8.ValidString(u) {
		return "", &EncodingError{Encoding: e.encoding, Err: errors.Join(ErrInvalidUTF8, err)}
	}

	out, err := encoding.ReplaceUnsupported(e.enc.NewEncoder()).String(fn(u))
	if err != nil {
		return "", &EncodingError{Encoding: e.encoding, Err: err}
	}

	return out, nil
}
