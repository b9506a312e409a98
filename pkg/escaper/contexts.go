package escaper

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

func escapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// attrNamedEntities are the only characters written as named entities in
// attribute values; everything else uses a hex character reference.
var attrNamedEntities = map[rune]string{
	'"': "quot",
	'&': "amp",
	'<': "lt",
	'>': "gt",
}

func escapeHTMLAttr(s string) string {
	if s == "" || isDigits(s) {
		return s
	}

	var b strings.Builder
	for _, r := range s {
		if isAlnum(r) || r == ',' || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
			continue
		}
		b.WriteString(attrReference(r))
	}

	return b.String()
}

func attrReference(r rune) string {
	// control characters not allowed in HTML
	if (r <= 0x1f && r != '\t' && r != '\n' && r != '\r') || (r >= 0x7f && r <= 0x9f) {
		return "&#xFFFD;"
	}
	if name, ok := attrNamedEntities[r]; ok {
		return "&" + name + ";"
	}
	if r > 0xff {
		return fmt.Sprintf("&#x%04X;", r)
	}
	return fmt.Sprintf("&#x%02X;", r)
}

func escapeJS(s string) string {
	if s == "" || isDigits(s) {
		return s
	}

	var b strings.Builder
	for _, r := range s {
		if isAlnum(r) || r == ',' || r == '.' || r == '_' {
			b.WriteRune(r)
			continue
		}
		switch {
		case r < 0x80:
			fmt.Fprintf(&b, `\x%02X`, r)
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04X\u%04X`, hi, lo)
		default:
			fmt.Fprintf(&b, `\u%04X`, r)
		}
	}

	return b.String()
}

func escapeCSS(s string) string {
	if s == "" || isDigits(s) {
		return s
	}

	var b strings.Builder
	for _, r := range s {
		if isAlnum(r) {
			b.WriteRune(r)
			continue
		}
		fmt.Fprintf(&b, `\%X `, r)
	}

	return b.String()
}

const upperhex = "0123456789ABCDEF"

// escapeURL percent-encodes every byte outside the RFC 3986 unreserved set.
// Unlike url.QueryEscape, spaces become %20.
func escapeURL(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlnum(rune(c)) || c == '-' || c == '_' || c == '.' || c == '~' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
