package escape

// Wildcard in a key list selects every key.
const Wildcard = "*"

// KeySets names the data keys to escape for each output context.
type KeySets struct {
	HTML     []string `json:"html,omitempty"`
	HTMLAttr []string `json:"htmlAttr,omitempty"`
	CSS      []string `json:"css,omitempty"`
	JS       []string `json:"js,omitempty"`
}

// Empty reports whether no context has any key.
func (k KeySets) Empty() bool {
	return len(k.HTML) == 0 && len(k.HTMLAttr) == 0 && len(k.CSS) == 0 && len(k.JS) == 0
}

// Merge returns the union of k and other for every context. Keys keep
// their first-seen order and appear once.
func (k KeySets) Merge(other KeySets) KeySets {
	return KeySets{
		HTML:     union(k.HTML, other.HTML),
		HTMLAttr: union(k.HTMLAttr, other.HTMLAttr),
		CSS:      union(k.CSS, other.CSS),
		JS:       union(k.JS, other.JS),
	}
}

// Equal reports whether both sets hold the same keys in the same order.
func (k KeySets) Equal(other KeySets) bool {
	return equal(k.HTML, other.HTML) &&
		equal(k.HTMLAttr, other.HTMLAttr) &&
		equal(k.CSS, other.CSS) &&
		equal(k.JS, other.JS)
}

// Clone returns a deep copy of k.
func (k KeySets) Clone() KeySets {
	return KeySets{
		HTML:     append([]string(nil), k.HTML...),
		HTMLAttr: append([]string(nil), k.HTMLAttr...),
		CSS:      append([]string(nil), k.CSS...),
		JS:       append([]string(nil), k.JS...),
	}
}

func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, key := range list {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// selects reports whether key is listed in keys or keys holds the wildcard.
func selects(keys []string, key string) bool {
	for _, k := range keys {
		if k == key || k == Wildcard {
			return true
		}
	}
	return false
}
