package escape

// DeepCopy returns a copy of data that shares no maps or lists with it,
// so escaping the copy leaves data untouched. map[string]string values
// become map[string]any so their strings can be escaped too.
func DeepCopy(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}

	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = copyValue(v)
	}

	return out
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return DeepCopy(v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, elem := range v {
			l[i] = copyValue(elem)
		}
		return l
	case []string:
		l := make([]any, len(v))
		for i, s := range v {
			l[i] = s
		}
		return l
	default:
		return v
	}
}
