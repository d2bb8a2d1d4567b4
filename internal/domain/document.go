package domain

// Document is a schemaless entry as it travels between transport, the
// validator, and the store. Validators work on the merged document
// rather than typed structs because required-ness spans fields (e.g.
// "at least one of on/kun readings").
type Document map[string]any

// String returns the string value at key, if present and a string.
func (d Document) String(key string) (string, bool) {
	v, ok := d[key].(string)
	return v, ok
}

// Slice returns the list value at key, if present and a list.
func (d Document) Slice(key string) ([]any, bool) {
	v, ok := d[key].([]any)
	return v, ok
}

// Map returns the nested document at key, if present and an object.
func (d Document) Map(key string) (Document, bool) {
	switch v := d[key].(type) {
	case Document:
		return v, true
	case map[string]any:
		return Document(v), true
	}
	return nil, false
}

// Clone returns a deep copy of the document. Nested maps and slices are
// copied so mutations of the clone never leak into the original.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Document:
		return t.Clone()
	case map[string]any:
		return map[string]any(Document(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
