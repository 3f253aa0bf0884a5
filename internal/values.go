package internal

import (
	"errors"
	"net/url"
)

// Values holds parsed query or body parameters.
// A key with exactly one value maps to a string; a key with several values
// maps to a []string in order of appearance.
type Values map[string]any

// Get returns the value for key, or the first value when the key repeats.
// Missing keys yield "".
func (v Values) Get(key string) string {
	switch x := v[key].(type) {
	case string:
		return x
	case []string:
		if len(x) > 0 {
			return x[0]
		}
	}
	return ""
}

// List returns every value for key in order.
func (v Values) List(key string) []string {
	switch x := v[key].(type) {
	case string:
		return []string{x}
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	}
	return nil
}

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// clone copies v so callers never share slices with a request.
func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		if list, ok := val.([]string); ok {
			cp := make([]string, len(list))
			copy(cp, list)
			out[k] = cp
			continue
		}
		out[k] = val
	}
	return out
}

// parseValues decodes an urlencoded string.
// With keepBlank false, empty values are dropped and a key left with no
// values is omitted.
func parseValues(raw string, keepBlank bool) (Values, error) {
	parsed, err := url.ParseQuery(raw)
	if err != nil {
		return nil, errors.Join(ErrMalformedRequest, err)
	}
	return collapse(parsed, keepBlank), nil
}

func collapse(src url.Values, keepBlank bool) Values {
	out := make(Values, len(src))
	for k, vals := range src {
		if !keepBlank {
			kept := vals[:0:0]
			for _, s := range vals {
				if s != "" {
					kept = append(kept, s)
				}
			}
			vals = kept
		}
		switch len(vals) {
		case 0:
			continue
		case 1:
			out[k] = vals[0]
		default:
			out[k] = vals
		}
	}
	return out
}
