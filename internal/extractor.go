package internal

import "fmt"

// ExtractorSource extracts a value from a request.
// Returns the value and true if found, or ("", false) if not present.
type ExtractorSource = func(*Request) (string, bool)

// Extractor tries multiple sources in order and returns the first match.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
//
// Example:
//
//	username := uniweb.NewExtractor(
//	    uniweb.FromForm("username"),
//	    uniweb.FromSession("username"),
//	)
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract iterates sources in order and returns the first non-empty value.
// Returns ("", false) if all sources miss.
func (e Extractor) Extract(req *Request) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(req); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromQuery returns a source that reads from a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(req *Request) (string, bool) {
		return nonEmpty(req.query.Get(name))
	}
}

// FromForm returns a source that reads from a body field.
func FromForm(name string) ExtractorSource {
	return func(req *Request) (string, bool) {
		return nonEmpty(req.body.Get(name))
	}
}

// FromCookie returns a source that reads from a cookie.
func FromCookie(name string) ExtractorSource {
	return func(req *Request) (string, bool) {
		return nonEmpty(req.cookies[name])
	}
}

// FromSession returns a source that reads from a session value.
// Non-string values are formatted with fmt.Sprint.
func FromSession(key string) ExtractorSource {
	return func(req *Request) (string, bool) {
		val, ok := req.session[key]
		if !ok || val == nil {
			return "", false
		}
		if s, ok := val.(string); ok {
			return nonEmpty(s)
		}
		return nonEmpty(fmt.Sprint(val))
	}
}

func nonEmpty(s string) (string, bool) {
	return s, s != ""
}
