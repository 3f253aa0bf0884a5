package internal

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
)

// Content types understood out of the box.
const (
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"
)

// DefaultMaxBodySize caps how much of a request body is read.
const DefaultMaxBodySize int64 = 1 << 20 // 1MB

// BodyParser decodes a request body into Values.
type BodyParser interface {
	Parse(r io.Reader) (Values, error)
}

// BodyParserFunc adapts a function to BodyParser.
type BodyParserFunc func(r io.Reader) (Values, error)

// Parse calls f.
func (f BodyParserFunc) Parse(r io.Reader) (Values, error) {
	return f(r)
}

// FormParser decodes application/x-www-form-urlencoded bodies.
// Blank values are kept, unlike in query strings.
func FormParser() BodyParser {
	return BodyParserFunc(func(r io.Reader) (Values, error) {
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Join(ErrMalformedRequest, err)
		}
		return parseValues(string(raw), true)
	})
}

// mediaType strips parameters from a Content-Type value and lowercases it.
// Unparseable values are returned trimmed and lowercased so lookup can still
// miss cleanly.
func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		base, _, _ := strings.Cut(contentType, ";")
		return strings.ToLower(strings.TrimSpace(base))
	}
	return mt
}

// limitedBody reads at most limit bytes and fails when more are available.
type limitedBody struct {
	r     io.Reader
	limit int64
	read  int64
}

func (l *limitedBody) Read(p []byte) (int, error) {
	if l.read > l.limit {
		return 0, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedRequest, l.limit)
	}
	if room := l.limit - l.read + 1; int64(len(p)) > room {
		p = p[:room]
	}
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.limit {
		return n, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedRequest, l.limit)
	}
	return n, err
}
