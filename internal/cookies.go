package internal

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SessionCookie is the reserved cookie carrying the session identifier.
const SessionCookie = "session"

// DefaultCookieMaxAge is the lifetime of cookies set without an explicit one.
const DefaultCookieMaxAge = 100 * time.Hour

// parseCookies splits a Cookie header into name/value pairs.
// Pairs are separated by "; " and split at the first "="; values are
// percent-decoded; a value with a broken escape is kept raw. Empty segments
// are ignored. A segment without "=" is malformed.
func parseCookies(header string) (map[string]string, error) {
	cookies := make(map[string]string)
	if header == "" {
		return cookies, nil
	}

	for _, pair := range strings.Split(header, "; ") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: cookie segment %q", ErrMalformedRequest, pair)
		}
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		cookies[name] = value
	}
	return cookies, nil
}

// formatCookie renders a Set-Cookie value:
//
//	name=value; Expires=<http date>; Max-Age=<seconds>; Path=/
//
// The value is percent-encoded so it survives parseCookies.
func formatCookie(name, value string, maxAge time.Duration, now time.Time) string {
	seconds := int64(maxAge / time.Second)
	expires := now.UTC().Add(maxAge).Format(http.TimeFormat)
	return name + "=" + url.PathEscape(value) +
		"; Expires=" + expires +
		"; Max-Age=" + strconv.FormatInt(seconds, 10) +
		"; Path=/"
}
