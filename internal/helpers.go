package internal

import (
	"reflect"
	"strconv"
)

// Scalar lists the types typed parameter accessors convert to.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// Query returns the named query parameter converted to T.
// Missing or unparseable values yield the zero value.
func Query[T Scalar](req *Request, name string) T {
	v, _ := convertParam[T](req.query.Get(name))
	return v
}

// QueryDefault retrieves a typed query parameter with a default value.
// Returns defaultValue if the parameter is empty or cannot be parsed.
func QueryDefault[T Scalar](req *Request, name string, defaultValue T) T {
	raw := req.query.Get(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// Form returns the named body field converted to T.
// Missing or unparseable values yield the zero value.
func Form[T Scalar](req *Request, name string) T {
	v, _ := convertParam[T](req.body.Get(name))
	return v
}

// SessionValue returns the session value for key asserted to T.
// JSON-backed sessions decode numbers as float64.
func SessionValue[T any](req *Request, key string) (T, bool) {
	v, ok := req.session[key].(T)
	return v, ok
}

// convertParam converts a raw string to the target type T by its
// underlying kind, so named types such as `type UserID int64` work too.
// Returns the converted value and true on success, or the zero value and false on failure.
func convertParam[T Scalar](raw string) (T, bool) {
	var v T
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, rv.Type().Bits())
		if err != nil {
			return v, false
		}
		rv.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return v, false
		}
		rv.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return v, false
		}
		rv.SetBool(b)
	default:
		return v, false
	}
	return v, true
}
