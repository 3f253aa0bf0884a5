package internal

import "github.com/bskqd/uniweb/pkg/session"

// DefaultIdentityKey is the session key holding the authenticated identity.
const DefaultIdentityKey = "username"

// Authenticated reports whether data holds a non-zero identity under key.
// Zero means absent, nil, false, numeric zero, or an empty string, slice
// or map.
func Authenticated(data session.Data, key string) bool {
	if len(data) == 0 {
		return false
	}
	switch v := data[key].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// authenticate is the gate stage for routes marked RequireAuth.
func (a *App) authenticate(x *exchange) error {
	if !x.route.requireAuth {
		return nil
	}
	if !Authenticated(x.request.session, a.identityKey) {
		return ErrAuthentication
	}
	return nil
}
