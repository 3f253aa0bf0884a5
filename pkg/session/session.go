package session

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"strings"

	"github.com/google/uuid"
)

// Data is the per-session key/value mapping.
// Values must be JSON-encodable: every backend stores sessions as JSON objects.
type Data map[string]any

// Clone returns a shallow copy of d. A nil Data clones to an empty one.
func (d Data) Clone() Data {
	if d == nil {
		return Data{}
	}
	return maps.Clone(d)
}

// Backend loads and stores session data keyed by an opaque identifier.
//
// Load of an empty or unknown identifier yields empty data, never an error.
// Save with an empty identifier is a no-op. Errors are reserved for I/O
// and encoding faults. Implementations must be safe for concurrent use.
type Backend interface {
	Load(ctx context.Context, id string) (Data, error)
	Save(ctx context.Context, id string, data Data) error
	NewID() string
}

// NewID returns a fresh random session identifier: 32 lowercase hex characters.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// maxIDLength bounds identifiers accepted from clients.
const maxIDLength = 128

// ValidID reports whether id is safe to use as a storage key.
// Only ASCII letters, digits, '-' and '_' are accepted.
func ValidID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

func encode(data Data) ([]byte, error) {
	if data == nil {
		data = Data{}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return b, nil
}

func decode(b []byte) (Data, error) {
	data := Data{}
	if len(b) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	if data == nil {
		data = Data{}
	}
	return data, nil
}
