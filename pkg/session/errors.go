package session

import "errors"

// Session backend errors.
var (
	// ErrEncode is returned when session data cannot be serialized.
	ErrEncode = errors.New("session: failed to encode data")

	// ErrDecode is returned when stored session data is not a JSON object.
	ErrDecode = errors.New("session: failed to decode data")

	// ErrLoad is returned when the backend storage cannot be read.
	ErrLoad = errors.New("session: failed to load")

	// ErrSave is returned when the backend storage cannot be written.
	ErrSave = errors.New("session: failed to save")

	// ErrInvalidID is returned by Save for a non-empty id that is not ValidID.
	ErrInvalidID = errors.New("session: invalid session id")
)
