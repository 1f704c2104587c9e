package keyer

import "errors"

// Sentinel errors for key derivation.
var (
	// ErrUnencodable is returned when an argument has no stable
	// canonical representation (functions, channels, NaN, and so on).
	ErrUnencodable = errors.New("keyer: argument cannot be encoded")

	// ErrInvalidKey is returned for keys that are empty, whitespace-only,
	// or contain control characters.
	ErrInvalidKey = errors.New("keyer: key is invalid")

	// ErrKeyTooLong is returned for keys exceeding MaxKeyLength.
	ErrKeyTooLong = errors.New("keyer: key exceeds max length")
)
