package keyer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 4096

// Keyer generates deterministic cache keys from an operation name and
// its call arguments.
//
// Contract:
// - Determinism: same logical arguments must produce the same key, regardless of map iteration order.
// - Collision safety: distinct arguments must never produce the same key.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key generates a cache key for op applied to args.
	Key(op string, args ...any) (string, error)
}

// JSONKeyer derives keys from a canonical JSON encoding of the
// argument tuple.
type JSONKeyer struct{}

// NewJSONKeyer creates a new JSON-based keyer.
func NewJSONKeyer() *JSONKeyer {
	return &JSONKeyer{}
}

// Key generates a deterministic cache key.
// Format: memo:<op>:<hash>:<canonical>
// where hash is xxhash64 of the canonical JSON argument tuple. The
// canonical tuple is kept in the key so a hash collision between
// distinct arguments still yields distinct keys.
func (k *JSONKeyer) Key(op string, args ...any) (string, error) {
	canonical, err := canonicalizeSlice(args)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnencodable, err)
	}

	hash := xxhash.Sum64(canonical)

	return fmt.Sprintf("memo:%s:%016x:%s", op, hash, canonical), nil
}

// canonicalize produces a deterministic JSON representation of v.
// Maps are sorted by key to ensure consistent ordering.
func canonicalize(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch val := v.(type) {
	case map[string]any:
		return canonicalizeMap(val)
	case []any:
		return canonicalizeSlice(val)
	default:
		// encoding/json already sorts map keys and rejects values
		// without a stable form (func, chan, NaN).
		return json.Marshal(v)
	}
}

func canonicalizeMap(m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []byte("{")
	for i, k := range keys {
		if i > 0 {
			result = append(result, ',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		result = append(result, keyBytes...)
		result = append(result, ':')

		valBytes, err := canonicalize(m[k])
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, '}')

	return result, nil
}

func canonicalizeSlice(s []any) ([]byte, error) {
	result := []byte("[")
	for i, v := range s {
		if i > 0 {
			result = append(result, ',')
		}

		valBytes, err := canonicalize(v)
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, ']')

	return result, nil
}

// ValidateKey checks whether a key is acceptable for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}

// Ensure JSONKeyer implements Keyer
var _ Keyer = (*JSONKeyer)(nil)
