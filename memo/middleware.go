package memo

import (
	"context"

	"github.com/jonwraymond/memocache/keyer"
)

// Func is the signature of a memoizable operation.
type Func[V any] func(ctx context.Context, args ...any) (V, error)

// SkipRule decides whether a call should bypass memoization.
// Returns true to skip (the function runs directly and nothing is
// cached). Useful for calls known to have side effects.
type SkipRule func(op string, args []any) bool

// Memoize wraps fn so its results are cached in engine under keys
// derived by k from op and the call arguments.
//
// If skip is non-nil and returns true for a call, fn runs directly.
// Key derivation failures are returned to the caller as-is; no cache
// state is touched and fn is not invoked.
func Memoize[V any](engine *Engine[V], k keyer.Keyer, op string, fn Func[V], skip SkipRule) Func[V] {
	return func(ctx context.Context, args ...any) (V, error) {
		var zero V

		if skip != nil && skip(op, args) {
			return fn(ctx, args...)
		}

		key, err := k.Key(op, args...)
		if err != nil {
			return zero, err
		}

		return engine.GetOrCompute(ctx, key, func(ctx context.Context) (V, error) {
			return fn(ctx, args...)
		})
	}
}
