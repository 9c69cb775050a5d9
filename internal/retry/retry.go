package retry

import "context"

// Do invokes fn until it succeeds or attempts are exhausted, retrying
// immediately with no backoff. The final attempt's error is returned
// when every attempt fails. A cancelled context stops further attempts.
func Do(ctx context.Context, attempts int, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var last error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if last = fn(ctx); last == nil {
			return nil
		}
	}
	return last
}
