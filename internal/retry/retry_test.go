package retry

import (
	"context"
	"errors"
	"testing"
)

func TestDoSucceedsOnThirdAttempt(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), 3, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDoReturnsFinalAttemptError(t *testing.T) {
	t.Parallel()

	calls := 0
	final := errors.New("call 3 failed")
	err := Do(context.Background(), 3, func(context.Context) error {
		calls++
		if calls == 3 {
			return final
		}
		return errors.New("earlier failure")
	})

	if !errors.Is(err, final) {
		t.Fatalf("expected final attempt error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDoStopsAfterFirstSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), 3, func(context.Context) error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDoHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, 3, func(context.Context) error {
		calls++
		return errors.New("should not run")
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no calls, got %d", calls)
	}
}
