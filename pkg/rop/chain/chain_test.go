package chain

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/ib-77/guarded/pkg/rop"
)

func nonNegative(_ context.Context, v int) error {
	if v < 0 {
		return errors.New("negative")
	}
	return nil
}

func TestFromValue_ThenMapFinally(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := Map(
		Then(FromValue(ctx, 4).Validate(nonNegative), func(ctx context.Context, v int) rop.Result[int] {
			return rop.Success(v * 10)
		}),
		func(ctx context.Context, v int) string { return strconv.Itoa(v) },
	)

	out := Finally(c,
		func(ctx context.Context, s string) string { return s },
		func(ctx context.Context, err error) string { return "err" },
		func(ctx context.Context, err error) string { return "cancel" },
	)
	if out != "40" {
		t.Fatalf("expected '40', got %q", out)
	}
}

func TestValidate_ShortCircuits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	called := false
	c := Then(FromValue(ctx, -1).Validate(nonNegative), func(ctx context.Context, v int) rop.Result[int] {
		called = true
		return rop.Success(v)
	})

	if called {
		t.Fatalf("Then must not run after a failed validation")
	}
	if _, err := c.Get(); err == nil || err.Error() != "negative" {
		t.Fatalf("expected 'negative', got %v", err)
	}
}

func TestFromTry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	n, err := strconv.Atoi("12")
	if v, err := FromTry(ctx, n, err).Get(); err != nil || v != 12 {
		t.Fatalf("expected 12, got %v, %v", v, err)
	}

	c := FromTry(ctx, 0, context.Canceled)
	if !c.Result().IsCancel() {
		t.Fatalf("expected cancel for context error")
	}
}

func TestThenTry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := ThenTry(FromValue(ctx, "7"), func(ctx context.Context, s string) (int, error) {
		return strconv.Atoi(s)
	})
	if v, err := c.Get(); err != nil || v != 7 {
		t.Fatalf("expected 7, got %v, %v", v, err)
	}

	bad := ThenTry(FromValue(ctx, "seven"), func(ctx context.Context, s string) (int, error) {
		return strconv.Atoi(s)
	})
	if !bad.Result().IsFailure() {
		t.Fatalf("expected failure for 'seven'")
	}
}

func TestEnsure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var seen []string
	onOK := func(ctx context.Context, v int) { seen = append(seen, "ok") }
	onErr := func(ctx context.Context, err error) { seen = append(seen, err.Error()) }

	FromValue(ctx, 1).Ensure(onOK, onErr)
	Start(ctx, rop.Fail[int](errors.New("bad"))).Ensure(onOK, onErr)
	FromValue(ctx, 1).Ensure(nil, nil)

	if len(seen) != 2 || seen[0] != "ok" || seen[1] != "bad" {
		t.Fatalf("unexpected side effects: %v", seen)
	}
}
