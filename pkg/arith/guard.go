package arith

import (
	"cmp"
	"context"
	"math"

	"github.com/ib-77/guarded/pkg/rop/solo"
)

// Number is the set of argument types the preconditions accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// NonZero requires the named argument to differ from zero.
func NonZero[T Number](name string) solo.Check[T] {
	return func(_ context.Context, v T) error {
		if v == 0 {
			return InvalidArgumentf("%s must be non-zero", name)
		}
		return nil
	}
}

// NonNegative requires the named argument to be >= 0. NaN is rejected.
func NonNegative[T Number](name string) solo.Check[T] {
	return func(_ context.Context, v T) error {
		if isNaN(v) || v < 0 {
			return InvalidArgumentf("%s must be non-negative", name)
		}
		return nil
	}
}

// Ordered requires left >= right on a pair. Equal values pass.
func Ordered[T cmp.Ordered](left, right string) solo.Check[Pair[T]] {
	return func(_ context.Context, p Pair[T]) error {
		if p.A < p.B {
			return InvalidArgumentf("%s must be >= %s", left, right)
		}
		return nil
	}
}

// InRange requires lo <= v < hi.
func InRange(name string, lo, hi int) solo.Check[int] {
	return func(_ context.Context, v int) error {
		if v < lo || v >= hi {
			return InvalidArgumentf("%s %d out of range [%d, %d)", name, v, lo, hi)
		}
		return nil
	}
}

// Pair holds the two operands of a binary operation.
type Pair[T any] struct {
	A, B T
}

// Second lifts a check on the second operand to the pair.
func Second[T any](check solo.Check[T]) solo.Check[Pair[T]] {
	return func(ctx context.Context, p Pair[T]) error {
		return check(ctx, p.B)
	}
}

func isNaN[T Number](v T) bool {
	return math.IsNaN(float64(v))
}
