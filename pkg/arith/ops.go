package arith

import (
	"context"
	"math"

	"github.com/ib-77/guarded/pkg/rop"
	"github.com/ib-77/guarded/pkg/rop/solo"
)

// SafePercent returns part as a whole-number percentage of whole, truncated
// toward zero. whole must be non-zero.
func SafePercent(part, whole int) (int, error) {
	return SafePercentResult(context.Background(), part, whole).Get()
}

// SafePercentResult is SafePercent as a rop.Result.
func SafePercentResult(ctx context.Context, part, whole int) rop.Result[int] {
	in := solo.ValidateAll(ctx, solo.Succeed(Pair[int]{A: part, B: whole}), true,
		Second(NonZero[int]("whole")),
		scalable("part"),
	)
	return solo.Map(ctx, in, func(_ context.Context, p Pair[int]) int {
		return (p.A * 100) / p.B
	})
}

// scalable rejects a first operand whose product with 100 would overflow int.
func scalable(name string) solo.Check[Pair[int]] {
	return func(_ context.Context, p Pair[int]) error {
		if p.A > math.MaxInt/100 || p.A < math.MinInt/100 {
			return InvalidArgumentf("%s * 100 overflows int", name)
		}
		return nil
	}
}

// Difference returns a - b. a must be >= b, so the result is never negative.
// A difference too large for int is rejected.
func Difference(a, b int) (int, error) {
	return DifferenceResult(context.Background(), a, b).Get()
}

// DifferenceResult is Difference as a rop.Result.
func DifferenceResult(ctx context.Context, a, b int) rop.Result[int] {
	in := solo.ValidateAll(ctx, solo.Succeed(Pair[int]{A: a, B: b}), true,
		Ordered[int]("a", "b"),
		subtractable("a", "b"),
	)
	return solo.Map(ctx, in, func(_ context.Context, p Pair[int]) int {
		return p.A - p.B
	})
}

// subtractable rejects a pair whose difference overflows int.
func subtractable(left, right string) solo.Check[Pair[int]] {
	return func(_ context.Context, p Pair[int]) error {
		if p.B < 0 && p.A > math.MaxInt+p.B {
			return InvalidArgumentf("%s - %s overflows int", left, right)
		}
		return nil
	}
}

// Quotient returns a / b truncated toward zero. b must be non-zero, and
// math.MinInt / -1 is rejected because it overflows.
func Quotient(a, b int) (int, error) {
	return QuotientResult(context.Background(), a, b).Get()
}

// QuotientResult is Quotient as a rop.Result.
func QuotientResult(ctx context.Context, a, b int) rop.Result[int] {
	in := solo.ValidateAll(ctx, solo.Succeed(Pair[int]{A: a, B: b}), true,
		Second(NonZero[int]("divisor")),
		divisible,
	)
	return solo.Map(ctx, in, func(_ context.Context, p Pair[int]) int {
		return p.A / p.B
	})
}

// divisible rejects the one int quotient that overflows.
var divisible solo.Check[Pair[int]] = func(_ context.Context, p Pair[int]) error {
	if p.A == math.MinInt && p.B == -1 {
		return InvalidArgumentf("%d / %d overflows int", p.A, p.B)
	}
	return nil
}

// SquareRoot returns the square root of x. x must be non-negative.
func SquareRoot(x float64) (float64, error) {
	return SquareRootResult(context.Background(), x).Get()
}

// SquareRootResult is SquareRoot as a rop.Result.
func SquareRootResult(ctx context.Context, x float64) rop.Result[float64] {
	return solo.Map(ctx, solo.Validate(ctx, x, NonNegative[float64]("x")), func(_ context.Context, v float64) float64 {
		return math.Sqrt(v)
	})
}

// CircleArea returns the area of a circle. radius must be non-negative.
func CircleArea(radius float64) (float64, error) {
	return CircleAreaResult(context.Background(), radius).Get()
}

// CircleAreaResult is CircleArea as a rop.Result.
func CircleAreaResult(ctx context.Context, radius float64) rop.Result[float64] {
	return solo.Map(ctx, solo.Validate(ctx, radius, NonNegative[float64]("radius")), func(_ context.Context, r float64) float64 {
		return math.Pi * r * r
	})
}

// CharAt returns the character at index in s, counting runes, not bytes.
func CharAt(s string, index int) (rune, error) {
	return CharAtResult(context.Background(), s, index).Get()
}

// CharAtResult is CharAt as a rop.Result.
func CharAtResult(ctx context.Context, s string, index int) rop.Result[rune] {
	runes := []rune(s)
	in := solo.Validate(ctx, index, InRange("index", 0, len(runes)))
	return solo.Map(ctx, in, func(_ context.Context, i int) rune {
		return runes[i]
	})
}
