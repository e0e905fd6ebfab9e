package solo

import (
	"context"
	"errors"

	"github.com/ib-77/guarded/pkg/rop"
)

// Check inspects a value and returns a non-nil error when it must not proceed.
type Check[T any] func(ctx context.Context, in T) error

func Succeed[T any](input T) rop.Result[T] {
	return rop.Success(input)
}

func Fail[T any](err error) rop.Result[T] {
	return rop.Fail[T](err)
}

func Cancel[T any](err error) rop.Result[T] {
	return rop.Cancel[T](err)
}

func Validate[T any](ctx context.Context, input T, check Check[T]) rop.Result[T] {
	return AndValidate(ctx, Succeed(input), check)
}

func AndValidate[T any](ctx context.Context, input rop.Result[T], check Check[T]) rop.Result[T] {
	if !input.IsSuccess() {
		return input
	}

	if err := check(ctx, input.Result()); err != nil {
		return rop.Fail[T](err)
	}
	return input
}

// ValidateAll runs every check against the value and joins the errors of the
// ones that fail. With breakOnError it stops at the first failing check.
func ValidateAll[T any](ctx context.Context, input rop.Result[T], breakOnError bool,
	checks ...Check[T]) rop.Result[T] {

	if !input.IsSuccess() {
		return input
	}

	var errs []error
	for _, check := range checks {
		if err := ctx.Err(); err != nil {
			return rop.Cancel[T](err)
		}

		if err := check(ctx, input.Result()); err != nil {
			errs = append(errs, err)
			if breakOnError {
				break
			}
		}
	}

	switch len(errs) {
	case 0:
		return input
	case 1:
		return rop.Fail[T](errs[0])
	default:
		return rop.Fail[T](errors.Join(errs...))
	}
}

func Switch[In any, Out any](ctx context.Context,
	input rop.Result[In],
	onSuccess func(ctx context.Context, r In) rop.Result[Out]) rop.Result[Out] {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Result())
	}
	return rop.CancelFrom[In, Out](input)
}

func Map[In any, Out any](ctx context.Context,
	input rop.Result[In],
	onSuccess func(ctx context.Context, r In) Out) rop.Result[Out] {

	if input.IsSuccess() {
		return rop.Success(onSuccess(ctx, input.Result()))
	}
	return rop.CancelFrom[In, Out](input)
}

func Tee[T any](ctx context.Context,
	input rop.Result[T],
	onSuccess func(ctx context.Context, r rop.Result[T])) rop.Result[T] {

	if input.IsSuccess() {
		onSuccess(ctx, input)
	}

	return input
}

func DoubleTee[T any](ctx context.Context, input rop.Result[T],
	onSuccess func(ctx context.Context, r T),
	onError func(ctx context.Context, err error),
	onCancel func(ctx context.Context, err error)) rop.Result[T] {

	switch {
	case input.IsSuccess():
		if onSuccess != nil {
			onSuccess(ctx, input.Result())
		}
	case input.IsCancel():
		if onCancel != nil {
			onCancel(ctx, input.Err())
		}
	default:
		if onError != nil {
			onError(ctx, input.Err())
		}
	}

	return input
}

// Try runs a (value, error) function on success. Context errors become a
// cancellation, anything else a failure.
func Try[In any, Out any](ctx context.Context, input rop.Result[In],
	onTryExecute func(ctx context.Context, r In) (Out, error)) rop.Result[Out] {

	if !input.IsSuccess() {
		return rop.CancelFrom[In, Out](input)
	}

	return rop.FromError(onTryExecute(ctx, input.Result()))
}

func FailOnError[T any](ctx context.Context, input rop.Result[T],
	maybeErr func(ctx context.Context, in T) error) rop.Result[T] {
	if input.IsSuccess() {
		if err := maybeErr(ctx, input.Result()); err != nil {
			return rop.Fail[T](err)
		}
	}
	return input
}

func Finally[In, Out any](ctx context.Context, input rop.Result[In],
	onSuccess func(ctx context.Context, r In) Out,
	onError func(ctx context.Context, err error) Out,
	onCancel func(ctx context.Context, err error) Out) Out {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Result())
	} else if input.IsCancel() {
		return onCancel(ctx, input.Err())
	} else {
		return onError(ctx, input.Err())
	}
}
