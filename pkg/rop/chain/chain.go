package chain

import (
	"context"

	"github.com/ib-77/guarded/pkg/rop"
	"github.com/ib-77/guarded/pkg/rop/solo"
)

// Chain wraps a rop.Result with context to enable fluent chaining
type Chain[T any] struct {
	ctx    context.Context
	result rop.Result[T]
}

// Start creates a new chain from a rop.Result
func Start[T any](ctx context.Context, result rop.Result[T]) *Chain[T] {
	return &Chain[T]{
		ctx:    ctx,
		result: result,
	}
}

// FromValue creates a new chain from a successful value
func FromValue[T any](ctx context.Context, value T) *Chain[T] {
	return Start(ctx, rop.Success(value))
}

// FromTry starts a chain from a (value, error) pair
func FromTry[T any](ctx context.Context, value T, err error) *Chain[T] {
	return Start(ctx, rop.FromError(value, err))
}

// Result returns the underlying rop.Result
func (c *Chain[T]) Result() rop.Result[T] {
	return c.result
}

// Get unpacks the chain into (value, error)
func (c *Chain[T]) Get() (T, error) {
	return c.result.Get()
}

// Validate fails the chain when check returns an error
func (c *Chain[T]) Validate(check solo.Check[T]) *Chain[T] {
	return Start(c.ctx, solo.AndValidate(c.ctx, c.result, check))
}

// Then chains a function that returns rop.Result[U]
func Then[T, U any](c *Chain[T], onSuccess func(context.Context, T) rop.Result[U]) *Chain[U] {
	return Start(c.ctx, solo.Switch(c.ctx, c.result, onSuccess))
}

// ThenTry chains a function that returns (U, error)
func ThenTry[T, U any](c *Chain[T], tryOnSuccess func(context.Context, T) (U, error)) *Chain[U] {
	return Start(c.ctx, solo.Try(c.ctx, c.result, tryOnSuccess))
}

// Map chains a pure transformation function
func Map[T, U any](c *Chain[T], onSuccess func(context.Context, T) U) *Chain[U] {
	return Start(c.ctx, solo.Map(c.ctx, c.result, onSuccess))
}

// Ensure performs side effects without changing the result. Either callback may be nil.
func (c *Chain[T]) Ensure(onSuccess func(context.Context, T), onFailure func(context.Context, error)) *Chain[T] {
	solo.DoubleTee(c.ctx, c.result, onSuccess, onFailure, onFailure)
	return c
}

// Finally collapses the chain into a final value using solo.Finally
func Finally[T, U any](c *Chain[T], onSuccess func(context.Context, T) U, onFailure func(context.Context, error) U, onCancel func(context.Context, error) U) U {
	return solo.Finally(c.ctx, c.result, onSuccess, onFailure, onCancel)
}
