package lite

import (
	"context"
	"sync"

	"github.com/ib-77/guarded/pkg/rop"
	"github.com/ib-77/guarded/pkg/rop/core"
	"github.com/ib-77/guarded/pkg/rop/solo"
)

// Stage turns one input result into a channel that yields at most one output.
type Stage[In, Out any] func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out]

// FinallyHandlers collapse a result into a plain value at the end of a pipeline.
type FinallyHandlers[In, Out any] struct {
	OnSuccess func(ctx context.Context, r In) Out
	OnError   func(ctx context.Context, err error) Out
	OnCancel  func(ctx context.Context, err error) Out
}

func Run[T any](ctx context.Context, inputCh <-chan rop.Result[T], engine Stage[T, T], lines int) <-chan rop.Result[T] {
	return Turnout(ctx, inputCh, engine, lines)
}

// Turnout runs engine over inputCh on the given number of worker lines. Output
// order is not preserved when lines > 1. Lines below 1 fall back to the worker
// count stored in ctx, or 1.
func Turnout[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In], engine Stage[In, Out],
	lines int) <-chan rop.Result[Out] {
	return TurnoutWithHandlers(ctx, inputCh, engine, lines, core.CancellationHandlers[In, Out]{})
}

// TurnoutWithHandlers is Turnout with handlers that see what each line drops
// on cancel. The output closes only after every line, and so every handler,
// has returned.
func TurnoutWithHandlers[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In], engine Stage[In, Out],
	lines int, handlers core.CancellationHandlers[In, Out]) <-chan rop.Result[Out] {

	if lines < 1 {
		lines = core.GetWorkerMaxCount(ctx, 1)
	}

	out := make(chan rop.Result[Out])
	wg := &sync.WaitGroup{}

	for range lines {
		wg.Add(1)
		go core.Locomotive(ctx, inputCh, out, engine, handlers, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// lift runs f once on its own goroutine. The buffered channel lets the
// goroutine finish even if nobody reads the result after a cancel.
func lift[In, Out any](f func(ctx context.Context, input rop.Result[In]) rop.Result[Out]) Stage[In, Out] {
	return func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out] {
		out := make(chan rop.Result[Out], 1)
		go func() {
			defer close(out)
			if ctx.Err() != nil {
				return
			}
			out <- f(ctx, input)
		}()
		return out
	}
}

func Validate[T any](check solo.Check[T]) Stage[T, T] {
	return lift(func(ctx context.Context, input rop.Result[T]) rop.Result[T] {
		return solo.AndValidate(ctx, input, check)
	})
}

func Switch[In, Out any](switchOnSuccess func(ctx context.Context, r In) rop.Result[Out]) Stage[In, Out] {
	return lift(func(ctx context.Context, input rop.Result[In]) rop.Result[Out] {
		return solo.Switch(ctx, input, switchOnSuccess)
	})
}

func Map[In, Out any](mapOnSuccess func(ctx context.Context, r In) Out) Stage[In, Out] {
	return lift(func(ctx context.Context, input rop.Result[In]) rop.Result[Out] {
		return solo.Map(ctx, input, mapOnSuccess)
	})
}

func Try[In, Out any](onTryExecute func(ctx context.Context, r In) (Out, error)) Stage[In, Out] {
	return lift(func(ctx context.Context, input rop.Result[In]) rop.Result[Out] {
		return solo.Try(ctx, input, onTryExecute)
	})
}

func Tee[T any](sideEffect func(ctx context.Context, r rop.Result[T])) Stage[T, T] {
	return lift(func(ctx context.Context, input rop.Result[T]) rop.Result[T] {
		return solo.Tee(ctx, input, sideEffect)
	})
}

// Finally maps every result from input through handlers until input closes or
// ctx is cancelled.
func Finally[In, Out any](ctx context.Context, input <-chan rop.Result[In], handlers FinallyHandlers[In, Out]) <-chan Out {
	out := make(chan Out)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case r, ok := <-input:
				if !ok {
					return
				}

				select {
				case out <- solo.Finally(ctx, r, handlers.OnSuccess, handlers.OnError, handlers.OnCancel):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
