package core

import (
	"context"
	"sync"

	"github.com/ib-77/guarded/pkg/rop"
)

// CancellationHandlers let a caller account for work a worker line drops when
// ctx is cancelled. Every field is optional.
type CancellationHandlers[In, Out any] struct {
	// OnCancel runs once when the line stops on cancel. inputCh may still
	// hold values the producer has not given up on yet.
	OnCancel func(ctx context.Context, inputCh <-chan rop.Result[In], outCh chan<- rop.Result[Out])
	// OnCancelUnprocessed gets an input the line took but whose engine had not
	// yielded yet.
	OnCancelUnprocessed func(ctx context.Context, unprocessed rop.Result[In], outCh chan<- rop.Result[Out])
	// OnCancelProcessed gets an input together with the output that could not
	// be delivered.
	OnCancelProcessed func(ctx context.Context, in rop.Result[In], processed rop.Result[Out], outCh chan<- rop.Result[Out])
}

func (h CancellationHandlers[In, Out]) stop(ctx context.Context, inputCh <-chan rop.Result[In], outCh chan<- rop.Result[Out]) {
	if h.OnCancel != nil {
		h.OnCancel(ctx, inputCh, outCh)
	}
}

func (h CancellationHandlers[In, Out]) unprocessed(ctx context.Context, in rop.Result[In],
	inputCh <-chan rop.Result[In], outCh chan<- rop.Result[Out]) {
	if h.OnCancelUnprocessed != nil {
		h.OnCancelUnprocessed(ctx, in, outCh)
	}
	h.stop(ctx, inputCh, outCh)
}

// Locomotive drives one worker line: it pulls results from inputCh, runs the
// engine on each and forwards what the engine yields to outCh. It returns when
// inputCh is closed or ctx is cancelled, and calls wg.Done on exit.
//
// An engine that closes its channel without yielding drops that input. If ctx
// is cancelled by then, the input counts as unprocessed.
func Locomotive[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In], outCh chan<- rop.Result[Out],
	engine func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out],
	handlers CancellationHandlers[In, Out], wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		var in rop.Result[In]
		select {
		case <-ctx.Done():
			handlers.stop(ctx, inputCh, outCh)
			return
		case r, ok := <-inputCh:
			if !ok {
				return
			}
			in = r
		}

		var processed rop.Result[Out]
		select {
		case <-ctx.Done():
			handlers.unprocessed(ctx, in, inputCh, outCh)
			return
		case r, yielded := <-engine(ctx, in):
			if !yielded && ctx.Err() != nil {
				handlers.unprocessed(ctx, in, inputCh, outCh)
				return
			}
			if !yielded {
				continue
			}
			processed = r
		}

		select {
		case <-ctx.Done():
			if handlers.OnCancelProcessed != nil {
				handlers.OnCancelProcessed(ctx, in, processed, outCh)
			}
			handlers.stop(ctx, inputCh, outCh)
			return
		case outCh <- processed:
		}
	}
}
