package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/ib-77/guarded/pkg/rop"
)

func TestToChanManyResults_FromChanMany(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()

	got := FromChanMany(ctx, ToChanManyResults(ctx, []int{1, 2, 3}))

	assert.Len(t, got, 3)
	for i, r := range got {
		assert.True(t, r.IsSuccess())
		assert.Equal(t, i+1, r.Result())
	}
}

func TestToChanFromArgsResults_StartFail(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var notSent []int
	in := ToChanManyResultsWithHandlers(ctx, ToChanHandlers[int]{
		OnStartFail: func(ctx context.Context, input []int) { notSent = input },
	}, []int{1, 2})

	_, open := <-in
	assert.False(t, open)
	assert.Equal(t, []int{1, 2}, notSent)
}

func TestToChanFromArgsResults_Break(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())

	rest := make(chan []int, 1)
	in := ToChanManyResultsWithHandlers(ctx, ToChanHandlers[int]{
		OnBreak: func(ctx context.Context, r []int) { rest <- r },
	}, []int{1, 2, 3})

	first := <-in
	assert.Equal(t, 1, first.Result())
	cancel()

	r := <-rest
	assert.NotEmpty(t, r)
	assert.Equal(t, 3, r[len(r)-1])
	for range in {
	}
}

func TestFromChanFirstOrDefault(t *testing.T) {
	ctx := context.Background()

	ch := make(chan int, 1)
	ch <- 9
	assert.Equal(t, 9, FromChanFirstOrDefault(ctx, ch, -1))

	close(ch)
	assert.Equal(t, -1, FromChanFirstOrDefault(ctx, ch, -1))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Equal(t, -1, FromChanFirstOrDefault(cancelled, make(chan int), -1))
}

func TestWorkerOptions(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, 4, GetWorkerMaxCount(ctx, 4))
	assert.Equal(t, 2, GetWorkerMaxCount(WithWorkerOptions(ctx, 2), 4))
	assert.Equal(t, 4, GetWorkerMaxCount(WithWorkerOptions(ctx, 0), 4))
}

func TestLocomotive_ForwardsEngineOutput(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()

	out := make(chan rop.Result[int], 3)
	wg := &sync.WaitGroup{}
	wg.Add(1)

	double := func(ctx context.Context, in rop.Result[int]) <-chan rop.Result[int] {
		ch := make(chan rop.Result[int], 1)
		ch <- rop.Success(in.Result() * 2)
		close(ch)
		return ch
	}

	Locomotive(ctx, ToChanManyResults(ctx, []int{1, 2, 3}), out, double,
		CancellationHandlers[int, int]{}, wg)
	wg.Wait()
	close(out)

	sum := 0
	for r := range out {
		sum += r.Result()
	}
	assert.Equal(t, 12, sum)
}

func TestLocomotive_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cancelled := false
	wg := &sync.WaitGroup{}
	wg.Add(1)
	Locomotive(ctx, make(chan rop.Result[int]), make(chan rop.Result[int]),
		func(ctx context.Context, in rop.Result[int]) <-chan rop.Result[int] { return nil },
		CancellationHandlers[int, int]{
			OnCancel: func(ctx context.Context, _ <-chan rop.Result[int], _ chan<- rop.Result[int]) {
				cancelled = true
			},
		}, wg)
	wg.Wait()

	assert.True(t, cancelled)
}

func TestLocomotive_ReportsTakenInputOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan rop.Result[int], 1)
	input <- rop.Success(7)
	close(input)

	// the engine cancels and never yields, so the taken input is unprocessed
	engine := func(ctx context.Context, in rop.Result[int]) <-chan rop.Result[int] {
		cancel()
		return make(chan rop.Result[int])
	}

	var unprocessed []int
	stopped := 0
	wg := &sync.WaitGroup{}
	wg.Add(1)
	Locomotive(ctx, input, make(chan rop.Result[int]), engine, CancellationHandlers[int, int]{
		OnCancelUnprocessed: func(ctx context.Context, in rop.Result[int], _ chan<- rop.Result[int]) {
			unprocessed = append(unprocessed, in.Result())
		},
		OnCancel: func(ctx context.Context, _ <-chan rop.Result[int], _ chan<- rop.Result[int]) {
			stopped++
		},
	}, wg)
	wg.Wait()

	assert.Equal(t, []int{7}, unprocessed)
	assert.Equal(t, 1, stopped)
}

func TestLocomotive_ReportsUndeliveredOutputOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan rop.Result[int], 1)
	input <- rop.Success(3)
	close(input)

	engine := func(ctx context.Context, in rop.Result[int]) <-chan rop.Result[int] {
		ch := make(chan rop.Result[int], 1)
		ch <- rop.Success(in.Result() * 10)
		close(ch)
		cancel()
		return ch
	}

	// nobody reads outCh; the input is reported by exactly one handler,
	// with its output when the engine had yielded first
	var taken, processed []int
	wg := &sync.WaitGroup{}
	wg.Add(1)
	Locomotive(ctx, input, make(chan rop.Result[int]), engine, CancellationHandlers[int, int]{
		OnCancelUnprocessed: func(ctx context.Context, in rop.Result[int], _ chan<- rop.Result[int]) {
			taken = append(taken, in.Result())
		},
		OnCancelProcessed: func(ctx context.Context, in, out rop.Result[int], _ chan<- rop.Result[int]) {
			taken = append(taken, in.Result())
			processed = append(processed, out.Result())
		},
	}, wg)
	wg.Wait()

	assert.Equal(t, []int{3}, taken)
	if len(processed) > 0 {
		assert.Equal(t, []int{30}, processed)
	}
}
