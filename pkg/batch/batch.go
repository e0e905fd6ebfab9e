package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ib-77/guarded/pkg/arith"
	"github.com/ib-77/guarded/pkg/rop"
	"github.com/ib-77/guarded/pkg/rop/core"
	"github.com/ib-77/guarded/pkg/rop/lite"
)

const DefaultWorkers = 4

type Options struct {
	// Workers is the number of concurrent evaluation lines. Values below 1
	// fall back to the count stored in the context, then DefaultWorkers.
	Workers int
	Logger  *zap.Logger
}

// Outcome is the evaluation of one input line.
type Outcome struct {
	Index     int // 1-based line number in the input
	Line      string
	Value     string
	Err       error
	Cancelled bool
}

func (o Outcome) OK() bool {
	return o.Err == nil && !o.Cancelled
}

func (o Outcome) String() string {
	switch {
	case o.Cancelled:
		return fmt.Sprintf("%d\t%s\tcancelled", o.Index, o.Line)
	case o.Err != nil:
		return fmt.Sprintf("%d\t%s\terror: %s", o.Index, o.Line, arith.Message(o.Err))
	default:
		return fmt.Sprintf("%d\t%s\t%s", o.Index, o.Line, o.Value)
	}
}

type job struct {
	index int
	line  string
}

// Evaluate runs every expression line through arith.Eval on concurrent worker
// lines and returns the outcomes in input order. Blank lines and lines
// starting with '#' are skipped. A failing line does not stop the others;
// lines not evaluated before ctx is cancelled come back Cancelled.
func Evaluate(ctx context.Context, lines []string, opts Options) []Outcome {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = core.GetWorkerMaxCount(ctx, DefaultWorkers)
	}

	jobs := make([]job, 0, len(lines))
	for i, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		jobs = append(jobs, job{index: i + 1, line: l})
	}
	logger.Debug("evaluating batch", zap.Int("expressions", len(jobs)), zap.Int("workers", workers))

	var mu sync.Mutex
	done := make(map[int]Outcome, len(jobs))
	record := func(outcomes ...Outcome) {
		mu.Lock()
		defer mu.Unlock()
		for _, o := range outcomes {
			done[o.Index] = o
		}
	}
	cancelled := func(ctx context.Context, js ...job) {
		outcomes := make([]Outcome, len(js))
		for i, j := range js {
			outcomes[i] = Outcome{Index: j.index, Line: j.line, Err: ctx.Err(), Cancelled: true}
		}
		record(outcomes...)
	}

	feed := core.ToChanManyResultsWithHandlers(ctx, core.ToChanHandlers[job]{
		OnStartFail: func(ctx context.Context, all []job) {
			cancelled(ctx, all...)
		},
		OnBreak: func(ctx context.Context, rest []job) {
			logger.Warn("batch interrupted", zap.Int("undispatched", len(rest)), zap.Error(ctx.Err()))
			cancelled(ctx, rest...)
		},
	}, jobs)

	evaluate := lite.Map(func(ctx context.Context, j job) Outcome {
		r := arith.Eval(ctx, j.line)
		o := Outcome{Index: j.index, Line: j.line, Value: r.Result(), Err: r.Err(), Cancelled: r.IsCancel()}
		if !o.OK() {
			logger.Debug("expression failed", zap.Int("line", j.index), zap.Error(o.Err))
		}
		return o
	})

	// Lines a worker had taken when ctx was cancelled: evaluated ones keep
	// their outcome, the rest are cancelled. OnCancel drains the feed until
	// the producer closes it.
	results := lite.TurnoutWithHandlers(ctx, feed, evaluate, workers, core.CancellationHandlers[job, Outcome]{
		OnCancel: func(ctx context.Context, inputCh <-chan rop.Result[job], _ chan<- rop.Result[Outcome]) {
			for r := range inputCh {
				cancelled(ctx, r.Result())
			}
		},
		OnCancelUnprocessed: func(ctx context.Context, in rop.Result[job], _ chan<- rop.Result[Outcome]) {
			cancelled(ctx, in.Result())
		},
		OnCancelProcessed: func(ctx context.Context, in rop.Result[job], pr rop.Result[Outcome], _ chan<- rop.Result[Outcome]) {
			if o, ok := outcomeOf(pr); ok {
				record(o)
				return
			}
			cancelled(ctx, in.Result())
		},
	})

	for _, r := range core.FromChanMany(ctx, results) {
		if o, ok := outcomeOf(r); ok {
			record(o)
		}
	}
	// after a cancel, wait for every line to stop so its handlers have run
	for r := range results {
		if o, ok := outcomeOf(r); ok {
			record(o)
		}
	}

	out := make([]Outcome, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, done[j.index])
	}

	logger.Info("batch finished", summaryFields(Summarize(out))...)
	return out
}

func outcomeOf(r rop.Result[Outcome]) (Outcome, bool) {
	if !r.IsSuccess() {
		return Outcome{}, false
	}
	return r.Result(), true
}

// MaxLineSize is the longest input line ReadLines accepts.
const MaxLineSize = 1 << 20

// ReadLines splits r into lines. A line longer than MaxLineSize is an error.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading expressions: %w", err)
	}
	return lines, nil
}
