// Package prompt reads operation arguments one line at a time and applies the
// caller-side recovery policies: re-prompt on malformed input, substitute a
// configured default when an operation rejects its arguments.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ib-77/guarded/pkg/arith"
)

// maxLineSize bounds one answer line.
const maxLineSize = 1 << 20

type Options struct {
	// MaxAttempts bounds re-prompting for one argument. Values below 1 mean 1.
	MaxAttempts int
	// Echo prints prompts even when the input is not a terminal.
	Echo bool
	// Default returns the fallback for an operation that fails with an
	// invalid argument. Nil disables substitution.
	Default func(op string) (string, bool)
	Logger  *zap.Logger
}

// Session is one interactive conversation over a line reader.
type Session struct {
	lines *bufio.Scanner
	out   io.Writer
	echo  bool
	opts  Options
	log   *zap.Logger
}

func New(in io.Reader, out io.Writer, opts Options) *Session {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	lines := bufio.NewScanner(in)
	lines.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Session{
		lines: lines,
		out:   out,
		echo:  opts.Echo || isTerminal(in),
		opts:  opts,
		log:   log,
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Answer is the outcome of Run.
type Answer struct {
	Value string
	// Substituted is set when Value is the configured default rather than a
	// computed result. Err then holds the rejected computation's error.
	Substituted bool
	Err         error
}

// Ask reads one line and checks it. Lines that fail with a ParseFailure are
// reported and asked for again, up to MaxAttempts. Other check errors are
// returned at once.
func (s *Session) Ask(ctx context.Context, label string, check func(string) error) (string, error) {
	var last error
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if s.echo {
			fmt.Fprintf(s.out, "%s: ", label)
		}
		if !s.lines.Scan() {
			if err := s.lines.Err(); err != nil {
				return "", fmt.Errorf("reading %s: %w", label, err)
			}
			if last != nil {
				return "", last
			}
			return "", io.EOF
		}

		line := s.lines.Text()
		err := check(line)
		if err == nil {
			return line, nil
		}
		if !arith.IsParseFailure(err) {
			return "", err
		}

		last = err
		s.log.Debug("rejected input", zap.String("label", label), zap.Int("attempt", attempt), zap.Error(err))
		fmt.Fprintf(s.out, "%s: %s, try again\n", label, arith.Message(err))
	}
	return "", fmt.Errorf("%s: giving up after %d attempts: %w", label, s.opts.MaxAttempts, last)
}

// Run asks for every argument of op and evaluates it. When op rejects the
// arguments with an invalid argument and a default is configured, the default
// is returned instead of the error.
func (s *Session) Run(ctx context.Context, op arith.Operation) (Answer, error) {
	if s.echo {
		fmt.Fprintln(s.out, op.Usage())
	}

	args := make([]string, 0, op.Arity())
	for _, a := range op.Args {
		v, err := s.Ask(ctx, a.Name, a.Check)
		if err != nil {
			return Answer{}, err
		}
		args = append(args, v)
	}

	v, err := op.Run(ctx, args...)
	if err == nil {
		return Answer{Value: v}, nil
	}
	if !arith.IsInvalidArgument(err) || s.opts.Default == nil {
		return Answer{}, err
	}

	fallback, ok := s.opts.Default(op.Name)
	if !ok {
		return Answer{}, err
	}
	s.log.Warn("substituting default", zap.String("operation", op.Name), zap.String("default", fallback), zap.Error(err))
	fmt.Fprintf(s.out, "%s, using default %s\n", arith.Message(err), fallback)
	return Answer{Value: fallback, Substituted: true, Err: err}, nil
}
