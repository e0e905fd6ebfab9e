package arith

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmgilman/go/errors"

	"github.com/ib-77/guarded/pkg/rop"
	"github.com/ib-77/guarded/pkg/rop/chain"
)

// Kind is the textual type of an operation argument.
type Kind int

const (
	Int   Kind = iota // base-10 integer
	Float             // 64-bit float
	Text              // any string
)

// Arg names one operation argument and how it is read.
type Arg struct {
	Name string
	Kind Kind
}

// Check reports a ParseFailure when s cannot be read as the argument's kind.
func (a Arg) Check(s string) error {
	var err error
	switch a.Kind {
	case Int:
		_, err = ParseInt(s)
	case Float:
		_, err = ParseFloat(s)
	}
	return err
}

// Operation is a named, text-driven entry point to one validated operation.
type Operation struct {
	Name    string
	Args    []Arg
	Summary string
	eval    func(ctx context.Context, args []string) rop.Result[string]
}

// Arity is the number of arguments the operation takes.
func (o Operation) Arity() int {
	return len(o.Args)
}

// Usage renders "name <arg> <arg>".
func (o Operation) Usage() string {
	var b strings.Builder
	b.WriteString(o.Name)
	for _, a := range o.Args {
		b.WriteString(" <")
		b.WriteString(a.Name)
		b.WriteString(">")
	}
	return b.String()
}

// Eval checks the argument count, parses the arguments and runs the
// operation, rendering the value as text.
func (o Operation) Eval(ctx context.Context, args []string) rop.Result[string] {
	if len(args) != o.Arity() {
		return rop.Fail[string](errors.WithContext(
			InvalidArgumentf("%s takes %d argument(s), got %d", o.Name, o.Arity(), len(args)),
			"usage", o.Usage()))
	}
	return o.eval(ctx, args)
}

// Run is Eval unpacked to (value, error).
func (o Operation) Run(ctx context.Context, args ...string) (string, error) {
	return o.Eval(ctx, args).Get()
}

var operations = []Operation{
	{
		Name:    "percent",
		Args:    []Arg{{"part", Int}, {"whole", Int}},
		Summary: "part as a whole-number percentage of whole",
		eval:    binaryInt("part", "whole", SafePercentResult),
	},
	{
		Name:    "difference",
		Args:    []Arg{{"a", Int}, {"b", Int}},
		Summary: "a - b, requires a >= b",
		eval:    binaryInt("a", "b", DifferenceResult),
	},
	{
		Name:    "quotient",
		Args:    []Arg{{"a", Int}, {"b", Int}},
		Summary: "a / b truncated toward zero, requires b != 0",
		eval:    binaryInt("a", "b", QuotientResult),
	},
	{
		Name:    "sqrt",
		Args:    []Arg{{"x", Float}},
		Summary: "square root, requires x >= 0",
		eval:    unaryFloat("x", SquareRootResult),
	},
	{
		Name:    "area",
		Args:    []Arg{{"radius", Float}},
		Summary: "area of a circle, requires radius >= 0",
		eval:    unaryFloat("radius", CircleAreaResult),
	},
	{
		Name:    "charat",
		Args:    []Arg{{"text", Text}, {"index", Int}},
		Summary: "character of text at a zero-based index",
		eval: func(ctx context.Context, args []string) rop.Result[string] {
			idx := chain.ThenTry(chain.FromValue(ctx, args[1]), parseArg("index", ParseInt))
			return chain.Map(
				chain.Then(idx, func(ctx context.Context, i int) rop.Result[rune] {
					return CharAtResult(ctx, args[0], i)
				}),
				func(_ context.Context, r rune) string { return string(r) },
			).Result()
		},
	},
}

// Operations lists every operation in a stable order.
func Operations() []Operation {
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}

// Lookup finds an operation by name, ignoring case.
func Lookup(name string) (Operation, bool) {
	for _, op := range operations {
		if strings.EqualFold(op.Name, strings.TrimSpace(name)) {
			return op, true
		}
	}
	return Operation{}, false
}

// Eval parses a line of the form "op arg..." and evaluates it.
func Eval(ctx context.Context, line string) rop.Result[string] {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return rop.Fail[string](InvalidArgument("empty expression"))
	}
	op, ok := Lookup(fields[0])
	if !ok {
		return rop.Fail[string](errors.WithContext(
			InvalidArgumentf("unknown operation %q", fields[0]), "operation", fields[0]))
	}
	return op.Eval(ctx, fields[1:])
}

func parseArg[T any](name string, parse func(string) (T, error)) func(context.Context, string) (T, error) {
	return func(_ context.Context, s string) (T, error) {
		v, err := parse(s)
		if err != nil {
			return v, errors.WithContext(err, "arg", name)
		}
		return v, nil
	}
}

func binaryInt(first, second string, f func(ctx context.Context, a, b int) rop.Result[int]) func(context.Context, []string) rop.Result[string] {
	return func(ctx context.Context, args []string) rop.Result[string] {
		a, err := parseArg(first, ParseInt)(ctx, args[0])
		if err != nil {
			return rop.Fail[string](err)
		}
		b, err := parseArg(second, ParseInt)(ctx, args[1])
		if err != nil {
			return rop.Fail[string](err)
		}
		return chain.Map(chain.Start(ctx, f(ctx, a, b)), func(_ context.Context, v int) string {
			return strconv.Itoa(v)
		}).Result()
	}
}

func unaryFloat(name string, f func(ctx context.Context, x float64) rop.Result[float64]) func(context.Context, []string) rop.Result[string] {
	return func(ctx context.Context, args []string) rop.Result[string] {
		c := chain.ThenTry(chain.FromValue(ctx, args[0]), parseArg(name, ParseFloat))
		return chain.Map(chain.Then(c, f), func(_ context.Context, v float64) string {
			return FormatFloat(v)
		}).Result()
	}
}

// FormatFloat renders v with the fewest digits that round-trip.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String is the usage line followed by the summary, as listed by "guarded ops".
func (o Operation) String() string {
	return fmt.Sprintf("%-28s %s", o.Usage(), o.Summary)
}
