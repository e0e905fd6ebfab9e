package batch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ib-77/guarded/pkg/arith"
)

// Summary counts outcomes by kind.
type Summary struct {
	Total           int
	OK              int
	InvalidArgument int
	ParseFailure    int
	Cancelled       int
	Other           int
}

func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Cancelled:
			s.Cancelled++
		case o.Err == nil:
			s.OK++
		case arith.IsInvalidArgument(o.Err):
			s.InvalidArgument++
		case arith.IsParseFailure(o.Err):
			s.ParseFailure++
		default:
			s.Other++
		}
	}
	return s
}

// FirstFailure returns the first outcome, in input order, that did not succeed.
func FirstFailure(outcomes []Outcome) (Outcome, bool) {
	for _, o := range outcomes {
		if !o.OK() {
			return o, true
		}
	}
	return Outcome{}, false
}

func (s Summary) String() string {
	out := fmt.Sprintf("%d expressions: %d ok, %d invalid argument, %d parse failure, %d cancelled",
		s.Total, s.OK, s.InvalidArgument, s.ParseFailure, s.Cancelled)
	if s.Other > 0 {
		out += fmt.Sprintf(", %d other", s.Other)
	}
	return out
}

func summaryFields(s Summary) []zap.Field {
	return []zap.Field{
		zap.Int("total", s.Total),
		zap.Int("ok", s.OK),
		zap.Int("invalid_argument", s.InvalidArgument),
		zap.Int("parse_failure", s.ParseFailure),
		zap.Int("cancelled", s.Cancelled),
		zap.Int("other", s.Other),
	}
}
