// Package batch evaluates many "op arg..." expression lines concurrently and
// reports one Outcome per line, in input order.
package batch
