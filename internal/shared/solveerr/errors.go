// Package solveerr defines the closed set of failure kinds shared by the
// numeric kernel, the equation extractor and the solvers.
//
// Every failure surfaced by those packages is a *Error carrying a Kind and
// whatever structured context is known (operation, offending term, index).
// Callers match kinds with errors.Is against the package sentinels:
//
//	if errors.Is(err, solveerr.ErrSingular) {
//		// dependent system
//	}
package solveerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind uint8

const (
	KindUnknown Kind = iota
	InvalidCoefficientCount
	ZeroLeadingCoefficient
	DivisionByZero
	Singular
	ParseFailure
	NoSolution
	InfiniteSolutions
	UnsupportedSystem
)

var (
	ErrInvalidCoefficientCount = errors.New("solve: invalid coefficient count")
	ErrZeroLeadingCoefficient  = errors.New("solve: leading coefficient is zero")
	ErrDivisionByZero          = errors.New("solve: division by zero")
	ErrSingular                = errors.New("solve: singular system")
	ErrParseFailure            = errors.New("solve: malformed equation")
	ErrNoSolution              = errors.New("solve: no solution")
	ErrInfiniteSolutions       = errors.New("solve: infinitely many solutions")
	ErrUnsupportedSystem       = errors.New("solve: only 2x2 and 3x3 systems are supported")
)

var sentinels = map[Kind]error{
	InvalidCoefficientCount: ErrInvalidCoefficientCount,
	ZeroLeadingCoefficient:  ErrZeroLeadingCoefficient,
	DivisionByZero:          ErrDivisionByZero,
	Singular:                ErrSingular,
	ParseFailure:            ErrParseFailure,
	NoSolution:              ErrNoSolution,
	InfiniteSolutions:       ErrInfiniteSolutions,
	UnsupportedSystem:       ErrUnsupportedSystem,
}

// String returns the snake_case name used in API responses and metric labels.
func (k Kind) String() string {
	switch k {
	case InvalidCoefficientCount:
		return "invalid_coefficient_count"
	case ZeroLeadingCoefficient:
		return "zero_leading_coefficient"
	case DivisionByZero:
		return "division_by_zero"
	case Singular:
		return "singular"
	case ParseFailure:
		return "parse_failure"
	case NoSolution:
		return "no_solution"
	case InfiniteSolutions:
		return "infinite_solutions"
	case UnsupportedSystem:
		return "unsupported_system"
	default:
		return "unknown"
	}
}

// Sentinel returns the package-level error for k, or nil for KindUnknown.
func (k Kind) Sentinel() error {
	return sentinels[k]
}

// Error is a structured solver failure.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "SolveQuadratic"
	Term string // offending input text, if any
	// Index is the coefficient, row or equation position the failure refers to.
	// Negative when not applicable.
	Index int
	// Want and Got describe count mismatches.
	Want, Got int
	Err       error // underlying cause
}

// New returns an *Error of the given kind with no positional context.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op, Index: -1}
}

// Count reports a coefficient or equation count mismatch.
func Count(op string, want, got int) *Error {
	return &Error{Kind: InvalidCoefficientCount, Op: op, Index: -1, Want: want, Got: got}
}

// Parse reports a malformed term.
func Parse(op, term string, index int, cause error) *Error {
	return &Error{Kind: ParseFailure, Op: op, Term: term, Index: index, Err: cause}
}

// Wrap returns e with cause attached.
func (e *Error) Wrap(cause error) *Error {
	e.Err = cause
	return e
}

// At returns e with its positional index set.
func (e *Error) At(index int) *Error {
	e.Index = index
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if s := e.Kind.Sentinel(); s != nil {
		b.WriteString(strings.TrimPrefix(s.Error(), "solve: "))
	} else {
		b.WriteString("unknown failure")
	}
	if e.Kind == InvalidCoefficientCount && (e.Want != 0 || e.Got != 0) {
		fmt.Fprintf(&b, " (want %d, got %d)", e.Want, e.Got)
	}
	if e.Term != "" {
		fmt.Fprintf(&b, " in term %q", e.Term)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, " at index %d", e.Index)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.Sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
