// Package expr compiles user-supplied expressions in z into complex
// functions.
//
// An expression is a Go expression of type complex128 (or convertible to
// it) in the variable z, for example
//
//	1 / z
//	cmplx.Exp(1 / z)
//	1i*z*z*z - 1
//	cmplx.Sqrt(z) * complex(math.Cos(real(z)), 0)
//
// Only the math and math/cmplx packages are visible to expressions; they
// are interpreted with yaegi, so no code is generated or loaded at run time.
package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

var (
	// ErrEmpty is returned for a blank expression.
	ErrEmpty = errors.New("empty expression")

	// ErrCompile wraps syntax and type errors reported by the interpreter.
	ErrCompile = errors.New("expression does not compile")

	// ErrNotFunction is returned when the compiled program does not yield a
	// func(complex128) complex128.
	ErrNotFunction = errors.New("expression is not a complex function")
)

// allowedPkgs are the stdlib packages expressions may use.
var allowedPkgs = []string{
	"math/math",
	"math/cmplx/cmplx",
}

const programTemplate = `package main

import (
	"math"
	"math/cmplx"
)

var _ = math.Pi
var _ = cmplx.Abs

func F(z complex128) complex128 {
	return complex128(%s)
}
`

// Function is a compiled expression.
type Function struct {
	// Source is the expression as given, trimmed of surrounding space.
	Source string

	fn func(complex128) complex128
}

// Call evaluates the expression at z. It panics if the expression does.
func (f *Function) Call(z complex128) complex128 {
	return f.fn(z)
}

// Func returns the compiled function.
func (f *Function) Func() func(complex128) complex128 {
	return f.fn
}

// Compile interprets expression as the body of func(z complex128) complex128.
func Compile(expression string) (*Function, error) {
	src := strings.TrimSpace(expression)
	if src == "" {
		return nil, ErrEmpty
	}
	// A newline or a closing brace could end the return statement early
	// and smuggle in further declarations.
	if strings.ContainsAny(src, "\n\r;{}") {
		return nil, fmt.Errorf("%w: expression must be a single Go expression", ErrCompile)
	}

	i := interp.New(interp.Options{})
	if err := i.Use(restrictedStdlib()); err != nil {
		return nil, fmt.Errorf("failed to load expression symbols: %w", err)
	}
	if _, err := i.Eval(fmt.Sprintf(programTemplate, src)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	v, err := i.Eval("F")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFunction, err)
	}
	fn, ok := v.Interface().(func(complex128) complex128)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotFunction, v.Type())
	}
	return &Function{Source: src, fn: fn}, nil
}

func restrictedStdlib() interp.Exports {
	restricted := interp.Exports{}
	for _, key := range allowedPkgs {
		if syms, ok := stdlib.Symbols[key]; ok {
			restricted[key] = syms
		}
	}
	return restricted
}
