package thompson_test

import (
	"errors"
	"fmt"

	"github.com/coregx/thompson"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	a, err := thompson.Compile(`(ab|cd)*e{1,3}`)
	if err != nil {
		panic(err)
	}

	fmt.Println(a.Matches("abcdee"))
	fmt.Println(a.Matches("abcdeeee"))
	// Output:
	// true
	// false
}

// ExampleMustCompile demonstrates panic-on-error compilation.
func ExampleMustCompile() {
	a := thompson.MustCompile(`[a-c]+`)
	fmt.Println(a.Matches("abc"), a.Matches("abd"))
	// Output: true false
}

// ExampleCompile_error shows the single error kind for malformed patterns.
func ExampleCompile_error() {
	_, err := thompson.Compile("a|*")
	fmt.Println(errors.Is(err, thompson.ErrInvalidExpression))
	fmt.Println(err)
	// Output:
	// true
	// compiling "a|*": invalid expression at offset 2: missing operand for *
}

// ExampleCompileWithConfig demonstrates the legacy '.' behavior.
func ExampleCompileWithConfig() {
	config := thompson.DefaultConfig()
	config.LegacyDot = true

	a, err := thompson.CompileWithConfig("a.c", config)
	if err != nil {
		panic(err)
	}
	fmt.Println(a.Matches("ac"), a.Matches("abc"))
	// Output: true false
}
