package common

import "fmt"

// Assert checks a condition and panics if it is false.
//
// Use it for invariants that the code itself guarantees (a plan node never
// holds more than two children, a linearization covers every node). Conditions
// that depend on user input, such as a malformed EXPLAIN document, return a
// QEPError instead.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
