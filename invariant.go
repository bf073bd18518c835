package pgf

import "fmt"

// Invariant checks an internal consistency condition that must hold
// regardless of input — a programming error in this package, not a
// malformed grammar file. Malformed files are rejected through PgfError;
// invariant violations panic, the same way core/invariant does in the
// teacher codebase this package is grounded on.
func invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		panic("pgf: invariant violation: " + fmt.Sprintf(format, args...))
	}
}
