// Package pgf implements the Portable Grammar Format (PGF) runtime: a
// binary decoder for compiled Grammatical Framework grammars, a query
// surface over the decoded abstract and concrete syntax, a linearizer that
// renders abstract trees to surface tokens, and a chart parser that
// recovers abstract trees from a token stream.
//
// The grammar is decoded once from a byte buffer and is immutable
// thereafter; every other operation in this package treats it as a shared,
// read-only reference and may be called concurrently from multiple
// goroutines. Parser state is not: each call to InitState owns its own
// chart and must not be shared across goroutines.
package pgf
