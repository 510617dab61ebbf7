// Package pause holds the process open until the operator presses enter when
// the invocation asked for it.
package pause
