// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the CommandRunner abstraction that
// lets git-purge issue git operations in a testable manner.
package execshell
