// Package cli constructs the git-purge command-line application: the Cobra root
// command, the configuration loader, structured logging, usage-error handling and
// the optional pause before exit.
package cli
