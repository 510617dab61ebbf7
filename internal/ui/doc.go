// Package ui renders command lifecycle events as human-readable console lines.
//
// It is attached to the shell executor when console log formatting is selected,
// so users watching a purge see each git step described in plain language while
// structured telemetry keeps flowing through the diagnostic logger.
package ui
