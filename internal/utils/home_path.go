package utils

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	homeShortcutConstant = "~"
)

// HomeDirectoryProvider resolves the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// ExpandHomePath replaces a leading "~" or "~/" in candidatePath with the home
// directory. Paths naming another user ("~alice/...") and lookup failures leave
// the input unchanged.
func ExpandHomePath(candidatePath string, provider HomeDirectoryProvider) string {
	if !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return candidatePath
	}

	remainder := strings.TrimPrefix(candidatePath, homeShortcutConstant)
	if len(remainder) > 0 && remainder[0] != '/' && remainder[0] != os.PathSeparator {
		return candidatePath
	}

	if provider == nil {
		provider = os.UserHomeDir
	}
	homeDirectory, lookupError := provider()
	if lookupError != nil || len(homeDirectory) == 0 {
		return candidatePath
	}

	return filepath.Join(homeDirectory, remainder)
}
