package purge

import (
	"go.uber.org/zap"

	"github.com/temirov/gitpurge/internal/execshell"
	"github.com/temirov/gitpurge/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable logging attaches a console observer describing each git step.
func ResolveGitExecutor(existing GitExecutor, logger *zap.Logger, humanReadableLogging bool) (GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if creationError != nil {
		return nil, creationError
	}
	if humanReadableLogging {
		return shellExecutor.WithObserver(ui.NewConsoleCommandEventLogger(logger)), nil
	}
	return shellExecutor, nil
}
