package purge

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/gitpurge/internal/execshell"
)

const (
	branchNotFoundMessageConstant         = "branch not found"
	divergedErrorTemplateConstant         = "local branch %s behind by %d commits, ahead by %d commits"
	unparsableComparisonTemplateConstant  = "%w: unexpected comparison output %q"
	comparisonUnavailableTemplateConstant = "%w: %w"
	comparisonFieldSeparatorConstant      = "\t"
	comparisonFieldCountConstant          = 2
	gitRevListSubcommandConstant          = "rev-list"
	gitLeftRightFlagConstant              = "--left-right"
	gitCountFlagConstant                  = "--count"
	symmetricDifferenceTemplateConstant   = "%s...%s"
)

// ErrBranchNotFound indicates that the branch or its remote-tracking ref could not be compared.
var ErrBranchNotFound = errors.New(branchNotFoundMessageConstant)

// SyncStatus counts commits the local branch lacks (Behind) and has in excess (Ahead)
// relative to its remote-tracking ref.
type SyncStatus struct {
	Behind int
	Ahead  int
}

// Synchronized reports whether both sides point at identical history.
func (status SyncStatus) Synchronized() bool {
	return status.Behind == 0 && status.Ahead == 0
}

// DivergedError reports a branch whose history differs from its remote-tracking ref.
type DivergedError struct {
	Branch string
	Status SyncStatus
}

// Error describes the branch and its behind/ahead counts.
func (diverged DivergedError) Error() string {
	return fmt.Sprintf(divergedErrorTemplateConstant, diverged.Branch, diverged.Status.Behind, diverged.Status.Ahead)
}

// ParseSyncStatus parses "<behind>\t<ahead>" as printed by rev-list --left-right --count.
// Anything else yields an error wrapping ErrBranchNotFound.
func ParseSyncStatus(output string) (SyncStatus, error) {
	fields := strings.Split(strings.TrimRight(output, "\r\n"), comparisonFieldSeparatorConstant)
	if len(fields) != comparisonFieldCountConstant {
		return SyncStatus{}, fmt.Errorf(unparsableComparisonTemplateConstant, ErrBranchNotFound, output)
	}

	counts := make([]int, 0, comparisonFieldCountConstant)
	for _, field := range fields {
		count, parseError := strconv.Atoi(strings.TrimSpace(field))
		if parseError != nil || count < 0 {
			return SyncStatus{}, fmt.Errorf(unparsableComparisonTemplateConstant, ErrBranchNotFound, output)
		}
		counts = append(counts, count)
	}

	return SyncStatus{Behind: counts[0], Ahead: counts[1]}, nil
}

// SyncChecker compares a local branch with its remote-tracking ref.
type SyncChecker struct {
	executor         GitExecutor
	workingDirectory string
}

// NewSyncChecker constructs a SyncChecker that runs git in workingDirectory,
// or in the current directory when it is empty.
func NewSyncChecker(executor GitExecutor, workingDirectory string) (*SyncChecker, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &SyncChecker{executor: executor, workingDirectory: workingDirectory}, nil
}

// ComparisonArguments returns the git arguments comparing the remote-tracking ref with the branch.
func ComparisonArguments(configuration Configuration) []string {
	return []string{
		gitRevListSubcommandConstant,
		gitLeftRightFlagConstant,
		gitCountFlagConstant,
		fmt.Sprintf(symmetricDifferenceTemplateConstant, configuration.RemoteTrackingReference(), configuration.Branch),
	}
}

// Check runs the comparison and parses its combined output. A failed invocation
// is not an error on its own: its output simply fails to parse.
func (checker *SyncChecker) Check(executionContext context.Context, configuration Configuration) (SyncStatus, error) {
	result, executionError := checker.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        ComparisonArguments(configuration),
		WorkingDirectory: checker.workingDirectory,
	})

	combinedOutput := result.CombinedOutput()
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if !errors.As(executionError, &commandFailure) {
			return SyncStatus{}, fmt.Errorf(comparisonUnavailableTemplateConstant, ErrBranchNotFound, executionError)
		}
		combinedOutput = commandFailure.Result.CombinedOutput()
	}

	return ParseSyncStatus(combinedOutput)
}
