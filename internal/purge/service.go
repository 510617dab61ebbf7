package purge

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/gitpurge/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant = "git executor not configured"
	syncStatusMessageConstant         = "compared branch with remote-tracking ref"
	purgeCompletedMessageConstant     = "purge operations issued"
	dryRunMessageConstant             = "dry run; purge operations not issued"
	logFieldBranchConstant            = "branch"
	logFieldRemoteConstant            = "remote"
	logFieldBehindConstant            = "behind"
	logFieldAheadConstant             = "ahead"
	logFieldFailedOperationsConstant  = "failed_operations"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// GitExecutor is the subset of shell execution used by the purge.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ServiceDependencies enumerates collaborators required by the service.
// WorkingDirectory is the repository git runs in; empty means the current directory.
// OperationOutput and OperationErrorOutput receive the live output of the purge operations.
type ServiceDependencies struct {
	GitExecutor          GitExecutor
	Logger               *zap.Logger
	WorkingDirectory     string
	OperationOutput      io.Writer
	OperationErrorOutput io.Writer
}

// Outcome describes what a purge did.
type Outcome struct {
	Configuration Configuration
	Status        SyncStatus
	Operations    []Operation
	Results       []OperationResult
}

// FailedOperations counts operations that did not complete successfully.
func (outcome Outcome) FailedOperations() int {
	failed := 0
	for _, result := range outcome.Results {
		if result.Err != nil || result.ExitCode != 0 {
			failed++
		}
	}
	return failed
}

// Service coordinates the sync check and the purge operations.
type Service struct {
	checker  *SyncChecker
	executor *Executor
	logger   *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	checker, checkerError := NewSyncChecker(dependencies.GitExecutor, dependencies.WorkingDirectory)
	if checkerError != nil {
		return nil, checkerError
	}

	executor, executorError := NewExecutor(dependencies.GitExecutor, logger, ExecutorSettings{
		WorkingDirectory: dependencies.WorkingDirectory,
		Output:           dependencies.OperationOutput,
		ErrorOutput:      dependencies.OperationErrorOutput,
	})
	if executorError != nil {
		return nil, executorError
	}

	return &Service{checker: checker, executor: executor, logger: logger}, nil
}

// Purge compares the branch with its remote-tracking ref and, when both match,
// issues the purge operations. It returns an error wrapping ErrBranchNotFound or
// a DivergedError when the precondition does not hold; individual operation
// failures are reported through Outcome.Results instead.
func (service *Service) Purge(executionContext context.Context, configuration Configuration) (Outcome, error) {
	resolvedConfiguration := configuration.WithDefaults()
	outcome := Outcome{Configuration: resolvedConfiguration}

	status, checkError := service.checker.Check(executionContext, resolvedConfiguration)
	if checkError != nil {
		return outcome, checkError
	}
	outcome.Status = status

	service.logger.Debug(
		syncStatusMessageConstant,
		zap.String(logFieldBranchConstant, resolvedConfiguration.Branch),
		zap.String(logFieldRemoteConstant, resolvedConfiguration.Remote),
		zap.Int(logFieldBehindConstant, status.Behind),
		zap.Int(logFieldAheadConstant, status.Ahead),
	)

	if !status.Synchronized() {
		return outcome, DivergedError{Branch: resolvedConfiguration.Branch, Status: status}
	}

	outcome.Operations = PlanOperations(resolvedConfiguration)
	if resolvedConfiguration.DryRun {
		service.logger.Info(dryRunMessageConstant, zap.String(logFieldBranchConstant, resolvedConfiguration.Branch))
		return outcome, nil
	}

	outcome.Results = service.executor.Execute(executionContext, outcome.Operations)
	service.logger.Info(
		purgeCompletedMessageConstant,
		zap.String(logFieldBranchConstant, resolvedConfiguration.Branch),
		zap.String(logFieldRemoteConstant, resolvedConfiguration.Remote),
		zap.Int(logFieldFailedOperationsConstant, outcome.FailedOperations()),
	)

	return outcome, nil
}
