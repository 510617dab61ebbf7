package purge

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitpurge/internal/execshell"
)

const (
	gitExecutableNameConstant      = "git"
	gitCheckoutSubcommandConstant  = "checkout"
	gitOrphanFlagConstant          = "--orphan"
	gitCommitSubcommandConstant    = "commit"
	gitMessageFlagConstant         = "-m"
	gitBranchSubcommandConstant    = "branch"
	gitForceDeleteFlagConstant     = "-D"
	gitMoveFlagConstant            = "-m"
	gitPushSubcommandConstant      = "push"
	gitForceFlagConstant           = "-f"
	gitQuietFlagConstant           = "-q"
	operationFailedMessageConstant = "purge operation failed; continuing with remaining operations"
	logFieldOperationConstant      = "operation"
	logFieldOperationIndexConstant = "operation_index"
	logFieldExitCodeConstant       = "exit_code"
	unknownExitCodeConstant        = -1
	argumentSeparatorConstant      = " "
	whitespaceCharactersConstant   = " \t\n\"'"
)

// Operation describes one git invocation issued by the purge.
type Operation struct {
	Arguments []string
}

// String renders the operation as a shell-like git command line.
func (operation Operation) String() string {
	renderedParts := []string{gitExecutableNameConstant}
	for _, argument := range operation.Arguments {
		if len(argument) == 0 || strings.ContainsAny(argument, whitespaceCharactersConstant) {
			argument = strconv.Quote(argument)
		}
		renderedParts = append(renderedParts, argument)
	}
	return strings.Join(renderedParts, argumentSeparatorConstant)
}

// OperationResult records the observed status of an executed operation.
// ExitCode is -1 when the process could not be started.
type OperationResult struct {
	Operation Operation
	ExitCode  int
	Err       error
}

// PlanOperations returns the five purge operations in execution order.
// Quiet appends -q to every operation.
func PlanOperations(configuration Configuration) []Operation {
	operations := []Operation{
		{Arguments: []string{gitCheckoutSubcommandConstant, gitOrphanFlagConstant, configuration.Temp}},
		{Arguments: []string{gitCommitSubcommandConstant, gitMessageFlagConstant, configuration.Message}},
		{Arguments: []string{gitBranchSubcommandConstant, gitForceDeleteFlagConstant, configuration.Branch}},
		{Arguments: []string{gitBranchSubcommandConstant, gitMoveFlagConstant, configuration.Branch}},
		{Arguments: []string{gitPushSubcommandConstant, gitForceFlagConstant, configuration.Remote, configuration.Branch}},
	}

	if configuration.Quiet {
		for operationIndex := range operations {
			operations[operationIndex].Arguments = append(operations[operationIndex].Arguments, gitQuietFlagConstant)
		}
	}

	return operations
}

// Executor runs purge operations in order. A failing operation is logged and
// recorded but never stops the operations that follow it.
type Executor struct {
	executor         GitExecutor
	logger           *zap.Logger
	workingDirectory string
	output           io.Writer
	errorOutput      io.Writer
}

// ExecutorSettings locates the repository and receives the live git output.
// An empty WorkingDirectory runs git in the current directory.
type ExecutorSettings struct {
	WorkingDirectory string
	Output           io.Writer
	ErrorOutput      io.Writer
}

// NewExecutor constructs an Executor that runs git according to settings.
func NewExecutor(executor GitExecutor, logger *zap.Logger, settings ExecutorSettings) (*Executor, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		executor:         executor,
		logger:           logger,
		workingDirectory: settings.WorkingDirectory,
		output:           settings.Output,
		errorOutput:      settings.ErrorOutput,
	}, nil
}

// Execute issues every operation and returns one result per operation.
func (executor *Executor) Execute(executionContext context.Context, operations []Operation) []OperationResult {
	results := make([]OperationResult, 0, len(operations))
	for operationIndex, operation := range operations {
		result := executor.executeOperation(executionContext, operation)
		if result.Err != nil {
			executor.logger.Warn(
				operationFailedMessageConstant,
				zap.String(logFieldOperationConstant, operation.String()),
				zap.Int(logFieldOperationIndexConstant, operationIndex),
				zap.Int(logFieldExitCodeConstant, result.ExitCode),
				zap.Error(result.Err),
			)
		}
		results = append(results, result)
	}
	return results
}

func (executor *Executor) executeOperation(executionContext context.Context, operation Operation) OperationResult {
	executionResult, executionError := executor.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        append([]string(nil), operation.Arguments...),
		WorkingDirectory: executor.workingDirectory,
		OutputWriter:     executor.output,
		ErrorWriter:      executor.errorOutput,
	})
	if executionError == nil {
		return OperationResult{Operation: operation, ExitCode: executionResult.ExitCode}
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) {
		return OperationResult{Operation: operation, ExitCode: commandFailure.Result.ExitCode, Err: executionError}
	}
	return OperationResult{Operation: operation, ExitCode: unknownExitCodeConstant, Err: executionError}
}
