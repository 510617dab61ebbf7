package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	revisionRangeSeparatorConstant          = "..."
)

const (
	gitRevListSubcommandNameConstant  = "rev-list"
	gitCheckoutSubcommandNameConstant = "checkout"
	gitCommitSubcommandNameConstant   = "commit"
	gitBranchSubcommandNameConstant   = "branch"
	gitPushSubcommandNameConstant     = "push"
	gitOrphanFlagConstant             = "--orphan"
	gitMessageFlagConstant            = "-m"
	gitForceDeleteFlagConstant        = "-D"
	gitMoveFlagConstant               = "-m"
)

const (
	gitCompareStartTemplateConstant                 = "Comparing %s with %s in %s"
	gitCompareSuccessTemplateConstant               = "Compared %s with %s in %s"
	gitCompareFailureTemplateConstant               = "Failed to compare %s with %s in %s (exit code %d%s)"
	gitCompareExecutionFailureTemplateConstant      = "Unable to compare %s with %s in %s: %s"
	gitOrphanStartTemplateConstant                  = "Creating orphan branch %s in %s"
	gitOrphanSuccessTemplateConstant                = "Created orphan branch %s in %s"
	gitOrphanFailureTemplateConstant                = "Failed to create orphan branch %s in %s (exit code %d%s)"
	gitOrphanExecutionFailureTemplateConstant       = "Unable to create orphan branch %s in %s: %s"
	gitCommitStartTemplateConstant                  = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant                = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant                = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant       = "Unable to create commit in %s with message %q: %s"
	gitBranchDeleteStartTemplateConstant            = "Force removing local branch %s in %s"
	gitBranchDeleteSuccessTemplateConstant          = "Removed local branch %s in %s"
	gitBranchDeleteFailureTemplateConstant          = "Failed to remove local branch %s in %s (exit code %d%s)"
	gitBranchDeleteExecutionFailureTemplateConstant = "Unable to remove local branch %s in %s: %s"
	gitBranchRenameStartTemplateConstant            = "Renaming current branch to %s in %s"
	gitBranchRenameSuccessTemplateConstant          = "Renamed current branch to %s in %s"
	gitBranchRenameFailureTemplateConstant          = "Failed to rename current branch to %s in %s (exit code %d%s)"
	gitBranchRenameExecutionFailureTemplateConstant = "Unable to rename current branch to %s in %s: %s"
	gitPushStartTemplateConstant                    = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant                  = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant                  = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant         = "Unable to push %s to %s from %s: %s"
)

// stageTemplates holds the four message templates describing one git operation.
type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch strings.TrimSpace(arguments[0]) {
	case gitRevListSubcommandNameConstant:
		remoteReference, localReference := formatter.splitRevisionRange(arguments)
		return formatter.render(stageTemplates{
			start:            gitCompareStartTemplateConstant,
			success:          gitCompareSuccessTemplateConstant,
			failure:          gitCompareFailureTemplateConstant,
			executionFailure: gitCompareExecutionFailureTemplateConstant,
		}, []any{localReference, remoteReference, workingDirectory}, result, failure, stage)
	case gitCheckoutSubcommandNameConstant:
		orphanBranch := findFlagValue(arguments, gitOrphanFlagConstant)
		if len(orphanBranch) == 0 {
			return formatter.buildGenericMessage(command, result, failure, stage)
		}
		return formatter.render(stageTemplates{
			start:            gitOrphanStartTemplateConstant,
			success:          gitOrphanSuccessTemplateConstant,
			failure:          gitOrphanFailureTemplateConstant,
			executionFailure: gitOrphanExecutionFailureTemplateConstant,
		}, []any{orphanBranch, workingDirectory}, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		commitMessage := findFlagValue(arguments, gitMessageFlagConstant)
		return formatter.render(stageTemplates{
			start:            gitCommitStartTemplateConstant,
			success:          gitCommitSuccessTemplateConstant,
			failure:          gitCommitFailureTemplateConstant,
			executionFailure: gitCommitExecutionFailureTemplateConstant,
		}, []any{workingDirectory, commitMessage}, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranchMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		remoteName, branchName := formatter.extractRemoteAndBranch(arguments[1:])
		return formatter.render(stageTemplates{
			start:            gitPushStartTemplateConstant,
			success:          gitPushSuccessTemplateConstant,
			failure:          gitPushFailureTemplateConstant,
			executionFailure: gitPushExecutionFailureTemplateConstant,
		}, []any{branchName, remoteName, workingDirectory}, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if deletedBranch := findFlagValue(arguments, gitForceDeleteFlagConstant); len(deletedBranch) > 0 {
		return formatter.render(stageTemplates{
			start:            gitBranchDeleteStartTemplateConstant,
			success:          gitBranchDeleteSuccessTemplateConstant,
			failure:          gitBranchDeleteFailureTemplateConstant,
			executionFailure: gitBranchDeleteExecutionFailureTemplateConstant,
		}, []any{deletedBranch, workingDirectory}, result, failure, stage)
	}

	if renamedBranch := findFlagValue(arguments, gitMoveFlagConstant); len(renamedBranch) > 0 {
		return formatter.render(stageTemplates{
			start:            gitBranchRenameStartTemplateConstant,
			success:          gitBranchRenameSuccessTemplateConstant,
			failure:          gitBranchRenameFailureTemplateConstant,
			executionFailure: gitBranchRenameExecutionFailureTemplateConstant,
		}, []any{renamedBranch, workingDirectory}, result, failure, stage)
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) render(templates stageTemplates, subjects []any, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, subjects...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, subjects...)
	case messageStageFailure:
		return fmt.Sprintf(templates.failure, append(subjects, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))...)
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, append(subjects, formatter.describeFailure(failure))...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := describeCommandLine(command)
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory))
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

// splitRevisionRange extracts both sides of the symmetric-difference range passed to rev-list.
func (formatter CommandMessageFormatter) splitRevisionRange(arguments []string) (string, string) {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		leftReference, rightReference, found := strings.Cut(trimmed, revisionRangeSeparatorConstant)
		if found {
			return formatter.ensureValue(leftReference), formatter.ensureValue(rightReference)
		}
	}
	return fallbackUnknownValueLabelConstant, fallbackUnknownValueLabelConstant
}

func (formatter CommandMessageFormatter) extractRemoteAndBranch(arguments []string) (string, string) {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, "-") {
			continue
		}
		positional = append(positional, trimmed)
	}
	remoteName := fallbackUnknownValueLabelConstant
	branchName := fallbackUnknownValueLabelConstant
	if len(positional) > 0 {
		remoteName = positional[0]
	}
	if len(positional) > 1 {
		branchName = strings.Join(positional[1:], ", ")
	}
	return remoteName, branchName
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
