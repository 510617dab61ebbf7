package purge

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	commandUseConstant              = "git-purge <branch>"
	commandShortDescriptionConstant = "Purge the commit history of a branch"
	commandLongDescriptionConstant  = "git-purge replaces the history of a branch with a single commit holding the current working tree, then force-pushes it. The local branch and its remote-tracking branch must point at identical history."
	commandExampleConstant          = "git-purge main -m \"Initial commit\" -r upstream"
	messageFlagNameConstant         = "message"
	messageFlagShorthandConstant    = "m"
	messageFlagUsageConstant        = "commit message (defaults to \"" + DefaultCommitMessage + "\")"
	pauseFlagNameConstant           = "pause"
	pauseFlagShorthandConstant      = "p"
	pauseFlagUsageConstant          = "pause before exiting"
	quietFlagNameConstant           = "quiet"
	quietFlagShorthandConstant      = "q"
	quietFlagUsageConstant          = "produce no console output from git operations"
	remoteFlagNameConstant          = "remote"
	remoteFlagShorthandConstant     = "r"
	remoteFlagUsageConstant         = "name of remote repository (defaults to \"" + DefaultRemoteName + "\")"
	tempFlagNameConstant            = "temp"
	tempFlagShorthandConstant       = "t"
	tempFlagUsageConstant           = "temporary name of orphan branch (defaults to \"" + DefaultTemporaryBranchName + "\")"
	dryRunFlagNameConstant          = "dry-run"
	dryRunFlagShorthandConstant     = "n"
	dryRunFlagUsageConstant         = "check synchronization and print the purge operations without running them"
	branchArgumentIndexConstant     = 0
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the purge command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  GitExecutor
	WorkingDirectory             string
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the purge command. Argument-count validation is left to the caller.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ExactArgs(1),
		RunE:    builder.run,
	}

	flagSet := command.Flags()
	flagSet.StringP(messageFlagNameConstant, messageFlagShorthandConstant, "", messageFlagUsageConstant)
	flagSet.BoolP(pauseFlagNameConstant, pauseFlagShorthandConstant, false, pauseFlagUsageConstant)
	flagSet.BoolP(quietFlagNameConstant, quietFlagShorthandConstant, false, quietFlagUsageConstant)
	flagSet.StringP(remoteFlagNameConstant, remoteFlagShorthandConstant, "", remoteFlagUsageConstant)
	flagSet.StringP(tempFlagNameConstant, tempFlagShorthandConstant, "", tempFlagUsageConstant)
	flagSet.BoolP(dryRunFlagNameConstant, dryRunFlagShorthandConstant, false, dryRunFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, configurationError := builder.resolveConfiguration(command, arguments)
	if configurationError != nil {
		return configurationError
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(ServiceDependencies{
		GitExecutor:          gitExecutor,
		Logger:               logger,
		WorkingDirectory:     builder.WorkingDirectory,
		OperationOutput:      command.OutOrStdout(),
		OperationErrorOutput: command.ErrOrStderr(),
	})
	if serviceError != nil {
		return serviceError
	}

	reporter := NewReporter(command.OutOrStdout())
	outcome, purgeError := service.Purge(command.Context(), configuration)

	var divergedError DivergedError
	switch {
	case purgeError == nil:
		if configuration.DryRun {
			reporter.ReportPlan(outcome.Operations)
		}
		return nil
	case errors.Is(purgeError, ErrBranchNotFound):
		logger.Debug(branchNotFoundMessageConstant, zap.Error(purgeError))
		reporter.ReportBranchNotFound()
		return nil
	case errors.As(purgeError, &divergedError):
		reporter.ReportDivergence(divergedError.Branch, divergedError.Status)
		return nil
	default:
		return purgeError
	}
}

// resolveConfiguration layers explicitly set flags over the configured defaults.
func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command, arguments []string) (Configuration, error) {
	commandConfiguration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		commandConfiguration = builder.ConfigurationProvider()
	}

	configuration := Configuration{
		Message: commandConfiguration.Message,
		Remote:  commandConfiguration.Remote,
		Temp:    commandConfiguration.Temp,
		Quiet:   commandConfiguration.Quiet,
	}
	if len(arguments) > branchArgumentIndexConstant {
		configuration.Branch = arguments[branchArgumentIndexConstant]
	}

	flagSet := command.Flags()
	var flagError error
	if flagSet.Changed(messageFlagNameConstant) {
		configuration.Message, flagError = flagSet.GetString(messageFlagNameConstant)
		if flagError != nil {
			return Configuration{}, flagError
		}
	}
	if flagSet.Changed(remoteFlagNameConstant) {
		configuration.Remote, flagError = flagSet.GetString(remoteFlagNameConstant)
		if flagError != nil {
			return Configuration{}, flagError
		}
	}
	if flagSet.Changed(tempFlagNameConstant) {
		configuration.Temp, flagError = flagSet.GetString(tempFlagNameConstant)
		if flagError != nil {
			return Configuration{}, flagError
		}
	}
	if flagSet.Changed(quietFlagNameConstant) {
		configuration.Quiet, flagError = flagSet.GetBool(quietFlagNameConstant)
		if flagError != nil {
			return Configuration{}, flagError
		}
	}
	configuration.DryRun, flagError = flagSet.GetBool(dryRunFlagNameConstant)
	if flagError != nil {
		return Configuration{}, flagError
	}

	return configuration.WithDefaults(), nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
