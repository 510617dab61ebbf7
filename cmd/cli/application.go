package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gitpurge/internal/pause"
	"github.com/temirov/gitpurge/internal/purge"
	"github.com/temirov/gitpurge/internal/utils"
)

const (
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	purgeConfigurationKeyConstant           = "purge"
	environmentPrefixConstant               = "GITPURGE"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	pauseErrorTemplateConstant              = "unable to pause: %w"
	errorOutputTemplateConstant             = "Error: %v\n"
	exitCodeSuccessConstant                 = 0
	exitCodeFailureConstant                 = 1
	exitCodeUsageConstant                   = 2
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Purge  purge.CommandConfiguration     `mapstructure:"purge"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationDependencies supplies the process streams and an optional git executor.
// Nil streams fall back to the process standard streams; a nil GitExecutor runs the git binary.
type ApplicationDependencies struct {
	Input       io.Reader
	Output      io.Writer
	ErrorOutput io.Writer
	GitExecutor purge.GitExecutor
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	input                 io.Reader
	output                io.Writer
	errorOutput           io.Writer
}

// NewApplication assembles an application bound to the process standard streams.
func NewApplication() *Application {
	return NewApplicationWithDependencies(ApplicationDependencies{})
}

// NewApplicationWithDependencies assembles a fully wired CLI application instance.
func NewApplicationWithDependencies(dependencies ApplicationDependencies) *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		nil,
	)
	configurationLoader.SetEmbeddedConfiguration(DefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		configuration:       ApplicationConfiguration{Purge: purge.DefaultCommandConfiguration()},
		input:               dependencies.Input,
		output:              dependencies.Output,
		errorOutput:         dependencies.ErrorOutput,
	}
	if application.input == nil {
		application.input = os.Stdin
	}
	if application.output == nil {
		application.output = os.Stdout
	}
	if application.errorOutput == nil {
		application.errorOutput = os.Stderr
	}

	purgeBuilder := purge.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		GitExecutor:                  dependencies.GitExecutor,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() purge.CommandConfiguration {
			return application.configuration.Purge
		},
	}
	if workingDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		purgeBuilder.WorkingDirectory = workingDirectory
	}
	cobraCommand, _ := purgeBuilder.Build()

	cobraCommand.SilenceUsage = true
	cobraCommand.SilenceErrors = true
	cobraCommand.Args = usageValidatingArgs(cobraCommand.Args)
	cobraCommand.SetFlagErrorFunc(wrapUsageError)
	cobraCommand.PersistentPreRunE = func(command *cobra.Command, arguments []string) error {
		return application.initializeConfiguration(command)
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetIn(application.input)
	cobraCommand.SetOut(utils.NewFlushingWriter(application.output))
	cobraCommand.SetErr(utils.NewFlushingWriter(application.errorOutput))
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	application.rootCommand = cobraCommand

	return application
}

// Run executes the root command with the provided arguments and returns the
// process exit code. The pause gate runs last, whatever the outcome.
func (application *Application) Run(arguments []string) int {
	application.rootCommand.SetArgs(arguments)
	exitCode := application.reportExecutionError(application.rootCommand.Execute())

	if syncError := application.flushLogger(); syncError != nil {
		fmt.Fprintf(application.rootCommand.ErrOrStderr(), errorOutputTemplateConstant, fmt.Errorf(loggerSyncErrorTemplateConstant, syncError))
	}

	if pause.Requested(arguments) {
		if waitError := pause.NewGate(application.input, application.rootCommand.OutOrStdout()).Wait(); waitError != nil {
			fmt.Fprintf(application.rootCommand.ErrOrStderr(), errorOutputTemplateConstant, fmt.Errorf(pauseErrorTemplateConstant, waitError))
		}
	}

	return exitCode
}

// Execute builds an application bound to the process streams and runs it with os.Args.
func Execute() int {
	return NewApplication().Run(os.Args[1:])
}

func (application *Application) reportExecutionError(executionError error) int {
	if executionError == nil {
		return exitCodeSuccessConstant
	}

	errorOutput := application.rootCommand.ErrOrStderr()
	var usageError UsageError
	if errors.As(executionError, &usageError) {
		fmt.Fprint(errorOutput, application.rootCommand.UsageString())
		fmt.Fprintf(errorOutput, errorOutputTemplateConstant, usageError.Err)
		return exitCodeUsageConstant
	}

	fmt.Fprintf(errorOutput, errorOutputTemplateConstant, executionError)
	return exitCodeFailureConstant
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range purge.DefaultConfigurationValues(purgeConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	configurationFilePath := utils.ExpandHomePath(strings.TrimSpace(application.configurationFilePath), os.UserHomeDir)
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(strings.TrimSpace(application.configuration.Common.LogLevel)),
		utils.LogFormat(strings.TrimSpace(application.configuration.Common.LogFormat)),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.Flags(),
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
