package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	stringFlagTypeConstant              = "string"
	longFlagPrefixConstant              = "--"
	shortFlagPrefixConstant             = "-"
	helpFlagNameConstant                = "help"
	helpFlagShorthandConstant           = "h"
	flagMissingArgumentTemplateConstant = "flag needs an argument: --%s"
)

// UsageError reports command-line input that could not be parsed or validated.
type UsageError struct {
	Err error
}

func (usageError UsageError) Error() string {
	return usageError.Err.Error()
}

func (usageError UsageError) Unwrap() error {
	return usageError.Err
}

func wrapUsageError(_ *cobra.Command, flagError error) error {
	if flagError == nil {
		return nil
	}
	return UsageError{Err: flagError}
}

// usageValidatingArgs runs validator and then rejects string flags whose value
// is one of the command's own flag tokens, as in "-m -p".
func usageValidatingArgs(validator cobra.PositionalArgs) cobra.PositionalArgs {
	return func(command *cobra.Command, arguments []string) error {
		if validator != nil {
			if validationError := validator(command, arguments); validationError != nil {
				return wrapUsageError(command, validationError)
			}
		}
		return wrapUsageError(command, rejectFlagTokenValues(command))
	}
}

func rejectFlagTokenValues(command *cobra.Command) error {
	flagTokens := registeredFlagTokens(command)

	var rejection error
	command.Flags().Visit(func(flag *pflag.Flag) {
		if rejection != nil || flag.Value.Type() != stringFlagTypeConstant {
			return
		}
		if _, isFlagToken := flagTokens[flag.Value.String()]; isFlagToken {
			rejection = fmt.Errorf(flagMissingArgumentTemplateConstant, flag.Name)
		}
	})
	return rejection
}

func registeredFlagTokens(command *cobra.Command) map[string]struct{} {
	flagTokens := map[string]struct{}{
		longFlagPrefixConstant + helpFlagNameConstant:       {},
		shortFlagPrefixConstant + helpFlagShorthandConstant: {},
	}

	addFlag := func(flag *pflag.Flag) {
		flagTokens[longFlagPrefixConstant+flag.Name] = struct{}{}
		if len(flag.Shorthand) > 0 {
			flagTokens[shortFlagPrefixConstant+flag.Shorthand] = struct{}{}
		}
	}
	command.Flags().VisitAll(addFlag)
	command.PersistentFlags().VisitAll(addFlag)
	command.InheritedFlags().VisitAll(addFlag)

	return flagTokens
}
