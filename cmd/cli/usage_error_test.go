package cli

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestUsageValidatingArgsWrapsValidationErrors(t *testing.T) {
	validator := usageValidatingArgs(cobra.ExactArgs(1))

	require.NoError(t, validator(&cobra.Command{}, []string{"main"}))

	validationError := validator(&cobra.Command{}, nil)
	var usageError UsageError
	require.True(t, errors.As(validationError, &usageError))
	require.EqualError(t, validationError, "accepts 1 arg(s), received 0")
}

func TestWrapUsageErrorPreservesCause(t *testing.T) {
	cause := errors.New("unknown flag: --bogus")

	require.NoError(t, wrapUsageError(nil, nil))
	require.ErrorIs(t, wrapUsageError(nil, cause), cause)
}

func TestUsageValidatingArgsRejectsFlagTokensAsValues(t *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedError string
	}{
		{name: "short_flag_value", arguments: []string{"main", "-m", "-p"}, expectedError: "flag needs an argument: --message"},
		{name: "long_flag_value", arguments: []string{"main", "-r", "--quiet"}, expectedError: "flag needs an argument: --remote"},
		{name: "help_token_value", arguments: []string{"main", "-m", "-h"}, expectedError: "flag needs an argument: --message"},
		{name: "persistent_flag_token_value", arguments: []string{"main", "-m", "--log-format"}, expectedError: "flag needs an argument: --message"},
		{name: "ordinary_values", arguments: []string{"main", "-m", "fresh start", "-r", "upstream"}},
		{name: "dash_prefixed_message", arguments: []string{"main", "-m", "-wip"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{
				Use:           "git-purge <branch>",
				Args:          usageValidatingArgs(cobra.ExactArgs(1)),
				RunE:          func(*cobra.Command, []string) error { return nil },
				SilenceUsage:  true,
				SilenceErrors: true,
			}
			command.Flags().StringP("message", "m", "", "")
			command.Flags().StringP("remote", "r", "", "")
			command.Flags().BoolP("pause", "p", false, "")
			command.Flags().BoolP("quiet", "q", false, "")
			command.PersistentFlags().String("log-format", "", "")
			command.SetArgs(testCase.arguments)

			executionError := command.Execute()
			if len(testCase.expectedError) == 0 {
				require.NoError(t, executionError)
				return
			}
			var usageError UsageError
			require.ErrorAs(t, executionError, &usageError)
			require.EqualError(t, executionError, testCase.expectedError)
		})
	}
}
