package purge

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCommandBuilderRunsPurgeWithConfiguredDefaults(t *testing.T) {
	testCases := []struct {
		name              string
		configuration     CommandConfiguration
		arguments         []string
		expectedArguments [][]string
	}{
		{
			name:          "configuration_defaults",
			configuration: CommandConfiguration{Message: "cleanup", Remote: "upstream", Temp: "orphan"},
			arguments:     []string{"main"},
			expectedArguments: [][]string{
				{"rev-list", "--left-right", "--count", "upstream/main...main"},
				{"checkout", "--orphan", "orphan"},
				{"commit", "-m", "cleanup"},
				{"branch", "-D", "main"},
				{"branch", "-m", "main"},
				{"push", "-f", "upstream", "main"},
			},
		},
		{
			name:          "flags_override_configuration",
			configuration: CommandConfiguration{Message: "cleanup", Remote: "upstream", Temp: "orphan"},
			arguments:     []string{"main", "-m", "Initial commit", "--remote", "origin", "-t", "scratch", "-q"},
			expectedArguments: [][]string{
				{"rev-list", "--left-right", "--count", "origin/main...main"},
				{"checkout", "--orphan", "scratch", "-q"},
				{"commit", "-m", "Initial commit", "-q"},
				{"branch", "-D", "main", "-q"},
				{"branch", "-m", "main", "-q"},
				{"push", "-f", "origin", "main", "-q"},
			},
		},
		{
			name:          "empty_flag_values_fall_back_to_defaults",
			configuration: DefaultCommandConfiguration(),
			arguments:     []string{"main", "-m", "", "-r", ""},
			expectedArguments: [][]string{
				{"rev-list", "--left-right", "--count", "origin/main...main"},
				{"checkout", "--orphan", "temp"},
				{"commit", "-m", "REDACTED"},
				{"branch", "-D", "main"},
				{"branch", "-m", "main"},
				{"push", "-f", "origin", "main"},
			},
		},
		{
			name:          "pause_flag_is_accepted",
			configuration: DefaultCommandConfiguration(),
			arguments:     []string{"--pause", "main"},
			expectedArguments: [][]string{
				{"rev-list", "--left-right", "--count", "origin/main...main"},
				{"checkout", "--orphan", "temp"},
				{"commit", "-m", "REDACTED"},
				{"branch", "-D", "main"},
				{"branch", "-m", "main"},
				{"push", "-f", "origin", "main"},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			executor := &stubGitExecutor{responses: []stubGitResponse{comparisonResponse("0\t0\n")}}
			configuration := testCase.configuration
			builder := CommandBuilder{
				LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
				GitExecutor:           executor,
				ConfigurationProvider: func() CommandConfiguration { return configuration },
			}

			command, buildError := builder.Build()
			require.NoError(t, buildError)

			output := &bytes.Buffer{}
			command.SetOut(output)
			command.SetErr(output)
			command.SetArgs(testCase.arguments)
			command.SetContext(context.Background())

			require.NoError(t, command.Execute())
			require.Equal(t, testCase.expectedArguments, executor.recordedArguments())
			require.Empty(t, output.String())
		})
	}
}

func TestCommandBuilderReportsPreconditionFailures(t *testing.T) {
	testCases := []struct {
		name             string
		comparisonOutput string
		expectedOutput   string
	}{
		{
			name:             "diverged",
			comparisonOutput: "2\t1\n",
			expectedOutput:   "fatal: local branch mybranch behind by 2 commits, ahead by 1 commits\nbranches must be synchronized before purging commit history\n",
		},
		{
			name:             "not_found",
			comparisonOutput: "",
			expectedOutput:   "fatal: branch not found\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			executor := &stubGitExecutor{responses: []stubGitResponse{comparisonResponse(testCase.comparisonOutput)}}
			builder := CommandBuilder{GitExecutor: executor}

			command, buildError := builder.Build()
			require.NoError(t, buildError)

			output := &bytes.Buffer{}
			command.SetOut(output)
			command.SetErr(&bytes.Buffer{})
			command.SetArgs([]string{"mybranch"})

			require.NoError(t, command.Execute())
			require.Equal(t, testCase.expectedOutput, output.String())
			require.Len(t, executor.recorded, 1)
		})
	}
}

func TestCommandBuilderDryRunPrintsPlan(t *testing.T) {
	executor := &stubGitExecutor{responses: []stubGitResponse{comparisonResponse("0\t0\n")}}
	builder := CommandBuilder{GitExecutor: executor}

	command, buildError := builder.Build()
	require.NoError(t, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{"main", "--dry-run", "-m", "fresh start"})

	require.NoError(t, command.Execute())
	require.Len(t, executor.recorded, 1)
	require.Equal(t,
		"git checkout --orphan temp\n"+
			"git commit -m \"fresh start\"\n"+
			"git branch -D main\n"+
			"git branch -m main\n"+
			"git push -f origin main\n",
		output.String(),
	)
}

func TestCommandBuilderRequiresExactlyOneBranch(t *testing.T) {
	for _, arguments := range [][]string{{}, {"main", "extra"}} {
		executor := &stubGitExecutor{}
		builder := CommandBuilder{GitExecutor: executor}

		command, buildError := builder.Build()
		require.NoError(t, buildError)
		command.SilenceUsage = true
		command.SilenceErrors = true
		command.SetOut(&bytes.Buffer{})
		command.SetErr(&bytes.Buffer{})
		command.SetArgs(arguments)

		require.Error(t, command.Execute())
		require.Empty(t, executor.recorded)
	}
}
