package purge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigurationWithDefaults(t *testing.T) {
	testCases := []struct {
		name     string
		input    Configuration
		expected Configuration
	}{
		{
			name:     "branch_only",
			input:    Configuration{Branch: "main"},
			expected: Configuration{Branch: "main", Message: "REDACTED", Remote: "origin", Temp: "temp"},
		},
		{
			name:     "explicit_values_kept",
			input:    Configuration{Branch: "main", Message: "init", Remote: "upstream", Temp: "scratch", Quiet: true},
			expected: Configuration{Branch: "main", Message: "init", Remote: "upstream", Temp: "scratch", Quiet: true},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, testCase.input.WithDefaults())
		})
	}
}

func TestConfigurationRemoteTrackingReference(t *testing.T) {
	configuration := Configuration{Branch: "feature/login", Remote: "origin"}
	require.Equal(t, "origin/feature/login", configuration.RemoteTrackingReference())
}

func TestDefaultConfigurationValues(t *testing.T) {
	require.Equal(t, map[string]any{
		"purge.message": "REDACTED",
		"purge.remote":  "origin",
		"purge.temp":    "temp",
		"purge.quiet":   false,
	}, DefaultConfigurationValues("purge"))

	require.Contains(t, DefaultConfigurationValues(""), "message")
}
