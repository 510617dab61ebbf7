package purge

const (
	// DefaultCommitMessage is used when no commit message is supplied.
	DefaultCommitMessage = "REDACTED"
	// DefaultRemoteName is used when no remote is supplied.
	DefaultRemoteName = "origin"
	// DefaultTemporaryBranchName names the orphan branch before it takes over the purged branch.
	DefaultTemporaryBranchName = "temp"

	messageConfigurationKeyConstant = "message"
	remoteConfigurationKeyConstant  = "remote"
	tempConfigurationKeyConstant    = "temp"
	quietConfigurationKeyConstant   = "quiet"
	configurationKeySeparator       = "."
)

// Configuration describes a single purge. It is built once from command-line
// input and passed by value afterwards.
type Configuration struct {
	Branch  string
	Message string
	Quiet   bool
	Remote  string
	Temp    string
	DryRun  bool
}

// WithDefaults returns a copy in which empty message, remote and temp values
// are replaced by their documented defaults.
func (configuration Configuration) WithDefaults() Configuration {
	resolved := configuration
	if len(resolved.Message) == 0 {
		resolved.Message = DefaultCommitMessage
	}
	if len(resolved.Remote) == 0 {
		resolved.Remote = DefaultRemoteName
	}
	if len(resolved.Temp) == 0 {
		resolved.Temp = DefaultTemporaryBranchName
	}
	return resolved
}

// RemoteTrackingReference names the remote-tracking ref compared against the local branch.
func (configuration Configuration) RemoteTrackingReference() string {
	return configuration.Remote + "/" + configuration.Branch
}

// CommandConfiguration captures the persisted defaults for the purge command.
type CommandConfiguration struct {
	Message string `mapstructure:"message"`
	Remote  string `mapstructure:"remote"`
	Temp    string `mapstructure:"temp"`
	Quiet   bool   `mapstructure:"quiet"`
}

// DefaultCommandConfiguration returns the built-in purge defaults.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Message: DefaultCommitMessage,
		Remote:  DefaultRemoteName,
		Temp:    DefaultTemporaryBranchName,
		Quiet:   false,
	}
}

// DefaultConfigurationValues exposes the defaults keyed for a configuration loader
// under the provided prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefixedKey(prefix, messageConfigurationKeyConstant): defaults.Message,
		prefixedKey(prefix, remoteConfigurationKeyConstant):  defaults.Remote,
		prefixedKey(prefix, tempConfigurationKeyConstant):    defaults.Temp,
		prefixedKey(prefix, quietConfigurationKeyConstant):   defaults.Quiet,
	}
}

func prefixedKey(prefix string, key string) string {
	if len(prefix) == 0 {
		return key
	}
	return prefix + configurationKeySeparator + key
}
