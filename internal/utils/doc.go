// Package utils exposes the ambient helpers shared by git-purge commands.
//
// It houses the Viper-backed ConfigurationLoader, the zap LoggerFactory and the
// FlushingWriter used for console prompts, plus home-directory expansion for
// user-supplied paths.
package utils
