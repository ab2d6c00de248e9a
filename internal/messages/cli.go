package messages

// CLI messages.
const (
	CLIUse             = "sdkdl <version> [download | args...]"
	CLIShort           = "Install and run a pinned SDK toolchain version"
	CLILong            = "sdkdl installs a platform-specific SDK release into ~/sdk/<version> and forwards every other invocation to the installed binary.\n\n  sdkdl <version> download   install the release (idempotent)\n  sdkdl <version> [args...]  run the installed binary with args"
	CLIDownloadCommand = "download"
	CLIUsageErrFmt     = "usage: %s"
	CLILogInitFmt      = "init logging: %w"
)
