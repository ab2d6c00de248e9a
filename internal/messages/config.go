package messages

// Config messages.
const (
	ConfigReadFileFmt         = "read config %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "config %s contains unrecognized keys: %w"
	ConfigInvalidBaseURLFmt   = "base_url %q must be an absolute http or https URL"
	ConfigInvalidLogLevelFmt  = "log_level %q: %w"
	ConfigSDKBinaryRequired   = "sdk.binary must not be empty"
	ConfigSDKRootEnvRequired  = "sdk.root_env must not be empty"
	ConfigResolveHomeDirFmt   = "resolve home directory: %w"
)
