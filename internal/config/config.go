// Package config resolves the invocation configuration for sdkdl.
//
// Values come from built-in defaults, an optional TOML file, and SDKDL_*
// environment variables, in that order. The result is resolved once at
// startup and passed explicitly to every component.
package config

// Environment keys recognized by Load.
const (
	EnvConfigPath = "SDKDL_CONFIG"
	EnvArch       = "SDKDL_ARCH"
	EnvOS         = "SDKDL_OS"
	EnvRoot       = "SDKDL_ROOT"
	EnvBaseURL    = "SDKDL_BASE_URL"
	EnvLogLevel   = "SDKDL_LOG_LEVEL"
	EnvLogFile    = "SDKDL_LOG_FILE"
)

// Defaults for the Go toolchain distribution.
const (
	DefaultBaseURL    = "https://dl.google.com/go"
	DefaultBinary     = "go"
	DefaultRootEnv    = "GOROOT"
	DefaultZipWrapper = "go"
	DefaultLogLevel   = "warn"
)

// Config holds every optional override for one invocation.
// Empty Arch, OS, and Root mean "detect" or "use the convention".
type Config struct {
	Arch     string    `toml:"arch"`
	OS       string    `toml:"os"`
	Root     string    `toml:"root"`
	BaseURL  string    `toml:"base_url"`
	LogLevel string    `toml:"log_level"`
	LogFile  string    `toml:"log_file"`
	SDK      SDKConfig `toml:"sdk"`
}

// SDKConfig describes the toolchain being installed.
type SDKConfig struct {
	// Binary is the executable name under <root>/bin, without extension.
	Binary string `toml:"binary"`

	// RootEnv is exported to the child process with the install root.
	RootEnv string `toml:"root_env"`

	// SmokeArgs are passed to Binary right after a fresh install.
	SmokeArgs []string `toml:"smoke_args"`

	// ZipWrapper is the top-level folder inside zip archives.
	ZipWrapper string `toml:"zip_wrapper"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		LogLevel: DefaultLogLevel,
		SDK: SDKConfig{
			Binary:     DefaultBinary,
			RootEnv:    DefaultRootEnv,
			SmokeArgs:  []string{"version"},
			ZipWrapper: DefaultZipWrapper,
		},
	}
}
