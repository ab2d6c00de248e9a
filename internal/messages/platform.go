package messages

// Platform detection messages.
const (
	PlatformUnsupportedArch    = "unsupported architecture"
	PlatformUnsupportedArchFmt = "%w %q (known: %s)"
	PlatformDetectOSFmt        = "detect operating system: %w"
	PlatformDetectArchFmt      = "detect architecture: %w"
)
