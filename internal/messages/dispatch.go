package messages

// Install and dispatch messages.
const (
	// DispatchSystemRequired indicates a nil System was supplied.
	DispatchSystemRequired       = "dispatch system is required"
	DispatchVersionRequired      = "version is required"
	DispatchInvalidVersionFmt    = "invalid version %q: must not contain path separators"
	DispatchResolveHomeDirFmt    = "resolve home directory: %w"
	DispatchCheckSentinelFmt     = "check install marker %s: %w"
	DispatchWriteSentinelFmt     = "write install marker %s: %w"
	DispatchCreateRootDirFmt     = "create install root %s: %w"
	DispatchCreateTempFileFmt    = "create temp file: %w"
	DispatchCloseTempFileFmt     = "close temp file: %w"
	DispatchMoveArchiveFmt       = "move archive into place: %w"
	DispatchStatArchiveFmt       = "stat %s: %w"
	DispatchCreateRequestFmt     = "create request for %s: %w"
	DispatchProbeFailedFmt       = "probe %s: %w"
	DispatchProbeStatusWarnFmt   = "server returned %s for %s; continuing"
	DispatchDownloadFailedFmt    = "download %s: %w"
	DispatchDownloadStatusFmt    = "download %s: unexpected status %s"
	DispatchNoBinaryReleaseFmt   = "no binary release of %s for %s/%s at %s"
	DispatchSizeMismatchFmt      = "downloaded file %s size %d doesn't match server size %d"
	DispatchChecksumFetchFmt     = "fetch checksum %s: %w"
	DispatchChecksumStatusFmt    = "fetch checksum %s: unexpected status %s"
	DispatchChecksumReadFmt      = "read checksum %s: %w"
	DispatchOpenFileFmt          = "open %s: %w"
	DispatchHashFileFmt          = "hash %s: %w"
	DispatchChecksumMismatchFmt  = "%s corrupt? does not have expected SHA-256 of %s (got %s)"
	DispatchUnsupportedFormatFmt = "unsupported archive format %q for %s"
	DispatchReadRootFmt          = "read install root %s: %w"
	DispatchRemoveStaleFmt       = "remove stale entry %s: %w"
	DispatchOpenArchiveFmt       = "open archive %s: %w"
	DispatchReadGzipFmt          = "read gzip stream %s: %w"
	DispatchReadTarHeaderFmt     = "read tar header: %w"
	DispatchIllegalPathFmt       = "illegal file path in archive: %s"
	DispatchIllegalLinkFmt       = "illegal symlink in archive: %s -> %s"
	DispatchSymlinkParentFmt     = "illegal file path in archive: %s passes through symlink %s"
	DispatchInspectPathFmt       = "inspect %s: %w"
	DispatchMissingWrapperFmt    = "archive %s has no %s/ folder"
	DispatchEmptyTarFmt          = "archive %s has no files below its top-level folder"
	DispatchCreateDirFmt         = "create directory %s: %w"
	DispatchWriteFileFmt         = "write file %s: %w"
	DispatchCreateSymlinkFmt     = "create symlink %s: %w"
	DispatchOpenZipEntryFmt      = "open zip entry %s: %w"
	DispatchMoveEntryFmt         = "move %s into install root: %w"
	DispatchRemoveWrapperFmt     = "remove wrapper directory %s: %w"
	DispatchNotInstalledFmt      = "%s: not downloaded. Run '%s %s download' to install to %s"
	DispatchRunBinaryFmt         = "run %s: %w"

	DispatchDownloadingFmt      = "Downloading %s...\n"
	DispatchProgressFmt         = "Downloaded %5.1f%% (%*d / %d bytes)\n"
	DispatchProgressUnknownFmt  = "Downloaded %d bytes\n"
	DispatchAlreadyInstalledFmt = "%s: already downloaded in %s\n"
	DispatchInstallSuccessFmt   = "Success. You may now run '%s %s'\n"
	DispatchUnpackingFmt        = "Unpacking %s ...\n"
)
