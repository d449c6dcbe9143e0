package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidPackageURL is returned when a package identity cannot be built or parsed.
	ErrInvalidPackageURL = zerr.New("invalid package url")

	// ErrMalformedPackageName is returned when a raw dependency name has more than one namespace separator.
	ErrMalformedPackageName = zerr.New("malformed package name, expected at most one '/'")

	// ErrUnresolvableEntry is returned when a name and version cannot be split from a listing entry.
	ErrUnresolvableEntry = zerr.New("dependency entry name and version could not be processed")

	// ErrMetadataTooLarge is returned when more than MaxMetadataSize key-value pairs are supplied.
	ErrMetadataTooLarge = zerr.New("maximum size of metadata exceeded")

	// ErrInvalidMetadataValue is returned when a metadata value is not a scalar.
	ErrInvalidMetadataValue = zerr.New("metadata value must be null, bool, string or number")

	// ErrInvalidRelationship is returned when a relationship is neither direct nor indirect.
	ErrInvalidRelationship = zerr.New("invalid dependency relationship, expected 'direct' or 'indirect'")

	// ErrInvalidScope is returned when a scope is neither runtime nor development.
	ErrInvalidScope = zerr.New("invalid dependency scope, expected 'runtime' or 'development'")

	// ErrCycleDetected is returned when a dependency tree contains a package on its own path.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrMissingManifestSource is returned when a manifest declares neither a file path nor a command.
	ErrMissingManifestSource = zerr.New("must provide either a manifest file path or a manifest command")

	// ErrMissingManifestName is returned when a manifest is declared without a name.
	ErrMissingManifestName = zerr.New("missing manifest name")

	// ErrDuplicateManifestName is returned when two manifests share a name.
	ErrDuplicateManifestName = zerr.New("duplicate manifest name")

	// ErrUnknownParser is returned when a manifest references a listing parser that is not registered.
	ErrUnknownParser = zerr.New("unknown listing parser")

	// ErrListingReadFailed is returned when raw listing text cannot be read from a file.
	ErrListingReadFailed = zerr.New("failed to read dependency listing")

	// ErrListingCommandFailed is returned when the listing command exits unsuccessfully.
	ErrListingCommandFailed = zerr.New("dependency listing command failed")

	// ErrListingParseFailed is returned when raw listing text cannot be parsed.
	ErrListingParseFailed = zerr.New("could not parse project dependencies")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no config file can be found.
	ErrConfigNotFound = zerr.New("could not find " + ConfigFileName)

	// ErrMissingDetector is returned when the detector identity is incomplete.
	ErrMissingDetector = zerr.New("detector name, url and version are required")

	// ErrMissingRepository is returned when the repository owner or name cannot be determined.
	ErrMissingRepository = zerr.New("repository owner and name are required")

	// ErrMissingCommitSha is returned when the commit a snapshot describes cannot be resolved.
	ErrMissingCommitSha = zerr.New("could not resolve commit sha for snapshot")

	// ErrEventPayloadReadFailed is returned when the event payload file cannot be read.
	ErrEventPayloadReadFailed = zerr.New("failed to read event payload")

	// ErrEventPayloadParseFailed is returned when the event payload cannot be decoded.
	ErrEventPayloadParseFailed = zerr.New("failed to parse event payload")

	// ErrMissingToken is returned when no credential is available for submission.
	ErrMissingToken = zerr.New("missing submission token")

	// ErrSnapshotMarshalFailed is returned when a snapshot cannot be serialized.
	ErrSnapshotMarshalFailed = zerr.New("failed to marshal snapshot")

	// ErrSubmissionFailed is returned when the submission request cannot be completed.
	ErrSubmissionFailed = zerr.New("failed to submit snapshot")

	// ErrSubmissionRejected is reported when the endpoint answers with a non-success result.
	ErrSubmissionRejected = zerr.New("snapshot submission was not accepted")

	// ErrArchiveWriteFailed is returned when a snapshot cannot be written to the archive.
	ErrArchiveWriteFailed = zerr.New("failed to write snapshot archive")

	// ErrArchiveReadFailed is returned when a snapshot cannot be read from the archive.
	ErrArchiveReadFailed = zerr.New("failed to read snapshot archive")

	// ErrDetectionFailed is returned when building the snapshot fails.
	ErrDetectionFailed = zerr.New("dependency detection failed")
)
