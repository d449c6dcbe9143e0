package domain

import "path/filepath"

const (
	// DepsubDirName is the name of the internal workspace directory.
	DepsubDirName = ".depsub"

	// ArchiveDirName is the name of the snapshot archive directory.
	ArchiveDirName = "snapshots"

	// ConfigFileName is the name of the detector configuration file.
	ConfigFileName = "depsub.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultArchivePath returns the default path for archived snapshots.
// It joins .depsub and snapshots.
func DefaultArchivePath() string {
	return filepath.Join(DepsubDirName, ArchiveDirName)
}
