// Package archive implements a content addressed archive of snapshots.
package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/zerr"
)

// digestLen is the length of a hex encoded 64-bit digest.
const digestLen = 16

// ErrInvalidDigest is returned by Get for digests that were not produced by Put.
var ErrInvalidDigest = zerr.New("invalid snapshot digest")

// Store implements ports.SnapshotStore with one file per snapshot below
// <root>/.depsub/snapshots.
type Store struct{}

// NewStore creates a new SnapshotStore.
func NewStore() *Store {
	return &Store{}
}

// Digest returns the hex XXHash of an encoded snapshot.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Put writes the pretty encoded snapshot and returns its digest. Writing the
// same document twice is a no-op.
func (s *Store) Put(root string, snapshot *domain.Snapshot) (string, error) {
	data, err := snapshot.PrettyJSON()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrSnapshotMarshalFailed.Error())
	}

	digest := Digest(data)
	filename := s.getFilename(root, digest)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error()), "path", filename)
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error()), "path", filename)
	}
	return digest, nil
}

// Get returns the archived document for digest, or nil if there is none.
func (s *Store) Get(root, digest string) ([]byte, error) {
	if !validDigest(digest) {
		return nil, zerr.With(ErrInvalidDigest, "digest", digest)
	}

	filename := s.getFilename(root, digest)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveReadFailed.Error()), "path", filename)
	}
	return data, nil
}

func (s *Store) getFilename(root, digest string) string {
	return filepath.Join(root, domain.DefaultArchivePath(), digest+".json")
}

func validDigest(digest string) bool {
	if len(digest) != digestLen {
		return false
	}
	for _, r := range digest {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
