// Package storagepath defines the structured object-store key used for all
// band files and the ownership checks built on top of it.
//
// Every object lives under
//
//	bands/{bandId}/{fileType}s/{songId}/{fileId}.{ext}
//
// The {bandId} segment is the sole tenant-isolation mechanism at this
// layer: any operation that trusts a caller-supplied path must re-derive
// the segment and compare it against the caller's authenticated band
// before acting.
package storagepath

import (
	"fmt"
	"strings"

	"github.com/bandroomhq/bandroom/internal/common"
	"github.com/google/uuid"
)

// FileType distinguishes the object kinds stored under a band's tree.
type FileType string

const (
	FileTypeChart FileType = "chart"
	FileTypeAudio FileType = "audio"
)

const rootSegment = "bands"

// StoragePath is a parsed object-store key.
type StoragePath struct {
	BandID   string
	FileType FileType
	SongID   string
	FileName string
}

// String renders the path back into its canonical key form.
func (p StoragePath) String() string {
	return fmt.Sprintf("%s/%s/%ss/%s/%s", rootSegment, p.BandID, p.FileType, p.SongID, p.FileName)
}

// New builds a canonical storage path for a fresh upload, generating a
// random file ID so concurrent uploads for the same song never collide.
func New(bandID string, fileType FileType, songID string, ext string) StoragePath {
	name := uuid.NewString()
	if ext != "" {
		name = name + "." + strings.TrimPrefix(ext, ".")
	}
	return StoragePath{
		BandID:   bandID,
		FileType: fileType,
		SongID:   songID,
		FileName: name,
	}
}

// Parse splits a raw key into its structured form. It rejects anything
// that does not match the canonical shape, including empty segments and
// unknown file-type directories. Traversal-style segments are rejected
// rather than normalized.
func Parse(raw string) (StoragePath, error) {
	segments := strings.Split(raw, "/")
	if len(segments) != 5 {
		return StoragePath{}, fmt.Errorf("%w: %q", common.ErrMalformedPath, raw)
	}
	for _, s := range segments {
		if s == "" || s == "." || s == ".." {
			return StoragePath{}, fmt.Errorf("%w: %q", common.ErrMalformedPath, raw)
		}
	}
	if segments[0] != rootSegment {
		return StoragePath{}, fmt.Errorf("%w: %q", common.ErrMalformedPath, raw)
	}

	var ft FileType
	switch segments[2] {
	case "charts":
		ft = FileTypeChart
	case "audios":
		ft = FileTypeAudio
	default:
		return StoragePath{}, fmt.Errorf("%w: %q", common.ErrMalformedPath, raw)
	}

	return StoragePath{
		BandID:   segments[1],
		FileType: ft,
		SongID:   segments[3],
		FileName: segments[4],
	}, nil
}

// ValidateOwnership checks that a caller-supplied path belongs to the
// expected band. It is called before any destructive operation on the
// object store, because the path usually comes out of an untrusted URL.
//
// A path that does not start with "bands/{bandId}" fails with
// ErrMalformedPath; a band mismatch fails with ErrCrossTenant. Both are
// hard errors: the enclosing operation must abort.
func ValidateOwnership(raw string, expectedBandID string) error {
	if expectedBandID == "" {
		return fmt.Errorf("%w: empty band id", common.ErrCrossTenant)
	}

	segments := strings.Split(raw, "/")
	if len(segments) < 2 || segments[0] != rootSegment || segments[1] == "" {
		return fmt.Errorf("%w: %q", common.ErrMalformedPath, raw)
	}
	if segments[1] != expectedBandID {
		return fmt.Errorf("%w: path band %q, caller band %q", common.ErrCrossTenant, segments[1], expectedBandID)
	}
	return nil
}
