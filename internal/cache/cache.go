// Package cache persists computed compression statistics between runs so
// the aggregation pass can be skipped when an artifact is already present.
//
// The artifact is an xz-compressed JSON blob holding the three ratio tables
// plus a small header (run id, source document hash, creation time). The
// hash is informational only: presence of the artifact alone gates
// recomputation, so a stale cache is possible if the source document
// changes after a cache was written.
package cache

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/benonymity/bible-compression/core/errors"
	"github.com/benonymity/bible-compression/core/stats"
)

// artifactVersion is bumped when the artifact shape changes; a mismatch is
// reported as corrupt so the caller recomputes.
const artifactVersion = 1

// Meta is the artifact header.
type Meta struct {
	// Version is the artifact schema version.
	Version int `json:"version"`

	// RunID identifies the aggregation run that produced the artifact.
	RunID string `json:"run_id"`

	// SourceHash is the BLAKE3 hex digest of the source document.
	SourceHash string `json:"source_hash,omitempty"`

	// Created is when the artifact was written.
	Created time.Time `json:"created"`
}

// artifact is the on-disk shape: header plus the three ratio tables.
type artifact struct {
	Meta
	Books    *stats.Table `json:"books"`
	Chapters *stats.Table `json:"chapters"`
	Verses   *stats.Table `json:"verses"`
}

// Save writes the aggregation result to path as an xz-compressed JSON
// artifact, overwriting any existing artifact.
func Save(path string, res *stats.Result, sourceHash string) error {
	art := artifact{
		Meta: Meta{
			Version:    artifactVersion,
			RunID:      uuid.NewString(),
			SourceHash: sourceHash,
			Created:    time.Now().UTC(),
		},
		Books:    res.Books,
		Chapters: res.Chapters,
		Verses:   res.Verses,
	}

	data, err := json.Marshal(art)
	if err != nil {
		return errors.Wrap(err, "serializing stats")
	}

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return errors.Wrap(err, "creating xz writer")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "compressing stats")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "compressing stats")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

// Load reads a stats artifact. A missing file surfaces the underlying
// os error (check with os.IsNotExist / errors.Is); any decoding failure is
// reported as cache-corrupt so the caller can recompute instead of crashing.
func Load(path string) (*stats.Result, *Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, nil, errors.NewCache(path, "not an xz artifact", nil)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.NewCache(path, "truncated or corrupt stream", nil)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, nil, errors.NewCache(path, "undecodable payload", nil)
	}
	if art.Version != artifactVersion {
		return nil, nil, errors.NewCache(path, "unknown artifact version", nil)
	}
	if art.Books == nil || art.Chapters == nil || art.Verses == nil {
		return nil, nil, errors.NewCache(path, "missing ratio tables", nil)
	}

	res := &stats.Result{
		Books:    art.Books,
		Chapters: art.Chapters,
		Verses:   art.Verses,
	}
	meta := art.Meta
	return res, &meta, nil
}

// Remove deletes the artifact at path. Removing a missing artifact is not
// an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.NewIO("remove", path, err)
	}
	return nil
}

// SourceHash returns the BLAKE3 hex digest of the file at path.
func SourceHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIO("read", path, err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
