package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/benonymity/bible-compression/core/compressor"
	"github.com/benonymity/bible-compression/core/errors"
	"github.com/benonymity/bible-compression/core/stats"
)

func sampleResult() *stats.Result {
	uniform := func(v float64) stats.Ratios {
		r := make(stats.Ratios)
		for _, algo := range compressor.Names() {
			r[algo] = v
		}
		return r
	}
	res := &stats.Result{
		Books:    stats.NewTable(),
		Chapters: stats.NewTable(),
		Verses:   stats.NewTable(),
	}
	res.Books.Set("Genesis", uniform(0.4))
	res.Chapters.Set("Genesis 1", uniform(0.6))
	res.Verses.Set("Genesis 1:1", uniform(1.2))
	res.Verses.Set("Genesis 1:2", uniform(1.1))
	return res
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.xz")
	if err := Save(path, sampleResult(), "abc123"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	res, meta, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if meta.Version != artifactVersion {
		t.Errorf("meta.Version = %d, want %d", meta.Version, artifactVersion)
	}
	if meta.SourceHash != "abc123" {
		t.Errorf("meta.SourceHash = %q, want abc123", meta.SourceHash)
	}
	if meta.RunID == "" {
		t.Error("meta.RunID should be populated")
	}
	if meta.Created.IsZero() {
		t.Error("meta.Created should be populated")
	}

	if !reflect.DeepEqual(res.Verses.IDs(), []string{"Genesis 1:1", "Genesis 1:2"}) {
		t.Errorf("verse order = %v, want insertion order preserved", res.Verses.IDs())
	}
	r, ok := res.Books.Get("Genesis")
	if !ok {
		t.Fatal("Genesis record missing after round trip")
	}
	if r[compressor.Gzip] != 0.4 {
		t.Errorf("Genesis gzip ratio = %v, want 0.4", r[compressor.Gzip])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.xz"))
	if err == nil {
		t.Fatal("missing artifact should error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
	if errors.Is(err, errors.ErrCacheCorrupt) {
		t.Error("missing artifact is absent, not corrupt")
	}
}

func TestLoad_GarbageIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.xz")
	if err := os.WriteFile(path, []byte("not an xz stream at all"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err := Load(path)
	if err == nil {
		t.Fatal("garbage artifact should error")
	}
	if !errors.Is(err, errors.ErrCacheCorrupt) {
		t.Errorf("garbage artifact should be reported corrupt, got %v", err)
	}
}

func TestLoad_TruncatedIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.xz")
	if err := Save(path, sampleResult(), ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)/2], 0644); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	_, _, err = Load(path)
	if err == nil {
		t.Fatal("truncated artifact should error")
	}
	if !errors.Is(err, errors.ErrCacheCorrupt) {
		t.Errorf("truncated artifact should be reported corrupt, got %v", err)
	}
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.xz")
	if err := Save(path, sampleResult(), "first"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Save(path, sampleResult(), "second"); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	_, meta, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if meta.SourceHash != "second" {
		t.Errorf("SourceHash = %q, want second (overwritten)", meta.SourceHash)
	}
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.xz")
	if err := Save(path, sampleResult(), ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("artifact should be gone")
	}
	// Removing again is fine.
	if err := Remove(path); err != nil {
		t.Errorf("Remove of missing artifact should not error: %v", err)
	}
}

func TestSourceHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bible.xml")
	if err := os.WriteFile(path, []byte("<XMLBIBLE/>"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a, err := SourceHash(path)
	if err != nil {
		t.Fatalf("SourceHash failed: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
	b, err := SourceHash(path)
	if err != nil {
		t.Fatalf("SourceHash failed: %v", err)
	}
	if a != b {
		t.Error("hash should be deterministic")
	}

	other := filepath.Join(dir, "other.xml")
	if err := os.WriteFile(other, []byte("<XMLBIBLE> </XMLBIBLE>"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := SourceHash(other)
	if err != nil {
		t.Fatalf("SourceHash failed: %v", err)
	}
	if a == c {
		t.Error("different content should hash differently")
	}
}
