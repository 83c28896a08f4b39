package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

const fixtureXML = `<?xml version="1.0" encoding="UTF-8"?>
<XMLBIBLE biblename="Test">
  <BIBLEBOOK bname="Genesis">
    <CHAPTER cnumber="1">
      <VERS vnumber="1">In the beginning God created the heaven and the earth.</VERS>
      <VERS vnumber="2">And the earth was without form, and void.</VERS>
    </CHAPTER>
  </BIBLEBOOK>
  <BIBLEBOOK bname="Exodus">
    <CHAPTER cnumber="1">
      <VERS vnumber="1">Now these are the names of the children of Israel.</VERS>
    </CHAPTER>
  </BIBLEBOOK>
</XMLBIBLE>`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bible.xml")
	if err := os.WriteFile(path, []byte(fixtureXML), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestTitleFor(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"books", "Book Compression Ratios"},
		{"chapters", "Chapter Compression Ratios"},
		{"verses", "Verse Compression Ratios"},
	}
	for _, tt := range tests {
		if got := titleFor(tt.level); got != tt.want {
			t.Errorf("titleFor(%s) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestDefaultOutPath(t *testing.T) {
	tests := []struct {
		level     string
		output    string
		topBottom int
		want      string
	}{
		{"books", "chart", 0, "book_compression_ratios.png"},
		{"chapters", "csv", 0, "chapter_compression_stats.csv"},
		{"verses", "text", 0, "verse_compression_stats.txt"},
		{"books", "sqlite", 0, "book_compression_stats.db"},
		{"books", "csv", 5, "book_compression_top_bottom_5_stats.csv"},
	}
	for _, tt := range tests {
		if got := defaultOutPath(tt.level, tt.output, tt.topBottom); got != tt.want {
			t.Errorf("defaultOutPath(%s, %s, %d) = %q, want %q",
				tt.level, tt.output, tt.topBottom, got, tt.want)
		}
	}
}

func TestAnalyze_CSVEndToEnd(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "books.csv")
	cmd := &AnalyzeCmd{
		Bible:  writeFixture(t),
		Level:  "books",
		Output: "csv",
		Cache:  filepath.Join(dir, "stats.xz"),
		Out:    outPath,
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 books", len(rows))
	}

	if _, err := os.Stat(cmd.Cache); err != nil {
		t.Errorf("cache artifact should have been written: %v", err)
	}
}

func TestAnalyze_UsesCacheOnSecondRun(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "stats.xz")
	bible := writeFixture(t)

	first := &AnalyzeCmd{
		Bible:  bible,
		Level:  "verses",
		Output: "text",
		Cache:  cachePath,
		Out:    filepath.Join(dir, "first.txt"),
	}
	if err := first.Run(); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// Remove the source document; a cached second run must not need it.
	if err := os.Remove(bible); err != nil {
		t.Fatalf("remove fixture: %v", err)
	}
	second := &AnalyzeCmd{
		Bible:  bible,
		Level:  "verses",
		Output: "text",
		Cache:  cachePath,
		Out:    filepath.Join(dir, "second.txt"),
	}
	if err := second.Run(); err != nil {
		t.Fatalf("cached run failed: %v", err)
	}

	a, _ := os.ReadFile(filepath.Join(dir, "first.txt"))
	b, _ := os.ReadFile(filepath.Join(dir, "second.txt"))
	if string(a) != string(b) {
		t.Error("cached run output should match the computed run")
	}
}

func TestAnalyze_CorruptCacheRecomputes(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "stats.xz")
	if err := os.WriteFile(cachePath, []byte("garbage"), 0644); err != nil {
		t.Fatalf("write garbage cache: %v", err)
	}

	cmd := &AnalyzeCmd{
		Bible:  writeFixture(t),
		Level:  "books",
		Output: "text",
		Cache:  cachePath,
		Out:    filepath.Join(dir, "out.txt"),
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("corrupt cache should trigger recompute, not failure: %v", err)
	}
}

func TestAnalyze_TopBottomOne(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.txt")
	cmd := &AnalyzeCmd{
		Bible:     writeFixture(t),
		Level:     "verses",
		Output:    "text",
		TopBottom: 1,
		NoCache:   true,
		Out:       outPath,
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("top-bottom 1 should emit exactly 2 rows, got %d", lines)
	}
}

func TestAnalyze_RejectsNegativeTopBottom(t *testing.T) {
	cmd := &AnalyzeCmd{
		Bible:     writeFixture(t),
		Level:     "books",
		Output:    "table",
		TopBottom: -1,
	}
	if err := cmd.Run(); err == nil {
		t.Fatal("negative top-bottom should be rejected")
	}
}

func TestAnalyze_ParseFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.xml")
	if err := os.WriteFile(bad, []byte(`<XMLBIBLE><BIBLEBOOK><CHAPTER cnumber="1"/></BIBLEBOOK></XMLBIBLE>`), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cmd := &AnalyzeCmd{
		Bible:   bad,
		Level:   "books",
		Output:  "table",
		NoCache: true,
	}
	if err := cmd.Run(); err == nil {
		t.Fatal("parse failure should abort the run")
	}
}
