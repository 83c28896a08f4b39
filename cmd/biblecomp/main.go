// Command biblecomp analyzes how well general-purpose compression
// algorithms perform on the books, chapters, and verses of a Bible text.
// It parses a Zefania XML document, computes compressed/original ratios per
// unit per algorithm, ranks them, and renders the result to a table, chart,
// text file, CSV, or SQLite database.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/benonymity/bible-compression/core/errors"
	"github.com/benonymity/bible-compression/core/stats"
	"github.com/benonymity/bible-compression/core/zefania"
	"github.com/benonymity/bible-compression/internal/cache"
	"github.com/benonymity/bible-compression/internal/logging"
	"github.com/benonymity/bible-compression/internal/render"
)

const version = "1.0.0"

// CLI defines the command-line interface for biblecomp.
var CLI struct {
	// Global flags
	LogLevel string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log verbosity"`

	Analyze AnalyzeCmd `cmd:"" help:"Compute and render compression statistics"`
	Inspect InspectCmd `cmd:"" help:"Print the shape of a Bible document"`
	Cache   CacheGroup `cmd:"" help:"Stats cache artifact operations"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// CacheGroup contains cache artifact operations.
type CacheGroup struct {
	Info  CacheInfoCmd  `cmd:"" help:"Show cache artifact metadata"`
	Clear CacheClearCmd `cmd:"" help:"Delete the cache artifact"`
}

// AnalyzeCmd runs the full pipeline: parse, aggregate (or load from cache),
// rank, render.
type AnalyzeCmd struct {
	Bible     string `arg:"" help:"Path to Zefania XML document" type:"existingfile"`
	Level     string `default:"books" enum:"books,chapters,verses" help:"Granularity to rank"`
	Output    string `default:"table" enum:"table,chart,text,csv,sqlite" help:"Output sink"`
	TopBottom int    `name:"top-bottom" default:"0" help:"Show the K best and K worst units (0 = all)"`
	Cache     string `default:"bible_compression_stats.xz" help:"Stats cache artifact path" type:"path"`
	NoCache   bool   `name:"no-cache" help:"Skip reading and writing the cache artifact"`
	Out       string `help:"Output file path (default derived from level and sink)" type:"path"`
}

func (c *AnalyzeCmd) Run() error {
	if c.TopBottom < 0 {
		return fmt.Errorf("--top-bottom must be >= 0, got %d", c.TopBottom)
	}

	result, err := c.loadOrCompute()
	if err != nil {
		return err
	}

	table, err := result.TableFor(c.Level)
	if err != nil {
		return err
	}

	entries := stats.TopBottom(stats.Rank(table), c.TopBottom)
	title := titleFor(c.Level)
	outPath := c.Out
	if outPath == "" {
		outPath = defaultOutPath(c.Level, c.Output, c.TopBottom)
	}
	if c.TopBottom > 0 {
		title = fmt.Sprintf("%s (Top and Bottom %d)", title, c.TopBottom)
	}

	switch c.Output {
	case "table":
		return render.PrintTable(os.Stdout, entries, title)
	case "chart":
		if err := render.WriteChart(outPath, entries, title); err != nil {
			return err
		}
	case "text":
		if err := render.WriteText(outPath, entries); err != nil {
			return err
		}
	case "csv":
		if err := render.WriteCSV(outPath, entries); err != nil {
			return err
		}
	case "sqlite":
		if err := render.WriteSQLite(outPath, entries, c.Level); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output sink: %q", c.Output)
	}

	fmt.Printf("Saved: %s\n", outPath)
	return nil
}

// loadOrCompute returns cached statistics when a usable artifact exists,
// otherwise runs the full parse + aggregation pass and caches the result.
// Presence of the artifact alone gates recomputation.
func (c *AnalyzeCmd) loadOrCompute() (*stats.Result, error) {
	if !c.NoCache {
		result, meta, err := cache.Load(c.Cache)
		switch {
		case err == nil:
			logging.Info("loaded cached statistics", "path", c.Cache, "run_id", meta.RunID)
			return result, nil
		case errors.Is(err, os.ErrNotExist):
			logging.Debug("no cache artifact, computing", "path", c.Cache)
		case errors.Is(err, errors.ErrCacheCorrupt):
			logging.Warn("cache artifact corrupt, recomputing", "path", c.Cache, "error", err)
		default:
			return nil, err
		}
	}

	logging.Info("parsing document", "path", c.Bible)
	corpus, err := zefania.ParseFile(c.Bible)
	if err != nil {
		return nil, err
	}
	logging.Info("parsed document",
		"books", len(corpus.Books()),
		"chapters", corpus.ChapterCount(),
		"verses", corpus.VerseCount())

	logging.Info("computing compression statistics")
	result, err := stats.Aggregate(corpus)
	if err != nil {
		return nil, err
	}

	if !c.NoCache {
		sourceHash, err := cache.SourceHash(c.Bible)
		if err != nil {
			return nil, err
		}
		if err := cache.Save(c.Cache, result, sourceHash); err != nil {
			return nil, err
		}
		logging.Info("saved statistics", "path", c.Cache)
	}

	return result, nil
}

// titleFor maps a granularity level to its table/chart title.
func titleFor(level string) string {
	switch level {
	case "chapters":
		return "Chapter Compression Ratios"
	case "verses":
		return "Verse Compression Ratios"
	default:
		return "Book Compression Ratios"
	}
}

// defaultOutPath derives the output filename from the level, sink, and
// top/bottom restriction, e.g. book_compression_top_bottom_5_stats.csv.
func defaultOutPath(level, output string, topBottom int) string {
	base := map[string]string{
		"books":    "book_compression",
		"chapters": "chapter_compression",
		"verses":   "verse_compression",
	}[level]
	if topBottom > 0 {
		base = fmt.Sprintf("%s_top_bottom_%d", base, topBottom)
	}
	switch output {
	case "chart":
		return base + "_ratios.png"
	case "csv":
		return base + "_stats.csv"
	case "sqlite":
		return base + "_stats.db"
	default:
		return base + "_stats.txt"
	}
}

// InspectCmd prints the shape of a parsed document without compressing
// anything.
type InspectCmd struct {
	Bible string `arg:"" help:"Path to Zefania XML document" type:"existingfile"`
}

func (c *InspectCmd) Run() error {
	corpus, err := zefania.ParseFile(c.Bible)
	if err != nil {
		return err
	}

	totalBytes := 0
	for _, b := range corpus.Books() {
		totalBytes += len(b.Text())
	}

	fmt.Printf("Document: %s\n", c.Bible)
	fmt.Printf("  Books:    %d\n", len(corpus.Books()))
	fmt.Printf("  Chapters: %d\n", corpus.ChapterCount())
	fmt.Printf("  Verses:   %d\n", corpus.VerseCount())
	fmt.Printf("  Text:     %d bytes\n", totalBytes)
	return nil
}

// CacheInfoCmd shows the metadata header of the cache artifact.
type CacheInfoCmd struct {
	Cache string `default:"bible_compression_stats.xz" help:"Stats cache artifact path" type:"path"`
}

func (c *CacheInfoCmd) Run() error {
	result, meta, err := cache.Load(c.Cache)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Printf("No cache artifact at %s\n", c.Cache)
			return nil
		}
		return err
	}

	fmt.Printf("Cache: %s\n", c.Cache)
	fmt.Printf("  Run ID:      %s\n", meta.RunID)
	fmt.Printf("  Created:     %s\n", meta.Created.Format("2006-01-02 15:04:05 MST"))
	if meta.SourceHash != "" {
		fmt.Printf("  Source hash: %s\n", meta.SourceHash)
	}
	fmt.Printf("  Books:       %d\n", result.Books.Len())
	fmt.Printf("  Chapters:    %d\n", result.Chapters.Len())
	fmt.Printf("  Verses:      %d\n", result.Verses.Len())
	return nil
}

// CacheClearCmd deletes the cache artifact.
type CacheClearCmd struct {
	Cache string `default:"bible_compression_stats.xz" help:"Stats cache artifact path" type:"path"`
}

func (c *CacheClearCmd) Run() error {
	if err := cache.Remove(c.Cache); err != nil {
		return err
	}
	fmt.Printf("Removed: %s\n", c.Cache)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("biblecomp %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("biblecomp"),
		kong.Description("Bible compression analysis - ratio statistics per book, chapter, and verse"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.FormatText)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
