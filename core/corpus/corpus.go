// Package corpus defines the in-memory model for a hierarchical Bible text:
// a Corpus of Books, each holding Chapters, each holding Verses.
//
// All three levels keep their children in insertion order. Ordering matters:
// the concatenated text of a chapter or book must be byte-identical across
// runs for the same input, because compression ratios computed from it are
// cached and compared.
package corpus

import (
	"strings"

	"github.com/benonymity/bible-compression/core/errors"
)

// Verse is the leaf unit of the hierarchy. Immutable once parsed.
type Verse struct {
	// Number is the verse identifier within its chapter. Opaque: not
	// required to be numeric or contiguous.
	Number string

	// Text is the verse content, surrounding whitespace already trimmed.
	// May be empty.
	Text string
}

// Chapter holds the verses of one chapter in insertion order.
type Chapter struct {
	// Number is the chapter identifier within its book.
	Number string

	verses []Verse
	byNum  map[string]int
}

// Book holds the chapters of one book in insertion order.
type Book struct {
	// Name is the book identifier within the corpus (e.g., "Genesis").
	Name string

	chapters []*Chapter
	byNum    map[string]int
}

// Corpus is the top-level container holding all books in insertion order.
type Corpus struct {
	books  []*Book
	byName map[string]int
}

// New creates an empty corpus.
func New() *Corpus {
	return &Corpus{byName: make(map[string]int)}
}

// AddBook appends a new book. Book names must be unique within the corpus.
func (c *Corpus) AddBook(name string) (*Book, error) {
	if name == "" {
		return nil, errors.NewParse("corpus", "", "book name is empty")
	}
	if _, exists := c.byName[name]; exists {
		return nil, errors.NewParse("corpus", "", "duplicate book: "+name)
	}
	b := &Book{Name: name, byNum: make(map[string]int)}
	c.byName[name] = len(c.books)
	c.books = append(c.books, b)
	return b, nil
}

// Book returns the book with the given name, or nil.
func (c *Corpus) Book(name string) *Book {
	i, ok := c.byName[name]
	if !ok {
		return nil
	}
	return c.books[i]
}

// Books returns all books in insertion order.
func (c *Corpus) Books() []*Book {
	return c.books
}

// ChapterCount returns the total number of chapters across all books.
func (c *Corpus) ChapterCount() int {
	n := 0
	for _, b := range c.books {
		n += len(b.chapters)
	}
	return n
}

// VerseCount returns the total number of verses across all books.
func (c *Corpus) VerseCount() int {
	n := 0
	for _, b := range c.books {
		for _, ch := range b.chapters {
			n += len(ch.verses)
		}
	}
	return n
}

// AddChapter appends a new chapter. Chapter numbers must be unique within
// the book.
func (b *Book) AddChapter(number string) (*Chapter, error) {
	if number == "" {
		return nil, errors.NewParse("corpus", "", "chapter number is empty in book "+b.Name)
	}
	if _, exists := b.byNum[number]; exists {
		return nil, errors.NewParse("corpus", "", "duplicate chapter "+number+" in book "+b.Name)
	}
	ch := &Chapter{Number: number, byNum: make(map[string]int)}
	b.byNum[number] = len(b.chapters)
	b.chapters = append(b.chapters, ch)
	return ch, nil
}

// Chapter returns the chapter with the given number, or nil.
func (b *Book) Chapter(number string) *Chapter {
	i, ok := b.byNum[number]
	if !ok {
		return nil
	}
	return b.chapters[i]
}

// Chapters returns all chapters in insertion order.
func (b *Book) Chapters() []*Chapter {
	return b.chapters
}

// Text returns the concatenated text of the book: every verse text across
// all chapters, joined by single spaces, in insertion order.
func (b *Book) Text() string {
	var parts []string
	for _, ch := range b.chapters {
		for _, v := range ch.verses {
			parts = append(parts, v.Text)
		}
	}
	return strings.Join(parts, " ")
}

// AddVerse appends a new verse. Verse numbers must be unique within the
// chapter.
func (ch *Chapter) AddVerse(number, text string) error {
	if number == "" {
		return errors.NewParse("corpus", "", "verse number is empty in chapter "+ch.Number)
	}
	if _, exists := ch.byNum[number]; exists {
		return errors.NewParse("corpus", "", "duplicate verse "+number+" in chapter "+ch.Number)
	}
	ch.byNum[number] = len(ch.verses)
	ch.verses = append(ch.verses, Verse{Number: number, Text: text})
	return nil
}

// Verses returns all verses in insertion order.
func (ch *Chapter) Verses() []Verse {
	return ch.verses
}

// Text returns the concatenated text of the chapter: verse texts joined by
// single spaces, in insertion order.
func (ch *Chapter) Text() string {
	parts := make([]string, len(ch.verses))
	for i, v := range ch.verses {
		parts[i] = v.Text
	}
	return strings.Join(parts, " ")
}
