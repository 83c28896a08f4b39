// Package zefania parses Zefania-schema Bible XML into a corpus.
//
// The expected shape is XMLBIBLE > BIBLEBOOK[bname] > CHAPTER[cnumber] >
// VERS[vnumber]. Identifying attributes are required; verse text has its
// surrounding whitespace trimmed and internal whitespace preserved.
package zefania

import (
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/benonymity/bible-compression/core/corpus"
	"github.com/benonymity/bible-compression/core/errors"
)

const formatName = "Zefania XML"

// Queries are compiled once; MustCompile panics at init on a bad
// expression rather than failing per document.
var (
	bookQuery       = xpath.MustCompile("//BIBLEBOOK")
	chapterQuery    = xpath.MustCompile(".//CHAPTER")
	verseQuery      = xpath.MustCompile(".//VERS")
	allChapterQuery = xpath.MustCompile("//CHAPTER")
	allVerseQuery   = xpath.MustCompile("//VERS")
)

// ParseFile parses the Zefania XML document at path.
func ParseFile(path string) (*corpus.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		var perr *errors.ParseError
		if errors.As(err, &perr) && perr.Path == "" {
			perr.Path = path
		}
		return nil, err
	}
	return c, nil
}

// Parse parses a Zefania XML document from r into a fully-populated corpus.
func Parse(r io.Reader) (*corpus.Corpus, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &errors.ParseError{Format: formatName, Message: "malformed XML", Err: err}
	}

	if firstElement(doc) == nil {
		return nil, errors.NewParse(formatName, "", "document has no root element")
	}

	c := corpus.New()
	chaptersSeen := 0
	versesSeen := 0

	for _, bookNode := range xmlquery.QuerySelectorAll(doc, bookQuery) {
		bname := bookNode.SelectAttr("bname")
		if bname == "" {
			return nil, errors.NewParse(formatName, "", "BIBLEBOOK missing bname attribute")
		}
		book, err := c.AddBook(bname)
		if err != nil {
			return nil, err
		}

		for _, chNode := range xmlquery.QuerySelectorAll(bookNode, chapterQuery) {
			chaptersSeen++
			cnumber := chNode.SelectAttr("cnumber")
			if cnumber == "" {
				return nil, errors.NewParse(formatName, "", "CHAPTER missing cnumber attribute in book "+bname)
			}
			chapter, err := book.AddChapter(cnumber)
			if err != nil {
				return nil, err
			}

			for _, vNode := range xmlquery.QuerySelectorAll(chNode, verseQuery) {
				versesSeen++
				vnumber := vNode.SelectAttr("vnumber")
				if vnumber == "" {
					return nil, errors.NewParse(formatName, "",
						"VERS missing vnumber attribute in "+bname+" "+cnumber)
				}
				text := strings.TrimSpace(vNode.InnerText())
				if err := chapter.AddVerse(vnumber, text); err != nil {
					return nil, err
				}
			}
		}
	}

	// Chapters or verses outside their required parent are unreachable
	// through the walk above; catch them by comparing against
	// document-wide counts.
	if len(xmlquery.QuerySelectorAll(doc, allChapterQuery)) != chaptersSeen {
		return nil, errors.NewParse(formatName, "", "CHAPTER element outside BIBLEBOOK")
	}
	if len(xmlquery.QuerySelectorAll(doc, allVerseQuery)) != versesSeen {
		return nil, errors.NewParse(formatName, "", "VERS element outside CHAPTER")
	}

	return c, nil
}

func firstElement(doc *xmlquery.Node) *xmlquery.Node {
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}
