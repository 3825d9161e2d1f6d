package ingest

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/itsmostafa/pagetree/internal/outline"
)

// pageAnnotation matches trailing page references in exported TOC headings:
// dot leaders ("Title ...... 21"), a pipe ("Title | p.21") or an ellipsis.
var pageAnnotation = regexp.MustCompile(`(?:\.{2,}|…+|\|)\s*(?:p\.\s*|页\s*)?(\d+)\s*$`)

// ReadMarkdown extracts outline entries from a Markdown file's headings.
// Heading level maps to nesting level; a trailing page annotation on the
// heading text becomes the claimed page.
func ReadMarkdown(path string) ([]outline.Entry, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}
	return ParseMarkdown(src)
}

// ParseMarkdown walks the goldmark AST and collects heading entries.
func ParseMarkdown(src []byte) ([]outline.Entry, error) {
	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var entries []outline.Entry
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			continue
		}

		title := strings.TrimSpace(string(heading.Text(src)))
		if title == "" {
			continue
		}

		entry := outline.Entry{Level: heading.Level}
		entry.Title, entry.Page = splitPageAnnotation(title)
		entries = append(entries, entry)
	}

	return entries, nil
}

func splitPageAnnotation(title string) (string, *int) {
	m := pageAnnotation.FindStringSubmatchIndex(title)
	if m == nil {
		return title, nil
	}

	page, err := strconv.Atoi(title[m[2]:m[3]])
	if err != nil || page < 1 {
		return title, nil
	}

	return strings.TrimSpace(title[:m[0]]), &page
}
