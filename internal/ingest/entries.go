// Package ingest adapts external sources (JSON entry dumps, PDFs, Markdown)
// into the canonical outline entry schema. All field-name aliasing and
// format-specific parsing happens here; the core operates on exactly one
// representation.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/itsmostafa/pagetree/internal/outline"
)

// rawEntry accepts the synonymous field names different extractors emit for
// the same concepts.
type rawEntry struct {
	Title         string `json:"title"`
	Page          *int   `json:"page"`
	PhysicalIndex *int   `json:"physical_index"`
	Start         *int   `json:"start"`
	StartIndex    *int   `json:"start_index"`
	Level         int    `json:"level"`
	Depth         int    `json:"depth"`
}

type entriesFile struct {
	TotalPages int        `json:"total_pages"`
	Entries    []rawEntry `json:"entries"`
}

// ReadEntriesFile loads a JSON entry dump and canonicalizes it.
func ReadEntriesFile(path string) ([]outline.Entry, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read entries file: %w", err)
	}
	return ParseEntries(data)
}

// ParseEntries canonicalizes a JSON entry dump: the first present page alias
// wins, level defaults to 1, order is preserved.
func ParseEntries(data []byte) ([]outline.Entry, int, error) {
	var file entriesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, 0, fmt.Errorf("parse entries file: %w", err)
	}

	entries := make([]outline.Entry, 0, len(file.Entries))
	for _, r := range file.Entries {
		e := outline.Entry{
			Title: r.Title,
			Page:  firstPage(r.Page, r.PhysicalIndex, r.Start, r.StartIndex),
			Level: r.Level,
		}
		if e.Level == 0 {
			e.Level = r.Depth
		}
		if e.Level < 1 {
			e.Level = 1
		}
		entries = append(entries, e)
	}

	return entries, file.TotalPages, nil
}

func firstPage(candidates ...*int) *int {
	for _, c := range candidates {
		if c != nil && *c > 0 {
			page := *c
			return &page
		}
	}
	return nil
}
