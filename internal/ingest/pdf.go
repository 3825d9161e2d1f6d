package ingest

import (
	"fmt"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/itsmostafa/pagetree/internal/outline"
)

// ReadPDF extracts per-page text and the embedded outline (bookmarks) from a
// PDF. Bookmark entries carry nesting levels but no resolved page numbers;
// page attribution for them comes from the verification pass.
func ReadPDF(path string) ([]outline.Entry, []outline.PageContent, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]outline.PageContent, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, outline.PageContent{})
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages that fail extraction stay empty; the verifier simply
			// cannot match titles against them.
			pages = append(pages, outline.PageContent{})
			continue
		}
		pages = append(pages, outline.PageContent{Text: text})
	}

	var entries []outline.Entry
	flattenOutline(reader.Outline().Child, 1, &entries)

	return entries, pages, nil
}

func flattenOutline(items []pdflib.Outline, level int, out *[]outline.Entry) {
	for _, item := range items {
		if item.Title != "" {
			*out = append(*out, outline.Entry{Title: item.Title, Level: level})
		}
		flattenOutline(item.Child, level+1, out)
	}
}
