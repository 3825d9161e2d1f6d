package outline

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// LLM-assisted page verification. Entries are grouped into bounded segments;
// each segment is checked against a window of page content around its claimed
// span with a single structured request. Segments are independent and run on
// a bounded worker pool. A segment that fails in any way (timeout, malformed
// response, incomplete mapping list) falls back to its original claimed pages
// so the pipeline always makes forward progress.

// Confidence tiers attached to verified page mappings.
const (
	ConfidenceHigh     = "high"
	ConfidenceMedium   = "medium"
	ConfidenceLow      = "low"
	ConfidenceFallback = "fallback"
)

// PageMapping is one verified title-to-page result.
type PageMapping struct {
	Title         string `json:"title"`
	PhysicalIndex *int   `json:"physical_index"`
	Confidence    string `json:"confidence"`
}

type verifyResponse struct {
	Mappings []PageMapping `json:"mappings"`
}

// segment is a transient group of consecutive entries verified as one unit.
type segment struct {
	first, last int // inclusive entry index range
	windowLo    int // inclusive page window
	windowHi    int
}

// Verifier corrects claimed page numbers using windowed document content and
// an LLM backend.
type Verifier struct {
	llm LLMProvider
	cfg *Config
}

// NewVerifier creates a Verifier with the given provider.
func NewVerifier(llm LLMProvider, cfg *Config) *Verifier {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Verifier{llm: llm, cfg: cfg}
}

// VerifyPages re-maps entries to physical pages using the document content.
// The returned slice has the same length and order as the input; entries the
// verifier could not improve keep their claimed page with fallback
// confidence. This method never fails the pipeline.
func (v *Verifier) VerifyPages(ctx context.Context, entries []Entry, pages []PageContent) []Entry {
	result := make([]Entry, len(entries))
	copy(result, entries)

	if len(entries) == 0 || len(pages) == 0 || v.llm == nil {
		return result
	}

	segments := buildSegments(entries, len(pages), v.cfg)
	logger := v.cfg.logger()

	maxWorkers := v.cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	jobs := make(chan segment, len(segments))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seg := range jobs {
				mappings, err := v.verifySegment(ctx, entries, seg, pages)
				mu.Lock()
				if err != nil {
					logger.Warn("segment verification failed, keeping claimed pages",
						"entries", seg.last-seg.first+1, "error", err)
					for i := seg.first; i <= seg.last; i++ {
						result[i].Confidence = ConfidenceFallback
					}
				} else {
					for i := seg.first; i <= seg.last; i++ {
						m := mappings[i-seg.first]
						if m.PhysicalIndex != nil && *m.PhysicalIndex >= 1 && *m.PhysicalIndex <= len(pages) {
							page := *m.PhysicalIndex
							result[i].Page = &page
							result[i].Confidence = normalizeConfidence(m.Confidence)
						} else {
							result[i].Confidence = ConfidenceFallback
						}
					}
				}
				mu.Unlock()
			}
		}()
	}

	for _, seg := range segments {
		jobs <- seg
	}
	close(jobs)
	wg.Wait()

	return result
}

// verifySegment issues one structured request for a segment. No partial
// results: a response that does not map every entry is treated as a failure.
func (v *Verifier) verifySegment(ctx context.Context, entries []Entry, seg segment, pages []PageContent) ([]PageMapping, error) {
	reqCtx := ctx
	if v.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, v.cfg.RequestTimeout)
		defer cancel()
	}

	var titles strings.Builder
	for i := seg.first; i <= seg.last; i++ {
		fmt.Fprintf(&titles, "%d. %s\n", i-seg.first+1, entries[i].Title)
	}

	prompt := fmt.Sprintf(VerifySegmentPrompt,
		v.cfg.TOCRegionPages,
		titles.String(),
		taggedWindow(pages, seg.windowLo, seg.windowHi))

	response, err := v.llm.Complete(reqCtx, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := ExtractJSON[verifyResponse](response)
	if err != nil {
		return nil, err
	}

	want := seg.last - seg.first + 1
	if len(parsed.Mappings) != want {
		return nil, fmt.Errorf("incomplete mapping list: got %d, want %d", len(parsed.Mappings), want)
	}

	return parsed.Mappings, nil
}

// buildSegments groups consecutive entries into segments of at most
// cfg.SegmentSize whose claimed pages cluster together. A claimed page far
// outside the running cluster starts a new segment so windows stay bounded.
func buildSegments(entries []Entry, totalPages int, cfg *Config) []segment {
	size := cfg.SegmentSize
	if size <= 0 {
		size = 10
	}
	radius := cfg.SearchRadius
	if radius <= 0 {
		radius = 5
	}

	var segments []segment
	first := 0
	minPage, maxPage := 0, 0

	flush := func(last int) {
		lo, hi := 1, totalPages
		if minPage > 0 {
			lo = minPage - radius
			hi = maxPage + radius
		}
		if lo < 1 {
			lo = 1
		}
		if hi > totalPages {
			hi = totalPages
		}
		segments = append(segments, segment{first: first, last: last, windowLo: lo, windowHi: hi})
	}

	for i, e := range entries {
		page := 0
		if e.Page != nil {
			page = *e.Page
		}

		count := i - first
		splits := count >= size ||
			(page > 0 && maxPage > 0 && page-maxPage > 2*radius)

		if count > 0 && splits {
			flush(i - 1)
			first = i
			minPage, maxPage = 0, 0
		}

		if page > 0 {
			if minPage == 0 || page < minPage {
				minPage = page
			}
			if page > maxPage {
				maxPage = page
			}
		}
	}
	flush(len(entries) - 1)

	return segments
}

// taggedWindow renders pages [lo, hi] (1-based inclusive) with page markers.
func taggedWindow(pages []PageContent, lo, hi int) string {
	var b strings.Builder
	for p := lo; p <= hi && p-1 < len(pages); p++ {
		if p < 1 {
			continue
		}
		fmt.Fprintf(&b, "\n=== Page %d ===\n%s\n", p, truncateForPrompt(pages[p-1].Text, 2000))
	}
	return b.String()
}

// truncateForPrompt shortens text to fit in prompts.
func truncateForPrompt(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "\n...[truncated]"
}

func normalizeConfidence(c string) string {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case ConfidenceHigh:
		return ConfidenceHigh
	case ConfidenceMedium:
		return ConfidenceMedium
	case ConfidenceLow:
		return ConfidenceLow
	default:
		return ConfidenceLow
	}
}
