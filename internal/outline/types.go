package outline

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// ErrEmptyOutline is returned when no entries survive validation. It is the
// only terminal condition of a build; callers are expected to fall back to a
// strategy that does not rely on the document's outline.
var ErrEmptyOutline = errors.New("no structure detected")

// Entry is a flat outline entry as extracted from a document's table of
// contents, before tree construction.
type Entry struct {
	Title     string `json:"title"`
	Page      *int   `json:"page,omitempty"`       // claimed 1-based physical page
	Level     int    `json:"level,omitempty"`      // claimed nesting depth, 1 = top
	Structure string `json:"structure,omitempty"`  // dot-joined counters like "1.2.3", set by Normalize
	IsChapter bool   `json:"is_chapter,omitempty"` // set by Normalize for chapter-pattern titles

	// Confidence records how the page value was obtained when the entry has
	// been through verification: "high", "medium", "low" or "fallback".
	Confidence string `json:"confidence,omitempty"`
}

// TreeNode is a node in the resolved document tree. Children are owned by
// their parent; there are no back edges.
type TreeNode struct {
	Title     string      `json:"title"`
	StartIdx  int         `json:"start_index"`
	EndIdx    int         `json:"end_index"`
	IsGapFill bool        `json:"is_gap_fill,omitempty"`
	Children  []*TreeNode `json:"nodes,omitempty"`
}

// BoundaryPolicy selects how a node's end page relates to its next sibling's
// start page.
type BoundaryPolicy string

const (
	// BoundaryExclusive assigns end = next sibling start - 1. Siblings never
	// share a page. This is the default.
	BoundaryExclusive BoundaryPolicy = "exclusive"

	// BoundaryShared assigns end = next sibling start, so a section that ends
	// mid-page shares that page with its successor.
	BoundaryShared BoundaryPolicy = "shared"
)

// Config holds tuning knobs for a tree build.
type Config struct {
	// Policy is the sibling boundary convention.
	Policy BoundaryPolicy

	// DefaultWindow is the page span assumed for the last top-level node when
	// neither a sibling nor a total page count provides a boundary.
	DefaultWindow int

	// GapTitle is the title given to synthesized gap-fill nodes.
	GapTitle string

	// SegmentSize is the maximum number of entries per verification segment.
	SegmentSize int

	// SearchRadius is the number of pages added on each side of a segment's
	// claimed page span when building its search window.
	SearchRadius int

	// MaxWorkers bounds concurrent verification segments.
	MaxWorkers int

	// RequestTimeout applies per LLM request during verification.
	RequestTimeout time.Duration

	// TOCRegionPages is the leading page count the verifier is told to treat
	// as table-of-contents territory and ignore title matches within.
	TOCRegionPages int

	// Logger receives warnings for non-fatal anomalies (level jumps,
	// verification fallbacks). Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Policy:         BoundaryExclusive,
		DefaultWindow:  10,
		GapTitle:       "Untitled section",
		SegmentSize:    10,
		SearchRadius:   5,
		MaxWorkers:     5,
		RequestTimeout: 60 * time.Second,
		TOCRegionPages: 10,
	}
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// PageContent is the extracted text of a single physical page.
type PageContent struct {
	Text string
}

// CoverageReport summarizes the gap-fill pass.
type CoverageReport struct {
	GapsFound          int      `json:"gaps_found"`
	OriginalCoverage   int      `json:"original_coverage"`
	CoveragePercentage float64  `json:"coverage_percentage"`
	GapsFilled         [][2]int `json:"gaps_filled"`
}

// Document is the final JSON-serializable build artifact.
type Document struct {
	SourceFile  string          `json:"source_file"`
	TotalPages  int             `json:"total_pages"`
	GapFillInfo *CoverageReport `json:"gap_fill_info,omitempty"`
	Structure   []*TreeNode     `json:"structure"`
}

// String returns a JSON representation of the TreeNode for debugging.
func (n *TreeNode) String() string {
	b, _ := json.MarshalIndent(n, "", "  ")
	return string(b)
}

// String returns a JSON representation of the Document.
func (d *Document) String() string {
	b, _ := json.MarshalIndent(d, "", "  ")
	return string(b)
}

// Walk traverses the tree in depth-first document order.
func (n *TreeNode) Walk(fn func(*TreeNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Clone creates a deep copy of the TreeNode.
func (n *TreeNode) Clone() *TreeNode {
	if n == nil {
		return nil
	}
	clone := &TreeNode{
		Title:     n.Title,
		StartIdx:  n.StartIdx,
		EndIdx:    n.EndIdx,
		IsGapFill: n.IsGapFill,
	}
	if n.Children != nil {
		clone.Children = make([]*TreeNode, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}

// FlattenTree returns all nodes of a forest in document order.
func FlattenTree(nodes []*TreeNode) []*TreeNode {
	var result []*TreeNode

	var walk func([]*TreeNode)
	walk = func(children []*TreeNode) {
		for _, node := range children {
			result = append(result, node)
			if node.Children != nil {
				walk(node.Children)
			}
		}
	}

	walk(nodes)
	return result
}
