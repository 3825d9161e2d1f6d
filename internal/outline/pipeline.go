package outline

import (
	"context"
)

// Pipeline orchestration: validate -> normalize -> assemble -> assign ranges
// -> fill gaps. Each stage is pure or mutates only the tree owned by this
// build, so repeated builds on the same input produce identical output. The
// verified path runs the same downstream stages on corrected entries, so
// positional estimates and verifier output are interchangeable inputs.

// Build runs the full pipeline over raw outline entries and returns the
// final document artifact. ErrEmptyOutline is returned when no entries
// survive validation; every other anomaly degrades locally.
func Build(sourceFile string, entries []Entry, totalPages int, cfg *Config) (*Document, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	valid, dropped := ValidateEntries(entries)
	if dropped > 0 {
		cfg.logger().Info("dropped invalid outline entries", "count", dropped)
	}
	if len(valid) == 0 {
		return nil, ErrEmptyOutline
	}

	normalized := Normalize(valid, cfg)
	return buildTree(sourceFile, normalized, totalPages, cfg), nil
}

// BuildVerified runs the pipeline with LLM-assisted page verification between
// normalization and tree construction. Verification failures degrade to the
// claimed pages; the build itself only fails on an empty outline.
func BuildVerified(ctx context.Context, sourceFile string, entries []Entry, pages []PageContent, llm LLMProvider, cfg *Config) (*Document, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	valid, dropped := ValidateEntries(entries)
	if dropped > 0 {
		cfg.logger().Info("dropped invalid outline entries", "count", dropped)
	}
	if len(valid) == 0 {
		return nil, ErrEmptyOutline
	}

	normalized := Normalize(valid, cfg)
	verified := NewVerifier(llm, cfg).VerifyPages(ctx, normalized, pages)

	return buildTree(sourceFile, verified, len(pages), cfg), nil
}

func buildTree(sourceFile string, entries []Entry, totalPages int, cfg *Config) *Document {
	roots := Assemble(entries)
	AssignRanges(roots, totalPages, cfg)
	roots, report := FindAndFillGaps(roots, totalPages, cfg)

	return &Document{
		SourceFile:  sourceFile,
		TotalPages:  totalPages,
		GapFillInfo: report,
		Structure:   roots,
	}
}

// Anomaly describes one inter-sibling gap or overlap found by Inspect.
type Anomaly struct {
	Depth   int
	Before  string // title of the earlier sibling
	After   string // title of the later sibling
	Missing int    // pages uncovered (positive) or doubly owned (negative)
}

// Inspect walks every sibling list of a forest and reports gaps
// (next.start - current.end - 1 > 0) and overlaps (< 0). A tree that has been
// through gap filling under the exclusive policy reports nothing. Under the
// shared policy an overlap of exactly one page between siblings is the
// documented convention and is not reported.
func Inspect(roots []*TreeNode, policy BoundaryPolicy) []Anomaly {
	var anomalies []Anomaly

	var walk func(nodes []*TreeNode, depth int)
	walk = func(nodes []*TreeNode, depth int) {
		for i, n := range nodes {
			if i > 0 {
				prev := nodes[i-1]
				missing := n.StartIdx - prev.EndIdx - 1
				allowed := missing == 0
				if policy == BoundaryShared {
					allowed = missing == 0 || missing == -1
				}
				if !allowed {
					anomalies = append(anomalies, Anomaly{
						Depth:   depth,
						Before:  prev.Title,
						After:   n.Title,
						Missing: missing,
					})
				}
			}
			walk(n.Children, depth+1)
		}
	}

	walk(roots, 0)
	return anomalies
}
