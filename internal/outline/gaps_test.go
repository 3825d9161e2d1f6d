package outline

import (
	"testing"
)

func TestFindAndFillGaps(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("adjacent siblings leave no gap", func(t *testing.T) {
		roots := []*TreeNode{
			{Title: "A", StartIdx: 1, EndIdx: 9},
			{Title: "C", StartIdx: 10, EndIdx: 20},
		}
		filled, report := FindAndFillGaps(roots, 20, cfg)

		if report.GapsFound != 0 {
			t.Errorf("expected no gaps, got %d", report.GapsFound)
		}
		if len(filled) != 2 {
			t.Errorf("expected 2 nodes, got %d", len(filled))
		}
		if report.OriginalCoverage != 20 {
			t.Errorf("expected coverage 20, got %d", report.OriginalCoverage)
		}
		if report.CoveragePercentage != 100 {
			t.Errorf("expected 100%%, got %f", report.CoveragePercentage)
		}
	})

	t.Run("gap between siblings filled", func(t *testing.T) {
		// A resolved to [1,5] via a child-derived end, C starts at 10.
		roots := []*TreeNode{
			{Title: "A", StartIdx: 1, EndIdx: 5},
			{Title: "C", StartIdx: 10, EndIdx: 20},
		}
		filled, report := FindAndFillGaps(roots, 20, cfg)

		if report.GapsFound != 1 {
			t.Fatalf("expected 1 gap, got %d", report.GapsFound)
		}
		if len(filled) != 3 {
			t.Fatalf("expected 3 nodes after filling, got %d", len(filled))
		}
		gap := filled[1]
		if !gap.IsGapFill {
			t.Error("expected middle node to be gap fill")
		}
		if gap.StartIdx != 6 || gap.EndIdx != 9 {
			t.Errorf("expected gap [6,9], got [%d,%d]", gap.StartIdx, gap.EndIdx)
		}
		if gap.Title != "Untitled section" {
			t.Errorf("unexpected gap title %q", gap.Title)
		}
		if report.GapsFilled[0] != [2]int{6, 9} {
			t.Errorf("unexpected gaps_filled %v", report.GapsFilled)
		}
		if report.OriginalCoverage != 16 {
			t.Errorf("expected original coverage 16, got %d", report.OriginalCoverage)
		}
	})

	t.Run("leading and trailing gaps at top level", func(t *testing.T) {
		roots := []*TreeNode{
			{Title: "A", StartIdx: 5, EndIdx: 12},
		}
		filled, report := FindAndFillGaps(roots, 20, cfg)

		if report.GapsFound != 2 {
			t.Fatalf("expected 2 gaps, got %d", report.GapsFound)
		}
		if len(filled) != 3 {
			t.Fatalf("expected 3 nodes, got %d", len(filled))
		}
		if filled[0].StartIdx != 1 || filled[0].EndIdx != 4 {
			t.Errorf("expected leading gap [1,4], got [%d,%d]", filled[0].StartIdx, filled[0].EndIdx)
		}
		if filled[2].StartIdx != 13 || filled[2].EndIdx != 20 {
			t.Errorf("expected trailing gap [13,20], got [%d,%d]", filled[2].StartIdx, filled[2].EndIdx)
		}
	})

	t.Run("nested gaps filled against parent range", func(t *testing.T) {
		roots := []*TreeNode{
			{Title: "A", StartIdx: 1, EndIdx: 20, Children: []*TreeNode{
				{Title: "A.1", StartIdx: 1, EndIdx: 8},
				{Title: "A.2", StartIdx: 12, EndIdx: 20},
			}},
		}
		filled, report := FindAndFillGaps(roots, 20, cfg)

		if report.GapsFound != 1 {
			t.Fatalf("expected 1 nested gap, got %d", report.GapsFound)
		}
		children := filled[0].Children
		if len(children) != 3 {
			t.Fatalf("expected 3 children, got %d", len(children))
		}
		if children[1].StartIdx != 9 || children[1].EndIdx != 11 {
			t.Errorf("expected nested gap [9,11], got [%d,%d]", children[1].StartIdx, children[1].EndIdx)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		roots := []*TreeNode{
			{Title: "A", StartIdx: 1, EndIdx: 5},
			{Title: "C", StartIdx: 10, EndIdx: 20},
		}
		filled, _ := FindAndFillGaps(roots, 20, cfg)
		refilled, report := FindAndFillGaps(filled, 20, cfg)

		if report.GapsFound != 0 {
			t.Errorf("expected no gaps on second pass, got %d", report.GapsFound)
		}
		if len(refilled) != len(filled) {
			t.Errorf("expected node count unchanged, got %d vs %d", len(refilled), len(filled))
		}
	})

	t.Run("empty forest", func(t *testing.T) {
		filled, report := FindAndFillGaps(nil, 20, cfg)
		if filled != nil {
			t.Error("expected nil forest unchanged")
		}
		if report.GapsFound != 0 {
			t.Errorf("expected no gaps, got %d", report.GapsFound)
		}
	})
}
