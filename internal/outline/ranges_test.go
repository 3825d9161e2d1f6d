package outline

import (
	"testing"
)

func TestAssignRanges(t *testing.T) {
	t.Run("sibling and parent boundaries", func(t *testing.T) {
		// Chapter 1 [21] { 1.1 [24], 1.2 [32] }, Chapter 2 [41], 50 pages.
		roots := []*TreeNode{
			{Title: "Chapter 1", StartIdx: 21, Children: []*TreeNode{
				{Title: "1.1", StartIdx: 24},
				{Title: "1.2", StartIdx: 32},
			}},
			{Title: "Chapter 2", StartIdx: 41},
		}
		AssignRanges(roots, 50, DefaultConfig())

		checks := []struct {
			node       *TreeNode
			start, end int
		}{
			{roots[0], 21, 40},
			{roots[0].Children[0], 24, 31},
			{roots[0].Children[1], 32, 40},
			{roots[1], 41, 50},
		}
		for _, c := range checks {
			if c.node.StartIdx != c.start || c.node.EndIdx != c.end {
				t.Errorf("%s = [%d,%d], want [%d,%d]",
					c.node.Title, c.node.StartIdx, c.node.EndIdx, c.start, c.end)
			}
		}
	})

	t.Run("parent end equals last child end", func(t *testing.T) {
		roots := []*TreeNode{
			{Title: "A", StartIdx: 1, Children: []*TreeNode{
				{Title: "A.1", StartIdx: 2},
				{Title: "A.2", StartIdx: 5},
			}},
			{Title: "B", StartIdx: 9},
		}
		AssignRanges(roots, 12, DefaultConfig())

		a := roots[0]
		if a.EndIdx != a.Children[1].EndIdx {
			t.Errorf("parent end %d != last child end %d", a.EndIdx, a.Children[1].EndIdx)
		}
		if a.EndIdx != 8 {
			t.Errorf("expected A to end at 8, got %d", a.EndIdx)
		}
	})

	t.Run("shared boundary policy", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Policy = BoundaryShared

		roots := []*TreeNode{
			{Title: "A", StartIdx: 1},
			{Title: "B", StartIdx: 10},
		}
		AssignRanges(roots, 20, cfg)

		if roots[0].EndIdx != 10 {
			t.Errorf("expected A to share page 10, got end %d", roots[0].EndIdx)
		}
		if roots[1].EndIdx != 20 {
			t.Errorf("expected B to end at 20, got %d", roots[1].EndIdx)
		}
	})

	t.Run("default window without total pages", func(t *testing.T) {
		roots := []*TreeNode{{Title: "A", StartIdx: 5}}
		AssignRanges(roots, 0, DefaultConfig())

		if roots[0].EndIdx != 15 {
			t.Errorf("expected default window end 15, got %d", roots[0].EndIdx)
		}
	})

	t.Run("end clamped to start", func(t *testing.T) {
		// B claims a page before A ends; A's end clamps to its start.
		roots := []*TreeNode{
			{Title: "A", StartIdx: 10},
			{Title: "B", StartIdx: 10},
		}
		AssignRanges(roots, 20, DefaultConfig())

		if roots[0].EndIdx != 10 {
			t.Errorf("expected clamped end 10, got %d", roots[0].EndIdx)
		}
	})

	t.Run("missing starts inherited", func(t *testing.T) {
		roots := []*TreeNode{
			{Title: "A", StartIdx: 3, Children: []*TreeNode{
				{Title: "A.1"}, // no claimed page
				{Title: "A.2", StartIdx: 6},
			}},
		}
		AssignRanges(roots, 10, DefaultConfig())

		if roots[0].Children[0].StartIdx != 3 {
			t.Errorf("expected first child to inherit parent start 3, got %d",
				roots[0].Children[0].StartIdx)
		}
		if roots[0].Children[0].EndIdx != 5 {
			t.Errorf("expected first child end 5, got %d", roots[0].Children[0].EndIdx)
		}
	})

	t.Run("start clamped to total pages", func(t *testing.T) {
		// B claims a page past the document; its range collapses onto the
		// last page and A's end stays in bounds.
		roots := []*TreeNode{
			{Title: "A", StartIdx: 10},
			{Title: "B", StartIdx: 60},
		}
		AssignRanges(roots, 50, DefaultConfig())

		if roots[0].EndIdx != 49 {
			t.Errorf("A = [%d,%d], want [10,49]", roots[0].StartIdx, roots[0].EndIdx)
		}
		if roots[1].StartIdx != 50 || roots[1].EndIdx != 50 {
			t.Errorf("B = [%d,%d], want [50,50]", roots[1].StartIdx, roots[1].EndIdx)
		}
	})

	t.Run("child start clamped into parent", func(t *testing.T) {
		roots := []*TreeNode{
			{Title: "A", StartIdx: 5, Children: []*TreeNode{
				{Title: "A.1", StartIdx: 2}, // claims a page before its parent
			}},
		}
		AssignRanges(roots, 10, DefaultConfig())

		if roots[0].Children[0].StartIdx != 5 {
			t.Errorf("expected child start clamped to 5, got %d", roots[0].Children[0].StartIdx)
		}
	})
}
