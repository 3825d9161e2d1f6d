package outline

// Gap detection and filling. After range assignment the tree should partition
// its span, but trees whose ends derive from clamped or verified boundaries
// can leave pages unowned. This pass walks every sibling list against its
// enclosing boundary and inserts synthetic placeholder nodes so the final
// tree covers [1, totalPages] exactly. Running it on an already-filled tree
// finds nothing.

// FindAndFillGaps inserts gap-fill nodes wherever a sibling sequence leaves
// pages uncovered, including before the first and after the last top-level
// node relative to [1, totalPages]. It returns the (possibly re-rooted)
// forest and a coverage report.
func FindAndFillGaps(roots []*TreeNode, totalPages int, cfg *Config) ([]*TreeNode, *CoverageReport) {
	report := &CoverageReport{GapsFilled: [][2]int{}}

	if len(roots) == 0 {
		return roots, report
	}

	report.OriginalCoverage = coveredPages(roots)

	boundStart := 1
	boundEnd := 0
	if totalPages > 0 {
		boundEnd = totalPages
	}

	roots = fillSiblingGaps(roots, boundStart, boundEnd, cfg, report)

	if totalPages > 0 {
		report.CoveragePercentage = float64(report.OriginalCoverage) / float64(totalPages) * 100
	} else if report.GapsFound == 0 {
		report.CoveragePercentage = 100
	}

	return roots, report
}

// fillSiblingGaps returns the sibling list with gap nodes inserted in
// document order, then recurses into each node's children using the node's
// own range as the enclosing boundary. boundEnd of 0 disables the trailing
// check (unknown document length at the top level).
func fillSiblingGaps(nodes []*TreeNode, boundStart, boundEnd int, cfg *Config, report *CoverageReport) []*TreeNode {
	filled := make([]*TreeNode, 0, len(nodes))

	appendGap := func(start, end int) {
		filled = append(filled, &TreeNode{
			Title:     cfg.GapTitle,
			StartIdx:  start,
			EndIdx:    end,
			IsGapFill: true,
		})
		report.GapsFound++
		report.GapsFilled = append(report.GapsFilled, [2]int{start, end})
	}

	for i, n := range nodes {
		if i == 0 && n.StartIdx > boundStart {
			appendGap(boundStart, n.StartIdx-1)
		}
		if i > 0 {
			prev := nodes[i-1]
			if n.StartIdx-prev.EndIdx-1 > 0 {
				appendGap(prev.EndIdx+1, n.StartIdx-1)
			}
		}

		if len(n.Children) > 0 {
			n.Children = fillSiblingGaps(n.Children, n.StartIdx, n.EndIdx, cfg, report)
		}
		filled = append(filled, n)
	}

	if boundEnd > 0 {
		last := nodes[len(nodes)-1]
		if last.EndIdx < boundEnd {
			appendGap(last.EndIdx+1, boundEnd)
		}
	}

	return filled
}

// coveredPages counts pages owned by the top-level ranges. Ranges at the top
// level are non-overlapping by construction under the exclusive policy; under
// the shared policy the single shared boundary pages are counted once.
func coveredPages(roots []*TreeNode) int {
	total := 0
	prevEnd := 0
	for _, n := range roots {
		start := n.StartIdx
		if start <= prevEnd {
			start = prevEnd + 1
		}
		if n.EndIdx >= start {
			total += n.EndIdx - start + 1
		}
		if n.EndIdx > prevEnd {
			prevEnd = n.EndIdx
		}
	}
	return total
}
