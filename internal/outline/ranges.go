package outline

// Page range resolution. Top-down boundary propagation over the assembled
// forest: every node resolves its end from its next sibling's start, falling
// back to the enclosing parent boundary, falling back to a fixed default
// window when nothing else is known. A node with children takes its last
// child's resolved end as its own, so ranges nest exactly.

// AssignRanges resolves start and end pages for every node in the forest,
// mutating it in place. totalPages of 0 means the document length is unknown
// and only the default-window fallback is available for the trailing node.
func AssignRanges(roots []*TreeNode, totalPages int, cfg *Config) {
	if len(roots) == 0 {
		return
	}

	resolveStarts(roots, 1, totalPages)

	parentEnd := 0
	if totalPages > 0 {
		parentEnd = totalPages
	}
	assignSiblings(roots, parentEnd, totalPages, cfg)
}

// resolveStarts fills in missing start pages: the first child inherits its
// parent's start, later siblings inherit their predecessor's start (an entry
// with no claimed page is assumed to begin on the same page). Starts below
// the enclosing boundary are clamped up so child ranges stay contained, and
// starts past a known page count are clamped down to the last page so no
// range can escape the document.
func resolveStarts(nodes []*TreeNode, parentStart, totalPages int) {
	prev := parentStart
	for _, n := range nodes {
		if n.StartIdx <= 0 {
			n.StartIdx = prev
		}
		if n.StartIdx < parentStart {
			n.StartIdx = parentStart
		}
		if totalPages > 0 && n.StartIdx > totalPages {
			n.StartIdx = totalPages
		}
		resolveStarts(n.Children, n.StartIdx, totalPages)
		prev = n.StartIdx
	}
}

func assignSiblings(nodes []*TreeNode, parentEnd, totalPages int, cfg *Config) {
	for i, n := range nodes {
		nextStart := 0
		if i+1 < len(nodes) {
			nextStart = nodes[i+1].StartIdx
		}

		end := 0
		switch {
		case nextStart > 0:
			if cfg.Policy == BoundaryShared {
				end = nextStart
			} else {
				end = nextStart - 1
			}
		case parentEnd > 0:
			end = parentEnd
		default:
			// No sibling, no boundary, no page count: fixed-window fallback.
			end = n.StartIdx + cfg.DefaultWindow
			if totalPages > 0 && end > totalPages {
				end = totalPages
			}
		}

		if end < n.StartIdx {
			end = n.StartIdx
		}
		n.EndIdx = end

		if len(n.Children) > 0 {
			assignSiblings(n.Children, n.EndIdx, totalPages, cfg)
			n.EndIdx = n.Children[len(n.Children)-1].EndIdx
		}
	}
}
