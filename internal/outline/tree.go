package outline

import (
	"strings"
)

// Tree assembly. A node B is a child of node A when A's structure code is a
// strict prefix of B's with exactly one extra segment. Normalize guarantees
// contiguous codes, so a single left-to-right pass over a stack of current
// ancestors is sufficient.

// Assemble converts a flat, code-annotated entry list into a forest of tree
// nodes. Node start pages carry the claimed page, or 0 when the entry had
// none; missing starts are resolved by AssignRanges.
func Assemble(entries []Entry) []*TreeNode {
	if len(entries) == 0 {
		return nil
	}

	type frame struct {
		node *TreeNode
		code string
	}

	var stack []frame
	var roots []*TreeNode

	for _, e := range entries {
		node := &TreeNode{Title: e.Title}
		if e.Page != nil {
			node.StartIdx = *e.Page
		}

		depth := codeDepth(e.Structure)

		// Pop until the top of the stack can contain this entry.
		for len(stack) >= depth {
			stack = stack[:len(stack)-1]
		}
		// Permissive containment: if the remaining top is not a code prefix
		// (malformed source TOC), keep popping and attach higher up.
		for len(stack) > 0 && !isCodePrefix(stack[len(stack)-1].code, e.Structure) {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		}

		stack = append(stack, frame{node: node, code: e.Structure})
	}

	return roots
}

func codeDepth(code string) int {
	if code == "" {
		return 1
	}
	return strings.Count(code, ".") + 1
}

// isCodePrefix reports whether parent is a strict segment-wise prefix of
// child ("1.2" contains "1.2.3" but not "1.23").
func isCodePrefix(parent, child string) bool {
	if parent == "" || child == "" {
		return false
	}
	return strings.HasPrefix(child, parent+".")
}
