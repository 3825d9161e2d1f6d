// Package outline turns a flat, possibly noisy document outline into a
// validated tree where every node owns an inclusive page range.
//
// # Pipeline
//
// A build runs five synchronous stages in dependency order:
//
//   - Title validation: heuristic rejection of body-text fragments, form
//     fields and stray punctuation (validate.go).
//   - Chapter/level normalization: canonical chapter markers are forced to
//     the top level and every entry gets a structure code like "1.2.3"
//     (normalize.go).
//   - Tree assembly: structure-code prefix containment converts the flat
//     list into a forest in one pass (tree.go).
//   - Page range assignment: recursive boundary propagation derives the end
//     page no source ever states explicitly (ranges.go).
//   - Gap filling: uncovered page ranges get synthetic placeholder nodes so
//     the tree partitions [1, totalPages] exactly (gaps.go).
//
// An optional sixth stage verifies page attribution against the document
// content with an LLM (verify.go). It is the only stage that performs I/O;
// its output feeds back through assembly and range resolution, so positional
// estimates and verified pages are interchangeable inputs.
//
// # Boundary convention
//
// By default a node ends on the page before its next sibling starts
// (BoundaryExclusive). Documents where sections legitimately share boundary
// pages can be built with BoundaryShared instead; the convention is a
// Config choice, never guessed.
//
// # Failure model
//
// Invalid entries are dropped and counted. Level jumps are clamped and
// logged. Missing boundaries fall back to a fixed window. Verification
// failures degrade to claimed pages with fallback confidence. The only
// terminal condition is an outline with zero valid entries, reported as
// ErrEmptyOutline.
package outline
