package outline

import (
	"regexp"
	"strconv"
	"strings"
)

// Chapter/level normalization. Canonical chapter markers are forced to the
// top nesting level regardless of the level the extractor claimed, then every
// retained entry gets a structure code ("1", "1.2", "1.2.1", ...) derived
// from per-level counters. Claimed levels are only meaningful relative to
// their neighbors, so normalization tracks a stack of claimed ancestor levels
// and maps each entry to a depth one step at most below its predecessor. All
// state is owned by a single Normalize call; nothing is shared across builds.

var chapterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^第\s*[0-9一二三四五六七八九十百千零〇两]+\s*[章编篇部卷]`),
	regexp.MustCompile(`(?i)^chapter\s+([0-9]+|[ivxlcdm]+)\b`),
}

// IsChapterTitle reports whether a title carries a canonical chapter marker.
func IsChapterTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	for _, p := range chapterPatterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// levelCounters tracks the running per-level counters used to derive
// structure codes during a single normalization pass.
type levelCounters struct {
	counts map[int]int
}

func newLevelCounters() *levelCounters {
	return &levelCounters{counts: make(map[int]int)}
}

// next advances the counter at the given level, restarts all deeper
// counters, and returns the dot-joined code for levels 1..level.
func (c *levelCounters) next(level int) string {
	c.counts[level]++
	for l := range c.counts {
		if l > level {
			delete(c.counts, l)
		}
	}

	parts := make([]string, 0, level)
	for l := 1; l <= level; l++ {
		n := c.counts[l]
		if n == 0 {
			// Level never visited; counts as an implicit first ancestor.
			n = 1
			c.counts[l] = n
		}
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ".")
}

// Normalize assigns normalized levels and structure codes to validated
// entries in a single pass. Chapter-pattern titles are forced to level 1 and
// flagged. A claimed level that jumps more than one step deeper than its
// predecessor is clamped to the nearest valid depth and logged as a warning,
// never rejected.
func Normalize(entries []Entry, cfg *Config) []Entry {
	logger := cfg.logger()
	counters := newLevelCounters()

	result := make([]Entry, len(entries))

	// claimed holds the claimed levels of the current ancestor chain; its
	// length is the normalized depth of the most recent entry.
	var claimed []int

	for i, e := range entries {
		raw := e.Level
		if raw < 1 {
			raw = 1
		}

		var depth int
		if IsChapterTitle(e.Title) {
			e.IsChapter = true
			depth = 1
			claimed = claimed[:0]
		} else {
			for len(claimed) > 0 && claimed[len(claimed)-1] >= raw {
				claimed = claimed[:len(claimed)-1]
			}
			depth = len(claimed) + 1

			if len(claimed) > 0 && raw > claimed[len(claimed)-1]+1 {
				logger.Warn("outline level jump clamped",
					"title", e.Title,
					"claimed_level", raw,
					"normalized_level", depth)
			} else if len(claimed) == 0 && raw > 1 && i == 0 {
				logger.Warn("outline level jump clamped",
					"title", e.Title,
					"claimed_level", raw,
					"normalized_level", depth)
			}
		}
		claimed = append(claimed, raw)

		e.Level = depth
		e.Structure = counters.next(depth)
		result[i] = e
	}

	return result
}
