package outline

import (
	"regexp"
	"strings"
	"unicode"
)

// Title validation rejects outline entries that are body-text fragments, form
// fields or stray punctuation rather than headings. All checks are pure
// string heuristics; nothing here touches page numbers or levels.

const maxTitleLen = 80

// noiseTokens are exact titles that show up as bookmark artifacts in scanned
// documents: stray single characters split off from running heads.
var noiseTokens = map[string]struct{}{
	"报": {},
	"表": {},
	"注": {},
	"页": {},
	"附": {},
	"-": {},
	"·": {},
}

// formFieldKeywords mark colon-terminated fill-in lines ("签字：  ___") that
// leak into extracted outlines.
var formFieldKeywords = []string{
	"地址", "日期", "签字", "签名", "盖章", "电话", "传真", "邮编", "编号",
	"address", "date", "signature", "phone", "name", "title:",
}

// continuationPrefixes legitimize a "X." list marker when the remainder is a
// real structural heading.
var continuationPrefixes = []string{
	"appendix", "supplement", "table", "figure", "exhibit",
	"附录", "附件", "补充", "表", "图",
}

var structuralPrefixPattern = regexp.MustCompile(
	`^(第\s*[0-9一二三四五六七八九十百千零〇两]+\s*[章节条编篇部卷]|[(（]|附[件录]|表|图|` +
		`(?i:chapter|appendix|exhibit|table|figure)\b)`)

var listMarkerPattern = regexp.MustCompile(`^[A-Za-z][.．]`)

// ValidateTitle reports whether a raw outline title looks like a legitimate
// heading. Deterministic, no side effects.
func ValidateTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	runes := []rune(trimmed)

	if len(runes) <= 1 || len(runes) > maxTitleLen {
		return false
	}
	if _, ok := noiseTokens[trimmed]; ok {
		return false
	}
	if !containsAlphanumeric(runes) {
		return false
	}
	if containsSentencePunct(runes) && !structuralPrefixPattern.MatchString(trimmed) {
		return false
	}
	if endsWithColon(trimmed) {
		// Colon-terminated form fragments carry a form keyword or the
		// multi-space padding of a fill-in blank; real colon headings do not.
		if hasFormFieldKeyword(trimmed) || strings.Contains(title, "  ") {
			return false
		}
	}
	if listMarkerPattern.MatchString(trimmed) {
		rest := strings.TrimSpace(string(runes[2:]))
		if !hasContinuationPrefix(rest) {
			return false
		}
	}

	return true
}

// ValidateEntries drops invalid entries, preserving order. The dropped count
// is reported so callers can surface it; invalid entries are never fatal.
func ValidateEntries(entries []Entry) ([]Entry, int) {
	valid := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if ValidateTitle(e.Title) {
			valid = append(valid, e)
		}
	}
	return valid, len(entries) - len(valid)
}

func containsAlphanumeric(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// containsSentencePunct detects sentence-ending punctuation. An ASCII period
// between digits is section numbering ("1.2"), not a sentence boundary.
func containsSentencePunct(runes []rune) bool {
	for i, r := range runes {
		switch r {
		case '。', '，', '！', '？', ',', '!', '?':
			return true
		case '.':
			prevDigit := i > 0 && unicode.IsDigit(runes[i-1])
			nextDigit := i+1 < len(runes) && unicode.IsDigit(runes[i+1])
			if prevDigit && nextDigit {
				continue
			}
			// "A." list markers are handled by their own rule.
			if i == 1 && unicode.IsLetter(runes[0]) && runes[0] < 128 {
				continue
			}
			return true
		}
	}
	return false
}

func endsWithColon(s string) bool {
	return strings.HasSuffix(s, ":") || strings.HasSuffix(s, "：")
}

func hasFormFieldKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range formFieldKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func hasContinuationPrefix(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range continuationPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
