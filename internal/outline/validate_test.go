package outline

import (
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"empty", "", false},
		{"single character", "报", false},
		{"too long", strings.Repeat("a", 81), false},
		{"chapter heading", "第一章 引言", true},
		{"english chapter heading", "Chapter 3 Results", true},
		{"attachment heading", "附件一", true},
		{"form field with colon and padding", "签字：  ", false},
		{"date form field", "日期：", false},
		{"colon heading without form markers", "总体要求：", true},
		{"sentence fragment", "本条款自生效之日起执行。", false},
		{"comma fragment", "包括但不限于，以下内容", false},
		{"chapter with punctuation kept", "第二章 方法，材料", true},
		{"parenthesized heading with comma", "（一）总则，细则", true},
		{"numeric section code", "1.1", true},
		{"deep section code", "2.3.4 测试方法", true},
		{"pure punctuation", "——·——", false},
		{"list marker without continuation", "A. 其他说明", false},
		{"list marker with appendix continuation", "A. Appendix materials", true},
		{"list marker with table continuation", "B. Table of measurements", true},
		{"question fragment", "什么是有效范围？", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTitle(tt.title); got != tt.want {
				t.Errorf("ValidateTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestValidateEntries(t *testing.T) {
	page := func(n int) *int { return &n }

	entries := []Entry{
		{Title: "第一章 引言", Page: page(5), Level: 1},
		{Title: "报", Page: page(6), Level: 2},
		{Title: "1.1 范围", Page: page(7), Level: 2},
		{Title: "签字：  ", Page: page(8), Level: 2},
	}

	valid, dropped := ValidateEntries(entries)
	if len(valid) != 2 {
		t.Fatalf("expected 2 valid entries, got %d", len(valid))
	}
	if dropped != 2 {
		t.Errorf("expected 2 dropped, got %d", dropped)
	}
	if valid[0].Title != "第一章 引言" || valid[1].Title != "1.1 范围" {
		t.Errorf("unexpected surviving titles: %q, %q", valid[0].Title, valid[1].Title)
	}
}
