package outline

import (
	"testing"
)

func TestExtractJSON(t *testing.T) {
	type mapping struct {
		Title         string `json:"title"`
		PhysicalIndex *int   `json:"physical_index"`
	}
	type response struct {
		Mappings []mapping `json:"mappings"`
	}

	t.Run("fenced json block", func(t *testing.T) {
		content := "Here you go:\n```json\n{\"mappings\": [{\"title\": \"Chapter 1\", \"physical_index\": 21}]}\n```"
		parsed, err := ExtractJSON[response](content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(parsed.Mappings) != 1 || parsed.Mappings[0].Title != "Chapter 1" {
			t.Errorf("unexpected parse: %+v", parsed)
		}
	})

	t.Run("bare None becomes null", func(t *testing.T) {
		content := `{"mappings": [{"title": "Appendix", "physical_index": None}]}`
		parsed, err := ExtractJSON[response](content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed.Mappings[0].PhysicalIndex != nil {
			t.Errorf("expected nil index, got %d", *parsed.Mappings[0].PhysicalIndex)
		}
	})

	t.Run("None inside a string value survives", func(t *testing.T) {
		content := `{"mappings": [{"title": "None of the Above", "physical_index": 7}]}`
		parsed, err := ExtractJSON[response](content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed.Mappings[0].Title != "None of the Above" {
			t.Errorf("title corrupted: %q", parsed.Mappings[0].Title)
		}
	})

	t.Run("trailing comma fixed", func(t *testing.T) {
		content := `{"mappings": [{"title": "Chapter 2", "physical_index": 41},]}`
		parsed, err := ExtractJSON[response](content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(parsed.Mappings) != 1 {
			t.Errorf("unexpected parse: %+v", parsed)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := ExtractJSON[response]("not json at all"); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestReplaceBareNone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare token", `{"page": None}`, `{"page": null}`},
		{"inside string", `{"title": "None of the Above"}`, `{"title": "None of the Above"}`},
		{"escaped quote before token", `{"title": "say \"hi\"", "page": None}`, `{"title": "say \"hi\"", "page": null}`},
		{"word prefix untouched", `{"page": Nonexistent}`, `{"page": Nonexistent}`},
		{"token at end", `None`, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := replaceBareNone(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
