package services

import (
	"fmt"
	"regexp"
)

// Answers reference their sources inline as "passage <id>" (the prompts
// instruct the model to do so). ExtractCitations pulls those references
// out, rewrites them to numbered markers and returns the unique passage
// ids in order of first appearance.
var citationPattern = regexp.MustCompile(`(?i)\(?\s*(?:passage[ _]?id|passage)\s*:?\s*([0-9a-zA-Z][0-9a-zA-Z-]{7,})\s*\)?`)

// ExtractCitations returns the text with citation references replaced by
// bracketed markers, plus the ordered list of unique cited passage ids.
func ExtractCitations(text string) (string, []string) {
	matches := citationPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	numbers := make(map[string]int)
	var ids []string
	for _, m := range matches {
		id := m[1]
		if _, seen := numbers[id]; !seen {
			numbers[id] = len(ids) + 1
			ids = append(ids, id)
		}
	}

	replaced := citationPattern.ReplaceAllStringFunc(text, func(ref string) string {
		sub := citationPattern.FindStringSubmatch(ref)
		return fmt.Sprintf("[%d]", numbers[sub[1]])
	})

	return replaced, ids
}

// mergeCitations unions citation lists preserving first-appearance order.
func mergeCitations(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
