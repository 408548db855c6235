package generator

import (
	"strings"
)

const (
	// DefaultDiffCharLimit is the number of diff characters shown to the model.
	DefaultDiffCharLimit = 1000

	systemPrompt = "You are a helpful assistant that generates professional pull request descriptions."
)

func buildPrompt(title, diff string, limit int) string {
	var sb strings.Builder

	sb.WriteString("Generate a professional pull request description in Markdown format with\n")
	sb.WriteString("sections '## Summary' and '## Files changed' (do not add level 1 title) for the following title and diff:\n")
	sb.WriteString("Title: " + title + "\n")
	sb.WriteString("Diff: " + truncate(diff, limit) + "\n\n")
	sb.WriteString("Output only the PR description in Markdown.\n")

	return sb.String()
}

// truncate keeps the first limit characters of s, counted in runes
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}

	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
