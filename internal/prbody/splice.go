// Package prbody places the generated description block inside a pull request body.
//
// The block is delimited by HTML comment markers so a later run can replace it
// without touching anything the author wrote around it. Bodies written before the
// markers existed only carry the Sentinel header; for those everything from the
// first Sentinel onwards is treated as the old block.
package prbody

import (
	"regexp"
	"strings"
)

const (
	// Sentinel is the visible header that opens the generated block.
	Sentinel = "# Auto-generated description"

	StartMarker = "<!-- prdesc:start -->"
	EndMarker   = "<!-- prdesc:end -->"

	// escapedSentinel renders like Sentinel but no longer matches it.
	escapedSentinel = "# Auto&#45;generated description"
)

var sentinelLine = regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(Sentinel) + `[ \t]*(?:\r?\n|$)`)

// Block renders the delimited section holding description
func Block(description string) string {
	var sb strings.Builder
	sb.WriteString(StartMarker + "\n")
	sb.WriteString(Sentinel + "\n\n")
	sb.WriteString(Sanitize(description) + "\n")
	sb.WriteString(EndMarker)
	return sb.String()
}

// Sanitize strips markers and sentinel lines from a generated description and
// escapes any sentinel text left inside other lines
func Sanitize(description string) string {
	for _, marker := range []string{StartMarker, EndMarker} {
		description = strings.ReplaceAll(description, marker, "")
	}
	description = sentinelLine.ReplaceAllString(description, "")
	description = strings.ReplaceAll(description, Sentinel, escapedSentinel)
	return strings.TrimSpace(description)
}

// Splice returns body with its generated block replaced by one built from description
func Splice(body, description string) string {
	block := Block(description)

	if start := strings.Index(body, StartMarker); start >= 0 {
		before := body[:start]
		if idx := strings.Index(before, Sentinel); idx >= 0 {
			return before[:idx] + block
		}

		rest := body[start+len(StartMarker):]
		end := strings.Index(rest, EndMarker)
		if end < 0 {
			return before + block
		}

		// A legacy section after the marked block is old generated text too.
		after := rest[end+len(EndMarker):]
		if idx := strings.Index(after, Sentinel); idx >= 0 {
			after = strings.TrimRight(after[:idx], " \t\r\n")
		}
		return before + block + after
	}

	if idx := strings.Index(body, Sentinel); idx >= 0 {
		return body[:idx] + block
	}

	if strings.TrimSpace(body) == "" {
		return block
	}
	return body + "\n\n" + block
}
