// Package content splices generated summaries into markdown documents.
package content

import (
	"regexp"
	"strings"

	"clip-summarize/internal/domain/entity"
)

// SummaryHeading marks the summary section written by top and bottom insertion.
const SummaryHeading = "## AI Summary"

// frontmatterKey is the key written by frontmatter insertion.
const frontmatterKey = "summary:"

// frontmatterPattern matches a document that opens with a "---" line and has a
// later "---" line. The first closing delimiter wins.
var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n(.*)$`)

// Insert returns original with summary placed according to mode. Unknown modes
// are handled as InsertTop. The original text is never modified in place.
func Insert(original, summary string, mode entity.InsertionMode) string {
	switch mode {
	case entity.InsertBottom:
		return insertBottom(original, summary)
	case entity.InsertFrontmatter:
		return insertFrontmatter(original, summary)
	default:
		return insertTop(original, summary)
	}
}

// HasSummary reports whether text already carries a summary, either as a
// summary section or as a frontmatter key.
func HasSummary(text string) bool {
	return strings.Contains(text, SummaryHeading) || strings.Contains(text, frontmatterKey)
}

func insertTop(original, summary string) string {
	var b strings.Builder
	b.Grow(len(original) + len(summary) + len(SummaryHeading) + 9)
	b.WriteString(SummaryHeading)
	b.WriteString("\n\n")
	b.WriteString(summary)
	b.WriteString("\n\n---\n\n")
	b.WriteString(original)
	return b.String()
}

func insertBottom(original, summary string) string {
	var b strings.Builder
	b.Grow(len(original) + len(summary) + len(SummaryHeading) + 9)
	b.WriteString(original)
	b.WriteString("\n\n---\n\n")
	b.WriteString(SummaryHeading)
	b.WriteString("\n\n")
	b.WriteString(summary)
	return b.String()
}

func insertFrontmatter(original, summary string) string {
	line := frontmatterKey + ` "` + escapeQuotes(summary) + `"`

	m := frontmatterPattern.FindStringSubmatch(original)
	if m == nil {
		return "---\n" + line + "\n---\n\n" + original
	}
	return "---\n" + m[1] + "\n" + line + "\n---\n" + m[2]
}

// escapeQuotes escapes double quotes only. Newlines are kept literally so
// existing vaults keep round-tripping the same way.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
