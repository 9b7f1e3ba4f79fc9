package zone

import (
	"regexp"
	"strings"
)

// quotedStringSequenceRE matches one or more RFC-1035-style quoted strings
// separated by whitespace. Each quoted string allows escaping via backslash
// (e.g., \" for a literal quote).
var quotedStringSequenceRE = regexp.MustCompile(`^\s*"([^"\\]|\\.)*"(?:\s+"([^"\\]|\\.)*")*\s*$`)

// isQuotedStringSequence returns true if s consists of one or more
// RFC-1035-style quoted strings separated by whitespace: "..." "..."
// It supports escaping of \" inside a quoted string. Simplified check.
func isQuotedStringSequence(s string) bool { return quotedStringSequenceRE.MatchString(s) }

// ensureQuotedContent ensures that record payloads are correctly wrapped in
// double quotes for RR types that require it (TXT, SPF). If the payload is
// already a valid sequence of quoted strings, it's returned unchanged. If
// not, embedded quotes are escaped and the whole payload is wrapped in
// quotes. For other RR types, the payload is returned unchanged.
func ensureQuotedContent(rrType, content string) string {
	if rrType != TypeTXT && rrType != TypeSPF {
		return content
	}

	s := strings.TrimSpace(content)
	if s == "" {
		return `""`
	}

	if isQuotedStringSequence(s) {
		return s
	}

	// Escape embedded quotes and wrap
	s = strings.ReplaceAll(s, `"`, `\"`)

	return `"` + s + `"`
}
