package normalize

import (
	"regexp"
	"strings"
)

// contactPattern matches "Display Name <contact>" entries. The lazy group stops
// at the first '<' and '.' does not cross line breaks.
var contactPattern = regexp.MustCompile(`^(.*?)<(.*)>`)

// DisplayName extracts the display name from an author entry.
// Examples:
//   - "Jane Doe <jane@example.com>" → "Jane Doe"
//   - "  John Smith  " → "John Smith"
//   - "<only@contact>" → ""
//   - "Broken <contact" → "Broken <contact"
func DisplayName(entry string) string {
	if m := contactPattern.FindStringSubmatch(entry); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(entry)
}

// WordJoin joins words as an English list.
// Examples:
//   - ["a"] → "a"
//   - ["a", "b"] → "a and b"
//   - ["a", "b", "c"] → "a, b and c"
func WordJoin(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	}
	last := len(words) - 1
	return strings.Join(words[:last], ", ") + " and " + words[last]
}
