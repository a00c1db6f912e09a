package title

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Derive suggests a human-readable base title from a source filename,
// used when no title was supplied on the command line.
func Derive(sourcePath string) string {
	if sourcePath == "" {
		return ""
	}
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsNumber(r):
			// Trailing episode markers belong to numbering, not the title,
			// but interior digits are part of the name.
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	derived := strings.TrimSpace(cleaned.String())
	derived = strings.TrimRight(derived, "0123456789")
	derived = strings.TrimSpace(derived)
	if derived == "" {
		return ""
	}
	return cases.Title(language.Und).String(derived)
}
