package title

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// defaultNumberPattern matches the last run of digits in a filename stem.
var defaultNumberPattern = regexp.MustCompile(`(\d+)\D*$`)

// Numberer extracts an episode number from an input filename.
type Numberer interface {
	Extract(filename string) (int, bool)
}

// PatternNumberer extracts numbers with a regular expression. When the
// expression has a capture group the first group is used, otherwise the whole
// match.
type PatternNumberer struct {
	re *regexp.Regexp
}

// NewPatternNumberer compiles expr into a pattern strategy. An empty expr
// selects the default pattern (last digit run in the basename).
func NewPatternNumberer(expr string) (*PatternNumberer, error) {
	if strings.TrimSpace(expr) == "" {
		return &PatternNumberer{re: defaultNumberPattern}, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("number pattern: %w", err)
	}
	return &PatternNumberer{re: re}, nil
}

// Extract applies the pattern to the filename's stem.
func (p *PatternNumberer) Extract(filename string) (int, bool) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	match := p.re.FindStringSubmatch(stem)
	if match == nil {
		return 0, false
	}
	candidate := match[0]
	if len(match) > 1 && match[1] != "" {
		candidate = match[1]
	}
	n, err := strconv.Atoi(candidate)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SequenceNumberer hands out consecutive numbers in input order, for batches
// whose filenames carry no usable markers.
type SequenceNumberer struct {
	next int
}

// NewSequenceNumberer starts a counter at 1.
func NewSequenceNumberer() *SequenceNumberer {
	return &SequenceNumberer{next: 1}
}

// Extract returns the next number in the sequence; it never fails.
func (s *SequenceNumberer) Extract(string) (int, bool) {
	n := s.next
	s.next++
	return n, true
}

// Compose joins a base title and an episode number into the per-file title.
func Compose(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}
