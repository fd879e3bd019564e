package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/counsyl/gocd-get-test-failures/internal/report"
)

// Pattern represents a compiled filter condition supporting substring and
// regex matching.
type Pattern struct {
	raw   string
	regex *regexp.Regexp
	lower string
}

// Compile transforms a raw pattern string into a Pattern. Strings wrapped in
// slashes compile as regular expressions; anything else matches as a
// case-insensitive substring. An empty pattern matches everything.
func Compile(raw string) (Pattern, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") && len(raw) >= 2 {
		expr := raw[1 : len(raw)-1]
		re, err := regexp.Compile(expr)
		if err != nil {
			return Pattern{}, fmt.Errorf("compile regexp %q: %w", raw, err)
		}
		return Pattern{raw: raw, regex: re}, nil
	}
	return Pattern{raw: raw, lower: strings.ToLower(raw)}, nil
}

// Match reports whether the pattern matches the failure's suite or test name.
func (p Pattern) Match(f report.TestFailure) bool {
	if p.regex != nil {
		return p.regex.MatchString(f.Suite) || p.regex.MatchString(f.Test)
	}
	if p.lower == "" {
		return true
	}
	return strings.Contains(strings.ToLower(f.Suite), p.lower) ||
		strings.Contains(strings.ToLower(f.Test), p.lower)
}

// Apply returns the failures matching the pattern, preserving order.
func (p Pattern) Apply(failures []report.TestFailure) []report.TestFailure {
	if p.raw == "" {
		return failures
	}
	result := make([]report.TestFailure, 0, len(failures))
	for _, f := range failures {
		if p.Match(f) {
			result = append(result, f)
		}
	}
	return result
}
