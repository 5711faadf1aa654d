// Package eventfilter provides event filter definitions and the parser for
// the line-oriented events configuration file.
package eventfilter

import (
	"fmt"
	"regexp"

	"github.com/logsift/logsift/pkg/parser"
)

// Filter is a single matching rule from the events file.
// Immutable after construction; a Filter is never created with a pattern
// that failed to compile.
type Filter struct {
	// Category is the event category to match exactly.
	Category string

	// CountOnly reports only the number of matches, not matched lines.
	CountOnly bool

	// Level, if non-empty, is the log level to match exactly.
	Level string

	// pattern, if non-nil, must match at the start of the record message.
	pattern *regexp.Regexp

	// PatternText is the pattern as written in the events file, for display.
	PatternText string
}

// New constructs a Filter. An empty level or pattern means that condition
// is not applied. The pattern is compiled anchored to the start of the
// message (prefix semantics, not substring search).
func New(category string, countOnly bool, level, pattern string) (*Filter, error) {
	f := &Filter{
		Category:  category,
		CountOnly: countOnly,
		Level:     level,
	}
	if pattern != "" {
		re, err := regexp.Compile(`\A(?:` + pattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		f.pattern = re
		f.PatternText = pattern
	}
	return f, nil
}

// Matches reports whether a record satisfies this filter. All configured
// conditions are conjunctive; an unset level or pattern is vacuously
// satisfied. No side effects.
func (f *Filter) Matches(r *parser.Record) bool {
	if r.Category != f.Category {
		return false
	}
	if f.Level != "" && r.Level != f.Level {
		return false
	}
	if f.pattern != nil && !f.pattern.MatchString(r.Message) {
		return false
	}
	return true
}

// Description returns the human-readable filter label used in the report:
// "Event: <category>" followed, in fixed order, by " pattern [<raw>]",
// " level [<level>]", and " count", each only if configured.
func (f *Filter) Description() string {
	desc := "Event: " + f.Category
	if f.PatternText != "" {
		desc += fmt.Sprintf(" pattern [%s]", f.PatternText)
	}
	if f.Level != "" {
		desc += fmt.Sprintf(" level [%s]", f.Level)
	}
	if f.CountOnly {
		desc += " count"
	}
	return desc
}
