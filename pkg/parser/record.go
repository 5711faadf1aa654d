package parser

import "regexp"

// lineRegex is the fixed log line grammar:
// <timestamp> <level> <category> <message...>
var lineRegex = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2})\s+(\S+)\s+(\S+)\s+(.*)$`)

// ParseRecord parses a single log line into a Record.
// Returns false if the line does not match the grammar; such lines are
// skipped by callers, never treated as errors.
func ParseRecord(line string) (*Record, bool) {
	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &Record{
		Timestamp: m[1],
		Level:     m[2],
		Category:  m[3],
		Message:   m[4],
		Raw:       line,
	}, true
}
