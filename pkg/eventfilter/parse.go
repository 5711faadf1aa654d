package eventfilter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/logsift/logsift/pkg/diag"
)

// Events file flags.
const (
	flagCount   = "--count"
	flagLevel   = "--level"
	flagPattern = "--pattern"
)

// Parse reads the line-oriented events configuration and returns the
// filters in declaration order. Parsing is line-resilient: a malformed
// line is reported to d and dropped, and parsing continues. Only a read
// failure is returned as an error.
//
// Line grammar: <category> [--count] [--level <LEVEL>] [--pattern <REGEX>]
// Flags may appear in any order; a repeated --level or --pattern keeps the
// last value, since flags are scanned left-to-right and overwrite.
func Parse(r io.Reader, d *diag.Logger) ([]*Filter, error) {
	if d == nil {
		d = diag.Discard()
	}

	var filters []*Filter
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		category := tokens[0]
		countOnly := false
		level := ""
		pattern := ""
		dropped := false

		for i := 1; i < len(tokens); {
			switch tokens[i] {
			case flagCount:
				countOnly = true
				i++
			case flagLevel:
				if i+1 >= len(tokens) {
					d.Warnf("missing level after %s in events file at line %d", flagLevel, lineNum)
					dropped = true
				} else {
					level = tokens[i+1]
					i += 2
				}
			case flagPattern:
				if i+1 >= len(tokens) {
					d.Warnf("missing pattern after %s in events file at line %d", flagPattern, lineNum)
					dropped = true
				} else {
					pattern = tokens[i+1]
					i += 2
				}
			default:
				d.Warnf("unknown token %q in events file at line %d", tokens[i], lineNum)
				i++
			}
			if dropped {
				break
			}
		}
		if dropped {
			// A flag without its argument invalidates the whole line;
			// no partial filter is kept.
			continue
		}

		f, err := New(category, countOnly, level, pattern)
		if err != nil {
			d.Errorf("invalid regex pattern in events file at line %d: %v", lineNum, err)
			continue
		}
		filters = append(filters, f)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading events file: %w", err)
	}
	return filters, nil
}

// LoadFile parses the events configuration file at path.
func LoadFile(path string, d *diag.Logger) ([]*Filter, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("opening events file: %w", err)
	}
	defer f.Close()

	return Parse(f, d)
}
