// Package parser provides log file discovery, reading, and line parsing.
package parser

// TimestampLayout is the fixed lexical timestamp format used in log lines
// and for the --from/--to range bounds.
const TimestampLayout = "2006-01-02T15:04:05"

// Log file suffixes recognized by the enumerator.
const (
	PlainSuffix      = ".log"
	CompressedSuffix = ".log.gz"
)

// Record is one structured, parsed log line.
type Record struct {
	// Timestamp is the lexical timestamp exactly as it appeared in the line.
	Timestamp string

	// Level is the log level token (e.g. WARNING).
	Level string

	// Category is the event category token (e.g. DEVICE).
	Category string

	// Message is the remainder of the line after the category token.
	Message string

	// Raw is the original line, untouched.
	Raw string

	// Source is the file path this record came from.
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}
