package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/logsift/logsift/pkg/diag"
)

// ListLogFiles returns the log files directly inside dir (non-recursive):
// regular files whose name ends in PlainSuffix or CompressedSuffix.
// The result is in directory order, which os.ReadDir sorts by name, so
// enumeration is deterministic across runs.
func ListLogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading log directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, PlainSuffix) && !strings.HasSuffix(name, CompressedSuffix) {
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// FileSource implements RecordSource for reading from log files.
// Files are opened lazily, one at a time; compressed files are decoded
// transparently. Lines that do not match the log line grammar are skipped
// with a debug diagnostic.
type FileSource struct {
	files []string
	diag  *diag.Logger

	currentFile    *os.File
	currentGzip    *gzip.Reader
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int

	linesScanned int
	linesSkipped int
}

// NewFileSource creates a RecordSource that reads from the given files
// in order. Diagnostics about skipped lines go to d.
func NewFileSource(files []string, d *diag.Logger) *FileSource {
	if d == nil {
		d = diag.Discard()
	}
	return &FileSource{
		files:     files,
		diag:      d,
		fileIndex: -1,
	}
}

// NewDirSource creates a RecordSource over all log files in dir.
// The directory listing happens here; an unreadable directory is fatal.
func NewDirSource(dir string, d *diag.Logger) (*FileSource, error) {
	files, err := ListLogFiles(dir)
	if err != nil {
		return nil, err
	}
	return NewFileSource(files, d), nil
}

// Files returns the files this source will read, in read order.
func (s *FileSource) Files() []string {
	return s.files
}

// LinesScanned returns the total number of lines read so far.
func (s *FileSource) LinesScanned() int {
	return s.linesScanned
}

// LinesSkipped returns the number of lines that did not match the log
// line grammar.
func (s *FileSource) LinesSkipped() int {
	return s.linesSkipped
}

// Next returns the next parsed record.
// Skips lines that don't match the log line grammar.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Record, error) {
	for {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Ensure we have a file open
		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		// Try to read the next line
		if s.currentScanner.Scan() {
			s.currentLine++
			s.linesScanned++
			line := s.currentScanner.Text()

			record, ok := ParseRecord(line)
			if !ok {
				s.linesSkipped++
				s.diag.Debugf("skipping malformed log line %s:%d: %s", s.currentSource, s.currentLine, line)
				continue
			}

			record.Source = s.currentSource
			record.LineNum = s.currentLine
			return record, nil
		}

		// Check for scanner error
		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	var reader io.Reader = f
	if strings.HasSuffix(path, CompressedSuffix) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("opening compressed log file %s: %w", path, err)
		}
		s.currentGzip = gz
		reader = gz
	}

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(reader)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	var gzErr error
	if s.currentGzip != nil {
		gzErr = s.currentGzip.Close()
		s.currentGzip = nil
	}
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		if err != nil {
			return err
		}
	}
	s.currentScanner = nil
	return gzErr
}
