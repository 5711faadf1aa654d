// LogSift - Structured Event Extraction for Log Files
//
// LogSift is a batch log analysis tool that extracts and summarizes
// structured events from plaintext and gzip-compressed log files,
// driven by a line-oriented events configuration file.
package main

import (
	"os"

	"github.com/logsift/logsift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
