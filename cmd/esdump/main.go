// Command esdump decodes a captured event-stream and prints one JSON event
// per line. Captures come from a local file, stdin, or an S3 object.
//
//	esdump capture.bin
//	cat capture.bin | esdump -
//	esdump --s3 s3://captures/conn-42.bin --verify-checksums
package main

import (
	"fmt"
	"os"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
