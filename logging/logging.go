// Package logging builds the prefixed loggers each subsystem writes to.
// All of them share the standard logger's output, so redirecting that
// output with ToFile moves every subsystem at once.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

type sharedOutput struct{}

func (sharedOutput) Write(p []byte) (int, error) {
	return log.Writer().Write(p)
}

// New returns a logger tagged with subsystem.
func New(subsystem string) *log.Logger {
	return log.New(sharedOutput{}, "["+subsystem+"] ", log.Flags()|log.Lmsgprefix)
}

// SetDebug adds file and line information to loggers created afterwards.
func SetDebug(debug bool) {
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// ToFile redirects the standard logger to name inside the temp directory
// and returns the file for closing.
func ToFile(name string) (io.Closer, string, error) {
	path := filepath.Join(os.TempDir(), name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, path, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return f, path, nil
}
