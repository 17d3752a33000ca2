// Package fileutil provides utility functions for file path checks and reads.
package fileutil

import (
	"fmt"
	"os"

	"github.com/actionvet/actionvet/pkg/logger"
)

var log = logger.New("fileutil:fileutil")

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ReadFile reads a file after verifying it exists and is a regular file,
// so that callers get a consistent error for directories and missing paths.
func ReadFile(path string) ([]byte, error) {
	if !FileExists(path) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	log.Printf("Reading file: %s", path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	log.Printf("Read %d bytes from %s", len(content), path)
	return content, nil
}
