//go:build !integration

package constants

import (
	"path/filepath"
	"testing"
)

func TestGetWorkflowDir(t *testing.T) {
	expected := filepath.Join(".github", "workflows")
	if result := GetWorkflowDir(); result != expected {
		t.Errorf("GetWorkflowDir() = %q, want %q", result, expected)
	}
}

func TestGetDefaultWorkflowPath(t *testing.T) {
	expected := filepath.Join(".github", "workflows", "ci.yml")
	if result := GetDefaultWorkflowPath(); result != expected {
		t.Errorf("GetDefaultWorkflowPath() = %q, want %q", result, expected)
	}
}

func TestMaxDocumentSize(t *testing.T) {
	if MaxDocumentSize <= 0 {
		t.Error("MaxDocumentSize should be positive")
	}
}
