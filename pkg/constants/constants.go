// Package constants centralizes default file locations and limits shared
// across packages.
package constants

import "path/filepath"

// DefaultWorkflowFile is the workflow definition validated when no file
// arguments are given.
const DefaultWorkflowFile = "ci.yml"

// DefaultManifestFile is the companion project manifest consulted for
// dependency and script expectations.
const DefaultManifestFile = "package.json"

// MaxDocumentSize caps the size of documents the loader will parse.
// Workflow and manifest files are small; anything larger is a mistake.
const MaxDocumentSize = 1 << 20 // 1 MiB

// GetWorkflowDir returns the repository-relative directory that holds
// workflow definitions.
func GetWorkflowDir() string {
	return filepath.Join(".github", "workflows")
}

// GetDefaultWorkflowPath returns the repository-relative path of the default
// workflow file.
func GetDefaultWorkflowPath() string {
	return filepath.Join(GetWorkflowDir(), DefaultWorkflowFile)
}
