// Package manifest loads the project manifest (package.json) that accompanies
// a workflow under validation. The manifest is an independent document with
// its own load step; checks against it consult the dependency and script
// mappings only.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/actionvet/actionvet/pkg/constants"
	"github.com/actionvet/actionvet/pkg/doctree"
	"github.com/actionvet/actionvet/pkg/fileutil"
	"github.com/actionvet/actionvet/pkg/logger"
)

var log = logger.New("manifest:load")

// ParseError reports a manifest that is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse manifest: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse manifest %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Manifest is a parsed project manifest. It is immutable after Load.
type Manifest struct {
	path string
	root doctree.Node

	Name         string
	Dependencies map[string]string
	Scripts      map[string]string
}

// Load reads and parses the manifest file at path.
func Load(path string) (*Manifest, error) {
	content, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	if len(content) > constants.MaxDocumentSize {
		return nil, fmt.Errorf("failed to load manifest: %s exceeds %d bytes", path, constants.MaxDocumentSize)
	}

	man, err := Parse(content)
	if err != nil {
		if parseErr, ok := err.(*ParseError); ok {
			parseErr.Path = path
		}
		return nil, err
	}
	man.path = path
	log.Printf("Loaded manifest: path=%s, dependencies=%d, scripts=%d", path, len(man.Dependencies), len(man.Scripts))
	return man, nil
}

// Parse parses manifest JSON content.
func Parse(content []byte) (*Manifest, error) {
	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	root := doctree.FromValue(raw)
	man := &Manifest{
		root:         root,
		Dependencies: stringMapAt(root, "dependencies"),
		Scripts:      stringMapAt(root, "scripts"),
	}
	if name, ok := root.GetString("name"); ok {
		man.Name = name
	}
	return man, nil
}

// Path returns the file the manifest was loaded from, if any.
func (m *Manifest) Path() string {
	return m.path
}

// Root exposes the generic document tree for path-based field checks.
func (m *Manifest) Root() doctree.Node {
	return m.root
}

// Script returns the named script command. Script names may contain colons
// ("build:frontend"), which is why lookups go through this accessor rather
// than a dotted path.
func (m *Manifest) Script(name string) (string, bool) {
	script, ok := m.Scripts[name]
	return script, ok
}

// HasDependencies reports whether the manifest declares at least one
// dependency.
func (m *Manifest) HasDependencies() bool {
	return len(m.Dependencies) > 0
}

// stringMapAt flattens a mapping of string scalars at the given path.
// Missing paths and non-string values fail closed to an empty map.
func stringMapAt(root doctree.Node, path string) map[string]string {
	out := make(map[string]string)
	node, ok := root.GetMapping(path)
	if !ok {
		return out
	}
	for _, key := range node.Keys() {
		if value, ok := node.Key(key).AsString(); ok {
			out[key] = value
		}
	}
	return out
}
