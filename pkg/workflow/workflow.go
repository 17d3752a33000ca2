// Package workflow loads GitHub Actions workflow definitions into a typed,
// read-only model for structural validation.
//
// A Document is created once per session from a file on disk and never
// mutated afterwards. Loading happens in three phases: syntax (YAML parse),
// structure (JSON schema), and model construction. Syntax and structure
// failures are setup errors that abort validation before any check runs.
package workflow

import (
	"fmt"

	"github.com/actionvet/actionvet/pkg/constants"
	"github.com/actionvet/actionvet/pkg/doctree"
	"github.com/actionvet/actionvet/pkg/fileutil"
	"github.com/actionvet/actionvet/pkg/logger"
	"github.com/goccy/go-yaml"
)

var log = logger.New("workflow:load")

// ParseError reports a workflow document that is not syntactically valid.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse workflow: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse workflow %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Document is a parsed workflow definition. It is immutable after Load.
type Document struct {
	path string
	root doctree.Node

	// Name is the workflow's display name, if declared.
	Name string
	// On maps trigger event names (push, pull_request) to their filters.
	On map[string]Trigger
	// Jobs maps job names to their definitions.
	Jobs map[string]*Job
}

// Trigger is the filter configuration of one trigger event.
type Trigger struct {
	Branches []string
}

// Job is a named unit of work: a runner label and an ordered list of steps.
// Step order is preserved exactly as declared; it is the only ordering
// contract in the document.
type Job struct {
	Name   string
	RunsOn string
	Steps  []*Step
}

// Step is one action or command within a job, identified by name.
// Unknown fields on a step are ignored.
type Step struct {
	Name string
	Uses string
	Run  string
	With map[string]string
	Env  map[string]string
}

// Load reads and parses the workflow file at path. A missing file or
// oversized document is a setup error; syntactically invalid content yields
// a *ParseError; structurally invalid content fails the schema gate.
func Load(path string) (*Document, error) {
	content, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow: %w", err)
	}
	if len(content) > constants.MaxDocumentSize {
		return nil, fmt.Errorf("failed to load workflow: %s exceeds %d bytes", path, constants.MaxDocumentSize)
	}

	doc, err := Parse(content)
	if err != nil {
		if parseErr, ok := err.(*ParseError); ok {
			parseErr.Path = path
		}
		return nil, err
	}
	doc.path = path
	log.Printf("Loaded workflow: path=%s, jobs=%d", path, len(doc.Jobs))
	return doc, nil
}

// Parse parses workflow YAML content into a Document.
func Parse(content []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("workflow failed structural validation: %w", err)
	}

	root := doctree.FromValue(raw)
	doc := &Document{
		root: root,
		On:   parseTriggers(root.Lookup("on")),
		Jobs: parseJobs(root.Lookup("jobs")),
	}
	if name, ok := root.GetString("name"); ok {
		doc.Name = name
	}
	return doc, nil
}

// Path returns the file the document was loaded from, if any.
func (d *Document) Path() string {
	return d.path
}

// Root exposes the generic document tree for path-based field checks.
func (d *Document) Root() doctree.Node {
	return d.root
}

// Job returns the named job, or nil if the document does not declare it.
func (d *Document) Job(name string) *Job {
	return d.Jobs[name]
}

// FindStep scans the job's steps in declared order and returns the first
// step whose name matches, or nil when no step matches. Absence is not an
// error; callers assert presence explicitly.
func (j *Job) FindStep(name string) *Step {
	for _, step := range j.Steps {
		if step.Name == name {
			return step
		}
	}
	return nil
}

// StepIndex returns the position of the named step in the job's step
// sequence, or -1 when no step matches.
func (j *Job) StepIndex(name string) int {
	for i, step := range j.Steps {
		if step.Name == name {
			return i
		}
	}
	return -1
}

// StepNames returns the step names in declared order.
func (j *Job) StepNames() []string {
	names := make([]string, len(j.Steps))
	for i, step := range j.Steps {
		names[i] = step.Name
	}
	return names
}

// parseTriggers converts the "on" node into trigger filters. Events without
// branch filters map to an empty Trigger.
func parseTriggers(on doctree.Node) map[string]Trigger {
	triggers := make(map[string]Trigger)
	switch on.Kind() {
	case doctree.Scalar:
		// Shorthand form: "on: push".
		if event, ok := on.AsString(); ok {
			triggers[event] = Trigger{}
		}
	case doctree.Sequence:
		// List form: "on: [push, pull_request]".
		for i := 0; i < on.Len(); i++ {
			if event, ok := on.At(i).AsString(); ok {
				triggers[event] = Trigger{}
			}
		}
	case doctree.Mapping:
		for _, event := range on.Keys() {
			trigger := Trigger{}
			if branches, ok := on.Key(event).Strings("branches"); ok {
				trigger.Branches = branches
			}
			triggers[event] = trigger
		}
	}
	return triggers
}

// parseJobs converts the "jobs" node into the typed job model.
func parseJobs(jobs doctree.Node) map[string]*Job {
	parsed := make(map[string]*Job)
	for _, name := range jobs.Keys() {
		node := jobs.Key(name)
		job := &Job{Name: name}
		if runsOn, ok := node.GetText("runs-on"); ok {
			job.RunsOn = runsOn
		}
		if steps, ok := node.GetSequence("steps"); ok {
			job.Steps = make([]*Step, len(steps))
			for i, stepNode := range steps {
				job.Steps[i] = stepFromNode(stepNode)
			}
		}
		parsed[name] = job
	}
	return parsed
}

// stepFromNode converts a step mapping node into a typed Step. Fields with
// unexpected types are left at their zero values rather than failing the
// load; presence checks report them at validation time.
func stepFromNode(node doctree.Node) *Step {
	step := &Step{}
	if name, ok := node.GetString("name"); ok {
		step.Name = name
	}
	if uses, ok := node.GetString("uses"); ok {
		step.Uses = uses
	}
	if run, ok := node.GetString("run"); ok {
		step.Run = run
	}
	if with, ok := node.GetMapping("with"); ok {
		step.With = textMap(with)
	}
	if env, ok := node.GetMapping("env"); ok {
		step.Env = textMap(env)
	}
	return step
}

// textMap flattens a mapping of scalars into string values. Non-scalar
// values are skipped.
func textMap(node doctree.Node) map[string]string {
	out := make(map[string]string, node.Len())
	for _, key := range node.Keys() {
		if value, ok := node.Key(key).AsText(); ok {
			out[key] = value
		}
	}
	return out
}
