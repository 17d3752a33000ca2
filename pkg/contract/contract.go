// Package contract validates workflow documents and project manifests
// against declarative structural contracts: which steps must exist, in what
// order, and with what configuration fields.
package contract

import (
	"fmt"

	"github.com/actionvet/actionvet/pkg/constants"
	"github.com/actionvet/actionvet/pkg/fileutil"
	"github.com/actionvet/actionvet/pkg/logger"
	"github.com/goccy/go-yaml"
)

var contractLog = logger.New("contract:contract")

// Contract declares the expectations validated against a workflow document
// and its companion manifest.
type Contract struct {
	Workflow WorkflowContract `yaml:"workflow"`
	Manifest ManifestContract `yaml:"manifest"`
}

// WorkflowContract declares expectations on the workflow document.
type WorkflowContract struct {
	Triggers []TriggerRule `yaml:"triggers,omitempty"`
	Jobs     []JobRule     `yaml:"jobs,omitempty"`
}

// TriggerRule requires a trigger event, optionally filtered to branches.
type TriggerRule struct {
	Event    string   `yaml:"event"`
	Branches []string `yaml:"branches,omitempty"`
}

// JobRule requires a job with a runner label, a step ordering, and per-step
// field expectations.
type JobRule struct {
	Name      string     `yaml:"name"`
	RunsOn    string     `yaml:"runs-on,omitempty"`
	StepOrder []string   `yaml:"step-order,omitempty"`
	Steps     []StepRule `yaml:"steps,omitempty"`
}

// StepRule requires a named step to exist and declares expectations on its
// fields: exact equality for `uses` and `with` inputs, substring containment
// for the free-text `run` command, and key presence for `env`.
type StepRule struct {
	Name        string            `yaml:"name"`
	Uses        string            `yaml:"uses,omitempty"`
	With        map[string]string `yaml:"with,omitempty"`
	RunContains []string          `yaml:"run-contains,omitempty"`
	EnvKeys     []string          `yaml:"env-keys,omitempty"`
}

// LoadContract reads and parses a contract file.
func LoadContract(path string) (*Contract, error) {
	content, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract: %w", err)
	}
	if len(content) > constants.MaxDocumentSize {
		return nil, fmt.Errorf("failed to load contract: %s exceeds %d bytes", path, constants.MaxDocumentSize)
	}
	c, err := ParseContract(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract %s: %w", path, err)
	}
	contractLog.Printf("Loaded contract: path=%s, jobs=%d", path, len(c.Workflow.Jobs))
	return c, nil
}

// ParseContract parses contract YAML content and validates the rule
// definitions themselves.
func ParseContract(content []byte) (*Contract, error) {
	var c Contract
	if err := yaml.Unmarshal(content, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that the contract's own rules are well-formed: every rule
// names its subject, and step orderings contain no duplicates (a duplicate
// name can never resolve to strictly increasing indices).
func (c *Contract) Validate() error {
	for i, trigger := range c.Workflow.Triggers {
		if trigger.Event == "" {
			return NewValidationError(
				fmt.Sprintf("workflow.triggers[%d].event", i),
				"",
				"trigger rule has no event name",
				"Name the trigger event, e.g. 'push' or 'pull_request'",
			)
		}
	}

	for i, job := range c.Workflow.Jobs {
		if job.Name == "" {
			return NewValidationError(
				fmt.Sprintf("workflow.jobs[%d].name", i),
				"",
				"job rule has no name",
				"Name the job the rule applies to, e.g. 'build'",
			)
		}
		seen := make(map[string]bool)
		for _, step := range job.StepOrder {
			if seen[step] {
				return NewValidationError(
					fmt.Sprintf("workflow.jobs[%d].step-order", i),
					step,
					"step name appears more than once in the expected ordering",
					"List each step name once; orderings are resolved by unique name",
				)
			}
			seen[step] = true
		}
		for j, step := range job.Steps {
			if step.Name == "" {
				return NewValidationError(
					fmt.Sprintf("workflow.jobs[%d].steps[%d].name", i, j),
					"",
					"step rule has no name",
					"Name the step the expectations apply to",
				)
			}
		}
	}

	return nil
}

// ManifestContract declares expectations on the companion project manifest.
type ManifestContract struct {
	// RequireDependencies asserts the manifest declares at least one dependency.
	RequireDependencies bool `yaml:"require-dependencies,omitempty"`
	// Scripts lists script names that must exist with non-empty commands.
	Scripts []string `yaml:"scripts,omitempty"`
}
