// This file runs a contract's full check battery against loaded documents
// and collects per-check results into a report.
//
// Checks execute sequentially over the immutable documents; no check mutates
// anything, so a single pass is deterministic. In fail-fast mode the run
// stops at the first failure; otherwise every independent check runs and the
// report lists all of them.
package contract

import (
	"fmt"
	"sort"

	"github.com/actionvet/actionvet/pkg/doctree"
	"github.com/actionvet/actionvet/pkg/logger"
	"github.com/actionvet/actionvet/pkg/manifest"
	"github.com/actionvet/actionvet/pkg/workflow"
)

var runnerLog = logger.New("contract:runner")

// CheckResult records the outcome of one check.
type CheckResult struct {
	// Check is the check identifier, e.g. "step-order".
	Check string
	// Subject names what was checked.
	Subject string
	// Err is nil when the check passed.
	Err error
}

// Passed reports whether the check succeeded.
func (r CheckResult) Passed() bool {
	return r.Err == nil
}

// Report is the outcome of running a contract against a workflow document
// and, optionally, a manifest.
type Report struct {
	WorkflowPath string
	ManifestPath string
	Results      []CheckResult

	collector *ErrorCollector
}

// Passed returns the number of checks that succeeded.
func (r *Report) Passed() int {
	return len(r.Results) - r.Failed()
}

// Failed returns the number of checks that failed.
func (r *Report) Failed() int {
	failed := 0
	for _, result := range r.Results {
		if !result.Passed() {
			failed++
		}
	}
	return failed
}

// HasFailures reports whether any check failed.
func (r *Report) HasFailures() bool {
	return r.Failed() > 0
}

// Err returns every check failure joined into one error, or nil when all
// checks passed.
func (r *Report) Err() error {
	if r.collector == nil {
		return nil
	}
	return r.collector.Error()
}

// Runner executes contract check batteries.
type Runner struct {
	failFast bool
}

// NewRunner creates a Runner. With failFast, a run stops at the first
// failed check instead of collecting every failure.
func NewRunner(failFast bool) *Runner {
	return &Runner{failFast: failFast}
}

// Run executes the contract against the workflow document and manifest.
// The manifest may be nil when the contract declares no manifest rules.
// The returned report lists one result per executed check; the returned
// error is non-nil only for fail-fast aborts and setup-level problems (a
// contract with manifest rules but no manifest to check).
func (r *Runner) Run(doc *workflow.Document, man *manifest.Manifest, c *Contract) (*Report, error) {
	report := &Report{
		WorkflowPath: doc.Path(),
		collector:    NewErrorCollector(r.failFast),
	}
	if man != nil {
		report.ManifestPath = man.Path()
	}

	runnerLog.Printf("Running contract: workflow=%s, trigger_rules=%d, job_rules=%d",
		doc.Path(), len(c.Workflow.Triggers), len(c.Workflow.Jobs))

	if err := r.runWorkflowChecks(doc, &c.Workflow, report); err != nil {
		return report, err
	}
	if err := r.runManifestChecks(man, &c.Manifest, report); err != nil {
		return report, err
	}

	runnerLog.Printf("Contract run complete: passed=%d, failed=%d", report.Passed(), report.Failed())
	return report, nil
}

// record appends a check outcome to the report. The returned error is
// non-nil only in fail-fast mode, to unwind the run.
func (r *Runner) record(report *Report, check, subject string, err error) error {
	report.Results = append(report.Results, CheckResult{Check: check, Subject: subject, Err: err})
	return report.collector.Add(err)
}

func (r *Runner) runWorkflowChecks(doc *workflow.Document, wc *WorkflowContract, report *Report) error {
	root := doc.Root()

	for _, rule := range wc.Triggers {
		subject := fmt.Sprintf("trigger %q", rule.Event)
		var err error
		if _, ok := doc.On[rule.Event]; !ok {
			err = failure("trigger-present", subject, "trigger declared", "trigger absent")
		}
		if recordErr := r.record(report, "trigger-present", subject, err); recordErr != nil {
			return recordErr
		}
		if err != nil {
			// Branch checks on a missing trigger would only repeat the failure.
			continue
		}
		for _, branch := range rule.Branches {
			path := fmt.Sprintf("on.%s.branches", rule.Event)
			checkErr := SequenceContainsCheck(root, path, branch)
			if recordErr := r.record(report, "trigger-branch", fmt.Sprintf("%s ~ %q", path, branch), checkErr); recordErr != nil {
				return recordErr
			}
		}
	}

	for _, rule := range wc.Jobs {
		subject := fmt.Sprintf("job %q", rule.Name)
		job := doc.Job(rule.Name)
		if job == nil {
			err := failure("job-present", subject, "job declared", "job absent")
			if recordErr := r.record(report, "job-present", subject, err); recordErr != nil {
				return recordErr
			}
			// Every remaining check on this job depends on its presence.
			continue
		}
		if recordErr := r.record(report, "job-present", subject, nil); recordErr != nil {
			return recordErr
		}

		if recordErr := r.record(report, "unique-step-names", subject, UniqueStepNamesCheck(job)); recordErr != nil {
			return recordErr
		}

		if rule.RunsOn != "" {
			path := fmt.Sprintf("jobs.%s.runs-on", rule.Name)
			if recordErr := r.record(report, "field-equals", path, FieldEqualsCheck(root, path, rule.RunsOn)); recordErr != nil {
				return recordErr
			}
		}

		if len(rule.StepOrder) > 0 {
			if recordErr := r.record(report, "step-order", subject+" step ordering", FullOrderingCheck(job, rule.StepOrder)); recordErr != nil {
				return recordErr
			}
		}

		for _, stepRule := range rule.Steps {
			if err := r.runStepChecks(job, stepRule, root, report); err != nil {
				return err
			}
		}
	}

	return nil
}

// runStepChecks validates one step rule. Field expectations resolve the
// step's position first, then assert against the document tree by indexed
// path, so failures name the exact location in the source file.
func (r *Runner) runStepChecks(job *workflow.Job, rule StepRule, root doctree.Node, report *Report) error {
	subject := fmt.Sprintf("job %q step %q", job.Name, rule.Name)

	idx := job.StepIndex(rule.Name)
	if idx < 0 {
		err := failure("step-present", subject, "step declared", "step absent")
		if recordErr := r.record(report, "step-present", subject, err); recordErr != nil {
			return recordErr
		}
		// Field checks on a missing step cannot say anything new.
		return nil
	}
	if recordErr := r.record(report, "step-present", subject, nil); recordErr != nil {
		return recordErr
	}

	stepPath := fmt.Sprintf("jobs.%s.steps[%d]", job.Name, idx)

	if rule.Uses != "" {
		path := stepPath + ".uses"
		if recordErr := r.record(report, "field-equals", path, FieldEqualsCheck(root, path, rule.Uses)); recordErr != nil {
			return recordErr
		}
	}

	for _, key := range sortedKeys(rule.With) {
		path := fmt.Sprintf("%s.with.%s", stepPath, key)
		if recordErr := r.record(report, "field-equals", path, FieldEqualsCheck(root, path, rule.With[key])); recordErr != nil {
			return recordErr
		}
	}

	if len(rule.RunContains) > 0 {
		path := stepPath + ".run"
		if recordErr := r.record(report, "field-contains", path, FieldContainsCheck(root, path, rule.RunContains)); recordErr != nil {
			return recordErr
		}
	}

	if len(rule.EnvKeys) > 0 {
		path := stepPath + ".env"
		if recordErr := r.record(report, "mapping-keys", path, MappingKeysCheck(root, path, rule.EnvKeys)); recordErr != nil {
			return recordErr
		}
	}

	return nil
}

// runManifestChecks validates the manifest rules. A contract that declares
// manifest expectations requires a loaded manifest; that mismatch is a setup
// error, not a check failure.
func (r *Runner) runManifestChecks(man *manifest.Manifest, mc *ManifestContract, report *Report) error {
	if !mc.RequireDependencies && len(mc.Scripts) == 0 {
		return nil
	}
	if man == nil {
		return fmt.Errorf("contract declares manifest expectations but no manifest was loaded")
	}

	if mc.RequireDependencies {
		var err error
		if !man.HasDependencies() {
			err = failure("manifest-dependencies", "dependencies", "non-empty dependency mapping", "no dependencies declared")
		}
		if recordErr := r.record(report, "manifest-dependencies", "dependencies", err); recordErr != nil {
			return recordErr
		}
	}

	for _, name := range mc.Scripts {
		subject := fmt.Sprintf("scripts[%q]", name)
		var err error
		script, ok := man.Script(name)
		switch {
		case !ok:
			err = failure("manifest-script", subject, "script declared", "script absent")
		case script == "":
			err = failure("manifest-script", subject, "non-empty script command", "empty string")
		}
		if recordErr := r.record(report, "manifest-script", subject, err); recordErr != nil {
			return recordErr
		}
	}

	return nil
}

// sortedKeys returns map keys in sorted order so check results are stable
// across runs.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
