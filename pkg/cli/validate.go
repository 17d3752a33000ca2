// This file implements the validate command's processing pipeline: load the
// contract and manifest once, fan out across workflow files, and render one
// report per file.
//
// Files are validated concurrently (the documents are independent), but the
// checks within one document always run sequentially over its immutable tree.
package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/actionvet/actionvet/pkg/console"
	"github.com/actionvet/actionvet/pkg/contract"
	"github.com/actionvet/actionvet/pkg/fileutil"
	"github.com/actionvet/actionvet/pkg/logger"
	"github.com/actionvet/actionvet/pkg/manifest"
	"github.com/actionvet/actionvet/pkg/workflow"
	"github.com/sourcegraph/conc/pool"
)

var validateLog = logger.New("cli:validate")

// ValidateConfig configures one validation run.
type ValidateConfig struct {
	// WorkflowFiles are the workflow definitions to validate.
	WorkflowFiles []string
	// ContractPath is a contract file; empty means the built-in contract.
	ContractPath string
	// ManifestPath is the companion manifest; empty skips manifest loading.
	ManifestPath string
	// Lint additionally runs the actionlint gate over each workflow file.
	Lint bool
	// FailFast stops each file's battery at its first failed check.
	FailFast bool
	// Out receives the rendered reports.
	Out io.Writer
}

// fileOutcome is the result of validating one workflow file.
type fileOutcome struct {
	order    int
	file     string
	report   *contract.Report
	findings []workflow.LintFinding
}

// ValidateWorkflows validates every configured workflow file against the
// contract and renders a report per file. It returns true when every check
// passed. A missing or unparsable input is a setup error that aborts the
// whole run.
func ValidateWorkflows(config ValidateConfig) (bool, error) {
	c := contract.Default()
	if config.ContractPath != "" {
		loaded, err := contract.LoadContract(config.ContractPath)
		if err != nil {
			return false, err
		}
		c = loaded
	}

	var man *manifest.Manifest
	if config.ManifestPath != "" {
		loaded, err := manifest.Load(config.ManifestPath)
		if err != nil {
			return false, err
		}
		man = loaded
	}

	validateLog.Printf("Validating %d workflow file(s): contract=%s, manifest=%s, lint=%v",
		len(config.WorkflowFiles), config.ContractPath, config.ManifestPath, config.Lint)

	runner := contract.NewRunner(config.FailFast)
	p := pool.NewWithResults[*fileOutcome]().WithErrors()
	for i, file := range config.WorkflowFiles {
		p.Go(func() (*fileOutcome, error) {
			return validateOneFile(runner, c, man, file, i, config.Lint)
		})
	}
	outcomes, err := p.Wait()
	if err != nil {
		return false, err
	}

	// Pool results arrive in completion order; restore the input order so
	// output is stable.
	sort.Slice(outcomes, func(a, b int) bool { return outcomes[a].order < outcomes[b].order })

	passed := true
	for _, outcome := range outcomes {
		renderOutcome(config.Out, outcome)
		if outcome.report.HasFailures() {
			passed = false
		}
	}
	renderSummary(config.Out, outcomes)
	return passed, nil
}

// validateOneFile loads and checks a single workflow file.
func validateOneFile(runner *contract.Runner, c *contract.Contract, man *manifest.Manifest, file string, order int, lint bool) (*fileOutcome, error) {
	doc, err := workflow.Load(file)
	if err != nil {
		return nil, err
	}

	outcome := &fileOutcome{order: order, file: file}
	if lint {
		findings, err := workflow.LintFile(file)
		if err != nil {
			return nil, err
		}
		outcome.findings = findings
	}

	report, err := runner.Run(doc, man, c)
	outcome.report = report
	if err != nil {
		// Fail-fast unwinds here with the first failure already recorded.
		if _, ok := err.(*contract.CheckFailure); !ok {
			return nil, err
		}
	}
	return outcome, nil
}

// renderOutcome writes one file's report table and lint findings.
func renderOutcome(out io.Writer, outcome *fileOutcome) {
	rows := make([][]string, 0, len(outcome.report.Results))
	for _, result := range outcome.report.Results {
		status := "pass"
		if !result.Passed() {
			status = "fail"
		}
		rows = append(rows, []string{result.Check, result.Subject, status})
	}
	fmt.Fprintln(out, console.RenderTable(console.TableConfig{
		Title:   outcome.file,
		Headers: []string{"Check", "Subject", "Result"},
		Rows:    rows,
	}))

	for _, result := range outcome.report.Results {
		if !result.Passed() {
			fmt.Fprintln(out, console.FormatErrorMessage(result.Err.Error()))
		}
	}
	for _, finding := range outcome.findings {
		fmt.Fprintln(out, console.FormatWarningMessage(fmt.Sprintf("lint: %s: %s", outcome.file, finding)))
	}
}

// renderSummary writes the per-file pass/fail totals.
func renderSummary(out io.Writer, outcomes []*fileOutcome) {
	if len(outcomes) == 0 {
		return
	}
	failed := 0
	for _, outcome := range outcomes {
		failed += outcome.report.Failed()
	}
	if failed == 0 {
		fmt.Fprintln(out, console.FormatSuccessMessage(fmt.Sprintf("all checks passed across %d file(s)", len(outcomes))))
		return
	}
	fmt.Fprintln(out, console.FormatErrorMessage(fmt.Sprintf("%d check(s) failed across %d file(s)", failed, len(outcomes))))
}

// existingManifestPath returns path when the manifest file exists, so the
// default package.json is only consulted when present.
func existingManifestPath(path string) string {
	if path != "" && fileutil.FileExists(path) {
		return path
	}
	return ""
}
