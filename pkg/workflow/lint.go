package workflow

import (
	"fmt"
	"io"

	"github.com/actionvet/actionvet/pkg/fileutil"
	"github.com/actionvet/actionvet/pkg/logger"
	"github.com/rhysd/actionlint"
)

var lintLog = logger.New("workflow:lint")

// LintFinding is one issue reported by the actionlint syntax gate.
type LintFinding struct {
	Message string
	Line    int
	Column  int
	Kind    string
}

func (f LintFinding) String() string {
	return fmt.Sprintf("%d:%d: %s [%s]", f.Line, f.Column, f.Message, f.Kind)
}

// Lint runs actionlint over workflow content and returns its findings.
// Findings are advisory: they do not abort validation, and an empty slice
// means the linter found nothing to report.
func Lint(path string, content []byte) ([]LintFinding, error) {
	linter, err := actionlint.NewLinter(io.Discard, &actionlint.LinterOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow linter: %w", err)
	}

	lintErrs, err := linter.Lint(path, content, nil)
	if err != nil {
		return nil, fmt.Errorf("workflow linter failed on %s: %w", path, err)
	}

	findings := make([]LintFinding, 0, len(lintErrs))
	for _, lintErr := range lintErrs {
		findings = append(findings, LintFinding{
			Message: lintErr.Message,
			Line:    lintErr.Line,
			Column:  lintErr.Column,
			Kind:    lintErr.Kind,
		})
	}
	lintLog.Printf("Linted %s: findings=%d", path, len(findings))
	return findings, nil
}

// LintFile runs the linter over a workflow file on disk.
func LintFile(path string) ([]LintFinding, error) {
	content, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to lint workflow: %w", err)
	}
	return Lint(path, content)
}
