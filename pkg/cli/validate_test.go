//go:build !integration

package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(files ...string) ValidateConfig {
	return ValidateConfig{
		WorkflowFiles: files,
		ManifestPath:  filepath.Join("testdata", "package.json"),
		Out:           &bytes.Buffer{},
	}
}

func TestValidateWorkflowsPasses(t *testing.T) {
	var out bytes.Buffer
	config := testConfig(filepath.Join("testdata", "ci.yml"))
	config.Out = &out

	passed, err := ValidateWorkflows(config)
	require.NoError(t, err)
	assert.True(t, passed)

	output := out.String()
	assert.Contains(t, output, "Check")
	assert.Contains(t, output, "step-order")
	assert.Contains(t, output, "all checks passed")
	assert.NotContains(t, output, "fail\n")
}

func TestValidateWorkflowsWithContractFile(t *testing.T) {
	var out bytes.Buffer
	config := testConfig(filepath.Join("testdata", "ci.yml"))
	config.ContractPath = filepath.Join("testdata", "contract.yml")
	config.Out = &out

	passed, err := ValidateWorkflows(config)
	require.NoError(t, err)
	assert.True(t, passed)
}

func TestValidateWorkflowsReportsFailures(t *testing.T) {
	var out bytes.Buffer
	config := testConfig(filepath.Join("testdata", "reordered.yml"))
	config.Out = &out

	passed, err := ValidateWorkflows(config)
	require.NoError(t, err)
	assert.False(t, passed)

	output := out.String()
	assert.Contains(t, output, "fail")
	assert.Contains(t, output, "step-order")
	assert.Contains(t, output, "check(s) failed")
}

func TestValidateWorkflowsMultipleFiles(t *testing.T) {
	var out bytes.Buffer
	config := testConfig(
		filepath.Join("testdata", "ci.yml"),
		filepath.Join("testdata", "reordered.yml"),
	)
	config.Out = &out

	passed, err := ValidateWorkflows(config)
	require.NoError(t, err)
	assert.False(t, passed, "one failing file fails the run")

	output := out.String()
	ciIdx := bytes.Index(out.Bytes(), []byte("testdata/ci.yml"))
	reorderedIdx := bytes.Index(out.Bytes(), []byte("testdata/reordered.yml"))
	assert.GreaterOrEqual(t, ciIdx, 0, "output: %s", output)
	assert.Greater(t, reorderedIdx, ciIdx, "reports appear in input order")
}

func TestValidateWorkflowsSetupErrors(t *testing.T) {
	t.Run("missing workflow file", func(t *testing.T) {
		_, err := ValidateWorkflows(testConfig(filepath.Join("testdata", "missing.yml")))
		require.Error(t, err)
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("missing contract file", func(t *testing.T) {
		config := testConfig(filepath.Join("testdata", "ci.yml"))
		config.ContractPath = filepath.Join("testdata", "missing-contract.yml")
		_, err := ValidateWorkflows(config)
		require.Error(t, err)
	})

	t.Run("missing manifest file", func(t *testing.T) {
		config := testConfig(filepath.Join("testdata", "ci.yml"))
		config.ManifestPath = filepath.Join("testdata", "missing.json")
		_, err := ValidateWorkflows(config)
		require.Error(t, err)
	})
}

func TestValidateWorkflowsFailFast(t *testing.T) {
	var out bytes.Buffer
	config := testConfig(filepath.Join("testdata", "reordered.yml"))
	config.FailFast = true
	config.Out = &out

	passed, err := ValidateWorkflows(config)
	require.NoError(t, err, "fail-fast check failures are reported, not returned")
	assert.False(t, passed)
}

func TestValidateWorkflowsLint(t *testing.T) {
	var out bytes.Buffer
	config := testConfig(filepath.Join("testdata", "ci.yml"))
	config.Lint = true
	config.Out = &out

	_, err := ValidateWorkflows(config)
	require.NoError(t, err, "lint findings are advisory and never abort the run")
}

func TestExistingManifestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("testdata", "package.json"),
		existingManifestPath(filepath.Join("testdata", "package.json")))
	assert.Empty(t, existingManifestPath(filepath.Join("testdata", "missing.json")))
	assert.Empty(t, existingManifestPath(""))
}

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand("1.2.3")
	assert.Equal(t, "actionvet", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	validate, _, err := root.Find([]string{"validate"})
	require.NoError(t, err)
	assert.Equal(t, "validate [workflow-file]...", validate.Use)
}

func TestValidateCommandFailsOnBadWorkflow(t *testing.T) {
	root := NewRootCommand("test")
	root.SetArgs([]string{
		"validate",
		"--manifest", filepath.Join("testdata", "package.json"),
		filepath.Join("testdata", "reordered.yml"),
	})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorContains(t, err, "validation failed")
}
