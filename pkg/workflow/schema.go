package workflow

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/actionvet/actionvet/pkg/logger"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

var schemaLog = logger.New("workflow:schema")

//go:embed schemas/workflow_schema.json
var workflowSchemaJSON []byte

const workflowSchemaURL = "https://github.com/actionvet/actionvet/workflow.schema.json"

var (
	workflowSchemaOnce sync.Once
	workflowSchema     *jsonschema.Schema
	workflowSchemaErr  error
)

// compileWorkflowSchema compiles the embedded schema once per process.
func compileWorkflowSchema() (*jsonschema.Schema, error) {
	workflowSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(workflowSchemaJSON))
		if err != nil {
			workflowSchemaErr = fmt.Errorf("failed to decode embedded workflow schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(workflowSchemaURL, doc); err != nil {
			workflowSchemaErr = fmt.Errorf("failed to register workflow schema: %w", err)
			return
		}
		workflowSchema, workflowSchemaErr = compiler.Compile(workflowSchemaURL)
	})
	return workflowSchema, workflowSchemaErr
}

// validateSchema checks a YAML-decoded workflow document against the
// embedded JSON schema. The document is round-tripped through JSON so the
// validator sees the exact value types it expects.
//
// The schema gate catches shape errors before any structural check runs:
// missing 'on' or 'jobs', jobs without 'runs-on' or 'steps', and steps that
// are not mappings.
func validateSchema(raw map[string]any) error {
	schema, err := compileWorkflowSchema()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode document for schema validation: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to decode document for schema validation: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		schemaLog.Printf("Schema validation failed: %v", err)
		return err
	}
	schemaLog.Print("Schema validation passed")
	return nil
}
