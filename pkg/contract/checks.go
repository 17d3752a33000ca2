// This file implements the individual check operations that contract
// validation is built from.
//
// # Check Functions
//
//   - StepOrderCheck() - One step must come after another within a job
//   - FullOrderingCheck() - A list of steps must appear in a total order
//   - UniqueStepNamesCheck() - Step names must be unambiguous lookup keys
//   - FieldPresenceCheck() - A field must exist at a document path
//   - FieldEqualsCheck() - A scalar field must equal an exact value
//   - FieldContainsCheck() - A free-text field must contain every substring
//   - SequenceContainsCheck() - A sequence must contain a value
//   - MappingKeysCheck() - A mapping must declare every named key
//
// Every check is a pure function over an immutable document: it either
// returns nil or a *CheckFailure naming the violated expectation. Checks
// never mutate the document and never retry.
package contract

import (
	"fmt"
	"strings"

	"github.com/actionvet/actionvet/pkg/doctree"
	"github.com/actionvet/actionvet/pkg/sliceutil"
	"github.com/actionvet/actionvet/pkg/workflow"
)

// StepOrderCheck asserts that step later comes after step earlier in the
// job's declared step sequence. Both names must resolve; an absent step
// fails the check rather than raising a separate error.
func StepOrderCheck(job *workflow.Job, earlier, later string) error {
	subject := fmt.Sprintf("job %q steps %q -> %q", job.Name, earlier, later)

	earlierIdx := job.StepIndex(earlier)
	if earlierIdx < 0 {
		return failure("step-order", subject, fmt.Sprintf("step %q present", earlier), "step not found")
	}
	laterIdx := job.StepIndex(later)
	if laterIdx < 0 {
		return failure("step-order", subject, fmt.Sprintf("step %q present", later), "step not found")
	}

	if laterIdx <= earlierIdx {
		return failure("step-order", subject,
			fmt.Sprintf("%q (index %d) after %q (index %d)", later, laterIdx, earlier, earlierIdx),
			fmt.Sprintf("%q at index %d, %q at index %d", earlier, earlierIdx, later, laterIdx))
	}
	return nil
}

// FullOrderingCheck asserts that every expected step name is present and
// that the expected sequence resolves to strictly increasing indices. It is
// stronger than pairwise checks: one pass validates a total order. The
// returned failure identifies the first missing step or out-of-order pair.
func FullOrderingCheck(job *workflow.Job, expected []string) error {
	subject := fmt.Sprintf("job %q step ordering", job.Name)
	if len(expected) == 0 {
		return failure("step-order", subject, "at least one expected step name", "empty expectation")
	}

	indexes := make([]int, len(expected))
	for i, name := range expected {
		indexes[i] = job.StepIndex(name)
		if indexes[i] < 0 {
			return failure("step-order", subject,
				fmt.Sprintf("step %q present", name),
				fmt.Sprintf("step not found among %v", job.StepNames()))
		}
	}

	for i := 1; i < len(expected); i++ {
		if indexes[i] <= indexes[i-1] {
			return failure("step-order",
				fmt.Sprintf("job %q steps %q -> %q", job.Name, expected[i-1], expected[i]),
				fmt.Sprintf("%q (index %d) after %q (index %d)", expected[i], indexes[i], expected[i-1], indexes[i-1]),
				fmt.Sprintf("%q at index %d, %q at index %d", expected[i-1], indexes[i-1], expected[i], indexes[i]))
		}
	}
	return nil
}

// UniqueStepNamesCheck asserts that step names within a job are unique, so
// name-based lookups are unambiguous.
func UniqueStepNamesCheck(job *workflow.Job) error {
	seen := make(map[string]int)
	for i, step := range job.Steps {
		if step.Name == "" {
			continue
		}
		if first, ok := seen[step.Name]; ok {
			return failure("unique-step-names", fmt.Sprintf("job %q", job.Name),
				"unique step names",
				fmt.Sprintf("step %q declared at indexes %d and %d", step.Name, first, i))
		}
		seen[step.Name] = i
	}
	return nil
}

// FieldPresenceCheck asserts that a field exists at the given document path.
func FieldPresenceCheck(root doctree.Node, path string) error {
	if root.Lookup(path).IsAbsent() {
		return failure("field-presence", path, "field present", "field absent")
	}
	return nil
}

// FieldEqualsCheck asserts that the scalar at path equals want exactly.
func FieldEqualsCheck(root doctree.Node, path, want string) error {
	actual, ok := root.GetText(path)
	if !ok {
		return failure("field-equals", path, fmt.Sprintf("%q", want), "field absent or not a scalar")
	}
	if actual != want {
		return failure("field-equals", path, fmt.Sprintf("%q", want), fmt.Sprintf("%q", actual))
	}
	return nil
}

// FieldContainsCheck asserts that the free-text scalar at path contains
// every one of the given substrings. The failure names each missing
// substring, so removing any single required fragment is caught.
func FieldContainsCheck(root doctree.Node, path string, substrings []string) error {
	text, ok := root.GetText(path)
	if !ok {
		return failure("field-contains", path,
			fmt.Sprintf("text containing %s", quoteAll(substrings)), "field absent or not a scalar")
	}
	if missing := sliceutil.Missing(text, substrings); len(missing) > 0 {
		return failure("field-contains", path,
			fmt.Sprintf("text containing %s", quoteAll(substrings)),
			fmt.Sprintf("missing %s", quoteAll(missing)))
	}
	return nil
}

// SequenceContainsCheck asserts that the sequence at path contains value.
func SequenceContainsCheck(root doctree.Node, path, value string) error {
	values, ok := root.Strings(path)
	if !ok {
		return failure("sequence-contains", path,
			fmt.Sprintf("sequence containing %q", value), "field absent or not a string sequence")
	}
	if !sliceutil.Contains(values, value) {
		return failure("sequence-contains", path,
			fmt.Sprintf("sequence containing %q", value), fmt.Sprintf("%v", values))
	}
	return nil
}

// MappingKeysCheck asserts that the mapping at path declares every one of
// the given keys. Used for env blocks, where the values are secrets and only
// key presence is a stable expectation.
func MappingKeysCheck(root doctree.Node, path string, keys []string) error {
	node, ok := root.GetMapping(path)
	if !ok {
		return failure("mapping-keys", path,
			fmt.Sprintf("mapping with keys %s", quoteAll(keys)), "field absent or not a mapping")
	}
	var missing []string
	for _, key := range keys {
		if node.Key(key).IsAbsent() {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return failure("mapping-keys", path,
			fmt.Sprintf("mapping with keys %s", quoteAll(keys)),
			fmt.Sprintf("missing %s", quoteAll(missing)))
	}
	return nil
}

// quoteAll renders a string list with each element quoted, for failure text.
func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
