package advisor

import (
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const summarizerSystemPrompt = `You are a security analyst summarizing scan findings and providing a risk score. ` +
	`Respond with a single JSON object that conforms to the provided JSON Schema and nothing else.`

const remediationSystemPrompt = `You are a security expert providing remediation suggestions based on security scan findings. ` +
	`Respond with a single JSON object that conforms to the provided JSON Schema and nothing else.`

var (
	schemaOnce        sync.Once
	summarySchema     string
	remediationSchema string
)

// outputSchemas reflects the collaborator output types into JSON Schema text
// once per process.
func outputSchemas() (summary, remediation string) {
	schemaOnce.Do(func() {
		summarySchema = reflectSchema(&schemas.SummarizeScanOutput{})
		remediationSchema = reflectSchema(&schemas.SuggestRemediationOutput{})
	})
	return summarySchema, remediationSchema
}

func reflectSchema(v any) string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	b, err := json.MarshalIndent(reflector.Reflect(v), "", "  ")
	if err != nil {
		// Reflection over our own static types cannot fail at runtime.
		panic(fmt.Sprintf("advisor: failed to marshal output schema: %v", err))
	}
	return string(b)
}

func summarizePrompt(in schemas.SummarizeScanInput) string {
	schema, _ := outputSchemas()
	return fmt.Sprintf(`Based on the scan findings below, provide a risk score from 0 to 100 and summarize the key findings.

Scan Findings:
%s

**Response Format (Strict JSON, matching this schema):**
%s
`, in.ScanFindings, schema)
}

func remediationPrompt(in schemas.SuggestRemediationInput) string {
	_, schema := outputSchemas()
	return fmt.Sprintf(`Based on the scan findings for the target: %s, provide a list of actionable remediation suggestions to address the identified vulnerabilities.

Scan Findings:
%s

**Response Format (Strict JSON, matching this schema):**
%s
`, in.Target, in.ScanFindings, schema)
}
