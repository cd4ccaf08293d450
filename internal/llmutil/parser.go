// internal/llmutil/parser.go
package llmutil

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// \x60 is a backtick; Go raw strings cannot contain one.

	// fencedJSONRegex extracts a JSON object or array wrapped in a markdown fence.
	fencedJSONRegex = regexp.MustCompile("(?s)^\x60\x60\x60(?:json|JSON)?\\s*(.*?)\\s*\x60\x60\x60$")
	// fencedTextRegex extracts any fenced block, whatever its language tag.
	fencedTextRegex = regexp.MustCompile("(?s)^\x60\x60\x60[a-zA-Z]*\\s*(.*?)\\s*\x60\x60\x60$")
)

// Validator is implemented by structured model outputs that can check their
// own shape after decoding.
type Validator interface {
	Validate() error
}

// ExtractJSON isolates the JSON document in a model response. It unwraps a
// markdown fence, or failing that, cuts the outermost object or array out of
// surrounding prose.
func ExtractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		if m := fencedJSONRegex.FindStringSubmatch(response); len(m) > 1 {
			return m[1]
		}
	}
	if strings.HasPrefix(response, "{") || strings.HasPrefix(response, "[") {
		return response
	}

	// Prefer an object; fall back to an array.
	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		first := strings.Index(response, pair[0])
		last := strings.LastIndex(response, pair[1])
		if first != -1 && last > first {
			return response[first : last+1]
		}
	}
	return response
}

// ParseJSONResponse decodes an LLM response into T. Decoding failures wrap
// schemas.ErrSchemaValidationFailed.
func ParseJSONResponse[T any](response string) (*T, error) {
	extracted := ExtractJSON(response)

	var result T
	if err := json.Unmarshal([]byte(extracted), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal LLM JSON response: %v. Extracted JSON (truncated): %s",
			schemas.ErrSchemaValidationFailed, err, truncateString(extracted, 500))
	}
	return &result, nil
}

// ParseAndValidate decodes the response and then runs the output's own
// validation, so callers receive either a well-formed value or an error.
func ParseAndValidate[T any, PT interface {
	*T
	Validator
}](response string) (*T, error) {
	result, err := ParseJSONResponse[T](response)
	if err != nil {
		return nil, err
	}
	if err := PT(result).Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// CleanTextOutput strips a surrounding markdown fence from free-form output.
func CleanTextOutput(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if m := fencedTextRegex.FindStringSubmatch(content); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return content
}

// truncateString truncates s to at most maxLen bytes without splitting a rune.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
