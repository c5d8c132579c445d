package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceRe  = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")
	objectRe = regexp.MustCompile(`\{[\s\S]*\}`)
	arrayRe  = regexp.MustCompile(`\[[\s\S]*\]`)
)

// ExtractJSON locates the JSON payload inside a model response that may
// wrap it in markdown fences or prose. The raw text is returned as a last
// resort so the caller's unmarshal produces the real error.
func ExtractJSON(text string) string {
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := objectRe.FindString(text); m != "" {
		return m
	}
	if m := arrayRe.FindString(text); m != "" {
		return m
	}
	return strings.TrimSpace(text)
}

// DecodeJSON extracts the JSON payload from a model response and
// unmarshals it into T. Failures come back as *ExtractionError.
func DecodeJSON[T any](text, what string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &out); err != nil {
		return out, NewExtractionError(what, err)
	}
	return out, nil
}
