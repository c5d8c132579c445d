package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	text := "Here you go:\n```json\n{\"name\": \"Jane\"}\n```\nLet me know!"
	assert.Equal(t, `{"name": "Jane"}`, ExtractJSON(text))
}

func TestExtractJSONUnlabeledFence(t *testing.T) {
	text := "```\n[1, 2, 3]\n```"
	assert.Equal(t, "[1, 2, 3]", ExtractJSON(text))
}

func TestExtractJSONBareObject(t *testing.T) {
	text := `The result is {"name": "Jane"} as requested.`
	assert.Equal(t, `{"name": "Jane"}`, ExtractJSON(text))
}

func TestExtractJSONBareArray(t *testing.T) {
	text := `Questions: [{"question": "q1"}]`
	assert.Equal(t, `[{"question": "q1"}]`, ExtractJSON(text))
}

func TestExtractJSONPassthrough(t *testing.T) {
	assert.Equal(t, "no json here", ExtractJSON("  no json here  "))
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	got, err := DecodeJSON[payload]("```json\n{\"name\": \"Jane\"}\n```", "payload")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
}

func TestDecodeJSONFailure(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	_, err := DecodeJSON[payload]("the model refused to answer", "payload")
	require.Error(t, err)

	extractionErr := &ExtractionError{}
	assert.True(t, errors.As(err, &extractionErr))
	assert.Contains(t, err.Error(), "payload")
}
