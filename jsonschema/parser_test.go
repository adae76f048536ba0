package jsonschema_test

import (
	"testing"

	"github.com/fwojciec/handbook/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T) *jsonschema.Parser {
	t.Helper()
	p, err := jsonschema.NewParser()
	require.NoError(t, err)
	return p
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("accepts JSON array of strings", func(t *testing.T) {
		t.Parallel()

		labels, ok := newParser(t).Parse(`["1.2.", "2.3.", "APPENDIX 1"]`)

		require.True(t, ok)
		assert.Equal(t, []string{"1.2.", "2.3.", "APPENDIX 1"}, labels)
	})

	t.Run("accepts empty array", func(t *testing.T) {
		t.Parallel()

		labels, ok := newParser(t).Parse(`[]`)

		require.True(t, ok)
		assert.Empty(t, labels)
	})

	t.Run("strips surrounding whitespace and code fence", func(t *testing.T) {
		t.Parallel()

		labels, ok := newParser(t).Parse("\n```json\n[\"4.\"]\n```\n")

		require.True(t, ok)
		assert.Equal(t, []string{"4."}, labels)
	})

	t.Run("strips bare code fence", func(t *testing.T) {
		t.Parallel()

		labels, ok := newParser(t).Parse("```[\"4.\"]```")

		require.True(t, ok)
		assert.Equal(t, []string{"4."}, labels)
	})

	rejected := []struct {
		name   string
		output string
	}{
		{"empty output", ""},
		{"prose", "The relevant sections are 1.2. and 2.3."},
		{"python list with single quotes", "['1.2.', '2.3.']"},
		{"array of numbers", "[1.2, 2.3]"},
		{"mixed array", `["1.", 2]`},
		{"object", `{"sections": ["1."]}`},
		{"bare string", `"1.2."`},
		{"code", `__import__('os').system('rm -rf /')`},
		{"trailing garbage", `["1."] and more`},
	}
	for _, tt := range rejected {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()

			labels, ok := newParser(t).Parse(tt.output)

			assert.False(t, ok)
			assert.Nil(t, labels)
		})
	}
}
