package handbook_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/handbook"
	"github.com/stretchr/testify/assert"
)

func TestAssemblePrompt(t *testing.T) {
	t.Parallel()

	t.Run("renders sections in the given order", func(t *testing.T) {
		t.Parallel()

		table := handbook.SectionTable{
			{Key: "1.", Title: "Intro", Text: "See Section 2. for more."},
			{Key: "2.", Title: "Rooms", Text: "No further references."},
		}

		prompt := handbook.AssemblePrompt("Where do I sleep?", table, []string{"1.", "2."})

		expected := handbook.PromptPreamble +
			"User question: Where do I sleep?\n\n" +
			"Context:\n" +
			"Section 1. - Intro: See Section 2. for more.\n" +
			"Section 2. - Rooms: No further references.\n" +
			"\n"
		assert.Equal(t, expected, prompt)
	})

	t.Run("skips sections missing title or text", func(t *testing.T) {
		t.Parallel()

		table := handbook.SectionTable{
			{Key: "1.", Title: "", Text: "Untitled body."},
			{Key: "2.", Title: "Empty", Text: ""},
			{Key: "3.", Title: "Kept", Text: "Kept body."},
		}

		prompt := handbook.AssemblePrompt("q", table, []string{"1.", "2.", "3.", "4."})

		assert.NotContains(t, prompt, "Untitled body.")
		assert.NotContains(t, prompt, "Section 2.")
		assert.NotContains(t, prompt, "Section 4.")
		assert.Contains(t, prompt, "Section 3. - Kept: Kept body.\n")
	})

	t.Run("produces context-free prompt for no sections", func(t *testing.T) {
		t.Parallel()

		prompt := handbook.AssemblePrompt("q", handbook.SectionTable{}, nil)

		assert.Equal(t, handbook.PromptPreamble+"User question: q\n\nContext:\n\n", prompt)
	})
}

func TestExpandAndAssemble_EndToEnd(t *testing.T) {
	t.Parallel()

	table := handbook.SectionTable{
		{Key: "1.", Title: "Welcome", Text: "See Section 2. for more. Also Section 2."},
		{Key: "2.", Title: "Details", Text: "No further references."},
	}

	visited := handbook.Expand(table, []string{"1."})
	prompt := handbook.AssemblePrompt("What is in section two?", table, visited.Keys())

	assert.Equal(t, []string{"1.", "2."}, visited.Keys())
	assert.Contains(t, prompt, "User question: What is in section two?\n")
	assert.Contains(t, prompt, "See Section 2. for more.")
	assert.Contains(t, prompt, "No further references.")
	assert.Equal(t, 1, strings.Count(prompt, "Section 2. - Details"))
}

func TestExpandAndAssemble_NoMatch(t *testing.T) {
	t.Parallel()

	table := handbook.SectionTable{{Key: "1.", Title: "Welcome", Text: "Hello."}}

	visited := handbook.Expand(table, []string{"nonexistent section"})
	prompt := handbook.AssemblePrompt("q", table, visited.Keys())

	assert.True(t, strings.HasSuffix(prompt, "Context:\n\n"))
	assert.NotContains(t, prompt, "Hello.")
}

func TestContextKeys(t *testing.T) {
	t.Parallel()

	table := handbook.SectionTable{
		{Key: "1.", Title: "", Text: "body"},
		{Key: "2.", Title: "Two", Text: "body"},
		{Key: "3.", Title: "Three", Text: ""},
	}

	assert.Equal(t, []string{"2."}, handbook.ContextKeys(table, []string{"1.", "2.", "3.", "4."}))
	assert.Empty(t, handbook.ContextKeys(table, nil))
}
