package handbook_test

import (
	"testing"

	"github.com/fwojciec/handbook"
	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	t.Run("follows references transitively", func(t *testing.T) {
		t.Parallel()

		table := handbook.SectionTable{
			{Key: "1.", Title: "Intro", Text: "See Section 2. for more."},
			{Key: "2.", Title: "Rooms", Text: "Details in Appendix 1"},
			{Key: "APPENDIX 1", Title: "Room list", Text: "No further references."},
			{Key: "3.", Title: "Unrelated", Text: "Nothing here."},
		}

		visited := handbook.Expand(table, []string{"1."})

		assert.Equal(t, []string{"1.", "2.", "APPENDIX 1"}, visited.Keys())
	})

	t.Run("terminates on reference cycles", func(t *testing.T) {
		t.Parallel()

		table := handbook.SectionTable{
			{Key: "1.", Title: "A", Text: "See Section 2."},
			{Key: "2.", Title: "B", Text: "See Section 1."},
		}

		visited := handbook.Expand(table, []string{"1."})

		assert.Equal(t, []string{"1.", "2."}, visited.Keys())
	})

	t.Run("handles self references", func(t *testing.T) {
		t.Parallel()

		table := handbook.SectionTable{
			{Key: "1.", Title: "A", Text: "As Section 1. says, see Section 1."},
		}

		visited := handbook.Expand(table, []string{"1."})

		assert.Equal(t, []string{"1."}, visited.Keys())
	})

	t.Run("normalizes seed labels", func(t *testing.T) {
		t.Parallel()

		table := handbook.SectionTable{
			{Key: "1.2.", Title: "A", Text: "Text."},
			{Key: "APPENDIX 1", Title: "B", Text: "Text."},
		}

		visited := handbook.Expand(table, []string{"Section 1.2.", "appendix 1"})

		assert.Equal(t, []string{"1.2.", "APPENDIX 1"}, visited.Keys())
	})

	t.Run("drops unresolvable seeds", func(t *testing.T) {
		t.Parallel()

		table := handbook.SectionTable{
			{Key: "1.", Title: "A", Text: "Text."},
		}

		visited := handbook.Expand(table, []string{"nonexistent section"})

		assert.Equal(t, 0, visited.Len())
		assert.Empty(t, visited.Keys())
	})

	t.Run("drops unresolvable references", func(t *testing.T) {
		t.Parallel()

		table := handbook.SectionTable{
			{Key: "1.", Title: "A", Text: "See Section 9.9 and Appendix 7."},
		}

		visited := handbook.Expand(table, []string{"1."})

		assert.Equal(t, []string{"1."}, visited.Keys())
	})

	t.Run("skips sections with empty text", func(t *testing.T) {
		t.Parallel()

		table := handbook.SectionTable{
			{Key: "1.", Title: "A", Text: ""},
		}

		visited := handbook.Expand(table, []string{"1."})

		assert.Equal(t, 0, visited.Len())
	})

	t.Run("returns empty set for empty seed", func(t *testing.T) {
		t.Parallel()

		table := handbook.SectionTable{{Key: "1.", Title: "A", Text: "Text."}}

		assert.Equal(t, 0, handbook.Expand(table, nil).Len())
	})

	t.Run("visits each key once despite duplicate references", func(t *testing.T) {
		t.Parallel()

		table := handbook.SectionTable{
			{Key: "1.", Title: "A", Text: "Section 2. Section 3. Section 2."},
			{Key: "2.", Title: "B", Text: "Section 3."},
			{Key: "3.", Title: "C", Text: "Section 1. Section 2."},
		}

		visited := handbook.Expand(table, []string{"1.", "1.", "3."})

		assert.Equal(t, []string{"1.", "3.", "2."}, visited.Keys())
		assert.LessOrEqual(t, visited.Len(), len(table))
	})
}

func TestVisitedSet(t *testing.T) {
	t.Parallel()

	v := handbook.NewVisitedSet()

	assert.True(t, v.Add("2."))
	assert.True(t, v.Add("1."))
	assert.False(t, v.Add("2."))
	assert.True(t, v.Has("1."))
	assert.False(t, v.Has("3."))
	assert.Equal(t, 2, v.Len())

	keys := v.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"2.", "1."}, v.Keys())
}
