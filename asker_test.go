package handbook_test

import (
	"context"
	"testing"

	"github.com/fwojciec/handbook"
	"github.com/fwojciec/handbook/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsker_CanBeImplemented(t *testing.T) {
	t.Parallel()

	var asker handbook.Asker = &mock.Asker{
		AskFn: func(_ context.Context, q *handbook.Question) (*handbook.Answer, error) {
			return &handbook.Answer{Text: "answer to " + q.Text}, nil
		},
	}

	answer, err := asker.Ask(context.Background(), &handbook.Question{Text: "where is the library?"})

	require.NoError(t, err)
	assert.Equal(t, "answer to where is the library?", answer.Text)
}

func TestQuestion_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts non-empty question", func(t *testing.T) {
		t.Parallel()

		q := &handbook.Question{Text: "when is dinner?"}

		assert.NoError(t, q.Validate())
	})

	t.Run("rejects empty question", func(t *testing.T) {
		t.Parallel()

		q := &handbook.Question{}

		err := q.Validate()

		require.Error(t, err)
		assert.Equal(t, handbook.EINVALID, handbook.ErrorCode(err))
	})
}
