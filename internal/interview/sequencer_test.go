package interview

import (
	"context"
	"testing"

	"github.com/myrjola/deepinsight/internal/models"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencer_UnknownInterview(t *testing.T) {
	t.Parallel()
	e := newEngine(t, scriptedCompleter())

	_, _, err := e.sequencer.Next(context.Background(), "no-such-interview")
	require.ErrorIs(t, err, models.ErrNoRecord)
}

func TestSequencer_NoBaseQuestions(t *testing.T) {
	t.Parallel()
	e := newEngine(t, scriptedCompleter())

	question, done, err := e.sequencer.Next(context.Background(), "itv-lone")
	require.NoError(t, err)
	assert.True(t, done, "a business without questions has nothing to ask")
	assert.Nil(t, question)
}

func TestSequencer_FreshInterviewStartsAtFirstBaseQuestion(t *testing.T) {
	t.Parallel()
	e := newEngine(t, scriptedCompleter())

	question, done, err := e.sequencer.Next(context.Background(), "itv-ada")
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "q-background", question.ID)
	assert.False(t, question.IsFollowUp)
}

func TestSequencer_FollowUpsThenNextTopic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	calls := 0
	completer := completerFunc(func(ctx context.Context, messages []openai.ChatCompletionMessage) (openai.ChatCompletionResponse, error) {
		calls++
		return scriptedCompleter()(ctx, messages)
	})
	e := newEngine(t, completer)

	e.answer(t, "itv-ada", "emp-ada", "q-background", "I started in QA.")

	first, done, err := e.sequencer.Next(ctx, "itv-ada")
	require.NoError(t, err)
	require.False(t, done)
	assert.True(t, first.IsFollowUp)
	assert.Equal(t, int64(1), first.OrderIndex.Int64, "first follow-up takes the slot after its base question")
	assert.Equal(t, "itv-ada", first.InterviewID.String)
	assert.Equal(t, 1, calls)

	// Asking again before answering must hand out the same question without
	// generating a new one.
	again, done, err := e.sequencer.Next(ctx, "itv-ada")
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 1, calls, "re-asking must not regenerate the follow-up")

	e.answer(t, "itv-ada", "emp-ada", first.ID, "Mostly manual testing at first.")

	second, done, err := e.sequencer.Next(ctx, "itv-ada")
	require.NoError(t, err)
	require.False(t, done)
	assert.True(t, second.IsFollowUp)
	assert.Equal(t, int64(2), second.OrderIndex.Int64)
	assert.Equal(t, 2, calls)

	e.answer(t, "itv-ada", "emp-ada", second.ID, "Then I automated the suite.")

	// Two follow-ups exhaust the topic.
	next, done, err := e.sequencer.Next(ctx, "itv-ada")
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "q-strengths", next.ID)
	assert.Equal(t, 2, calls, "advancing to the next topic needs no generation")
}

func TestSequencer_FullInterview(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEngine(t, scriptedCompleter())

	var asked []models.Question
	for i := 0; i < 20; i++ {
		question, done, err := e.sequencer.Next(ctx, "itv-ada")
		require.NoError(t, err)
		if done {
			break
		}
		asked = append(asked, *question)
		e.answer(t, "itv-ada", "emp-ada", question.ID, "An answer.")
	}

	// Three base questions with two follow-ups each.
	require.Len(t, asked, 9)
	for i, question := range asked {
		wantFollowUp := i%3 != 0
		assert.Equal(t, wantFollowUp, question.IsFollowUp, "question %d", i)
	}
	assert.Equal(t, "q-background", asked[0].ID)
	assert.Equal(t, "q-strengths", asked[3].ID)
	assert.Equal(t, "q-challenge", asked[6].ID)

	_, done, err := e.sequencer.Next(ctx, "itv-ada")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSequencer_GenerationFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEngine(t, func(context.Context, []openai.ChatCompletionMessage) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{}, assert.AnError
	})

	e.answer(t, "itv-ada", "emp-ada", "q-background", "I started in QA.")

	_, _, err := e.sequencer.Next(ctx, "itv-ada")
	require.ErrorIs(t, err, ErrGenerationFailed)
	require.ErrorIs(t, err, assert.AnError, "the gateway error must stay inspectable")
}

func TestSequencer_UnusableCompletion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEngine(t, func(context.Context, []openai.ChatCompletionMessage) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{}, nil
	})

	e.answer(t, "itv-ada", "emp-ada", "q-background", "I started in QA.")

	_, _, err := e.sequencer.Next(ctx, "itv-ada")
	require.ErrorIs(t, err, ErrGenerationFailed, "an empty completion is not papered over with a canned question")
}
