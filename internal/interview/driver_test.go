package interview

import (
	"context"
	"io"
	"testing"

	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/internal/repositories"
	"github.com/myrjola/deepinsight/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSequencer struct {
	question *models.Question
	done     bool
	err      error
}

func (s *stubSequencer) Next(context.Context, string) (*models.Question, bool, error) {
	return s.question, s.done, s.err
}

type stubRespondent struct {
	answer string
	err    error
}

func (s *stubRespondent) Answer(context.Context, models.Employee, models.Question) (string, error) {
	return s.answer, s.err
}

func newTestDriver(t *testing.T, sequencer nextQuestioner, respondent Respondent) *Driver {
	t.Helper()
	logger := testhelpers.NewLogger(io.Discard)
	dbs := newTestDB(t)
	return NewDriver(
		sequencer,
		respondent,
		repositories.NewInterviewRepository(dbs, logger),
		repositories.NewEmployeeRepository(dbs, logger),
		repositories.NewResponseRepository(dbs, logger),
		logger,
	)
}

func TestDriver_CompletesWhenSequencerIsDone(t *testing.T) {
	t.Parallel()
	driver := newTestDriver(t, &stubSequencer{done: true}, &stubRespondent{answer: "unused"})

	result, err := driver.Run(context.Background(), "itv-ada")
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Empty(t, result.Exchanges)
}

func TestDriver_IterationCap(t *testing.T) {
	t.Parallel()
	// A sequencer that never finishes models a sequencing bug. The driver must
	// bail out instead of looping forever, and report the run as incomplete
	// rather than failed.
	question := models.Question{ID: "q-background", Content: "Tell me about your background.", BusinessID: "acme"}
	driver := newTestDriver(t, &stubSequencer{question: &question}, &stubRespondent{answer: "Again and again."})

	result, err := driver.Run(context.Background(), "itv-ada")
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Len(t, result.Exchanges, maxIterations)
}

func TestDriver_RespondentErrorAborts(t *testing.T) {
	t.Parallel()
	question := models.Question{ID: "q-background", Content: "Tell me about your background.", BusinessID: "acme"}
	driver := newTestDriver(t, &stubSequencer{question: &question}, &stubRespondent{err: ErrGenerationFailed})

	_, err := driver.Run(context.Background(), "itv-ada")
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestDriver_UnknownInterview(t *testing.T) {
	t.Parallel()
	driver := newTestDriver(t, &stubSequencer{done: true}, &stubRespondent{})

	_, err := driver.Run(context.Background(), "no-such-interview")
	require.ErrorIs(t, err, models.ErrNoRecord)
}
