package interview

import (
	"context"
	"log/slog"

	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/internal/repositories"
)

// followUpsPerBaseQuestion is the number of generated follow-ups asked after
// every base question before the interview advances to the next topic.
const followUpsPerBaseQuestion = 2

// Sequencer decides what question an interview should ask next. The decision
// is a pure function of the business's ordered base questions and the
// interview's chronological response history; producing a follow-up is
// delegated to the Synthesizer.
type Sequencer struct {
	interviews *repositories.InterviewRepository
	questions  *repositories.QuestionRepository
	responses  *repositories.ResponseRepository
	synth      *Synthesizer
	logger     *slog.Logger
}

func NewSequencer(
	interviews *repositories.InterviewRepository,
	questions *repositories.QuestionRepository,
	responses *repositories.ResponseRepository,
	synth *Synthesizer,
	logger *slog.Logger,
) *Sequencer {
	return &Sequencer{
		interviews: interviews,
		questions:  questions,
		responses:  responses,
		synth:      synth,
		logger:     logger.With("source", "Sequencer"),
	}
}

// Next returns the question the interview should ask next, or done=true when
// every base question and its follow-ups have been answered.
//
// The answered questions of an interview always follow the pattern
// (base, follow-up, follow-up) repeated once per base question. Next never
// skips ahead and never hands out a question before the previous one has a
// persisted response.
func (s *Sequencer) Next(ctx context.Context, interviewID string) (*models.Question, bool, error) {
	interview, err := s.interviews.Get(ctx, interviewID)
	if err != nil {
		return nil, false, err
	}

	baseQuestions, err := s.questions.ListBase(ctx, interview.BusinessID)
	if err != nil {
		return nil, false, err
	}
	if len(baseQuestions) == 0 {
		// Nothing to ask, the interview is over before it begins.
		return nil, true, nil
	}

	history, err := s.responses.History(ctx, interviewID)
	if err != nil {
		return nil, false, err
	}
	if len(history) == 0 {
		return &baseQuestions[0], false, nil
	}

	last := history[len(history)-1]
	if !last.Question.IsFollowUp {
		// A base question was just answered, probe deeper with the first
		// follow-up on this topic.
		question, synthErr := s.synth.Synthesize(ctx, *interview, history, 1)
		return question, false, synthErr
	}

	followUps := trailingFollowUps(history)
	if followUps < followUpsPerBaseQuestion {
		question, synthErr := s.synth.Synthesize(ctx, *interview, history, followUps+1)
		return question, false, synthErr
	}

	// The topic is exhausted, advance to the next base question.
	currentIndex, err := currentBaseQuestionIndex(history, baseQuestions)
	if err != nil {
		return nil, false, err
	}
	if next := currentIndex + 1; next < len(baseQuestions) {
		return &baseQuestions[next], false, nil
	}
	return nil, true, nil
}

// trailingFollowUps counts the consecutive follow-up responses at the end of
// the history, i.e. how many follow-ups the current topic has used.
func trailingFollowUps(history []models.AnsweredQuestion) int {
	count := 0
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Question.IsFollowUp {
			break
		}
		count++
	}
	return count
}

// currentBaseQuestionIndex locates the most recently answered base question
// within the business's base question order.
func currentBaseQuestionIndex(history []models.AnsweredQuestion, baseQuestions []models.Question) (int, error) {
	current, err := lastAnsweredBaseQuestion(history)
	if err != nil {
		return 0, err
	}
	for i := range baseQuestions {
		if baseQuestions[i].ID == current.ID {
			return i, nil
		}
	}
	return 0, errors.Wrap(models.ErrUnknownQuestion, "answered base question missing from question order",
		slog.String("question_id", current.ID))
}
