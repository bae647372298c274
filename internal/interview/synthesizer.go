package interview

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/myrjola/deepinsight/internal/ai"
	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/internal/repositories"
	"github.com/sashabaranov/go-openai"
)

const interviewerSystemPrompt = `You are an AI interviewer conducting a structured employee interview.

Based on the conversation so far, ask one thoughtful follow-up question that:
1. Builds on the previous answer
2. Digs deeper into the current topic
3. Helps understand the employee better
4. Is professional and engaging

Respond with ONLY the question text, no additional formatting or explanation.`

// Synthesizer generates follow-up questions from the interview history and
// persists them into their reserved order-index slot.
type Synthesizer struct {
	questions *repositories.QuestionRepository
	completer ai.Completer
	logger    *slog.Logger
}

func NewSynthesizer(
	questions *repositories.QuestionRepository,
	completer ai.Completer,
	logger *slog.Logger,
) *Synthesizer {
	return &Synthesizer{
		questions: questions,
		completer: completer,
		logger:    logger.With("source", "Synthesizer"),
	}
}

// Synthesize produces the follow-up question with the given ordinal (1 or 2)
// for the base question the interview is currently on.
//
// The slot is the parent base question's order index plus the ordinal. When a
// follow-up already occupies the slot it is returned as is, so asking for the
// next question repeatedly has no generation side effects. A gateway failure
// or unparsable response surfaces as ErrGenerationFailed; retrying is the
// caller's decision.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	interview models.Interview,
	history []models.AnsweredQuestion,
	ordinal int,
) (*models.Question, error) {
	parent, err := lastAnsweredBaseQuestion(history)
	if err != nil {
		return nil, err
	}
	if !parent.OrderIndex.Valid {
		return nil, errors.New("base question has no order index",
			slog.String("question_id", parent.ID))
	}
	slot := parent.OrderIndex.Int64 + int64(ordinal)

	existing, err := s.questions.GetFollowUpBySlot(ctx, interview.ID, slot)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNoRecord) {
		return nil, err
	}

	completion, err := s.completer.Complete(ctx, followUpTranscript(history, ordinal))
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrGenerationFailed, err), "generate follow-up question",
			slog.String("interview_id", interview.ID), slog.Int("ordinal", ordinal))
	}

	content, ok := extractQuestionText(completion)
	if !ok {
		return nil, errors.Wrap(ErrGenerationFailed, "no usable question text in completion",
			slog.String("interview_id", interview.ID), slog.Int("ordinal", ordinal))
	}

	question := models.Question{
		ID:          uuid.NewString(),
		Content:     content,
		BusinessID:  interview.BusinessID,
		InterviewID: sql.NullString{String: interview.ID, Valid: true},
		IsFollowUp:  true,
		OrderIndex:  sql.NullInt64{Int64: slot, Valid: true},
	}
	if err = s.questions.Create(ctx, question); err != nil {
		return nil, errors.Wrap(err, "persist follow-up question")
	}
	return &question, nil
}

// followUpTranscript replays the interview as a chat conversation: the
// interviewer asks, the employee answers, then a final instruction requests
// the next follow-up question. The ordinal only adds prompt context.
func followUpTranscript(history []models.AnsweredQuestion, ordinal int) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, 2*len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: interviewerSystemPrompt,
	})
	for _, answered := range history {
		messages = append(messages,
			openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: answered.Question.Content,
			},
			openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: answered.Answer,
			},
		)
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: fmt.Sprintf("Please ask follow-up question #%d for the current topic.", ordinal),
	})
	return messages
}

// lastAnsweredBaseQuestion finds the base question the interview is currently
// on by walking the history backwards.
func lastAnsweredBaseQuestion(history []models.AnsweredQuestion) (*models.Question, error) {
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Question.IsFollowUp {
			return &history[i].Question, nil
		}
	}
	return nil, errors.New("no base question found in interview history")
}
