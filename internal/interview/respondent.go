package interview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/myrjola/deepinsight/internal/ai"
	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/models"
	"github.com/sashabaranov/go-openai"
)

// Respondent produces an answer for a question. The driver does not care
// where answers come from; in live interviews they arrive from outside the
// engine, in simulations they are generated.
type Respondent interface {
	Answer(ctx context.Context, employee models.Employee, question models.Question) (string, error)
}

const respondentSystemPromptFormat = `You are %s, an employee being interviewed about your work.

Your background: %s

Answer the interviewer's question in first person, drawing on your background. Keep the answer to a few sentences and respond with only the answer text.`

// SimulatedRespondent answers interview questions through the
// text-generation gateway, impersonating the employee based on their
// biography.
type SimulatedRespondent struct {
	completer ai.Completer
	logger    *slog.Logger
}

func NewSimulatedRespondent(completer ai.Completer, logger *slog.Logger) *SimulatedRespondent {
	return &SimulatedRespondent{
		completer: completer,
		logger:    logger.With("source", "SimulatedRespondent"),
	}
}

func (r *SimulatedRespondent) Answer(
	ctx context.Context,
	employee models.Employee,
	question models.Question,
) (string, error) {
	bio := employee.Bio
	if bio == "" {
		bio = "No biography on file."
	}
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf(respondentSystemPromptFormat, employee.Email, bio),
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: question.Content,
		},
	}

	completion, err := r.completer.Complete(ctx, messages)
	if err != nil {
		return "", errors.Wrap(errors.Join(ErrGenerationFailed, err), "generate simulated answer",
			slog.String("employee_id", employee.ID), slog.String("question_id", question.ID))
	}
	answer, ok := extractAnswerText(completion)
	if !ok {
		return "", errors.Wrap(ErrGenerationFailed, "no usable answer text in completion",
			slog.String("employee_id", employee.ID), slog.String("question_id", question.ID))
	}
	return answer, nil
}
