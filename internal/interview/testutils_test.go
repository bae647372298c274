package interview

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	_ "embed"

	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/internal/repositories"
	"github.com/myrjola/deepinsight/internal/testhelpers"
	"github.com/myrjola/deepinsight/sqlite"
	"github.com/sashabaranov/go-openai"
)

//go:embed testdata/fixtures.sql
var testFixtures string

// newTestDB creates a new in-memory database with test fixtures.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()

	dbs, err := sqlite.NewDatabase(context.Background(), ":memory:")
	if err != nil {
		t.Fatal(err)
	}

	if _, err = dbs.ReadWrite.Exec(testFixtures); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err = dbs.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return dbs
}

// completerFunc adapts a function to the ai.Completer interface.
type completerFunc func(ctx context.Context, messages []openai.ChatCompletionMessage) (openai.ChatCompletionResponse, error)

func (f completerFunc) Complete(
	ctx context.Context,
	messages []openai.ChatCompletionMessage,
) (openai.ChatCompletionResponse, error) {
	return f(ctx, messages)
}

// textCompletion wraps plain text into the shape the gateway returns it in.
func textCompletion(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

// scriptedCompleter plays both sides of a simulated interview. It tells the
// interviewer and respondent roles apart by their system prompts and must stay
// stateless because business-wide simulations call it from multiple
// goroutines.
func scriptedCompleter() completerFunc {
	return func(_ context.Context, messages []openai.ChatCompletionMessage) (openai.ChatCompletionResponse, error) {
		if strings.HasPrefix(messages[0].Content, "You are an AI interviewer") {
			return textCompletion(fmt.Sprintf("Could you expand on message %d?", len(messages))), nil
		}
		return textCompletion("I focused on reliability and shipped the migration."), nil
	}
}

// newEngine wires the engine services against a fresh fixture database.
type engine struct {
	dbs        *sqlite.Database
	businesses *repositories.BusinessRepository
	employees  *repositories.EmployeeRepository
	questions  *repositories.QuestionRepository
	interviews *repositories.InterviewRepository
	responses  *repositories.ResponseRepository
	sequencer  *Sequencer
}

func newEngine(t *testing.T, completer completerFunc) *engine {
	t.Helper()
	logger := testhelpers.NewLogger(io.Discard)
	dbs := newTestDB(t)
	questions := repositories.NewQuestionRepository(dbs, logger)
	interviews := repositories.NewInterviewRepository(dbs, logger)
	responses := repositories.NewResponseRepository(dbs, logger)
	synth := NewSynthesizer(questions, completer, logger)
	return &engine{
		dbs:        dbs,
		businesses: repositories.NewBusinessRepository(dbs, logger),
		employees:  repositories.NewEmployeeRepository(dbs, logger),
		questions:  questions,
		interviews: interviews,
		responses:  responses,
		sequencer:  NewSequencer(interviews, questions, responses, synth, logger),
	}
}

// answer persists a response so the sequencer sees the question as asked.
func (e *engine) answer(t *testing.T, interviewID, employeeID, questionID, content string) {
	t.Helper()
	err := e.responses.Upsert(context.Background(), models.QuestionResponse{
		InterviewID: interviewID,
		EmployeeID:  employeeID,
		QuestionID:  questionID,
		Content:     content,
	})
	if err != nil {
		t.Fatal(err)
	}
}
