package interview

import (
	"context"
	"log/slog"

	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/internal/repositories"
)

// maxIterations caps the driver loop so that a sequencing or data bug can
// never spin the interview forever.
const maxIterations = 50

// nextQuestioner is the part of the Sequencer the driver depends on.
type nextQuestioner interface {
	Next(ctx context.Context, interviewID string) (*models.Question, bool, error)
}

// Result is the outcome of driving a single interview.
type Result struct {
	Exchanges []models.AnsweredQuestion
	// Completed is false when the iteration cap was reached before the
	// sequencer declared the interview over. Callers must check it, hitting
	// the cap is not reported as an error.
	Completed bool
}

// Driver runs one interview from its current state to completion: it asks
// the sequencer for the next question, has the respondent answer it and
// persists the response, until the sequencer declares the interview over.
type Driver struct {
	sequencer  nextQuestioner
	respondent Respondent
	interviews *repositories.InterviewRepository
	employees  *repositories.EmployeeRepository
	responses  *repositories.ResponseRepository
	logger     *slog.Logger
}

func NewDriver(
	sequencer nextQuestioner,
	respondent Respondent,
	interviews *repositories.InterviewRepository,
	employees *repositories.EmployeeRepository,
	responses *repositories.ResponseRepository,
	logger *slog.Logger,
) *Driver {
	return &Driver{
		sequencer:  sequencer,
		respondent: respondent,
		interviews: interviews,
		employees:  employees,
		responses:  responses,
		logger:     logger.With("source", "Driver"),
	}
}

// Run drives the interview until completion or the iteration cap.
//
// The loop is strictly sequential: the sequencer's decision depends on the
// previous answer having been persisted, so no step may overlap the next.
func (d *Driver) Run(ctx context.Context, interviewID string) (*Result, error) {
	interview, err := d.interviews.Get(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	employee, err := d.employees.Get(ctx, interview.EmployeeID)
	if err != nil {
		return nil, err
	}

	var result Result
	for i := 0; i < maxIterations; i++ {
		question, done, nextErr := d.sequencer.Next(ctx, interviewID)
		if nextErr != nil {
			return nil, nextErr
		}
		if done {
			result.Completed = true
			return &result, nil
		}

		answer, answerErr := d.respondent.Answer(ctx, *employee, *question)
		if answerErr != nil {
			return nil, answerErr
		}

		if err = d.responses.Upsert(ctx, models.QuestionResponse{
			InterviewID: interview.ID,
			EmployeeID:  employee.ID,
			QuestionID:  question.ID,
			Content:     answer,
		}); err != nil {
			return nil, errors.Wrap(err, "persist answer", slog.String("question_id", question.ID))
		}

		result.Exchanges = append(result.Exchanges, models.AnsweredQuestion{
			Question: *question,
			Answer:   answer,
		})
	}

	d.logger.LogAttrs(ctx, slog.LevelWarn, "interview hit iteration cap before completing",
		slog.String("interview_id", interviewID), slog.Int("iterations", maxIterations))
	return &result, nil
}
