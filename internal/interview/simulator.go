package interview

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/deepinsight/internal/ai"
	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/internal/repositories"
	"github.com/myrjola/deepinsight/sqlite"
)

// businessRunTimeout bounds how long a business-wide simulation waits for its
// per-employee units. Units that finish later still persist their responses,
// the orchestrator just stops waiting for them.
const businessRunTimeout = 120 * time.Second

// EmployeeOutcome is the result of simulating one employee's interview.
type EmployeeOutcome struct {
	EmployeeID    string
	EmployeeEmail string
	InterviewID   string
	Exchanges     []models.AnsweredQuestion
	// Completed mirrors Result.Completed: false means the iteration cap was
	// reached, which is incomplete but not erroneous.
	Completed bool
	// Err is set when the unit failed. A failed unit never aborts its
	// siblings.
	Err error
}

// BusinessOutcome aggregates a business-wide simulation run.
type BusinessOutcome struct {
	BusinessID   string
	BusinessName string
	Outcomes     []EmployeeOutcome
	Failures     []EmployeeOutcome
}

// Simulator drives simulated interviews, either for one employee or for
// every employee of a business concurrently. Engine services are constructed
// fresh per unit of work so that concurrent units share no mutable state.
type Simulator struct {
	dbs       *sqlite.Database
	completer ai.Completer
	logger    *slog.Logger
	// waitTimeout bounds how long a business-wide run waits for its units.
	// Tests shorten it to exercise the deadline branches.
	waitTimeout time.Duration
}

func NewSimulator(dbs *sqlite.Database, completer ai.Completer, logger *slog.Logger) *Simulator {
	return &Simulator{
		dbs:         dbs,
		completer:   completer,
		logger:      logger.With("source", "Simulator"),
		waitTimeout: businessRunTimeout,
	}
}

// unit bundles the per-unit-of-work service instances.
type unit struct {
	businesses *repositories.BusinessRepository
	employees  *repositories.EmployeeRepository
	questions  *repositories.QuestionRepository
	interviews *repositories.InterviewRepository
	driver     *Driver
}

func (s *Simulator) newUnit() *unit {
	questions := repositories.NewQuestionRepository(s.dbs, s.logger)
	interviews := repositories.NewInterviewRepository(s.dbs, s.logger)
	responses := repositories.NewResponseRepository(s.dbs, s.logger)
	employees := repositories.NewEmployeeRepository(s.dbs, s.logger)
	synth := NewSynthesizer(questions, s.completer, s.logger)
	sequencer := NewSequencer(interviews, questions, responses, synth, s.logger)
	respondent := NewSimulatedRespondent(s.completer, s.logger)
	return &unit{
		businesses: repositories.NewBusinessRepository(s.dbs, s.logger),
		employees:  employees,
		questions:  questions,
		interviews: interviews,
		driver:     NewDriver(sequencer, respondent, interviews, employees, responses, s.logger),
	}
}

// RunForEmployee simulates a single employee's interview. When interviewID is
// empty a fresh interview is started, otherwise the given interview is
// resumed from its current state.
func (s *Simulator) RunForEmployee(
	ctx context.Context,
	employeeID string,
	interviewID string,
) (*EmployeeOutcome, error) {
	u := s.newUnit()
	employee, err := u.employees.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if interviewID == "" {
		interviewID = uuid.NewString()
		if err = u.interviews.Create(ctx, models.Interview{
			ID:         interviewID,
			BusinessID: employee.BusinessID,
			EmployeeID: employee.ID,
		}); err != nil {
			return nil, err
		}
	} else {
		var interview *models.Interview
		if interview, err = u.interviews.Get(ctx, interviewID); err != nil {
			return nil, err
		}
		if interview.EmployeeID != employee.ID {
			return nil, errors.New("interview does not belong to employee",
				slog.String("interview_id", interviewID), slog.String("employee_id", employeeID))
		}
	}

	result, err := u.driver.Run(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return &EmployeeOutcome{
		EmployeeID:    employee.ID,
		EmployeeEmail: employee.Email,
		InterviewID:   interviewID,
		Exchanges:     result.Exchanges,
		Completed:     result.Completed,
	}, nil
}

// RunForBusiness simulates interviews for every employee of the business, one
// concurrent unit of work per employee.
//
// Units are independent: a failing unit is recorded and does not abort its
// siblings. The run fails as a whole only when the deadline expires before
// any unit finished, or when every unit failed. Each finished unit is also
// sent to progress (when non-nil) as it arrives, so fire-and-forget callers
// can observe the run; progress is closed by the caller, not here.
func (s *Simulator) RunForBusiness(
	ctx context.Context,
	businessID string,
	progress chan<- EmployeeOutcome,
) (*BusinessOutcome, error) {
	u := s.newUnit()
	business, err := u.businesses.Get(ctx, businessID)
	if err != nil {
		return nil, err
	}
	employees, err := u.employees.ListForBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, errors.New("no employees found for business", slog.String("business_id", businessID))
	}
	baseQuestions, err := u.questions.ListBase(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if len(baseQuestions) == 0 {
		return nil, errors.New("no questions found for business", slog.String("business_id", businessID))
	}

	// The deadline governs how long we wait, not the units themselves: a
	// straggler keeps its context so it can finish persisting its last write.
	waitCtx, cancel := context.WithTimeout(ctx, s.waitTimeout)
	defer cancel()
	unitCtx := context.WithoutCancel(ctx)

	results := make(chan EmployeeOutcome, len(employees))
	for _, employee := range employees {
		go func(employee models.Employee) {
			outcome, unitErr := s.RunForEmployee(unitCtx, employee.ID, "")
			if unitErr != nil {
				results <- EmployeeOutcome{
					EmployeeID:    employee.ID,
					EmployeeEmail: employee.Email,
					Err:           unitErr,
				}
				return
			}
			results <- *outcome
		}(employee)
	}

	outcome := BusinessOutcome{
		BusinessID:   businessID,
		BusinessName: business.Name,
	}
	received := 0
collect:
	for received < len(employees) {
		select {
		case unitOutcome := <-results:
			received++
			if progress != nil {
				progress <- unitOutcome
			}
			if unitOutcome.Err != nil {
				s.logger.LogAttrs(ctx, slog.LevelError, "interview simulation unit failed",
					slog.String("business_id", businessID),
					slog.String("employee_id", unitOutcome.EmployeeID),
					errors.SlogError(unitOutcome.Err))
				outcome.Failures = append(outcome.Failures, unitOutcome)
				continue
			}
			outcome.Outcomes = append(outcome.Outcomes, unitOutcome)
		case <-waitCtx.Done():
			if received == 0 {
				return nil, errors.Wrap(waitCtx.Err(), "simulation deadline expired before any interview finished",
					slog.String("business_id", businessID))
			}
			s.logger.LogAttrs(ctx, slog.LevelWarn, "simulation deadline expired, proceeding with finished interviews",
				slog.String("business_id", businessID),
				slog.Int("finished", received), slog.Int("total", len(employees)))
			break collect
		}
	}

	if len(outcome.Outcomes) == 0 {
		failureErrs := make([]error, 0, len(outcome.Failures))
		for _, failure := range outcome.Failures {
			failureErrs = append(failureErrs, failure.Err)
		}
		return nil, errors.Wrap(errors.Join(failureErrs...), "every interview simulation failed",
			slog.String("business_id", businessID))
	}
	return &outcome, nil
}
