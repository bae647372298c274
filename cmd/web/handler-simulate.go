package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/interview"
)

type simulatedResponsePayload struct {
	QuestionID      string `json:"question_id"`
	QuestionContent string `json:"question_content"`
	ResponseContent string `json:"response_content"`
	IsFollowUp      bool   `json:"is_follow_up"`
	OrderIndex      *int64 `json:"order_index"`
}

type employeeOutcomePayload struct {
	EmployeeID    string                     `json:"employee_id"`
	EmployeeEmail string                     `json:"employee_email"`
	InterviewID   string                     `json:"interview_id,omitempty"`
	Completed     bool                       `json:"completed"`
	Error         string                     `json:"error,omitempty"`
	Responses     []simulatedResponsePayload `json:"responses"`
}

func newEmployeeOutcomePayload(outcome interview.EmployeeOutcome) employeeOutcomePayload {
	payload := employeeOutcomePayload{
		EmployeeID:    outcome.EmployeeID,
		EmployeeEmail: outcome.EmployeeEmail,
		InterviewID:   outcome.InterviewID,
		Completed:     outcome.Completed,
		Responses:     make([]simulatedResponsePayload, 0, len(outcome.Exchanges)),
	}
	if outcome.Err != nil {
		payload.Error = outcome.Err.Error()
	}
	for _, exchange := range outcome.Exchanges {
		payload.Responses = append(payload.Responses, simulatedResponsePayload{
			QuestionID:      exchange.Question.ID,
			QuestionContent: exchange.Question.Content,
			ResponseContent: exchange.Answer,
			IsFollowUp:      exchange.Question.IsFollowUp,
			OrderIndex:      orderIndex(exchange.Question),
		})
	}
	return payload
}

type simulateInterviewRequest struct {
	BusinessID string `json:"business_id"`
	// Async kicks the run off in the background. Progress is observable on
	// the events endpoint while the run lasts, and in the persisted
	// responses afterwards.
	Async bool `json:"async"`
}

type simulateInterviewResponse struct {
	BusinessID          string                   `json:"business_id"`
	BusinessName        string                   `json:"business_name"`
	EmployeeSimulations []employeeOutcomePayload `json:"employee_simulations"`
	Failures            []employeeOutcomePayload `json:"failures,omitempty"`
}

// asyncEventBuffer keeps a background run from blocking on a consumer that
// never shows up.
const asyncEventBuffer = 1024

func (app *application) simulateBusiness(w http.ResponseWriter, r *http.Request) {
	var request simulateInterviewRequest
	if !app.readJSON(w, r, &request) {
		return
	}
	if request.BusinessID == "" {
		app.clientError(w, r, http.StatusBadRequest, "business_id is required")
		return
	}

	if request.Async {
		app.startBackgroundSimulation(request.BusinessID)
		app.writeJSON(w, r, http.StatusAccepted, map[string]string{
			"business_id": request.BusinessID,
			"status":      "started",
			"events":      fmt.Sprintf("/simulate/interview/%s/events", request.BusinessID),
		})
		return
	}

	outcome, err := app.simulator.RunForBusiness(r.Context(), request.BusinessID, nil)
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, newSimulateInterviewResponse(outcome))
}

func newSimulateInterviewResponse(outcome *interview.BusinessOutcome) simulateInterviewResponse {
	response := simulateInterviewResponse{
		BusinessID:          outcome.BusinessID,
		BusinessName:        outcome.BusinessName,
		EmployeeSimulations: make([]employeeOutcomePayload, 0, len(outcome.Outcomes)),
	}
	for _, employeeOutcome := range outcome.Outcomes {
		response.EmployeeSimulations = append(response.EmployeeSimulations, newEmployeeOutcomePayload(employeeOutcome))
	}
	for _, failure := range outcome.Failures {
		response.Failures = append(response.Failures, newEmployeeOutcomePayload(failure))
	}
	return response
}

// startBackgroundSimulation runs the business-wide simulation detached from
// the request, publishing per-employee outcomes to the broker while it lasts.
func (app *application) startBackgroundSimulation(businessID string) {
	events := make(chan interview.EmployeeOutcome, asyncEventBuffer)
	app.simulations.Publish(businessID, events)
	go func() {
		defer func() {
			close(events)
			app.simulations.Unpublish(businessID)
		}()
		if _, err := app.simulator.RunForBusiness(context.Background(), businessID, events); err != nil {
			app.logger.Error("background simulation failed",
				"business_id", businessID, errors.SlogError(err))
		}
	}()
}

// simulationEvents streams the outcomes of an active background run as
// newline-delimited JSON. When no run is active the persisted responses are
// the source of truth.
func (app *application) simulationEvents(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("businessID")

	subscription, ok := <-app.simulations.Subscribe(businessID)
	if !ok {
		app.writeJSON(w, r, http.StatusOK, map[string]string{"status": "no active run"})
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	flusher, canFlush := w.(http.Flusher)
	encoder := json.NewEncoder(w)
	for outcome := range subscription {
		if err := encoder.Encode(newEmployeeOutcomePayload(outcome)); err != nil {
			app.logger.LogAttrs(r.Context(), slog.LevelError, "write simulation event", errors.SlogError(err))
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}
}

type simulateEmployeeRequest struct {
	InterviewID string `json:"interview_id"`
}

// simulateEmployee simulates a single employee's interview. An existing
// interview can be resumed by passing its id, otherwise a new one is started.
func (app *application) simulateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employeeID := r.PathValue("employeeID")

	var request simulateEmployeeRequest
	if r.ContentLength != 0 {
		if !app.readJSON(w, r, &request) {
			return
		}
	}

	outcome, err := app.simulator.RunForEmployee(ctx, employeeID, request.InterviewID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, newEmployeeOutcomePayload(*outcome))
}
