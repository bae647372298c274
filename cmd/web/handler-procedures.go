package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/myrjola/deepinsight/internal/models"
)

type startInterviewRequest struct {
	EmployeeID string `json:"employee_id"`
}

type startInterviewResponse struct {
	InterviewID string `json:"interview_id"`
}

func (app *application) startInterview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var request startInterviewRequest
	if !app.readJSON(w, r, &request) {
		return
	}
	if request.EmployeeID == "" {
		app.clientError(w, r, http.StatusBadRequest, "employee_id is required")
		return
	}

	employee, err := app.employees.Get(ctx, request.EmployeeID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	interview := models.Interview{
		ID:         uuid.NewString(),
		BusinessID: employee.BusinessID,
		EmployeeID: employee.ID,
	}
	if err = app.interviews.Create(ctx, interview); err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, startInterviewResponse{InterviewID: interview.ID})
}

type nextQuestionRequest struct {
	InterviewID string `json:"interview_id"`
}

type nextQuestionResponse struct {
	Question        *questionPayload `json:"question"`
	IsInterviewOver bool             `json:"is_interview_over"`
}

// nextQuestion returns the question the interview should ask next, generating
// a follow-up when the sequence calls for one. Calling it repeatedly without
// answering returns the same question.
func (app *application) nextQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var request nextQuestionRequest
	if !app.readJSON(w, r, &request) {
		return
	}
	if request.InterviewID == "" {
		app.clientError(w, r, http.StatusBadRequest, "interview_id is required")
		return
	}

	question, done, err := app.newSequencer().Next(ctx, request.InterviewID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	response := nextQuestionResponse{IsInterviewOver: done}
	if question != nil {
		payload := newQuestionPayload(*question)
		response.Question = &payload
	}
	app.writeJSON(w, r, http.StatusOK, response)
}

type answerQuestionRequest struct {
	InterviewID string `json:"interview_id"`
	QuestionID  string `json:"question_id"`
	Content     string `json:"content"`
}

type answerQuestionResponse struct {
	Success     bool   `json:"success"`
	InterviewID string `json:"interview_id"`
}

func (app *application) answerQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var request answerQuestionRequest
	if !app.readJSON(w, r, &request) {
		return
	}
	if request.InterviewID == "" || request.QuestionID == "" || request.Content == "" {
		app.clientError(w, r, http.StatusBadRequest, "interview_id, question_id and content are required")
		return
	}

	interview, err := app.interviews.Get(ctx, request.InterviewID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	question, err := app.questions.Get(ctx, request.QuestionID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	if question.BusinessID != interview.BusinessID {
		app.clientError(w, r, http.StatusBadRequest, "question does not belong to the interview's business")
		return
	}

	if err = app.responses.Upsert(ctx, models.QuestionResponse{
		InterviewID: interview.ID,
		EmployeeID:  interview.EmployeeID,
		QuestionID:  question.ID,
		Content:     request.Content,
	}); err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, answerQuestionResponse{
		Success:     true,
		InterviewID: interview.ID,
	})
}
