package main

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/google/uuid"
	"github.com/myrjola/deepinsight/internal/models"
)

type createQuestionRequest struct {
	Content    string `json:"content"`
	BusinessID string `json:"business_id"`
}

// createQuestion authors a new base question. Its order index is assigned on
// the fixed stride, leaving the two slots after it open for follow-ups.
// Follow-up questions are created by the engine only, never through the API.
func (app *application) createQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var request createQuestionRequest
	if !app.readJSON(w, r, &request) {
		return
	}
	if request.Content == "" || request.BusinessID == "" {
		app.clientError(w, r, http.StatusBadRequest, "content and business_id are required")
		return
	}
	if _, err := app.businesses.Get(ctx, request.BusinessID); err != nil {
		app.handleError(w, r, err)
		return
	}

	question, err := app.createBaseQuestion(ctx, request.BusinessID, request.Content)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, newQuestionPayload(*question))
}

func (app *application) createBaseQuestion(
	ctx context.Context,
	businessID string,
	content string,
) (*models.Question, error) {
	nextIndex, err := app.questions.NextBaseOrderIndex(ctx, businessID)
	if err != nil {
		return nil, err
	}
	question := models.Question{
		ID:         uuid.NewString(),
		Content:    content,
		BusinessID: businessID,
		IsFollowUp: false,
		OrderIndex: sql.NullInt64{Int64: nextIndex, Valid: true},
	}
	if err = app.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (app *application) listQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID := r.PathValue("businessID")

	if _, err := app.businesses.Get(ctx, businessID); err != nil {
		app.handleError(w, r, err)
		return
	}
	questions, err := app.questions.ListBase(ctx, businessID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	payload := make([]questionPayload, 0, len(questions))
	for _, question := range questions {
		payload = append(payload, newQuestionPayload(question))
	}
	app.writeJSON(w, r, http.StatusOK, payload)
}
