package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/myrjola/deepinsight/internal/models"
)

type createEmployeeRequest struct {
	Email      string `json:"email"`
	Bio        string `json:"bio"`
	BusinessID string `json:"business_id"`
}

func (app *application) createEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var request createEmployeeRequest
	if !app.readJSON(w, r, &request) {
		return
	}
	if request.Email == "" || request.BusinessID == "" {
		app.clientError(w, r, http.StatusBadRequest, "email and business_id are required")
		return
	}
	if _, err := app.businesses.Get(ctx, request.BusinessID); err != nil {
		app.handleError(w, r, err)
		return
	}

	employee := models.Employee{
		ID:         uuid.NewString(),
		Email:      request.Email,
		Bio:        request.Bio,
		BusinessID: request.BusinessID,
	}
	if err := app.employees.Create(ctx, employee); err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, newEmployeePayload(employee))
}
