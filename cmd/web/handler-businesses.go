package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/myrjola/deepinsight/internal/models"
)

type questionPayload struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	BusinessID string `json:"business_id"`
	IsFollowUp bool   `json:"is_follow_up"`
	OrderIndex *int64 `json:"order_index"`
}

func newQuestionPayload(question models.Question) questionPayload {
	return questionPayload{
		ID:         question.ID,
		Content:    question.Content,
		BusinessID: question.BusinessID,
		IsFollowUp: question.IsFollowUp,
		OrderIndex: orderIndex(question),
	}
}

type employeePayload struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Bio        string `json:"bio"`
	BusinessID string `json:"business_id"`
}

func newEmployeePayload(employee models.Employee) employeePayload {
	return employeePayload{
		ID:         employee.ID,
		Email:      employee.Email,
		Bio:        employee.Bio,
		BusinessID: employee.BusinessID,
	}
}

type businessSeedData struct {
	Employees []struct {
		Email string `json:"email"`
		Bio   string `json:"bio"`
	} `json:"employees"`
	// Questions are seeded as base questions in the given order.
	Questions []string `json:"questions"`
}

type createBusinessRequest struct {
	Name     string            `json:"name"`
	SeedData *businessSeedData `json:"seed_data"`
}

type businessResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Employees []employeePayload `json:"employees"`
	Questions []questionPayload `json:"questions"`
}

func (app *application) createBusiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var request createBusinessRequest
	if !app.readJSON(w, r, &request) {
		return
	}
	if request.Name == "" {
		app.clientError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	business := models.Business{ID: uuid.NewString(), Name: request.Name}
	if err := app.businesses.Create(ctx, business); err != nil {
		app.handleError(w, r, err)
		return
	}

	response := businessResponse{
		ID:        business.ID,
		Name:      business.Name,
		Employees: []employeePayload{},
		Questions: []questionPayload{},
	}
	if request.SeedData != nil {
		for _, seed := range request.SeedData.Employees {
			employee := models.Employee{
				ID:         uuid.NewString(),
				Email:      seed.Email,
				Bio:        seed.Bio,
				BusinessID: business.ID,
			}
			if err := app.employees.Create(ctx, employee); err != nil {
				app.handleError(w, r, err)
				return
			}
			response.Employees = append(response.Employees, newEmployeePayload(employee))
		}
		for _, content := range request.SeedData.Questions {
			question, err := app.createBaseQuestion(ctx, business.ID, content)
			if err != nil {
				app.handleError(w, r, err)
				return
			}
			response.Questions = append(response.Questions, newQuestionPayload(*question))
		}
	}

	app.writeJSON(w, r, http.StatusCreated, response)
}

func (app *application) getBusiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID := r.PathValue("businessID")

	business, err := app.businesses.Get(ctx, businessID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	employees, err := app.employees.ListForBusiness(ctx, businessID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	questions, err := app.questions.ListBase(ctx, businessID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	response := businessResponse{
		ID:        business.ID,
		Name:      business.Name,
		Employees: make([]employeePayload, 0, len(employees)),
		Questions: make([]questionPayload, 0, len(questions)),
	}
	for _, employee := range employees {
		response.Employees = append(response.Employees, newEmployeePayload(employee))
	}
	for _, question := range questions {
		response.Questions = append(response.Questions, newQuestionPayload(question))
	}

	app.writeJSON(w, r, http.StatusOK, response)
}
