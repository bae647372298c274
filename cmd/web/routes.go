package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthy", app.healthy)

	mux.HandleFunc("POST /businesses", app.createBusiness)
	mux.HandleFunc("GET /businesses/{businessID}", app.getBusiness)
	mux.HandleFunc("GET /businesses/{businessID}/questions", app.listQuestions)

	mux.HandleFunc("POST /employees", app.createEmployee)
	mux.HandleFunc("POST /questions", app.createQuestion)

	mux.HandleFunc("POST /procedures/start-interview", app.startInterview)
	mux.HandleFunc("POST /procedures/next-question", app.nextQuestion)
	mux.HandleFunc("POST /procedures/answer-question", app.answerQuestion)

	mux.HandleFunc("POST /simulate/interview", app.simulateBusiness)
	mux.HandleFunc("POST /simulate/interview/{employeeID}", app.simulateEmployee)
	mux.HandleFunc("GET /simulate/interview/{businessID}/events", app.simulationEvents)

	standard := alice.New(app.recoverPanic, app.logRequest, commonHeaders)

	return standard.Then(mux)
}
