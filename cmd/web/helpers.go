package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/interview"
	"github.com/myrjola/deepinsight/internal/models"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError,
		errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.logger.Debug(message, "method", r.Method, "uri", r.URL.RequestURI(), "status", status)
	app.writeJSON(w, r, status, errorResponse{Error: message})
}

// handleError maps the error taxonomy to HTTP statuses: missing records are
// 404, a gateway that didn't cooperate is 502 and everything else is a 500.
func (app *application) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrNoRecord):
		app.clientError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, interview.ErrGenerationFailed):
		app.logger.LogAttrs(r.Context(), slog.LevelError, "text generation failed", errors.SlogError(err))
		app.writeJSON(w, r, http.StatusBadGateway, errorResponse{Error: "text generation failed"})
	default:
		app.serverError(w, r, err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "write response", errors.SlogError(err))
	}
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		app.clientError(w, r, http.StatusBadRequest, errors.Wrap(err, "decode request body").Error())
		return false
	}
	return true
}

// orderIndex converts the nullable database representation for JSON output.
func orderIndex(question models.Question) *int64 {
	if !question.OrderIndex.Valid {
		return nil
	}
	index := question.OrderIndex.Int64
	return &index
}
