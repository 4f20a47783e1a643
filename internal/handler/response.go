package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-session-auth/internal/model"
	"go-session-auth/pkg/apierror"
)

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.MessageResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body model.MessageResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := model.MessageResponse{
		Code:    "INTERNAL_ERROR",
		Message: "unexpected server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		if status >= http.StatusInternalServerError {
			slog.Error("request failed", "code", apiErr.Code, "error", err.Error())
		}
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.Code = "INVALID_CREDENTIALS"
		body.Message = "invalid credentials"
	case errors.Is(err, model.ErrSessionNotFound):
		status = http.StatusUnauthorized
		body.Code = "NOT_AUTHENTICATED"
		body.Message = "not authenticated"
	case errors.Is(err, model.ErrInvalidToken):
		status = http.StatusUnauthorized
		body.Code = "INVALID_TOKEN"
		body.Message = "invalid token"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "invalid request body"
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, body)
}
