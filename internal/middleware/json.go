package middleware

import (
	"encoding/json"
	"net/http"

	"go-session-auth/internal/model"
)

func writeMessage(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.MessageResponse{Message: message, Code: code})
}
