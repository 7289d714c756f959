package utils

import (
	"encoding/json"
	"net/http"
)

func RespondJSON(w http.ResponseWriter, status int, data interface{}) error {
	response, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, _ = w.Write(response)

	return nil
}

func RespondMessage(w http.ResponseWriter, status int, message string) {
	_ = RespondJSON(w, status, map[string]string{"message": message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	_ = RespondJSON(w, status, map[string]string{"error": message})
}

func NotFound(w http.ResponseWriter, message string) {
	respondError(w, http.StatusNotFound, message)
}

func BadRequest(w http.ResponseWriter, message string) {
	respondError(w, http.StatusBadRequest, message)
}

func InternalError(w http.ResponseWriter, message string) {
	respondError(w, http.StatusInternalServerError, message)
}
