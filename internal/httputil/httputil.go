package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"lv-broker/internal/apperr"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func ReadJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps domain error codes to HTTP statuses; anything without a
// code is an internal error.
func WriteError(w http.ResponseWriter, err error) {
	if e, ok := apperr.As(err); ok {
		status := http.StatusInternalServerError
		switch e.Code {
		case apperr.CodeNotFound:
			status = http.StatusNotFound
		case apperr.CodeBadRequest:
			status = http.StatusBadRequest
		}
		WriteJSON(w, status, ErrorResponse{Error: e.Message})
		return
	}
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
