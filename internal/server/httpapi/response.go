package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/libhub/internal/common"
)

// envelope is the body of every API response.
type envelope struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Message: message, Success: true, Data: data})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Message: message, Success: false})
}

// errorStatus maps a service error to its HTTP status and default message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Access denied"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, common.ErrLastLibrary):
		return http.StatusBadRequest, "Cannot delete the last library"
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, common.ErrorLimitExceeded):
		return http.StatusBadRequest, "Limit exceeded"
	case errors.Is(err, common.ErrInvalidFile):
		return http.StatusBadRequest, "Only image files are allowed"
	case errors.Is(err, common.ErrFileTooLarge):
		return http.StatusBadRequest, "File too large"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// writeError answers with the status of err. Messages of *common.Failure
// are shown to the caller; anything else is logged and hidden.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)

	var f *common.Failure
	if errors.As(err, &f) && status != http.StatusInternalServerError {
		message = f.Message
	}

	if status == http.StatusInternalServerError {
		a.logger.Error(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	}

	writeFail(w, status, message)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return common.Fail(common.ErrorValidation, "Invalid JSON body")
	}
	return nil
}
