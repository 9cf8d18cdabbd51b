package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"homehero/internal/database"
	"homehero/internal/metrics"
	"homehero/internal/models"
)

const (
	msgAllFieldsRequired = "All fields required"
	msgInvalidBody       = "Invalid request body"
)

// operation names a handler's storage call and the fixed messages it answers with.
type operation struct {
	name     string
	failed   string
	notFound string
	badID    string
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, models.Response{Success: true, Message: message, Data: data})
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, models.Response{Success: true, Message: message})
}

func writeFailure(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, models.Response{Success: false, Message: message})
}

// fail maps err onto the HTTP error taxonomy. Storage faults are logged and
// answered with the operation's fixed message only.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, op operation, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeFailure(w, http.StatusBadRequest, msgAllFieldsRequired)
	case errors.Is(err, database.ErrInvalidID) && op.badID != "":
		writeFailure(w, http.StatusBadRequest, op.badID)
	case errors.Is(err, database.ErrNotFound) && op.notFound != "":
		writeFailure(w, http.StatusNotFound, op.notFound)
	default:
		metrics.IncStorageError(op.name)
		s.logger.Error().
			Err(err).
			Str("operation", op.name).
			Str("request_id", requestIDFrom(r.Context())).
			Msg(op.failed)
		writeFailure(w, http.StatusInternalServerError, op.failed)
	}
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeBody reads a single JSON object into dst. An empty body leaves dst
// untouched. Keys dst does not declare are kept by the model types.
func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}
