package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/restfold/restfold/internal/domain"
	"github.com/restfold/restfold/internal/redact"
	"github.com/restfold/restfold/internal/service/auth"
	"github.com/restfold/restfold/internal/store"
)

// ResponseFilter transforms success payload data before it is written.
type ResponseFilter func(data any) (any, error)

// RedactFilter returns a ResponseFilter that strips the named fields from
// every record in the response payload.
func RedactFilter(fields ...string) ResponseFilter {
	return func(data any) (any, error) {
		return redact.Fields(data, fields...)
	}
}

// RestRequest accumulates the pending outcome of one in-flight request and
// performs exactly one terminal write. The status defaults to 200; when both
// data and an error are set, the error wins.
type RestRequest struct {
	w      http.ResponseWriter
	r      *http.Request
	logger *slog.Logger
	filter ResponseFilter

	status    int
	data      any
	err       error
	responded bool
}

// NewRestRequest creates a RestRequest wrapping one request/response pair.
// The filter, when non-nil, is applied to success payloads only.
func NewRestRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger, filter ResponseFilter) *RestRequest {
	return &RestRequest{
		w:      w,
		r:      r,
		logger: logger,
		filter: filter,
		status: http.StatusOK,
	}
}

// WithData sets the success payload to be returned with the response.
func (rr *RestRequest) WithData(data any) *RestRequest {
	rr.data = data
	return rr
}

// WithStatus overrides the status code to be returned with the response.
func (rr *RestRequest) WithStatus(status int) *RestRequest {
	rr.status = status
	return rr
}

// WithError records a failure that occurred during the operation.
func (rr *RestRequest) WithError(err error) *RestRequest {
	rr.err = err
	return rr
}

// Respond completes the request-response life cycle. A recorded error is
// classified into a status code and body; otherwise the stored status is
// sent with the (possibly filtered) payload, or with an empty body when no
// payload was set. Repeat calls are no-ops.
func (rr *RestRequest) Respond() {
	if rr.responded {
		return
	}
	rr.responded = true

	if rr.err != nil {
		rr.handleError()
		return
	}
	rr.writeResponse()
}

// messageBody is the minimal JSON body used for terse error responses.
type messageBody struct {
	Message string `json:"message"`
}

// handleError translates the recorded failure into a response. Conflict and
// validation failures return their structured detail; everything
// unrecognized is a server error whose detail is logged, never returned.
func (rr *RestRequest) handleError() {
	switch {
	case errors.Is(rr.err, store.ErrConflict):
		rr.status = http.StatusConflict
		rr.writeJSON(conflictDetail(rr.err))
	case errors.Is(rr.err, domain.ErrValidation):
		rr.status = http.StatusBadRequest
		rr.writeJSON(validationDetail(rr.err))
	case errors.Is(rr.err, store.ErrNotFound):
		rr.status = http.StatusNotFound
		rr.writeJSON(messageBody{Message: "not found"})
	case errors.Is(rr.err, auth.ErrNotAuthorized):
		rr.status = http.StatusUnauthorized
		rr.writeJSON(messageBody{Message: "not authorized"})
	default:
		rr.handleServerError()
	}
}

// handleServerError responds 500 with a generic body and logs the real
// failure exactly once.
func (rr *RestRequest) handleServerError() {
	rr.logger.Error("unexpected failure handling request",
		"error", rr.err,
		"method", rr.r.Method,
		"path", rr.r.URL.Path)

	rr.status = http.StatusInternalServerError
	rr.writeJSON(messageBody{Message: "server error"})
}

// writeResponse sends the stored status, applying the configured filter to
// any payload. A filter failure is reclassified as an unexpected failure.
func (rr *RestRequest) writeResponse() {
	if rr.data == nil {
		rr.w.WriteHeader(rr.status)
		return
	}

	data := rr.data
	if rr.filter != nil {
		filtered, err := rr.filter(data)
		if err != nil {
			rr.err = err
			rr.handleServerError()
			return
		}
		data = filtered
	}

	rr.writeJSON(data)
}

func (rr *RestRequest) writeJSON(payload any) {
	rr.w.Header().Set("Content-Type", "application/json")
	rr.w.WriteHeader(rr.status)
	if err := json.NewEncoder(rr.w).Encode(payload); err != nil {
		rr.logger.Error("failed to encode JSON response", "error", err)
	}
}

func conflictDetail(err error) any {
	var conflict *store.ConflictError
	if errors.As(err, &conflict) {
		return conflict
	}
	return messageBody{Message: "conflict"}
}

func validationDetail(err error) any {
	var fieldErrs *domain.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}
	return messageBody{Message: "validation failed"}
}
