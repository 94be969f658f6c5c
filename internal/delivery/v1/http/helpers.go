package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/storefront/internal/order"
	"github.com/DRSN-tech/storefront/pkg/e"
)

const (
	// fragmentMIME — Accept, при котором вместо редиректа отдаются фрагменты витрины.
	fragmentMIME = "text/html-fragment"
	// maxDelta ограничивает шаг изменения количества по модулю.
	maxDelta = 1000
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrInvalidDismissal):
		return http.StatusBadRequest, e.ErrInvalidDismissal.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func wantsFragment(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), fragmentMIME)
}

func parseName(r *http.Request) (string, error) {
	name := r.FormValue("name")
	if name == "" {
		return "", e.Wrap("name", e.ErrMissingFields)
	}

	return name, nil
}

func parseDelta(r *http.Request) (int, error) {
	raw := r.FormValue("delta")
	if raw == "" {
		return 0, e.Wrap("delta", e.ErrMissingFields)
	}

	delta, err := strconv.Atoi(strings.TrimPrefix(raw, "+"))
	if err != nil || delta == 0 || delta > maxDelta || delta < -maxDelta {
		return 0, e.Wrap(fmt.Sprintf("delta: %q", raw), e.ErrInvalidQuantity)
	}

	return delta, nil
}

func parseTarget(r *http.Request) (order.Target, error) {
	return order.ParseTarget(r.FormValue("target"))
}
