package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorKind struct {
	target error
	status int
	name   string
}

// errorKinds is checked in order; token errors come before the generic
// unauthorized error.
var errorKinds = []errorKind{
	{common.ErrorValidation, http.StatusBadRequest, "validation_error"},
	{common.ErrTokenExpired, http.StatusUnauthorized, "token_expired"},
	{common.ErrMalformedToken, http.StatusUnauthorized, "malformed_token"},
	{common.ErrorUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{common.ErrorForbidden, http.StatusForbidden, "forbidden"},
	{common.ErrorNotFound, http.StatusNotFound, "not_found"},
	{common.ErrorConflict, http.StatusConflict, "conflict"},
}

// writeError is the single place where errors become HTTP responses.
// Anything unrecognised is logged in full and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			writeJSON(w, k.status, errorBody{Error: k.name, Message: err.Error()})
			return
		}
	}

	log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal_error", Message: "internal server error"})
}
