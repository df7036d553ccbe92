package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bandroomhq/bandroom/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v with the given status. Token-bearing responses must
// not be cached anywhere between server and client.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto HTTP statuses. Unrecognized errors
// become a generic 500 so internals never leak into responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, common.ErrorAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "already exists"})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrNoSession):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, common.ErrCrossTenant),
		errors.Is(err, common.ErrMalformedPath):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
