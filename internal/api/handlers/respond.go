package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/medatlas/hospital-discovery/internal/infrastructure/observability"
	apperrors "github.com/medatlas/hospital-discovery/pkg/errors"
)

func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error taxonomy onto HTTP status codes:
// validation errors are the caller's fault, an unreachable catalog is a
// retryable server error, everything else is opaque.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	logger := observability.LoggerFromContext(r.Context())

	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeCatalogUnavailable:
			logger.Error().Err(err).Msg("catalog unavailable")
			respondWithError(w, http.StatusServiceUnavailable, "hospital catalog is temporarily unavailable")
		default:
			logger.Error().Err(err).Msg("request failed")
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	logger.Error().Err(err).Msg("request failed")
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
