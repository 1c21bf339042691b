package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/api/shared"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/service"
	"github.com/phrazzld/crud-suite/internal/store"
)

// errInvalidParam marks malformed path or query parameters.
var errInvalidParam = fmt.Errorf("%w: invalid parameter", domain.ErrValidation)

// actorFromRequest returns the authenticated caller. It writes a 401 and
// returns false when the auth middleware did not run.
func actorFromRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger) (service.Actor, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	role, roleOK := shared.RoleFromContext(r.Context())
	if !ok || !roleOK {
		log.Warn("user ID or role not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return service.Actor{}, false
	}
	return service.Actor{UserID: userID, Role: role}, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", errInvalidParam, paramName)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", errInvalidParam, paramName)
	}
	return id, nil
}

// pathUUID is getPathUUID that writes a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	id, err := getPathUUID(r, paramName)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Debug("invalid path parameter", "param_name", paramName, "value", chi.URLParam(r, paramName))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+paramName)
		return uuid.Nil, false
	}
	return id, true
}

// pageFromRequest reads the limit and offset query parameters.
// Missing values use the store defaults; out of range values are clamped.
func pageFromRequest(r *http.Request) (store.Page, error) {
	q := r.URL.Query()
	var page store.Page

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return store.Page{}, fmt.Errorf("%w: limit must be an integer", errInvalidParam)
		}
		page.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return store.Page{}, fmt.Errorf("%w: offset must be a non-negative integer", errInvalidParam)
		}
		page.Offset = n
	}
	return page.Normalize(), nil
}

// optionalUUIDQuery parses an optional UUID query parameter.
func optionalUUIDQuery(r *http.Request, name string) (*uuid.UUID, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has invalid format", errInvalidParam, name)
	}
	return &id, nil
}

// decodeAndValidate decodes the JSON body into req and validates it. On
// failure it writes a 400 and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		msg := "Invalid request format"
		if errors.Is(err, shared.ErrEmptyBody) {
			msg = "Request body is required"
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msg, err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
