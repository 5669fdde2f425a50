package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/memberweb/cms/internal/blocks"
	"github.com/memberweb/cms/internal/custompages"
	"github.com/memberweb/cms/internal/faqs"
	"github.com/memberweb/cms/internal/features"
	"github.com/memberweb/cms/internal/navigation"
	"github.com/memberweb/cms/internal/permissions"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if errors.Is(err, permissions.ErrPermissionDenied) {
		return http.StatusForbidden, errorResponse{
			Error:   "forbidden",
			Message: err.Error(),
		}
	}

	// Struct-level ozzo failures arrive as validation.Errors, not as the
	// package sentinels.
	var fieldErrs validation.Errors
	var fieldErr validation.ErrorObject
	if errors.As(err, &fieldErrs) || errors.As(err, &fieldErr) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	var navNotFound *navigation.NotFoundError
	var blockNotFound *blocks.NotFoundError
	var faqNotFound *faqs.NotFoundError
	var featureNotFound *features.NotFoundError
	if errors.As(err, &navNotFound) ||
		errors.As(err, &blockNotFound) ||
		errors.As(err, &faqNotFound) ||
		errors.As(err, &featureNotFound) ||
		errors.Is(err, navigation.ErrEntryNotFound) ||
		errors.Is(err, custompages.ErrPageNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, navigation.ErrPageKeyExists) ||
		errors.Is(err, custompages.ErrPageKeyExists) ||
		errors.Is(err, custompages.ErrSyncConflict) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, navigation.ErrPageKeyRequired) ||
		errors.Is(err, navigation.ErrPageKeyInvalid) ||
		errors.Is(err, navigation.ErrPageKeyProtected) ||
		errors.Is(err, navigation.ErrDisplayNameRequired) ||
		errors.Is(err, navigation.ErrItemTypeInvalid) ||
		errors.Is(err, navigation.ErrRolesRequired) ||
		errors.Is(err, custompages.ErrPageKeyRequired) ||
		errors.Is(err, custompages.ErrPageKeyInvalid) ||
		errors.Is(err, custompages.ErrPageKeyReserved) ||
		errors.Is(err, custompages.ErrTitleRequired) ||
		errors.Is(err, custompages.ErrDisplayNameRequired) ||
		errors.Is(err, custompages.ErrNavigationTypeInvalid) ||
		errors.Is(err, custompages.ErrParentKeyOnMain) ||
		errors.Is(err, custompages.ErrParentKeyRequired) ||
		errors.Is(err, blocks.ErrPageKeyRequired) ||
		errors.Is(err, blocks.ErrSlotRequired) ||
		errors.Is(err, blocks.ErrContentRequired) ||
		errors.Is(err, faqs.ErrTitleRequired) ||
		errors.Is(err, faqs.ErrQuestionRequired) ||
		errors.Is(err, faqs.ErrAnswerRequired) ||
		errors.Is(err, features.ErrTitleRequired) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	return uuid.Parse(trimmed)
}

func requirePermission(w http.ResponseWriter, r *http.Request, permission string) bool {
	if err := permissions.Require(r.Context(), permission); err != nil {
		writeError(w, err)
		return false
	}
	return true
}

// viewerFromRequest reads the viewer annotated on the request context by the
// host's auth middleware, defaulting to the anonymous guest. Request
// parameters are never consulted; the viewer descriptor is not
// caller-controlled.
func viewerFromRequest(r *http.Request) navigation.Viewer {
	return navigation.ViewerFromContext(r.Context())
}
