package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"adpilot/internal/core/domain"
)

// ownerHeader carries the authenticated user id, set by the fronting
// auth layer. Requests without it are unauthorized.
const ownerHeader = "X-User-ID"

// envelope is the uniform response shape of the API.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		h.logger.Error("unhandled error", slog.Any("error", err))
		de = domain.E(domain.CodeInternal, "something went wrong")
	}
	if de.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(de.RetryAfter.Seconds()))))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusOf(de.Code))
	body := envelope{Error: &errorBody{Code: string(de.Code), Message: de.Message, Details: de.Details}}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func statusOf(code domain.Code) int {
	switch code {
	case domain.CodeUnauthorized, domain.CodeTokenExpired:
		return http.StatusUnauthorized
	case domain.CodePaymentRequired:
		return http.StatusPaymentRequired
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeConflict:
		return http.StatusConflict
	case domain.CodeRateLimited:
		return http.StatusTooManyRequests
	case domain.CodePolicyViolation:
		return http.StatusUnprocessableEntity
	case domain.CodeAPIError, domain.CodePublishFailed, domain.CodeNetworkError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// owner extracts the authenticated user id, or fails the request.
func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID := r.Header.Get(ownerHeader)
	if ownerID == "" {
		h.respondError(w, domain.E(domain.CodeUnauthorized, "missing user identity"))
		return "", false
	}
	return ownerID, true
}

// pathID parses the {id} URL parameter as a UUID, or fails the request.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, domain.E(domain.CodeValidation, "invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON parses the request body into dst, rejecting malformed or
// unexpected input at the edge.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.respondError(w, domain.E(domain.CodeValidation, "invalid JSON body"))
		return false
	}
	return true
}
