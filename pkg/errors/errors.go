package errors

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrBadRequest          = errors.New("bad request")
	ErrInternalServer      = errors.New("internal server error")
	ErrInvalidToken        = errors.New("invalid token")
	ErrRoomNotFound        = errors.New("room not found")
	ErrMessageNotFound     = errors.New("message not found")
	ErrKeywordNotFound     = errors.New("ng keyword not found")
	ErrKeywordExists       = errors.New("ng keyword already exists")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrCompanyUserNotFound = errors.New("company user not found")
	ErrNotParticipant      = errors.New("actor is not a participant of this room")
	ErrInvalidDecision     = errors.New("decision must be APPROVED or REJECTED")
	ErrModerationConflict  = errors.New("moderation record was modified by another reviewer")
	ErrNotUnderReview      = errors.New("message has not been flagged for review")
	ErrRoomIntegrity       = errors.New("room created without its participants")
	ErrRateLimited         = errors.New("rate limit exceeded")
)

type APIError struct {
	Message string `json:"error"`
	Code    int    `json:"code"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(message string, code int) *APIError {
	return &APIError{
		Message: message,
		Code:    code,
	}
}

// HTTPStatusFromError walks the wrap chain, so service errors built with
// fmt.Errorf("...: %w", ErrX) map the same way as the bare sentinel.
func HTTPStatusFromError(err error) int {
	var apiErr *APIError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &apiErr):
		return apiErr.Code
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrMessageNotFound), errors.Is(err, ErrKeywordNotFound),
		errors.Is(err, ErrCandidateNotFound), errors.Is(err, ErrCompanyUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidDecision):
		return http.StatusBadRequest
	case errors.Is(err, ErrKeywordExists), errors.Is(err, ErrModerationConflict),
		errors.Is(err, ErrNotUnderReview):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage hides internal failure details from API clients.
func PublicMessage(err error) string {
	if HTTPStatusFromError(err) == http.StatusInternalServerError {
		return ErrInternalServer.Error()
	}
	return err.Error()
}
