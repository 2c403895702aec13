package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/akuzmin/notehub/internal/errs"
)

// errorBody is the uniform error response shape.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

var errInternal = errors.New("internal")

// writeError maps a service error to a status code and the uniform body.
// Infrastructure faults are logged here and surfaced without internal detail.
func (s *Server) writeError(c echo.Context, err error) error {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, errorBody{Error: "validation", Message: ve.Reason, Field: ve.Field})
	case errors.Is(err, errs.ErrEmailTaken):
		return c.JSON(http.StatusConflict, errorBody{Error: "email_taken", Message: "email already registered"})
	case errors.Is(err, errs.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid_credentials", Message: "invalid email or password"})
	case errors.Is(err, errs.ErrMissingToken):
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "missing_token", Message: "authorization required"})
	case errors.Is(err, errs.ErrTokenExpired):
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "token_expired", Message: "token expired, log in again"})
	case errors.Is(err, errs.ErrTokenInvalid):
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "token_invalid", Message: "invalid token"})
	case errors.Is(err, errs.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Error: "not_found", Message: "note not found"})
	case errors.Is(err, errs.ErrRateLimited):
		return c.JSON(http.StatusTooManyRequests, errorBody{Error: "rate_limited", Message: "too many attempts, try again later"})
	case isStoreUnavailable(err):
		s.log.Error("store unavailable", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, errorBody{Error: "store_unavailable", Message: "service temporarily unavailable"})
	default:
		if !errors.Is(err, errInternal) {
			s.log.Error("internal error", zap.Error(err))
		}
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal", Message: "internal server error"})
	}
}

// isStoreUnavailable classifies failures meaning the database cannot be
// reached right now: the explicit sentinel, a pgx connect failure bubbling
// up through a repository, or a deadline hit waiting on the pool.
func isStoreUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	return errors.Is(err, errs.ErrStoreUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &connErr)
}
