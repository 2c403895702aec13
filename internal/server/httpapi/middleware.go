package httpapi

import (
	"runtime/debug"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/akuzmin/notehub/internal/errs"
)

// logRequests emits one structured line per request. No payloads, only metadata.
func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		s.log.Info("http",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("dur", time.Since(start)),
			zap.String("remote", c.RealIP()),
		)
		return nil
	}
}

// recoverPanics converts handler panics into a generic 500 response.
func (s *Server) recoverPanics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request().URL.Path),
				)
				err = s.writeError(c, errInternal)
			}
		}()
		return next(c)
	}
}

// requireAuth is the access guard: it verifies the bearer token and attaches
// the resolved identity to the request context. It never touches the store.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return s.writeError(c, err)
		}
		cl, err := s.issuer.Verify(raw)
		if err != nil {
			return s.writeError(c, err)
		}
		setClaims(c, cl)
		return next(c)
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if header == "" || !strings.HasPrefix(header, prefix) {
		return "", errs.ErrMissingToken
	}
	raw := strings.TrimSpace(header[len(prefix):])
	if raw == "" {
		return "", errs.ErrMissingToken
	}
	return raw, nil
}
