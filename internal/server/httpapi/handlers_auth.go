package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akuzmin/notehub/internal/errs"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token    string `json:"token"`
	FullName string `json:"fullName"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, errs.Validation("body", "malformed request body"))
	}
	sess, err := s.auth.Register(c.Request().Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, sessionResponse{Token: sess.Token, FullName: sess.User.FullName})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, errs.Validation("body", "malformed request body"))
	}
	sess, err := s.auth.Login(c.Request().Context(), req.Email, req.Password, c.RealIP())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, sessionResponse{Token: sess.Token, FullName: sess.User.FullName})
}

// me returns the identity resolved by the access guard; no store round trip.
func (s *Server) me(c echo.Context) error {
	cl, ok := claimsFrom(c)
	if !ok {
		return s.writeError(c, errs.ErrMissingToken)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"userId":   cl.UserID.String(),
		"fullName": cl.FullName,
	})
}
