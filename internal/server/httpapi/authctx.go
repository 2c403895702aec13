package httpapi

import (
	"github.com/labstack/echo/v4"

	"github.com/akuzmin/notehub/internal/token"
)

const claimsKey = "notehub.claims"

// setClaims stores the authenticated identity on the request context.
func setClaims(c echo.Context, cl token.Claims) {
	c.Set(claimsKey, cl)
}

// claimsFrom fetches the authenticated identity from the request context.
func claimsFrom(c echo.Context) (token.Claims, bool) {
	cl, ok := c.Get(claimsKey).(token.Claims)
	return cl, ok
}
