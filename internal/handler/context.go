package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"codeforge/internal/auth"
)

// TokenCookieName is the cookie carrying the session token.
const TokenCookieName = "token"

// currentClaims pulls the verified session claims the JWT middleware stored
// on the context. Handlers behind the middleware can rely on it; anything
// else gets a 401.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// setTokenCookie issues the HTTP-only session cookie. Production requires
// SameSite=None so the cookie survives cross-site frontend deployments;
// elsewhere Lax keeps local development working over plain origins.
func setTokenCookie(c echo.Context, token string, production bool) {
	cookie := &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTokenExpiry / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	c.SetCookie(cookie)
}

// clearTokenCookie expires the session cookie.
func clearTokenCookie(c echo.Context, production bool) {
	cookie := &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	c.SetCookie(cookie)
}
