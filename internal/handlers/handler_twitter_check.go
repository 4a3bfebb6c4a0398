package handlers

import (
	"image-resizer/internal/auth"
	"image-resizer/internal/middlewares"
	"net/http"
)

// GETTwitterAuthCheckHandler reports whether an access token cookie is
// present. The token is not validated against Twitter.
func GETTwitterAuthCheckHandler(ctx *middlewares.AppContext) {
	ctx.WriteJSON(http.StatusOK, map[string]bool{
		"isAuthenticated": ctx.Cookie(auth.CookieAccessToken) != "",
	})
}
