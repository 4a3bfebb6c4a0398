package handlers

import (
	"image-resizer/internal/auth"
	"image-resizer/internal/middlewares"
	"net/http"
)

// GETTwitterLoginHandler starts the authorization code + PKCE flow. The state
// and verifier live only in short-lived cookies until the callback.
func GETTwitterLoginHandler(ctx *middlewares.AppContext) {
	state, err := ctx.OAuthProvider.GenerateState()
	if err != nil {
		ctx.Logger.Error("Failed to generate oauth state", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to start Twitter login")
		return
	}

	verifier := ctx.OAuthProvider.GenerateVerifier()

	ctx.SetCookie(auth.CookieOAuthState, state, ctx.Config.Cookies.StateMaxAge)
	ctx.SetCookie(auth.CookieOAuthCodeVerifier, verifier, ctx.Config.Cookies.StateMaxAge)

	authURL := ctx.OAuthProvider.AuthCodeURL(state, verifier)

	ctx.Logger.Debug("Redirecting to Twitter authorization", "url", authURL)

	ctx.WriteJSON(http.StatusOK, map[string]string{
		"url": authURL,
	})
}
