package handlers

import (
	"crypto/subtle"
	"image-resizer/internal/auth"
	"image-resizer/internal/metrics"
	"image-resizer/internal/middlewares"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
)

const (
	callbackErrorInvalidState = "invalid_state"
	callbackErrorAuthFailed   = "auth_failed"

	callbackMessageUnexpected = "Unexpected error during Twitter login"
)

// GETTwitterCallbackHandler completes the OAuth flow. Every outcome is a
// redirect to the application root; failures carry an error query parameter.
func GETTwitterCallbackHandler(ctx *middlewares.AppContext) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}

		ctx.Logger.Error("Unexpected failure in Twitter callback", "panic", rec, "stack", string(debug.Stack()))
		metrics.OAuthCallbacksTotal.WithLabelValues(metrics.CallbackOutcomeFailed).Inc()
		redirectWithCallbackError(ctx, callbackErrorAuthFailed, callbackMessageUnexpected)
	}()

	query := ctx.Request.URL.Query()

	storedState := ctx.Cookie(auth.CookieOAuthState)
	verifier := ctx.Cookie(auth.CookieOAuthCodeVerifier)

	// single use, whatever happens below
	ctx.ClearCookie(auth.CookieOAuthState)
	ctx.ClearCookie(auth.CookieOAuthCodeVerifier)

	if errorParam := query.Get("error"); errorParam != "" {
		errorDesc := query.Get("error_description")

		ctx.Logger.Warn("Twitter callback error", "error", errorParam, "description", errorDesc)
		metrics.OAuthCallbacksTotal.WithLabelValues(metrics.CallbackOutcomeProviderError).Inc()

		params := url.Values{"error": {errorParam}}
		if errorDesc != "" {
			params.Set("error_description", errorDesc)
		}
		ctx.Redirect(appRoot(ctx)+"?"+params.Encode(), http.StatusFound)
		return
	}

	state := query.Get("state")
	code := query.Get("code")

	if state == "" || storedState == "" || code == "" || verifier == "" ||
		subtle.ConstantTimeCompare([]byte(state), []byte(storedState)) != 1 {
		ctx.Logger.Warn("Rejected Twitter callback with invalid state",
			"has_state", state != "",
			"has_stored_state", storedState != "",
			"has_code", code != "",
			"has_verifier", verifier != "",
		)
		metrics.OAuthCallbacksTotal.WithLabelValues(metrics.CallbackOutcomeInvalidState).Inc()
		redirectWithCallbackError(ctx, callbackErrorInvalidState, "")
		return
	}

	fresh, err := ctx.StateCache.Consume(ctx, state, ctx.Config.Cookies.StateMaxAge)
	if err != nil {
		ctx.Logger.Error("Failed to record oauth state", "error", err)
		metrics.OAuthCallbacksTotal.WithLabelValues(metrics.CallbackOutcomeFailed).Inc()
		redirectWithCallbackError(ctx, callbackErrorAuthFailed, "Failed to verify login state")
		return
	}
	if !fresh {
		ctx.Logger.Warn("Rejected replayed Twitter callback")
		metrics.OAuthCallbacksTotal.WithLabelValues(metrics.CallbackOutcomeReplayed).Inc()
		redirectWithCallbackError(ctx, callbackErrorInvalidState, "")
		return
	}

	token, err := ctx.OAuthProvider.Exchange(ctx, code, verifier)
	if err != nil {
		ctx.Logger.Error("Failed to exchange authorization code", "error", err)
		metrics.OAuthCallbacksTotal.WithLabelValues(metrics.CallbackOutcomeFailed).Inc()
		redirectWithCallbackError(ctx, callbackErrorAuthFailed, err.Error())
		return
	}

	ctx.SetCookie(auth.CookieAccessToken, token.AccessToken, ctx.Config.Cookies.TokenMaxAge)
	if token.RefreshToken != "" {
		ctx.SetCookie(auth.CookieRefreshToken, token.RefreshToken, ctx.Config.Cookies.TokenMaxAge)
	}

	ctx.Logger.Info("User successfully authenticated with Twitter", "has_refresh_token", token.RefreshToken != "")
	metrics.OAuthCallbacksTotal.WithLabelValues(metrics.CallbackOutcomeSuccess).Inc()

	ctx.Redirect(appRoot(ctx), http.StatusFound)
}

func redirectWithCallbackError(ctx *middlewares.AppContext, errorCode, message string) {
	params := url.Values{"error": {errorCode}}
	if message != "" {
		params.Set("message", message)
	}
	ctx.Redirect(appRoot(ctx)+"?"+params.Encode(), http.StatusFound)
}

// appRoot is the configured external origin followed by "/", or "/" when no
// external URL is set.
func appRoot(ctx *middlewares.AppContext) string {
	if ctx.Config.Server.ExternalURL == "" {
		return "/"
	}
	return strings.TrimSuffix(ctx.Config.Server.ExternalURL, "/") + "/"
}
