package handlers

import (
	"errors"
	"image-resizer/internal/auth"
	"image-resizer/internal/testutil"
	"log/slog"
	"net/http"
	"testing"
)

func TestTwitterLogin_SetsStateCookiesAndReturnsURL(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/auth/twitter")
	defer tc.Finish()

	authURL := "https://twitter.com/i/oauth2/authorize?code_challenge=abc&code_challenge_method=S256&state=" + testState

	tc.MockOAuthProvider.EXPECT().GenerateState().Return(testState, nil).Times(1)
	tc.MockOAuthProvider.EXPECT().GenerateVerifier().Return(testVerifier).Times(1)
	tc.MockOAuthProvider.EXPECT().AuthCodeURL(testState, testVerifier).Return(authURL).Times(1)

	tc.CallHandler(GETTwitterLoginHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "application/json")
	tc.AssertJSONField(t, "url", authURL)
	tc.AssertCookieSet(t, auth.CookieOAuthState, testState)
	tc.AssertCookieSet(t, auth.CookieOAuthCodeVerifier, testVerifier)

	state := tc.GetResponseCookie(auth.CookieOAuthState)
	if state.MaxAge != 600 {
		t.Errorf("Expected state cookie to live 10 minutes, got %d seconds", state.MaxAge)
	}
	if !state.HttpOnly {
		t.Error("Expected state cookie to be httpOnly")
	}
}

func TestTwitterLogin_StateGenerationFailure(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "GET", "/api/auth/twitter")
	defer tc.Finish()

	tc.MockOAuthProvider.EXPECT().GenerateState().Return("", errors.New("entropy exhausted"))

	tc.CallHandler(GETTwitterLoginHandler)

	tc.AssertStatus(t, http.StatusInternalServerError)
	tc.AssertJSONField(t, "error", "Failed to start Twitter login")
	tc.AssertCookieAbsent(t, auth.CookieOAuthState)
	tc.AssertLogsContainMessage(t, slog.LevelError, "Failed to generate oauth state")
}

func TestTwitterAuthCheck(t *testing.T) {
	t.Run("with access token", func(t *testing.T) {
		tc := testutil.NewTestContextWithURL(t, "GET", "/api/auth/twitter/check")
		tc.WithCookie(auth.CookieAccessToken, "T")
		defer tc.Finish()

		tc.CallHandler(GETTwitterAuthCheckHandler)

		tc.AssertStatus(t, http.StatusOK)
		tc.AssertJSONField(t, "isAuthenticated", true)
	})

	t.Run("without access token", func(t *testing.T) {
		tc := testutil.NewTestContextWithURL(t, "GET", "/api/auth/twitter/check")
		tc.WithCookie(auth.CookieRefreshToken, "R")
		defer tc.Finish()

		tc.CallHandler(GETTwitterAuthCheckHandler)

		tc.AssertStatus(t, http.StatusOK)
		tc.AssertJSONField(t, "isAuthenticated", false)
	})
}

func TestTwitterLogout_ClearsTokenCookies(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/auth/twitter/logout")
	tc.WithCookie(auth.CookieAccessToken, "T")
	tc.WithCookie(auth.CookieRefreshToken, "R")
	defer tc.Finish()

	tc.CallHandler(POSTTwitterLogoutHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "application/json")
	tc.AssertJSONField(t, "status", "OK")
	tc.AssertCookieCleared(t, auth.CookieAccessToken)
	tc.AssertCookieCleared(t, auth.CookieRefreshToken)
}
