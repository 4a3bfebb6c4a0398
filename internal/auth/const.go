package auth

// Cookie names shared by the login, callback, post and logout handlers.
const (
	CookieOAuthState        = "twitter_oauth_state"
	CookieOAuthCodeVerifier = "twitter_oauth_code_verifier"
	CookieAccessToken       = "twitter_access_token"
	CookieRefreshToken      = "twitter_refresh_token"
)

const stateBytes = 32
