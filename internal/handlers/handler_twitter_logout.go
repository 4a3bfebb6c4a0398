package handlers

import (
	"image-resizer/internal/auth"
	"image-resizer/internal/middlewares"
	"net/http"
)

func POSTTwitterLogoutHandler(ctx *middlewares.AppContext) {
	ctx.ClearCookie(auth.CookieAccessToken)
	ctx.ClearCookie(auth.CookieRefreshToken)

	ctx.Logger.Debug("Cleared Twitter token cookies")

	ctx.SetJSONStatus(http.StatusOK, "OK")
}
