package middlewares

import (
	"context"
	"encoding/json"
	"image-resizer/internal/config"
	"image-resizer/internal/data"
	"log/slog"
	"net/http"
	"time"
)

type AppContext struct {
	context.Context
	Config        *config.Config
	Logger        *slog.Logger
	OAuthProvider OAuthProvider
	Twitter       TwitterClient
	StateCache    data.StateCache
	Resizer       ImageResizer
	InstanceID    string

	Request  *http.Request
	Response http.ResponseWriter
}

type contextKey string

const appContextKey contextKey = "appContext"

func AppContextMiddleware(baseCtx *AppContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCtx := &AppContext{
				Context:       r.Context(),
				Config:        baseCtx.Config,
				Logger:        baseCtx.Logger,
				OAuthProvider: baseCtx.OAuthProvider,
				Twitter:       baseCtx.Twitter,
				StateCache:    baseCtx.StateCache,
				Resizer:       baseCtx.Resizer,
				InstanceID:    baseCtx.InstanceID,
				Request:       r,
				Response:      w,
			}

			ctx := context.WithValue(r.Context(), appContextKey, requestCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type AppHandler func(*AppContext)

// Handler converts an AppHandler to an http.Handler
func (ctx *AppContext) Handler(h AppHandler) http.Handler {
	return ctx.HandlerFunc(h)
}

// HandlerFunc converts AppHandler to a http.HandlerFunc
func (ctx *AppContext) HandlerFunc(h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Get the AppContext from the request context
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		// Middleware mounted after AppContextMiddleware (RequestSize, Compress,
		// route groups) may have replaced the body, writer or context.
		reqCtx := *appCtx
		reqCtx.Context = r.Context()
		reqCtx.Request = r
		reqCtx.Response = w

		h(&reqCtx)
	}
}

func (ctx *AppContext) Redirect(url string, status int) {
	http.Redirect(ctx.Response, ctx.Request, url, status)
}

func NewAppContext(ctx context.Context, cfg *config.Config, logger *slog.Logger, oauthProvider OAuthProvider, twitter TwitterClient, stateCache data.StateCache, resizer ImageResizer, instanceID string) *AppContext {
	return &AppContext{
		Context:       ctx,
		Config:        cfg,
		Logger:        logger,
		OAuthProvider: oauthProvider,
		Twitter:       twitter,
		StateCache:    stateCache,
		Resizer:       resizer,
		InstanceID:    instanceID,
	}
}

func GetAppContext(r *http.Request) *AppContext {
	if ctx, ok := r.Context().Value(appContextKey).(*AppContext); ok {
		return ctx
	}

	return nil
}

func GetLogger(r *http.Request) *slog.Logger {
	if appCtx := GetAppContext(r); appCtx != nil {
		return appCtx.Logger
	}

	return nil
}

func (ctx *AppContext) WriteJSON(status int, data interface{}) {
	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(status)
	if err := json.NewEncoder(ctx.Response).Encode(data); err != nil {
		ctx.Logger.Error("failed to marshal json", "error", err)
	}
}

func (ctx *AppContext) SetJSONError(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"error": message,
	})
}

func (ctx *AppContext) SetJSONStatus(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"status": message,
	})
}

// Cookie returns the value of the named request cookie, or "" if it is absent.
func (ctx *AppContext) Cookie(name string) string {
	cookie, err := ctx.Request.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetCookie writes an httpOnly, sameSite=lax cookie scoped to the whole site.
func (ctx *AppContext) SetCookie(name, value string, maxAge time.Duration) {
	http.SetCookie(ctx.Response, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   ctx.Config.Cookies.IsSecure(),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the named cookie with the same attributes it was set with.
func (ctx *AppContext) ClearCookie(name string) {
	http.SetCookie(ctx.Response, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   ctx.Config.Cookies.IsSecure(),
		SameSite: http.SameSiteLaxMode,
	})
}
