package server

import (
	"image-resizer/internal/handlers"
	"image-resizer/internal/middlewares"
	"image-resizer/web"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRouter(ctx *middlewares.AppContext) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger(ctx.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewares.MetricsMiddleware)
	if ctx.Config.Server.RequestTimeout > 0 {
		r.Use(middleware.Timeout(ctx.Config.Server.RequestTimeout))
	}

	r.Use(middlewares.AppContextMiddleware(ctx))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ctx.Config.CORS.AllowedOrigins,
		AllowedMethods:   ctx.Config.CORS.AllowedMethods,
		AllowedHeaders:   ctx.Config.CORS.AllowedHeaders,
		ExposedHeaders:   ctx.Config.CORS.ExposedHeaders,
		AllowCredentials: ctx.Config.CORS.AllowCredentials,
		MaxAge:           ctx.Config.CORS.MaxAgeSeconds,
	}))

	r.Use(middleware.Compress(5))

	assets := http.FileServer(http.FS(web.Assets))
	r.Get("/", assets.ServeHTTP)
	r.Get("/app.js", assets.ServeHTTP)
	r.Get("/styles.css", assets.ServeHTTP)

	limiter := middlewares.NewRateLimiter(ctx.Config.Server.RateLimitPerMinute)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequestSize(ctx.Config.Server.MaxBodyBytes))
		r.Use(limiter.Middleware)

		r.Route("/auth/twitter", func(r chi.Router) {
			r.Get("/", ctx.HandlerFunc(handlers.GETTwitterLoginHandler))
			r.Get("/callback", ctx.HandlerFunc(handlers.GETTwitterCallbackHandler))
			r.Get("/check", ctx.HandlerFunc(handlers.GETTwitterAuthCheckHandler))
			r.Post("/logout", ctx.HandlerFunc(handlers.POSTTwitterLogoutHandler))
		})

		r.Post("/resize", ctx.HandlerFunc(handlers.POSTResizeHandler))
		r.Get("/dimensions", ctx.HandlerFunc(handlers.GETDimensionsHandler))
		r.Post("/twitter/post", ctx.HandlerFunc(handlers.POSTTwitterPostHandler))

		r.Route("/v1", func(r chi.Router) {
			r.Get("/health", ctx.HandlerFunc(handlers.HandlerHealth))
		})

		r.NotFound(ctx.HandlerFunc(func(ctx *middlewares.AppContext) {
			ctx.SetJSONError(http.StatusNotFound, "Not found")
		}))
	})

	return r
}

func setupDebugRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/debug", middleware.Profiler())

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
