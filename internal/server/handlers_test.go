package server

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"image"
	"image-resizer/internal/auth"
	"image-resizer/internal/banner"
	"image-resizer/internal/config"
	"image-resizer/internal/testutil"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, mutate func(cfg *config.Config)) (*chi.Mux, *testutil.TestContext) {
	t.Helper()

	tc := testutil.NewTestContextWithURL(t, "GET", "/")
	cfg := tc.AppContext.Config
	cfg.Server.RequestTimeout = 5 * time.Second
	cfg.Server.MaxBodyBytes = 1 << 20
	cfg.Server.RateLimitPerMinute = -1
	cfg.CORS = config.DefaultCORSConfig
	if mutate != nil {
		mutate(cfg)
	}

	return setupRouter(tc.AppContext), tc
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouter_ServesUploadPage(t *testing.T) {
	router, tc := newTestRouter(t, nil)
	defer tc.Finish()

	rr := serve(router, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), `id="connect-button"`)

	for _, asset := range []string{"/app.js", "/styles.css"} {
		rr := serve(router, httptest.NewRequest("GET", asset, nil))
		assert.Equal(t, http.StatusOK, rr.Code, asset)
		assert.NotEmpty(t, rr.Body.String(), asset)
	}
}

func TestRouter_Health(t *testing.T) {
	router, tc := newTestRouter(t, nil)
	defer tc.Finish()

	rr := serve(router, httptest.NewRequest("GET", "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "test-instance", body["instance"])
}

func TestRouter_UnknownAPIPathIsJSON404(t *testing.T) {
	router, tc := newTestRouter(t, nil)
	defer tc.Finish()

	rr := serve(router, httptest.NewRequest("GET", "/api/does-not-exist", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"error":"Not found"}`, rr.Body.String())
}

func TestRouter_MethodMismatch(t *testing.T) {
	router, tc := newTestRouter(t, nil)
	defer tc.Finish()

	rr := serve(router, httptest.NewRequest("GET", "/api/resize", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouter_AuthCheckReadsCookie(t *testing.T) {
	router, tc := newTestRouter(t, nil)
	defer tc.Finish()

	req := httptest.NewRequest("GET", "/api/auth/twitter/check", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieAccessToken, Value: "T"})

	rr := serve(router, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"isAuthenticated":true}`, rr.Body.String())
}

func pngDataURL(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRouter_RejectsOversizedBody(t *testing.T) {
	router, tc := newTestRouter(t, func(cfg *config.Config) {
		cfg.Server.MaxBodyBytes = 64
	})
	defer tc.Finish()
	tc.WithResizer(banner.NewResizer())

	body, err := json.Marshal(map[string]any{
		"image":      pngDataURL(t, 32, 32),
		"dimensions": []map[string]any{{"width": 300, "height": 250}},
	})
	require.NoError(t, err)
	require.Greater(t, len(body), 64)

	req := httptest.NewRequest("POST", "/api/resize", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := serve(router, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rr.Body.String())
}

func TestRouter_AcceptsBodyWithinLimit(t *testing.T) {
	router, tc := newTestRouter(t, nil)
	defer tc.Finish()
	tc.WithResizer(banner.NewResizer())

	body, err := json.Marshal(map[string]any{
		"image":      pngDataURL(t, 32, 32),
		"dimensions": []map[string]any{{"width": 300, "height": 250}},
	})
	require.NoError(t, err)

	rr := serve(router, httptest.NewRequest("POST", "/api/resize", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Contains(t, result, "300x250")
}

func TestRouter_CompressesAPIResponses(t *testing.T) {
	router, tc := newTestRouter(t, nil)
	defer tc.Finish()

	req := httptest.NewRequest("GET", "/api/dimensions", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rr := serve(router, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	reader, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	var dims []banner.Dimension
	require.NoError(t, json.NewDecoder(reader).Decode(&dims))
	assert.Equal(t, banner.DefaultDimensions(), dims)
}

func TestRouter_NoRequestTimeoutWhenDisabled(t *testing.T) {
	router, tc := newTestRouter(t, func(cfg *config.Config) {
		cfg.Server.RequestTimeout = 0
	})
	defer tc.Finish()

	rr := serve(router, httptest.NewRequest("GET", "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_RateLimitsAPI(t *testing.T) {
	router, tc := newTestRouter(t, func(cfg *config.Config) {
		cfg.Server.RateLimitPerMinute = 1
	})
	defer tc.Finish()

	first := serve(router, httptest.NewRequest("GET", "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := serve(router, httptest.NewRequest("GET", "/api/v1/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))

	// Static assets sit outside the limited group.
	page := serve(router, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, page.Code)
}

func TestDebugRouter_ExposesMetrics(t *testing.T) {
	rr := serve(setupDebugRouter(), httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
