package testutil

import (
	"bytes"
	"encoding/json"
	"image-resizer/internal/config"
	"image-resizer/internal/middlewares"
	"image-resizer/internal/mocks"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
)

// TestContext holds everything needed for testing
type TestContext struct {
	AppContext        *middlewares.AppContext
	Request           *http.Request
	Response          *httptest.ResponseRecorder
	MockController    *gomock.Controller
	MockOAuthProvider *mocks.MockOAuthProvider
	MockTwitter       *mocks.MockTwitterClient
	MockStateCache    *mocks.MockStateCache
	LogHandler        *TestLogHandler
}

// NewTestConfig returns a config with the same defaults the loader would fill in.
func NewTestConfig() *config.Config {
	secure := false
	return &config.Config{
		Server: config.ServerConfig{
			Port:        3000,
			Environment: "development",
		},
		Cookies: config.CookieConfig{
			Secure:      &secure,
			TokenMaxAge: 7 * 24 * time.Hour,
			StateMaxAge: 10 * time.Minute,
		},
		Twitter: config.TwitterConfig{
			Caption: config.DefaultTwitterConfig.Caption,
		},
		Resize: config.ResizeConfig{
			MaxDimension: 4096,
		},
	}
}

// NewTestContextWithURL creates a complete test setup with sensible defaults
func NewTestContextWithURL(t *testing.T, method, url string) *TestContext {
	logHandler := NewTestLogHandler()
	logger := slog.New(logHandler)

	// Create mock controller
	ctrl := gomock.NewController(t)

	// Create mocks
	mockOAuth := mocks.NewMockOAuthProvider(ctrl)
	mockTwitter := mocks.NewMockTwitterClient(ctrl)
	mockStateCache := mocks.NewMockStateCache(ctrl)

	req := httptest.NewRequest(method, url, nil)
	rr := httptest.NewRecorder()

	appCtx := &middlewares.AppContext{
		Context:       req.Context(),
		Config:        NewTestConfig(),
		Logger:        logger,
		OAuthProvider: mockOAuth,
		Twitter:       mockTwitter,
		StateCache:    mockStateCache,
		InstanceID:    "test-instance",
		Request:       req,
		Response:      rr,
	}

	return &TestContext{
		AppContext:        appCtx,
		Request:           req,
		Response:          rr,
		MockController:    ctrl,
		MockOAuthProvider: mockOAuth,
		MockTwitter:       mockTwitter,
		MockStateCache:    mockStateCache,
		LogHandler:        logHandler,
	}
}

// Finish should be called at the end of tests to clean up mocks
func (tc *TestContext) Finish() {
	if tc.MockController != nil {
		tc.MockController.Finish()
	}
}

func (tc *TestContext) AssertLogsContainMessage(t *testing.T, level slog.Level, message string) {
	t.Helper()
	if !tc.LogHandler.ContainsMessage(level, message) {
		t.Errorf("Expected to find log entry with level %v containing message: %s", level, message)
	}
}

// AssertLogCount checks how many entries were logged at level.
func (tc *TestContext) AssertLogCount(t *testing.T, level slog.Level, expected int) {
	t.Helper()
	if got := tc.LogHandler.CountByLevel(level); got != expected {
		t.Errorf("Expected %d log entries at level %v, got %d: %+v", expected, level, got, tc.LogHandler.GetRecords())
	}
}

// AssertLogAttr checks an attribute on the first entry with the given level and message.
func (tc *TestContext) AssertLogAttr(t *testing.T, level slog.Level, message, key string, expected any) {
	t.Helper()
	record, ok := tc.LogHandler.FindMessage(level, message)
	if !ok {
		t.Errorf("Expected to find log entry with level %v containing message: %s", level, message)
		return
	}
	if got, ok := record.Attrs[key]; !ok || got != expected {
		t.Errorf("Expected log attribute %s=%v on %q, got %v", key, expected, message, got)
	}
}

// CallHandler executes a handler with the test context
func (tc *TestContext) CallHandler(handler middlewares.AppHandler) {
	handler(tc.AppContext)
}

// AssertStatus checks the HTTP status code
func (tc *TestContext) AssertStatus(t *testing.T, expectedStatus int) {
	t.Helper()
	if tc.Response.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d (body: %s)", expectedStatus, tc.Response.Code, tc.Response.Body.String())
	}
}

// AssertContentType checks the content type header
func (tc *TestContext) AssertContentType(t *testing.T, expectedType string) {
	t.Helper()
	if ct := tc.Response.Header().Get("Content-Type"); ct != expectedType {
		t.Errorf("Expected content type %s, got %s", expectedType, ct)
	}
}

// AssertLocationHeader checks the redirect target
func (tc *TestContext) AssertLocationHeader(t *testing.T, expected string) {
	t.Helper()
	if location := tc.Response.Header().Get("Location"); location != expected {
		t.Errorf("Expected Location %q, got %q", expected, location)
	}
}

// GetJSONResponse parses the response body as JSON
func (tc *TestContext) GetJSONResponse(t *testing.T) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(tc.Response.Body.Bytes(), &response); err != nil {
		t.Fatalf("Could not parse JSON response: %v", err)
	}
	return response
}

func (tc *TestContext) GetResponseBody() string {
	return tc.Response.Body.String()
}

// AssertJSONField checks a specific field in a JSON response
func (tc *TestContext) AssertJSONField(t *testing.T, field string, expected any) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	if actual, ok := response[field]; !ok || actual != expected {
		t.Errorf("Expected %s to be %v, got %v", field, expected, response[field])
	}
}

// AssertNoJSONField checks that a field is absent from a JSON response
func (tc *TestContext) AssertNoJSONField(t *testing.T, field string) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	if actual, ok := response[field]; ok {
		t.Errorf("Expected %s to be absent, got %v", field, actual)
	}
}

// GetResponseCookie returns the Set-Cookie entry for name, or nil.
func (tc *TestContext) GetResponseCookie(name string) *http.Cookie {
	for _, c := range tc.Response.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AssertCookieSet checks that the response sets name to value.
func (tc *TestContext) AssertCookieSet(t *testing.T, name, value string) {
	t.Helper()
	c := tc.GetResponseCookie(name)
	if c == nil {
		t.Errorf("Expected cookie %s to be set", name)
		return
	}
	if c.Value != value {
		t.Errorf("Expected cookie %s to be %q, got %q", name, value, c.Value)
	}
	if c.MaxAge <= 0 {
		t.Errorf("Expected cookie %s to have a positive max age, got %d", name, c.MaxAge)
	}
}

// AssertCookieCleared checks that the response expires name.
func (tc *TestContext) AssertCookieCleared(t *testing.T, name string) {
	t.Helper()
	c := tc.GetResponseCookie(name)
	if c == nil {
		t.Errorf("Expected cookie %s to be cleared", name)
		return
	}
	if c.MaxAge >= 0 || c.Value != "" {
		t.Errorf("Expected cookie %s to be expired, got value %q max age %d", name, c.Value, c.MaxAge)
	}
}

// AssertCookieAbsent checks that the response does not touch name at all.
func (tc *TestContext) AssertCookieAbsent(t *testing.T, name string) {
	t.Helper()
	if c := tc.GetResponseCookie(name); c != nil {
		t.Errorf("Expected no %s cookie, got %+v", name, c)
	}
}

// WithConfig allows you to override the default config for specific tests
func (tc *TestContext) WithConfig(cfg *config.Config) *TestContext {
	tc.AppContext.Config = cfg
	return tc
}

// WithResizer sets the image resizer used by the handler under test
func (tc *TestContext) WithResizer(resizer middlewares.ImageResizer) *TestContext {
	tc.AppContext.Resizer = resizer
	return tc
}

// Helper to add query parameters to the request
func (tc *TestContext) WithQueryParam(key, value string) *TestContext {
	q := tc.Request.URL.Query()
	q.Add(key, value)
	tc.Request.URL.RawQuery = q.Encode()
	return tc
}

// Helper to add headers
func (tc *TestContext) WithHeader(key, value string) *TestContext {
	tc.Request.Header.Set(key, value)
	return tc
}

// WithCookie adds a cookie to the request
func (tc *TestContext) WithCookie(name, value string) *TestContext {
	tc.Request.AddCookie(&http.Cookie{Name: name, Value: value})
	return tc
}

// WithBody replaces the request body with raw bytes
func (tc *TestContext) WithBody(body []byte) *TestContext {
	req := httptest.NewRequest(tc.Request.Method, tc.Request.URL.String(), bytes.NewReader(body))
	req.Header = tc.Request.Header.Clone()
	req.Header.Set("Content-Type", "application/json")
	return tc.WithRequest(req)
}

// WithJSONBody marshals v as the request body
func (tc *TestContext) WithJSONBody(t *testing.T, v any) *TestContext {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Could not marshal request body: %v", err)
	}
	return tc.WithBody(body)
}

// WithRequest allows you to set a custom request (useful for tests that don't use URL constructor)
func (tc *TestContext) WithRequest(req *http.Request) *TestContext {
	tc.Request = req
	tc.AppContext.Request = req
	tc.AppContext.Context = req.Context()
	return tc
}
