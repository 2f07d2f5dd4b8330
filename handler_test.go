package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lg/plannit-go-api/internal/store"
	"lg/plannit-go-api/internal/tracker"
	"lg/plannit-go-api/internal/usda"
)

// testEnv bundles a router over an in-memory tracker and a mock FoodData
// Central server whose response can be swapped per test.
type testEnv struct {
	router  *gin.Engine
	setUSDA func(status int, body string)
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()

	var mockStatus = http.StatusOK
	var mockBody = `{}`
	mockUSDA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(mockStatus)
		w.Write([]byte(mockBody))
	}))
	t.Cleanup(mockUSDA.Close)

	clock := func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }
	tr, err := tracker.New(context.Background(), store.NewMemoryStore(), tracker.WithClock(clock))
	if err != nil {
		t.Fatalf("tracker.New: %v", err)
	}

	gin.SetMode(gin.TestMode)
	h := Handler{
		tracker: tr,
		lookup:  usda.NewClient(usda.Config{APIKey: "test-key", BaseURL: mockUSDA.URL}),
		log:     zap.NewNop(),
	}
	router := gin.New()
	h.registerRoutes(router)

	setUSDA := func(status int, body string) {
		mockStatus = status
		mockBody = body
	}
	return &testEnv{router: router, setUSDA: setUSDA}
}

// do sends a request with an optional JSON body.
func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

const profileBody = `{"height":175,"weight":70,"age":30,"gender":"male","activity_level":"moderate","goal":"lose","location":"Lisbon","food_preferences":["Fish"],"dietary_restrictions":[]}`
