package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestPathFilterRejectsInvalidCharacters(t *testing.T) {
	handler := PathFilter(okHandler())

	for _, char := range []string{"`", "@", "$", "#", "%", "^", "*", "=", "<", ">", "[", "]", "|", "\\", "~"} {
		target := "/sessions/abc" + char + "def"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.URL.Path = target
		resp := httptest.NewRecorder()

		handler.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("path %q: expected 400, got %d", target, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), "format error") {
			t.Fatalf("path %q: expected format error body, got %s", target, resp.Body.String())
		}
	}
}

func TestPathFilterAllowsCleanPaths(t *testing.T) {
	handler := PathFilter(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/sessions/abc-123", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow-origin: %q", got)
	}
}
