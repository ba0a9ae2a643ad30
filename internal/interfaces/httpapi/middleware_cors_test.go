package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantVary    bool
		wantExposed bool
	}{
		{
			name:        "configured origin is echoed",
			allowed:     []string{"https://pokedex.example.com"},
			method:      http.MethodGet,
			origin:      "https://pokedex.example.com",
			wantStatus:  http.StatusOK,
			wantOrigin:  "https://pokedex.example.com",
			wantVary:    true,
			wantExposed: true,
		},
		{
			name:        "wildcard preflight short-circuits",
			allowed:     []string{"*"},
			method:      http.MethodOptions,
			origin:      "https://pokedex.example.com",
			wantStatus:  http.StatusNoContent,
			wantOrigin:  "*",
			wantExposed: true,
		},
		{
			name:       "unknown origin gets no headers",
			allowed:    []string{"https://allowed.example.com"},
			method:     http.MethodGet,
			origin:     "https://not-allowed.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no origin passes through",
			allowed:    []string{" ", "https://allowed.example.com"},
			method:     http.MethodPost,
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tc.method, "/api/v1/pokemons", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tc.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tc.wantVary {
				t.Fatalf("unexpected Vary header: %q", rec.Header().Get("Vary"))
			}
			if got := rec.Header().Get("Access-Control-Expose-Headers") == requestIDHeader; got != tc.wantExposed {
				t.Fatalf("unexpected expose headers: %q", rec.Header().Get("Access-Control-Expose-Headers"))
			}
		})
	}
}
