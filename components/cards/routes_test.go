package cards

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPath(t *testing.T) {
	cases := map[string]struct {
		base  string
		route string
		want  string
	}{
		"default":        {base: "", route: "/cards", want: "/cards"},
		"base prefix":    {base: "/demo/", route: "cards/", want: "/demo/cards"},
		"base no slash":  {base: "demo", route: "/cards", want: "/demo/cards"},
		"root route":     {base: "/demo", route: "/", want: "/demo"},
		"root and empty": {base: "/", route: "", want: ""},
	}
	for name, tc := range cases {
		if got := mountPath(tc.base, tc.route); got != tc.want {
			t.Fatalf("%s: mountPath(%q, %q) = %q, want %q", name, tc.base, tc.route, got, tc.want)
		}
	}
	if got := MountPath("/demo", WithRoutePath("/board")); got != "/demo/board" {
		t.Fatalf("MountPath = %q", got)
	}
}

func TestRegisterRoutes_ServeMux(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/demo")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/demo/cards" {
		t.Fatalf("unexpected pattern %q", pattern)
	}

	req := httptest.NewRequest(http.MethodPost, "/demo/cards/teacher/items", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/demo/cards" {
		t.Fatalf("expected redirect under base path, got %q", loc)
	}

	req = httptest.NewRequest(http.MethodGet, "/demo/cards", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_RootMount(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "", WithRoutePath("/"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "" {
		t.Fatalf("unexpected pattern %q", pattern)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/student/items", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to root, got %q", loc)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
