package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cards/internal/config"
	"github.com/goliatone/go-cards/pkg/model"
	"github.com/goliatone/go-cards/pkg/outlet"
)

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Seed = 99
	return cfg
}

func TestNew_SeedsStores(t *testing.T) {
	cfg := testConfig()
	cfg.Teachers = []model.Teacher{{ID: 50, FirstName: "Ada"}}
	cfg.SeedTeachers = 2
	cfg.SeedStudents = 1

	a, err := New(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.Teachers.Len() != 3 || a.Students.Len() != 1 {
		t.Fatalf("unexpected sizes: teachers=%d students=%d", a.Teachers.Len(), a.Students.Len())
	}
	items := a.Teachers.Items()
	if items[0].ID != 50 || items[1].ID <= 50 {
		t.Fatalf("expected configured record first and generated ids after it, got %#v", items)
	}
}

func TestHandler_RedirectsRootAndServesBoard(t *testing.T) {
	cfg := testConfig()
	cfg.BasePath = "/demo"
	a, err := New(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	h, err := a.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/demo/cards" {
		t.Fatalf("expected redirect to /demo/cards, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/demo/cards", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bg-light-green") {
		t.Fatalf("expected default light styles, got %q", rec.Body.String())
	}
}

func TestNew_InlineRowTemplates(t *testing.T) {
	cfg := testConfig()
	cfg.Teachers = []model.Teacher{{ID: 1, FirstName: "Ada"}}
	cfg.SeedTeachers = 0
	cfg.Rows.Teacher = "teacher-row"
	cfg.Rows.Inline = map[string]string{
		"teacher-row": `<p class="t" data-id="{{ item.id }}">{{ item.firstName }}</p>`,
	}

	a, err := New(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var out strings.Builder
	if err := a.Board().Render(context.Background(), &out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), `<p class="t" data-id="1">Ada</p>`) {
		t.Fatalf("expected outlet row, got %q", out.String())
	}
}

func TestNew_MissingRowTemplateFails(t *testing.T) {
	cfg := testConfig()
	cfg.Rows.Student = "student-row"

	_, err := New(cfg, &bytes.Buffer{})
	if !errors.Is(err, outlet.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestNew_UnknownVariantFails(t *testing.T) {
	cfg := testConfig()
	cfg.Theme.Variant = "sepia"
	if _, err := New(cfg, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestNew_CustomThemeManifest(t *testing.T) {
	cfg := testConfig()
	cfg.Theme.Variant = "dark"
	cfg.Theme.Manifest = &theme.Manifest{
		Name:    "school",
		Version: "1.0.0",
		Tokens:  map[string]string{"card.teacher.class": "bg-red"},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"card.teacher.class": "bg-black"}},
		},
	}

	a, err := New(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var out strings.Builder
	if err := a.Board().Render(context.Background(), &out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), "bg-black") {
		t.Fatalf("expected custom dark class, got %q", out.String())
	}

	cfg.Theme.Name = "classroom"
	a, err = New(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new with builtin name: %v", err)
	}
	out.Reset()
	if err := a.Board().Render(context.Background(), &out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), "bg-dark-red") {
		t.Fatalf("expected built-in dark class, got %q", out.String())
	}
}

func TestNew_UnknownThemeFails(t *testing.T) {
	cfg := testConfig()
	cfg.Theme.Name = "missing"
	if _, err := New(cfg, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestHandler_RootRoutePath(t *testing.T) {
	cfg := testConfig()
	cfg.RoutePath = "/"
	a, err := New(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	h, err := a.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "data-card-type=\"teacher\"") {
		t.Fatalf("expected board at root, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestNewLogger_JSONAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	logger.Debug("hello", "count", 2)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "hello" || entry["level"] != "DEBUG" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestStoreChangesAreLogged(t *testing.T) {
	cfg := testConfig()
	cfg.Log.Level = "debug"
	var buf bytes.Buffer
	a, err := New(cfg, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	buf.Reset()

	if err := a.Board().Add(context.Background(), model.CardTypeStudent); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(buf.String(), "students changed") {
		t.Fatalf("expected change notification log, got %q", buf.String())
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Addr = "127.0.0.1:0"
	a, err := New(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Serve(ctx); err != nil {
		t.Fatalf("serve: %v", err)
	}
}
