package outlet

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cards/pkg/card"
	"github.com/goliatone/go-cards/pkg/model"
)

const rowSource = `<div class="row">{{ item.firstName }}<button value="{{ item.id }}" formaction="{{ deleteAction }}">x</button></div>`

func TestRegistry_RegisterAndExecute(t *testing.T) {
	r, err := New(WithTemplates(map[string]string{"teacher-row": rowSource}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var b strings.Builder
	err = r.Execute("teacher-row", map[string]any{
		"item":         model.Teacher{ID: 12, FirstName: "Ada"},
		"deleteAction": "/del/12",
	}, &b)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	want := `<div class="row">Ada<button value="12" formaction="/del/12">x</button></div>`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"teacher-row"}, r.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_InlineOnlyIncludesByFileName(t *testing.T) {
	r, err := New(WithTemplates(map[string]string{
		"cell": `<b>{{ item.firstName }}</b>`,
		"row":  `<li>{% include "cell.tpl" %}</li>`,
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if r.Has("missing") {
		t.Fatalf("expected unknown name to be absent")
	}

	var b strings.Builder
	if err := r.Execute("row", map[string]any{"item": model.Teacher{ID: 1, FirstName: "Ada"}}, &b); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if diff := cmp.Diff(`<li><b>Ada</b></li>`, b.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_RegisterErrors(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := r.Register("", rowSource); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := r.Register("blank", "  "); err == nil {
		t.Fatalf("expected error for empty source")
	}
	if err := r.Register("broken", "{% if %}"); err == nil {
		t.Fatalf("expected parse error")
	}
	r.MustRegister("row", rowSource)
	if err := r.Register("row", rowSource); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestRegistry_EscapesItemFields(t *testing.T) {
	r, _ := New()
	r.MustRegister("row", `<span>{{ item.firstName }}</span>`)

	var b strings.Builder
	if err := r.Execute("row", map[string]any{"item": model.Teacher{FirstName: "<b>x</b>"}}, &b); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.Contains(b.String(), "<b>") {
		t.Fatalf("expected autoescaped output, got %q", b.String())
	}
}

func TestRegistry_LoadsFromFS(t *testing.T) {
	files := fstest.MapFS{
		"rows/student.tpl": &fstest.MapFile{Data: []byte(`<li>{{ item.firstName|trim }} @ {{ item.school }}</li>`)},
	}
	r, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !r.Has("rows/student") {
		t.Fatalf("expected template to load from fs")
	}
	if r.Has("rows/missing") {
		t.Fatalf("expected missing template to be reported")
	}

	var b strings.Builder
	err = r.Execute("rows/student", map[string]any{
		"item": model.Student{FirstName: " Lin ", School: "Greendale"},
	}, &b)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if b.String() != "<li>Lin @ Greendale</li>" {
		t.Fatalf("unexpected output %q", b.String())
	}
}

func TestRow_MissingTemplateFailsFast(t *testing.T) {
	r, _ := New()
	if _, err := Row[model.Teacher](r, "nope"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if _, err := Row[model.Teacher](nil, "nope"); !errors.Is(err, card.ErrMissingRowTemplate) {
		t.Fatalf("expected ErrMissingRowTemplate, got %v", err)
	}
}

func TestRow_BindsEachRecordUnderItem(t *testing.T) {
	r, _ := New()
	r.MustRegister("row", rowSource)

	teachers := []model.Teacher{{ID: 1, FirstName: "Ada"}, {ID: 2, FirstName: "Grace"}}
	c := card.MustNew(
		card.WithType[model.Teacher](model.CardTypeTeacher),
		card.WithList(teachers),
		card.WithRowTemplate(MustRow[model.Teacher](r, "row")),
		card.WithDeleteAction[model.Teacher](func(_ model.CardType, id int) string {
			if id == 1 {
				return "/del/one"
			}
			return "/del/two"
		}),
	)

	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<section>` +
		`<div class="row">Ada<button value="1" formaction="/del/one">x</button></div>` +
		`<div class="row">Grace<button value="2" formaction="/del/two">x</button></div>` +
		`</section>`
	if !strings.Contains(b.String(), want) {
		t.Fatalf("expected rows bound per record, got %q", b.String())
	}
}
