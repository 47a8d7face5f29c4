package template

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	fonts, err := NewFontRegistry("")
	if err != nil {
		t.Fatalf("failed to create font registry: %v", err)
	}
	return NewManager(fonts, 6, 24)
}

func TestCreateAppliesDefaults(t *testing.T) {
	m := newTestManager(t)

	tpl, err := m.Create(CreateRequest{Name: "worksheet", Description: "standard worksheet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uuid.Parse(tpl.ID); err != nil {
		t.Fatalf("id is not a uuid: %q", tpl.ID)
	}
	if tpl.Font != DefaultFont || tpl.FontSize != 12 || tpl.Size != "A4" {
		t.Fatalf("defaults not applied: %#v", tpl)
	}
	if tpl.Margins.Top != 50 || tpl.Margins.Left != 50 {
		t.Fatalf("default margins not applied: %#v", tpl.Margins)
	}
	if tpl.CreatedAt.IsZero() || tpl.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set")
	}

	stored, ok := m.Get(tpl.ID)
	if !ok {
		t.Fatal("template not stored")
	}
	if stored.Name != "worksheet" {
		t.Fatalf("unexpected stored template: %#v", stored)
	}
}

func TestCreateValidation(t *testing.T) {
	m := newTestManager(t)

	cases := []CreateRequest{
		{Name: "t", Description: "d", Font: "comic-sans"},
		{Name: "t", Description: "d", FontSize: 4},
		{Name: "t", Description: "d", FontSize: 30},
		{Name: "t", Description: "d", Size: "Letter"},
		{Name: "t", Description: "d", Margins: &Margins{Top: -1}},
	}
	for i, req := range cases {
		if _, err := m.Create(req); !errors.Is(err, ErrInvalid) {
			t.Errorf("case %d: expected ErrInvalid, got %v", i, err)
		}
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	m := newTestManager(t)
	tpl, err := m.Create(CreateRequest{Name: "t", Description: "d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Delete(tpl.ID)
	if _, ok := m.Get(tpl.ID); ok {
		t.Fatal("template still present after delete")
	}
	m.Delete(tpl.ID) // 2回目も成功する
	m.Delete(uuid.NewString())
}

func TestResolveDefault(t *testing.T) {
	m := newTestManager(t)

	handler, err := m.Resolve("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handler.Template().Font != DefaultFont {
		t.Fatalf("unexpected default template: %#v", handler.Template())
	}
}

func TestResolveUnknown(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Resolve(uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolvedHandlerSurvivesDelete(t *testing.T) {
	m := newTestManager(t)
	tpl, err := m.Create(CreateRequest{Name: "t", Description: "d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	handler, err := m.Resolve(tpl.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 解決済みスナップショットは削除後も使用できる
	m.Delete(tpl.ID)
	doc, err := handler.NewDocument()
	if err != nil {
		t.Fatalf("NewDocument after delete: %v", err)
	}
	if doc == nil {
		t.Fatal("expected a document")
	}
}

func TestNewDocumentUnknownFont(t *testing.T) {
	fonts, err := NewFontRegistry("")
	if err != nil {
		t.Fatalf("failed to create font registry: %v", err)
	}
	handler := newHandler(Template{Font: "missing", FontSize: 12, Size: "A4"}, fonts)
	if _, err := handler.NewDocument(); err == nil {
		t.Fatal("expected error for unknown font")
	}
}

func TestFontRegistryBuiltins(t *testing.T) {
	fonts, err := NewFontRegistry("")
	if err != nil {
		t.Fatalf("failed to create font registry: %v", err)
	}

	for _, name := range []string{"helvetica", "times", "courier"} {
		font, ok := fonts.Resolve(name)
		if !ok {
			t.Fatalf("builtin font %q not registered", name)
		}
		if !font.Builtin {
			t.Fatalf("font %q should be builtin", name)
		}
	}

	// 大文字でも解決できる
	if _, ok := fonts.Resolve("Helvetica"); !ok {
		t.Fatal("font resolution should be case-insensitive")
	}

	if _, ok := fonts.Resolve("dejavu-sans"); ok {
		t.Fatal("unregistered font should not resolve")
	}
}
