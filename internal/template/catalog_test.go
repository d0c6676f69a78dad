package template

import "testing"

func TestNewCatalog_RejectsDuplicateTemplateID(t *testing.T) {
	_, err := NewCatalog([]Config{
		{ID: "a"},
		{ID: "a"},
	})
	if err == nil {
		t.Fatal("expected duplicate template id error")
	}
}

func TestNewCatalog_RejectsDuplicateSectionID(t *testing.T) {
	_, err := NewCatalog([]Config{
		{ID: "a", Layout: Layout{Sections: []Section{
			{ID: "s1"}, {ID: "s1"},
		}}},
	})
	if err == nil {
		t.Fatal("expected duplicate section id error")
	}
}

func TestNewCatalog_RejectsEmptyID(t *testing.T) {
	if _, err := NewCatalog([]Config{{}}); err == nil {
		t.Fatal("expected empty id error")
	}
}

func TestCatalog_GetAndList(t *testing.T) {
	c := MustNewCatalog([]Config{{ID: "b"}, {ID: "a"}})

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get returned a config for an unknown id")
	}
	cfg, ok := c.Get("a")
	if !ok || cfg.ID != "a" {
		t.Fatalf("Get(a) = %v, %v", cfg, ok)
	}

	list := c.List()
	if len(list) != 2 || list[0].ID != "b" || list[1].ID != "a" {
		t.Fatalf("List order should follow registration, got %v", []string{list[0].ID, list[1].ID})
	}
}

func TestBuiltin_CatalogIsComplete(t *testing.T) {
	c := Builtin()

	for _, id := range []string{"chikorita", "azurill", "onyx", "ivy-league-classic", "navy-header-professional"} {
		cfg, ok := c.Get(id)
		if !ok {
			t.Fatalf("builtin catalog missing %q", id)
		}
		if len(cfg.Layout.Sections) == 0 {
			t.Fatalf("template %q has no sections", id)
		}
		if len(cfg.Layout.Styles) == 0 {
			t.Fatalf("template %q has no default styles", id)
		}
		for _, sec := range cfg.Layout.Sections {
			if !KnownComponent(sec.Component) {
				t.Fatalf("template %q section %q uses unknown component %q", id, sec.ID, sec.Component)
			}
		}
	}
}

func TestBuiltin_ReturnsIndependentInstances(t *testing.T) {
	a := Builtin()
	b := Builtin()
	if a == b {
		t.Fatal("Builtin must return a fresh catalog per call")
	}
}
