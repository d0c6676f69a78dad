package template

import (
	"reflect"
	"testing"
)

func TestMergeStyles_LeafOverride(t *testing.T) {
	defaults := map[string]any{
		"colors": map[string]any{
			"primary":   "#1f2937",
			"secondary": "#6b7280",
		},
		"spacing": map[string]any{"section": "20px"},
	}
	overrides := map[string]any{
		"colors": map[string]any{"primary": "#ff0000"},
	}

	got := MergeStyles(defaults, overrides)

	colors := got["colors"].(map[string]any)
	if colors["primary"] != "#ff0000" {
		t.Fatalf("primary = %v, want overridden #ff0000", colors["primary"])
	}
	if colors["secondary"] != "#6b7280" {
		t.Fatalf("secondary = %v, want default preserved", colors["secondary"])
	}
	if got["spacing"].(map[string]any)["section"] != "20px" {
		t.Fatalf("sibling subtree was touched: %v", got["spacing"])
	}
}

func TestMergeStyles_DoesNotMutateInputs(t *testing.T) {
	defaults := map[string]any{
		"colors": map[string]any{"primary": "#111111"},
	}
	overrides := map[string]any{
		"colors": map[string]any{"primary": "#222222"},
	}

	_ = MergeStyles(defaults, overrides)

	if defaults["colors"].(map[string]any)["primary"] != "#111111" {
		t.Fatalf("defaults mutated: %v", defaults)
	}
	if overrides["colors"].(map[string]any)["primary"] != "#222222" {
		t.Fatalf("overrides mutated: %v", overrides)
	}
}

func TestMergeStyles_Idempotent(t *testing.T) {
	defaults := defaultStyles()
	overrides := map[string]any{
		"colors":     map[string]any{"accent": "#0ea5e9"},
		"typography": map[string]any{"fontSize": map[string]any{"base": "12px"}},
	}

	once := MergeStyles(defaults, overrides)
	twice := MergeStyles(once, overrides)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merge is not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestMergeStyles_ScalarReplacesSubtree(t *testing.T) {
	defaults := map[string]any{
		"effects": map[string]any{"shadow": map[string]any{"sm": "..."}},
	}
	overrides := map[string]any{"effects": "none"}

	got := MergeStyles(defaults, overrides)
	if got["effects"] != "none" {
		t.Fatalf("effects = %v, want scalar replacement", got["effects"])
	}
}

func TestSetPath_CopyOnWrite(t *testing.T) {
	base := map[string]any{
		"colors": map[string]any{"primary": "#111111", "accent": "#222222"},
	}

	next := SetPath(base, "colors.primary", "#333333")

	if base["colors"].(map[string]any)["primary"] != "#111111" {
		t.Fatalf("original tree mutated: %v", base)
	}
	colors := next["colors"].(map[string]any)
	if colors["primary"] != "#333333" {
		t.Fatalf("primary = %v, want #333333", colors["primary"])
	}
	if colors["accent"] != "#222222" {
		t.Fatalf("accent = %v, want untouched sibling", colors["accent"])
	}
}

func TestSetPath_CreatesIntermediateNodes(t *testing.T) {
	next := SetPath(map[string]any{}, "typography.fontSize.base", "13px")

	v, ok := LookupPath(next, "typography.fontSize.base")
	if !ok || v != "13px" {
		t.Fatalf("LookupPath = %v, %v; want 13px, true", v, ok)
	}
}

func TestLookupPath_Missing(t *testing.T) {
	tree := map[string]any{"colors": map[string]any{"primary": "#111111"}}

	if _, ok := LookupPath(tree, "colors.accent"); ok {
		t.Fatal("expected miss for absent leaf")
	}
	if _, ok := LookupPath(tree, "colors.primary.deeper"); ok {
		t.Fatal("expected miss when path descends through a scalar")
	}
}

func TestCustomizationsOverrides_OnlyNonEmptySubtrees(t *testing.T) {
	cust := Customizations{
		Colors:  map[string]any{"primary": "#000000"},
		Spacing: map[string]any{},
	}

	got := cust.Overrides()
	if _, ok := got["colors"]; !ok {
		t.Fatal("colors subtree missing from overrides")
	}
	if _, ok := got["spacing"]; ok {
		t.Fatal("empty spacing subtree should be omitted")
	}
	if _, ok := got["typography"]; ok {
		t.Fatal("unset typography should be omitted")
	}
}
