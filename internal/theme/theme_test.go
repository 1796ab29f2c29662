package theme

import (
	"reflect"
	"testing"
)

func TestLookupResolvesVariants(t *testing.T) {
	if s, ok := Lookup(""); !ok || s != Default() {
		t.Fatalf("expected empty name to resolve to default styles")
	}
	custom, ok := Lookup(" Custom ")
	if !ok || custom == Default() {
		t.Fatalf("expected custom variant, got %v/%v", custom, ok)
	}
	if _, ok := Lookup("neon"); ok {
		t.Fatalf("expected unknown variant to be rejected")
	}
	if names := Names(); !reflect.DeepEqual(names, []string{"custom", "default"}) {
		t.Fatalf("unexpected variant names %v", names)
	}
}

func TestRenderToleratesNilStyle(t *testing.T) {
	if got := Render(nil, "plain"); got != "plain" {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if got := Render(Default().Item, ""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
