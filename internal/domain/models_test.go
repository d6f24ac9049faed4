package domain

import (
	"testing"
)

func TestWheel_SetNames_SyncsCountAndEncodes(t *testing.T) {
	var w Wheel
	if err := w.SetNames([]string{"Zoe", "Sam"}); err != nil {
		t.Fatalf("SetNames: %v", err)
	}
	if w.NameCount != 2 {
		t.Fatalf("expected NameCount=2, got %d", w.NameCount)
	}
	if w.Names != `["Zoe","Sam"]` {
		t.Fatalf("unexpected encoding: %q", w.Names)
	}
}

func TestWheel_NameList_RoundTripPreservesOrder(t *testing.T) {
	var w Wheel
	in := []string{"c", "a", "b"}
	if err := w.SetNames(in); err != nil {
		t.Fatalf("SetNames: %v", err)
	}
	out := w.NameList()
	if len(out) != len(in) {
		t.Fatalf("expected %d names, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("order mismatch at %d: %q vs %q", i, out[i], in[i])
		}
	}
}

func TestWheel_NameList_MalformedColumnYieldsEmpty(t *testing.T) {
	w := Wheel{Names: "not-json"}
	if got := w.NameList(); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestDefaultNames_Fixed(t *testing.T) {
	want := []string{"Alice", "Bob", "Charlie", "Diana"}
	if len(DefaultNames) != len(want) {
		t.Fatalf("expected %d defaults, got %d", len(want), len(DefaultNames))
	}
	for i := range want {
		if DefaultNames[i] != want[i] {
			t.Fatalf("default %d: expected %q, got %q", i, want[i], DefaultNames[i])
		}
	}
}
