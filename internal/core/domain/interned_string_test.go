package domain_test

import (
	"encoding/json"
	"testing"

	"go.trai.ch/crossbow/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("build")
	b := domain.NewInternedString("build")

	if a != b {
		t.Errorf("expected interned handles for identical strings to be equal")
	}
	if a.String() != "build" {
		t.Errorf("expected String() to return %q, got %q", "build", a.String())
	}
}

func TestInternedStringJSON(t *testing.T) {
	type record struct {
		Path domain.InternedString `json:"path"`
	}

	data, err := json.Marshal(record{Path: domain.NewInternedString("src/*.scss")})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(data) != `{"path":"src/*.scss"}` {
		t.Errorf("unexpected JSON %s", data)
	}

	var out record
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if out.Path.String() != "src/*.scss" {
		t.Errorf("expected round-tripped path, got %q", out.Path.String())
	}
}

func TestStrings(t *testing.T) {
	in := []string{"root", "build", "css"}
	got := domain.Strings(domain.NewInternedStrings(in))

	if len(got) != len(in) {
		t.Fatalf("expected %d strings, got %d", len(in), len(got))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("index %d: expected %q, got %q", i, in[i], got[i])
		}
	}

	if n := len(domain.NewInternedStrings(nil)); n != 0 {
		t.Errorf("expected empty slice, got %d elements", n)
	}
}
