package restaurant

import (
	"encoding/json"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	r, err := New("r1", "  Nonna  ", "40.7,-73.9", []string{"italian", " vegan ", "italian"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name() != "Nonna" {
		t.Errorf("name = %q, want trimmed", r.Name())
	}
	got := r.Cuisines()
	if len(got) != 2 || got[0] != "italian" || got[1] != "vegan" {
		t.Errorf("cuisines = %v, want [italian vegan]", got)
	}
	if r.AverageRating() != 0 || r.ViewCount() != 0 {
		t.Error("derived fields must start at zero")
	}
	if r.Fingerprint() != "Nonna:40.7,-73.9" {
		t.Errorf("fingerprint = %q", r.Fingerprint())
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		rname    string
		location string
		cuisines []string
	}{
		{"missing id", "", "n", "l", []string{"c"}},
		{"blank name", "r1", "  ", "l", []string{"c"}},
		{"missing location", "r1", "n", "", []string{"c"}},
		{"no cuisines", "r1", "n", "l", nil},
		{"empty cuisine", "r1", "n", "l", []string{"italian", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.id, tt.rname, tt.location, tt.cuisines); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNew_CuisineWithPatternCharacters(t *testing.T) {
	r, err := New("r1", "n", "l", []string{"tex-mex*", "[fusion]", "what?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Cuisines(); len(got) != 3 || got[0] != "tex-mex*" || got[1] != "[fusion]" {
		t.Errorf("cuisines = %v", got)
	}
}

func TestCuisines_ReturnsCopy(t *testing.T) {
	r := Reconstruct("r1", "n", "l", []string{"a"}, 0, 0, 0)
	c := r.Cuisines()
	c[0] = "mutated"
	if r.Cuisines()[0] != "a" {
		t.Error("Cuisines must not expose internal slice")
	}
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		sum   float64
		count int64
		want  float64
	}{
		{0, 0, 0},
		{4, 1, 4.0},
		{6, 2, 3.0},
		{10, 3, 3.3},
		{11, 3, 3.7},
		{9, 2, 4.5},
		{5, -1, 0},
	}
	for _, tt := range tests {
		if got := AverageRating(tt.sum, tt.count); got != tt.want {
			t.Errorf("AverageRating(%v, %d) = %v, want %v", tt.sum, tt.count, got, tt.want)
		}
	}
}

func TestRoundRating(t *testing.T) {
	if got := RoundRating(4.25); got != 4.3 {
		t.Errorf("RoundRating(4.25) = %v, want 4.3", got)
	}
	if got := RoundRating(2.04); got != 2.0 {
		t.Errorf("RoundRating(2.04) = %v, want 2.0", got)
	}
}

func TestNewDetails(t *testing.T) {
	d, err := NewDetails([]byte(` {"hours":"9-5","links":[{"name":"site","url":"https://x"}]} `))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if m["hours"] != "9-5" {
		t.Errorf("hours = %v", m["hours"])
	}

	for _, bad := range []string{``, `[]`, `"str"`, `{"a":`} {
		if _, err := NewDetails([]byte(bad)); err == nil {
			t.Errorf("NewDetails(%q): expected error", bad)
		}
	}
}
