package datagouv

import (
	"strings"
	"testing"
)

func TestPattern(t *testing.T) {
	for _, u := range []string{
		"https://www.data.gouv.fr/fr/datasets/base-sirene/",
		"https://data.gouv.fr/datasets/base-sirene",
	} {
		m := Definition.Pattern.FindStringSubmatch(u)
		if m == nil {
			t.Fatalf("pattern did not match %q", u)
		}
		if got := Definition.RequestURL(m); got != "https://www.data.gouv.fr/api/1/datasets/base-sirene/" {
			t.Errorf("RequestURL(%q) = %q", u, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	raw := []byte(`{
		"title": "Base Sirene des entreprises",
		"description": "Répertoire des entreprises.",
		"organization": {"name": "Insee"},
		"license": "lov2",
		"frequency": "monthly",
		"last_modified": "2024-03-01T06:30:00.123000+00:00"
	}`)
	got, err := normalize(raw)
	if err != nil {
		t.Fatalf("normalize() error: %v", err)
	}
	if s, _ := got.Stat("Organisation"); s.Value != "Insee" {
		t.Errorf("Organisation = %q", s.Value)
	}
	if s, _ := got.Stat("Fréquence"); s.Value != "monthly" {
		t.Errorf("Fréquence = %q", s.Value)
	}
	if got.Footer != "Dernière MàJ : 01/03/2024" {
		t.Errorf("Footer = %q", got.Footer)
	}
}

func TestNormalizeWithoutOrganization(t *testing.T) {
	got, err := normalize([]byte(`{"title": "x"}`))
	if err != nil {
		t.Fatalf("normalize() error: %v", err)
	}
	if s, _ := got.Stat("Organisation"); s.Value != "N/A" {
		t.Errorf("Organisation = %q", s.Value)
	}
	if got.Description != "Aucune description." {
		t.Errorf("Description = %q", got.Description)
	}
	if got.Footer != "Dernière MàJ : N/A" {
		t.Errorf("Footer = %q", got.Footer)
	}
}

func TestNormalizeMissingTitle(t *testing.T) {
	if _, err := normalize([]byte(`{"message": "Not found"}`)); err == nil {
		t.Error("normalize() expected error")
	}
}

func TestNormalizeExcerptsDescription(t *testing.T) {
	long := strings.Repeat("a", 200)
	got, err := normalize([]byte(`{"title": "x", "description": "` + long + `"}`))
	if err != nil {
		t.Fatalf("normalize() error: %v", err)
	}
	if want := long[:descriptionLimit] + "..."; got.Description != want {
		t.Errorf("Description = %q, want %q", got.Description, want)
	}
}
