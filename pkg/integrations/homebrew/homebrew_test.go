package homebrew

import "testing"

func TestPattern(t *testing.T) {
	m := Definition.Pattern.FindStringSubmatch("https://formulae.brew.sh/formula/gtk+3")
	if m == nil {
		t.Fatal("pattern did not match")
	}
	if got := Definition.RequestURL(m); got != "https://formulae.brew.sh/api/formula/gtk+3.json" {
		t.Errorf("RequestURL() = %q", got)
	}
}

func TestNormalize(t *testing.T) {
	raw := []byte(`{
		"full_name": "wget",
		"desc": "Internet file retriever",
		"versions": {"stable": "1.21.4"},
		"license": "GPL-3.0-or-later",
		"revision": 1,
		"homepage": "https://www.gnu.org/software/wget/"
	}`)
	got, err := normalize(raw)
	if err != nil {
		t.Fatalf("normalize() error: %v", err)
	}
	if got.Title != "wget" {
		t.Errorf("Title = %q", got.Title)
	}
	if s, _ := got.Stat("Révision"); s.Value != "1" {
		t.Errorf("Révision = %q", s.Value)
	}
	if got.Footer != "Homepage : www.gnu.org" {
		t.Errorf("Footer = %q", got.Footer)
	}
}

func TestNormalizeMissingHomepage(t *testing.T) {
	got, err := normalize([]byte(`{"full_name": "x"}`))
	if err != nil {
		t.Fatalf("normalize() error: %v", err)
	}
	if got.Footer != "Homepage : N/A" {
		t.Errorf("Footer = %q", got.Footer)
	}
	if got.Description != "Aucune description fournie." {
		t.Errorf("Description = %q", got.Description)
	}
}

func TestNormalizeMissingName(t *testing.T) {
	if _, err := normalize([]byte(`{"desc": "x"}`)); err == nil {
		t.Error("normalize() expected error")
	}
}
