package npm

import "testing"

func TestRequestURL(t *testing.T) {
	m := Definition.Pattern.FindStringSubmatch("https://www.npmjs.com/package/left-pad")
	if m == nil {
		t.Fatal("pattern did not match")
	}
	if got := Definition.RequestURL(m); got != "https://api.npms.io/v2/package/left-pad" {
		t.Errorf("RequestURL() = %q", got)
	}
}

func TestNormalize(t *testing.T) {
	raw := []byte(`{
		"collected": {"metadata": {"name": "left-pad", "version": "1.3.0", "license": "WTFPL"}},
		"score": {"final": 0.566, "detail": {"popularity": 0.124}}
	}`)
	got, err := normalize(raw)
	if err != nil {
		t.Fatalf("normalize() error: %v", err)
	}
	if got.Title != "left-pad" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Description != "Aucune description fournie." {
		t.Errorf("Description = %q", got.Description)
	}
	checks := map[string]string{"Version": "1.3.0", "Qualité": "57%", "Popularité": "12%"}
	for label, want := range checks {
		if s, _ := got.Stat(label); s.Value != want {
			t.Errorf("%s = %q, want %q", label, s.Value, want)
		}
	}
	if got.Footer != "Licence : WTFPL" {
		t.Errorf("Footer = %q", got.Footer)
	}
}

func TestNormalizeMissingFields(t *testing.T) {
	for _, raw := range []string{
		`{}`,
		`{"collected": {}}`,
		`{"collected": {"metadata": {"name": "x"}}}`,
		`{"collected": {"metadata": {"name": "x"}}, "score": {"final": 0.5}}`,
		`{"collected": {"metadata": {"name": "x"}}, "score": {"detail": {"popularity": 0.1}}}`,
	} {
		if _, err := normalize([]byte(raw)); err == nil {
			t.Errorf("normalize(%s) expected error", raw)
		}
	}
}
