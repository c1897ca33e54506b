package amo

import "testing"

func TestPattern(t *testing.T) {
	for _, u := range []string{
		"https://addons.mozilla.org/fr/firefox/addon/ublock-origin/",
		"https://addons.mozilla.org/en-US/firefox/addon/ublock-origin",
		"https://addons.mozilla.org/firefox/addon/ublock-origin",
	} {
		m := Definition.Pattern.FindStringSubmatch(u)
		if m == nil {
			t.Errorf("pattern did not match %q", u)
			continue
		}
		if got := Definition.RequestURL(m); got != "https://addons.mozilla.org/api/v5/addons/addon/ublock-origin/" {
			t.Errorf("RequestURL(%q) = %q", u, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	raw := []byte(`{
		"name": {"en": "uBlock Origin"},
		"summary": {"fr": "Enfin un bloqueur efficace.", "en": "Finally, an efficient blocker."},
		"ratings": {"average": 4.7812},
		"average_daily_users": 950,
		"current_version": {"version": "1.55.0"},
		"last_updated": "2024-01-10T12:00:00Z"
	}`)
	got, err := normalize(raw)
	if err != nil {
		t.Fatalf("normalize() error: %v", err)
	}
	if got.Title != "uBlock Origin" {
		t.Errorf("Title = %q, want English fallback", got.Title)
	}
	if got.Description != "Enfin un bloqueur efficace." {
		t.Errorf("Description = %q, want French", got.Description)
	}
	if s, _ := got.Stat("Note"); s.Value != "4.78 / 5" {
		t.Errorf("Note = %q", s.Value)
	}
	if s, _ := got.Stat("Version"); s.Value != "1.55.0" {
		t.Errorf("Version = %q", s.Value)
	}
	if got.Footer != "Dernière MàJ : 10/01/2024" {
		t.Errorf("Footer = %q", got.Footer)
	}
}

func TestNormalizeMissingFields(t *testing.T) {
	for _, raw := range []string{
		`{}`,
		`{"name": {"en": "x"}}`,
		`{"name": {"en": "x"}, "ratings": {}, "average_daily_users": 3}`,
		`{"name": {"en": "x"}, "ratings": {"average": 4.5}}`,
	} {
		if _, err := normalize([]byte(raw)); err == nil {
			t.Errorf("normalize(%s) expected error", raw)
		}
	}
}
