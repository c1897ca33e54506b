// Package preview defines the provider-agnostic card content.
//
// [Data] is the only shape exchanged between provider normalizers, the cache,
// the fetch actor and the rendering surface. Providers never expose raw API
// responses past their normalizer.
package preview

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoDescription is the fallback text for targets without a description.
const NoDescription = "Aucune description fournie."

// NoSummary is the shorter fallback used by providers that excerpt long
// descriptions.
const NoSummary = "Aucune description."

// NotAvailable is shown for optional fields the API left empty.
const NotAvailable = "N/A"

// Data is the normalized content of a preview card.
type Data struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Stats       []Stat `json:"stats" yaml:"stats"`
	Footer      string `json:"footer" yaml:"footer"`
}

// Stat is a single labelled figure shown on the card, in display order.
type Stat struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
	Icon  string `json:"icon" yaml:"icon"`
}

// Stat returns the first stat with the given label.
func (d Data) Stat(label string) (Stat, bool) {
	for _, s := range d.Stats {
		if s.Label == label {
			return s, true
		}
	}
	return Stat{}, false
}

// Error returns the card variant shown when a fetch failed. The message is
// kept verbatim so the cause stays inspectable.
func Error(msg string) Data {
	if msg == "" {
		msg = "Une erreur inconnue est survenue lors de la récupération des données."
	}
	return Data{
		Title:       "Erreur de Chargement",
		Description: msg,
		Footer:      "Vérifiez votre connexion ou la console.",
	}
}

var printer = message.NewPrinter(language.French)

// Count formats an integer with French digit grouping.
func Count(n int64) string {
	return printer.Sprintf("%d", n)
}

// Percent formats a 0..1 score as a rounded percentage ("87%").
func Percent(score float64) string {
	return fmt.Sprintf("%d%%", int(score*100+0.5))
}

// Date formats a timestamp as dd/mm/yyyy. The zero time yields NotAvailable.
func Date(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format("02/01/2006")
}

// ParseDate parses the timestamp formats returned by provider APIs and
// formats it with [Date]. Unparseable input yields NotAvailable.
func ParseDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date(t)
		}
	}
	return NotAvailable
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// Excerpt keeps the first n runes of s and appends "..." when it cut anything.
func Excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// OrDefault returns s, or def when s is blank.
func OrDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
