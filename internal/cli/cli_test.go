package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/hovercard/pkg/cache"
	"github.com/matzehuels/hovercard/pkg/config"
	"github.com/matzehuels/hovercard/pkg/document"
	"github.com/matzehuels/hovercard/pkg/integrations/builtin"
	"github.com/matzehuels/hovercard/pkg/preview"
)

const linkPage = `<html><head><title>t</title><script>var x = 1;</script></head><body>
<p>See <a href="https://github.com/octocat/Hello-World">the repo</a> now.</p>
<ul>
  <li><a href="https://www.npmjs.com/package/react">react</a></li>
  <li><a href="https://example.com/post">a post</a></li>
  <li><a href="#top">top</a></li>
</ul>
</body></html>`

func mustParse(t *testing.T, s string) *document.Document {
	t.Helper()
	doc, err := document.ParseString(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	sort.Strings(got)

	want := []string{"browse", "cache", "completion", "links", "prefetch", "preview", "providers", "serve"}
	for _, name := range want {
		if !contains(got, name) {
			t.Errorf("missing subcommand %q in %v", name, got)
		}
	}
	for _, name := range []string{"config", "cache-backend", "no-cache"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestProvidersCommandListsRegistry(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"providers"})
	if err := root.Execute(); err != nil {
		t.Fatalf("providers: %v", err)
	}

	got := ansi.Strip(out.String())
	for _, p := range builtin.Registry().Providers() {
		if !strings.Contains(got, string(p.Name)) {
			t.Errorf("output lacks provider %q", p.Name)
		}
	}
}

func TestRenderCard(t *testing.T) {
	d := preview.Data{
		Title:       "octocat/Hello-World",
		Description: "My first repository",
		Stats: []preview.Stat{
			{Label: "Stars", Value: "80"},
			{Label: "Forks", Value: "9"},
		},
		Footer: "Mis à jour le 1 janv. 2024",
	}
	card := ansi.Strip(renderCard(d, cardWidth))

	for _, want := range []string{"octocat/Hello-World", "My first repository", "Stars", "80", "Forks", "Mis à jour"} {
		if !strings.Contains(card, want) {
			t.Errorf("card lacks %q:\n%s", want, card)
		}
	}
	for i, line := range strings.Split(card, "\n") {
		if w := ansi.StringWidth(line); w > cardWidth {
			t.Errorf("line %d is %d cells wide, want <= %d", i, w, cardWidth)
		}
	}
}

func TestRenderErrorAndLoadingCards(t *testing.T) {
	errCard := ansi.Strip(renderErrorCard("rate limited", cardWidth))
	if !strings.Contains(errCard, "rate limited") {
		t.Errorf("error card lacks message:\n%s", errCard)
	}
	if !strings.Contains(ansi.Strip(renderLoadingCard(cardWidth)), "Chargement...") {
		t.Error("loading card lacks placeholder title")
	}
}

func TestCardSnapshotRender(t *testing.T) {
	if got := (cardSnapshot{}).render(cardWidth); got != "" {
		t.Errorf("hidden card rendered %q", got)
	}
	shown := cardSnapshot{state: cardShown, data: preview.Data{Title: "react"}}
	if !strings.Contains(ansi.Strip(shown.render(cardWidth)), "react") {
		t.Error("shown card lacks title")
	}
}

func TestLayoutDocument(t *testing.T) {
	doc := mustParse(t, linkPage)
	l := layoutDocument(doc, 80)

	if len(l.links) != 3 {
		t.Fatalf("links = %d, want 3 qualifying links", len(l.links))
	}
	if got := ansi.Strip(l.lines[0]); got != "See the repo now." {
		t.Errorf("line 0 = %q", got)
	}
	for _, line := range l.lines {
		if strings.Contains(line, "var x") {
			t.Error("script content was laid out")
		}
	}

	repo := l.links[0]
	if got := l.at(0, 5); got != repo {
		t.Errorf("at(0, 5) = %v, want the repo link", got)
	}
	if got := l.at(0, 0); got != nil {
		t.Errorf("at(0, 0) = %v, want nil", got.Href())
	}
	span, ok := l.first(repo)
	if !ok || span.line != 0 || span.start != 4 {
		t.Errorf("first(repo) = %+v, %v", span, ok)
	}
}

func TestLayoutDocumentWraps(t *testing.T) {
	doc := mustParse(t, "<p>"+strings.Repeat("word ", 20)+"</p>")
	l := layoutDocument(doc, 20)
	if len(l.lines) < 5 {
		t.Fatalf("lines = %d, want wrapping at 20 cells", len(l.lines))
	}
	for i, line := range l.lines {
		if w := ansi.StringWidth(line); w > 20 {
			t.Errorf("line %d is %d cells wide", i, w)
		}
	}
}

func TestOverlay(t *testing.T) {
	bg := []string{"0123456789", "abc", "untouched"}
	got := overlay(bg, "XY\nZW", 0, 2)

	want := []string{"01XY456789", "abZW", "untouched"}
	for i := range want {
		if s := ansi.Strip(got[i]); s != want[i] {
			t.Errorf("row %d = %q, want %q", i, s, want[i])
		}
	}
	if bg[0] != "0123456789" {
		t.Error("overlay modified its input")
	}

	clipped := overlay([]string{"abc"}, "X\nY", -1, 0)
	if s := ansi.Strip(clipped[0]); s != "Ybc" {
		t.Errorf("clipped row = %q, want %q", s, "Ybc")
	}
}

func TestCollectLinks(t *testing.T) {
	links := collectLinks(mustParse(t, linkPage), builtin.Registry())
	if len(links) != 3 {
		t.Fatalf("links = %+v", links)
	}

	tests := []struct {
		text, provider string
		keyed          bool
	}{
		{"the repo", "github", true},
		{"react", "npm", true},
		{"a post", "local", false},
	}
	for i, tt := range tests {
		got := links[i]
		if got.Text != tt.text || got.Provider != tt.provider || (got.CacheKey != "") != tt.keyed {
			t.Errorf("link %d = %+v, want text %q provider %q", i, got, tt.text, tt.provider)
		}
	}
}

func TestWriteLinksJSON(t *testing.T) {
	var buf bytes.Buffer
	links := []linkInfo{{Text: "react", Href: "https://www.npmjs.com/package/react", Provider: "npm"}}
	if err := writeLinks(&buf, links, outputJSON); err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if got[0]["provider"] != "npm" {
		t.Errorf("provider = %v", got[0]["provider"])
	}
	if _, ok := got[0]["cacheKey"]; ok {
		t.Error("empty cacheKey should be omitted")
	}
}

func TestTruncateCell(t *testing.T) {
	if got := truncateCell("a  b\n c", 10); got != "a b c" {
		t.Errorf("got %q", got)
	}
	if got := truncateCell("abcdefgh", 5); got != "abcd…" {
		t.Errorf("got %q", got)
	}
}

func TestWriteCacheItemsJSON(t *testing.T) {
	stored := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	items := []cache.Item{{
		Key:   "github:https://api.github.com/repos/octocat/Hello-World",
		Entry: cache.Entry{Value: preview.Data{Title: "octocat/Hello-World"}, StoredAt: stored.UnixMilli()},
		Age:   90 * time.Minute,
		Fresh: true,
	}}

	var buf bytes.Buffer
	if err := writeCacheItems(&buf, items, outputJSON); err != nil {
		t.Fatal(err)
	}
	var got []cacheListing
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := cacheListing{
		Key:      items[0].Key,
		Title:    "octocat/Hello-World",
		StoredAt: "2024-01-01T12:00:00Z",
		Age:      "1h30m0s",
		Fresh:    true,
	}
	if len(got) != 1 || got[0] != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestStoreLocation(t *testing.T) {
	cfg := config.Default()

	cfg.Cache.Backend = string(cache.BackendRedis)
	cfg.Cache.RedisAddr = "localhost:6379"
	cfg.Cache.RedisKey = "hc"
	if got := storeLocation(cfg); got != "redis://localhost:6379 (key hc)" {
		t.Errorf("redis = %q", got)
	}

	cfg.Cache.Backend = string(cache.BackendMemory)
	if got := storeLocation(cfg); !strings.Contains(got, "not persisted") {
		t.Errorf("memory = %q", got)
	}

	cfg.Cache.Backend = string(cache.BackendFile)
	cfg.Cache.Path = "/tmp/hovercard.json"
	if got := storeLocation(cfg); got != "/tmp/hovercard.json" {
		t.Errorf("file = %q", got)
	}
}

func TestStatusPrinters(t *testing.T) {
	var buf bytes.Buffer
	statusOut = &buf
	t.Cleanup(func() { statusOut = os.Stdout })

	printSuccess("Cleared %d cached previews", 3)
	printKeyValue("ttl", "15m0s")
	printDetail("Store: %s", "/tmp/cache.json")

	got := ansi.Strip(buf.String())
	for _, want := range []string{"✓ Cleared 3 cached previews", "ttl", "15m0s", "  Store: /tmp/cache.json"} {
		if !strings.Contains(got, want) {
			t.Errorf("status output lacks %q:\n%s", want, got)
		}
	}
}

func TestIsLoopback(t *testing.T) {
	if !isLoopback(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 7878}) {
		t.Error("127.0.0.1 should be loopback")
	}
	if isLoopback(&net.TCPAddr{IP: net.IPv4zero, Port: 7878}) {
		t.Error("0.0.0.0 should not be loopback")
	}
}
