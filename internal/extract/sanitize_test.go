package extract

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/hyperifyio/webtext/internal/dom"
)

func mustParse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := dom.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func TestSanitizeRemovesScriptsAndChrome(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<nav>site nav</nav>
		<script>var a = 1;</script>
		<article><p>real content</p></article>
		<footer>site footer</footer>
	</body></html>`)
	clean := Sanitize(doc, DefaultConfig())
	out := render(t, clean)
	for _, gone := range []string{"site nav", "var a = 1", "site footer"} {
		if strings.Contains(out, gone) {
			t.Fatalf("sanitized output still contains %q", gone)
		}
	}
	if !strings.Contains(out, "real content") {
		t.Fatalf("sanitized output lost the content: %s", out)
	}
}

func TestSanitizeRemovesHintedContainers(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<div class="sidebar-widget">sidebar stuff</div>
		<div id="comments-area">comment stuff</div>
		<div class="story"><p>story text</p></div>
	</body></html>`)
	clean := Sanitize(doc, DefaultConfig())
	out := render(t, clean)
	if strings.Contains(out, "sidebar stuff") || strings.Contains(out, "comment stuff") {
		t.Fatalf("hinted containers survived: %s", out)
	}
	if !strings.Contains(out, "story text") {
		t.Fatalf("content container removed: %s", out)
	}
}

func TestSanitizeCommentsConfigurable(t *testing.T) {
	const src = `<html><body><div><!-- secret --><p>text</p></div></body></html>`

	clean := Sanitize(mustParse(t, src), DefaultConfig())
	if strings.Contains(render(t, clean), "secret") {
		t.Fatalf("comment survived default config")
	}

	cfg := DefaultConfig()
	cfg.IncludeComments = true
	clean = Sanitize(mustParse(t, src), cfg)
	if !strings.Contains(render(t, clean), "secret") {
		t.Fatalf("comment removed despite IncludeComments")
	}
}

func TestSanitizeTablesConfigurable(t *testing.T) {
	const src = `<html><body><table><tr><td>cell</td></tr></table><p>text</p></body></html>`

	clean := Sanitize(mustParse(t, src), DefaultConfig())
	if !strings.Contains(render(t, clean), "cell") {
		t.Fatalf("table removed despite IncludeTables default")
	}

	cfg := DefaultConfig()
	cfg.IncludeTables = false
	clean = Sanitize(mustParse(t, src), cfg)
	if strings.Contains(render(t, clean), "cell") {
		t.Fatalf("table survived IncludeTables=false")
	}
}

func TestSanitizeRemovingAncestorRemovesSubtree(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<div class="advertisement"><div class="story"><p>nested in ad</p></div></div>
	</body></html>`)
	clean := Sanitize(doc, DefaultConfig())
	if strings.Contains(render(t, clean), "nested in ad") {
		t.Fatalf("descendant of removed ancestor survived")
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<nav>nav</nav>
		<div class="banner">ad</div>
		<article><p>content paragraph</p><!-- note --></article>
	</body></html>`)
	cfg := DefaultConfig()
	once := Sanitize(doc, cfg)
	twice := Sanitize(once, cfg)
	if render(t, once) != render(t, twice) {
		t.Fatalf("sanitize not idempotent:\nonce:  %s\ntwice: %s", render(t, once), render(t, twice))
	}
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	doc := mustParse(t, `<html><body><script>x</script><p>text</p></body></html>`)
	before := render(t, doc)
	Sanitize(doc, DefaultConfig())
	if after := render(t, doc); after != before {
		t.Fatalf("input tree mutated:\nbefore: %s\nafter:  %s", before, after)
	}
}
