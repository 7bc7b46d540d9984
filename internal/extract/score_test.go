package extract

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func findFirst(t *testing.T, doc *html.Node, tag, class string) *html.Node {
	t.Helper()
	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == tag {
			if class == "" || attrOf(n, "class") == class {
				found = n
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if found == nil {
		t.Fatalf("no <%s class=%q> in fixture", tag, class)
	}
	return found
}

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func TestScoreIsDeterministic(t *testing.T) {
	doc := mustParse(t, `<div class="article-content"><h1>Head</h1><p>one paragraph of text</p><p>another paragraph of text</p></div>`)
	el := findFirst(t, doc, "div", "article-content")
	if a, b := Score(el), Score(el); a != b {
		t.Fatalf("Score not deterministic: %d vs %d", a, b)
	}
}

func TestScorePrefersContentOverSidebar(t *testing.T) {
	para := strings.Repeat("genuine article text ", 10)
	doc := mustParse(t, `<html><body>
		<div class="article-content"><h1>Head</h1><p>`+para+`</p><p>`+para+`</p></div>
		<div class="sidebar"><p>`+para+`</p><p>`+para+`</p></div>
	</body></html>`)
	content := findFirst(t, doc, "div", "article-content")
	sidebar := findFirst(t, doc, "div", "sidebar")
	if Score(content) <= Score(sidebar) {
		t.Fatalf("content %d should outscore sidebar %d", Score(content), Score(sidebar))
	}
}

func TestScorePenalizesLinkHeavySubtrees(t *testing.T) {
	text := strings.Repeat("words here ", 20)
	doc := mustParse(t, `<html><body>
		<div class="a-box"><p>`+text+`</p><p>`+text+`</p></div>
		<div class="b-box"><p><a href="/1">`+text+`</a></p><p><a href="/2">`+text+`</a></p></div>
	</body></html>`)
	plain := findFirst(t, doc, "div", "a-box")
	linky := findFirst(t, doc, "div", "b-box")
	if Score(plain) <= Score(linky) {
		t.Fatalf("plain %d should outscore link-heavy %d", Score(plain), Score(linky))
	}
}

func TestLinkDensityBounds(t *testing.T) {
	doc := mustParse(t, `<div><a href="/x">all linked</a></div>`)
	el := findFirst(t, doc, "div", "")
	if d := LinkDensity(el); d < 0.99 || d > 1.0 {
		t.Fatalf("fully linked density = %f, want ~1", d)
	}

	doc = mustParse(t, `<div></div>`)
	el = findFirst(t, doc, "div", "")
	if d := LinkDensity(el); d != 0 {
		t.Fatalf("empty node density = %f, want 0", d)
	}

	doc = mustParse(t, `<div>half <a href="/x">half</a></div>`)
	el = findFirst(t, doc, "div", "")
	if d := LinkDensity(el); d <= 0 || d >= 1 {
		t.Fatalf("mixed density = %f, want inside (0,1)", d)
	}
}

func TestFindCandidatesPrefersSemanticContainers(t *testing.T) {
	para := strings.Repeat("body text for the piece ", 15)
	doc := mustParse(t, `<html><body>
		<div class="wrapper"><p>`+para+`</p><p>`+para+`</p></div>
		<article><p>`+para+`</p><p>`+para+`</p></article>
	</body></html>`)
	nodes := findCandidates(doc)
	if len(nodes) == 0 {
		t.Fatalf("no candidates found")
	}
	if got := nodes[0].Data; got != "article" {
		t.Fatalf("first candidate = %s, want article", got)
	}
}

func TestFindCandidatesRejectsUnwanted(t *testing.T) {
	para := strings.Repeat("plenty of words in this one ", 15)
	doc := mustParse(t, `<html><body>
		<div class="related-articles"><p>`+para+`</p><p>`+para+`</p></div>
	</body></html>`)
	for _, n := range findCandidates(doc) {
		if attrOf(n, "class") == "related-articles" {
			t.Fatalf("unwanted container surfaced as candidate")
		}
	}
}
