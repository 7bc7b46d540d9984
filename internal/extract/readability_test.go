package extract

import (
	"strings"
	"testing"
)

func TestReadabilityPicksParagraphDenseParent(t *testing.T) {
	para := strings.Repeat("sentence after sentence of real prose ", 5)
	doc := mustParse(t, `<html><body>
		<div><p>`+para+`</p><p>`+para+`</p><p>`+para+`</p></div>
		<div><p>A single stray paragraph somewhere else on the page.</p></div>
	</body></html>`)
	got, err := extractReadability(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("extractReadability: %v", err)
	}
	if !strings.Contains(got, "sentence after sentence") {
		t.Fatalf("dense parent not chosen: %q", got)
	}
	if strings.Contains(got, "stray paragraph") {
		t.Fatalf("wrong parent chosen: %q", got)
	}
}

func TestReadabilityPrunesUnlikelyContainers(t *testing.T) {
	para := strings.Repeat("words that belong to the article body ", 5)
	doc := mustParse(t, `<html><body>
		<div class="sidebar"><p>`+strings.Repeat("promotional sidebar copy ", 10)+`</p></div>
		<div><p>`+para+`</p><p>`+para+`</p></div>
	</body></html>`)
	got, err := extractReadability(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("extractReadability: %v", err)
	}
	if strings.Contains(got, "promotional sidebar copy") {
		t.Fatalf("unlikely container survived pruning: %q", got)
	}
	if !strings.Contains(got, "article body") {
		t.Fatalf("content lost: %q", got)
	}
}

func TestReadabilityKeepsUnlikelyWhenAlsoLikely(t *testing.T) {
	para := strings.Repeat("prose that must not be thrown away ", 5)
	// "sidebar-content" matches both pattern sets; likely wins.
	doc := mustParse(t, `<html><body>
		<div class="sidebar-content"><p>`+para+`</p><p>`+para+`</p></div>
	</body></html>`)
	got, err := extractReadability(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("extractReadability: %v", err)
	}
	if !strings.Contains(got, "must not be thrown away") {
		t.Fatalf("likely container pruned: %q", got)
	}
}

func TestReadabilityBodyFallback(t *testing.T) {
	doc := mustParse(t, `<html><body>just a text node, no paragraphs anywhere</body></html>`)
	got, err := extractReadability(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("extractReadability: %v", err)
	}
	if !strings.Contains(got, "no paragraphs anywhere") {
		t.Fatalf("body fallback failed: %q", got)
	}
}
