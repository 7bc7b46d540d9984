package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/hyperifyio/webtext/internal/dom"
)

var (
	// Parentheses stay out of the match so that a URL written as
	// "(https://...)" leaves an empty pair for the next pass.
	bareURLRe     = regexp.MustCompile(`https?://[^\s()<>]+`)
	emptyParensRe = regexp.MustCompile(`\(\s*\)`)
)

// strictText is the conservative flavor of text extraction used by the
// hint strategy, where a matched container often drags trailing
// boilerplate along: it takes only paragraph descendants, and the
// first paragraph carrying a boilerplate marker phrase ends the
// extraction for good — everything after it is dropped too. Bare URLs
// and the empty parentheses they leave behind are stripped from the
// assembled text.
func strictText(n *html.Node, cfg Config) string {
	if hasUnwantedHint(n) {
		return ""
	}
	var b strings.Builder
	for _, p := range matchDescendants(n, paragraphSel) {
		if hasUnwantedHint(p) {
			continue
		}
		text := dom.Text(p, cfg.textOptions())
		if text == "" {
			continue
		}
		if containsBoilerplate(text) {
			break
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	out := bareURLRe.ReplaceAllString(b.String(), "")
	out = emptyParensRe.ReplaceAllString(out, "")
	return dom.NormalizeText(out)
}

func containsBoilerplate(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
