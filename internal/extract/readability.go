package extract

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/hyperifyio/webtext/internal/dom"
)

// The readability fallback covers pages with no recognizable semantic
// markup at all, trading precision for coverage: every substantial
// paragraph votes for its structural parent, and the best-scoring
// parent becomes the content root.

// extractReadability runs the paragraph-parent scoring pass over its
// own clone of the sanitized tree (the prepare pass deletes nodes).
func extractReadability(clean *html.Node, cfg Config) (string, error) {
	work := dom.Clone(clean)
	prepareDocument(work)

	seen := make(map[*html.Node]bool)
	var best *html.Node
	var bestScore float64
	for _, p := range paragraphSel.MatchAll(work) {
		if len(dom.CompactText(p)) < 25 {
			continue
		}
		parent := p.Parent
		for parent != nil && parent.Type != html.ElementNode {
			parent = parent.Parent
		}
		if parent == nil || seen[parent] {
			continue
		}
		seen[parent] = true
		if s := readabilityScore(parent); best == nil || s > bestScore {
			best, bestScore = parent, s
		}
	}

	if best == nil {
		body := bodySel.MatchFirst(work)
		if body == nil {
			return "", fmt.Errorf("%w: no body element found", ErrExtraction)
		}
		return dom.Text(body, cfg.textOptions()), nil
	}
	return dom.Text(best, cfg.textOptions()), nil
}

// prepareDocument deletes elements whose class or id looks unlikely to
// hold content and not likely to, in the Readability sense. Structural
// roots are exempt no matter what their attributes claim.
func prepareDocument(root *html.Node) {
	var doomed []*html.Node
	for _, el := range allSel.MatchAll(root) {
		switch dom.TagName(el) {
		case "html", "body", "article", "section", "main":
			continue
		}
		class := dom.Attr(el, "class")
		id := dom.Attr(el, "id")
		if (class != "" && unlikelyRe.MatchString(class) && !likelyRe.MatchString(class)) ||
			(id != "" && unlikelyRe.MatchString(id) && !likelyRe.MatchString(id)) {
			doomed = append(doomed, el)
		}
	}
	// Matches were computed against the intact tree; removal happens
	// afterwards in one sweep.
	for _, el := range doomed {
		dom.Remove(el)
	}
}

// readabilityScore is the per-parent accumulation: a base of 1, tag
// bonuses, class/id indicator bonuses and penalties (checked
// independently, both may apply), text length, all damped by link
// density.
func readabilityScore(n *html.Node) float64 {
	score := 1.0

	switch dom.TagName(n) {
	case "div":
		score += 5
	case "article", "section", "main":
		score += 10
	case "p", "pre", "td", "blockquote":
		score += 3
	}

	if hasHint(dom.Attr(n, "class"), readabilityPositiveHints) {
		score += 25
	}
	if hasHint(dom.Attr(n, "id"), readabilityPositiveHints) {
		score += 25
	}
	if hasHint(dom.Attr(n, "class"), readabilityNegativeHints) {
		score -= 25
	}
	if hasHint(dom.Attr(n, "id"), readabilityNegativeHints) {
		score -= 25
	}

	score += float64(len(dom.NodeText(n))) / 100

	return score * (1 - LinkDensity(n))
}
