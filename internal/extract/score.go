package extract

import (
	"golang.org/x/net/html"

	"github.com/hyperifyio/webtext/internal/dom"
)

// Score rates how likely the subtree at n is to hold the main article
// text. Higher is better. The function is pure: the same node always
// produces the same score.
func Score(n *html.Node) int {
	score := len(dom.NodeText(n)) / 20

	if hasHint(dom.Attr(n, "class"), contentHints) {
		score += 75
	}
	if hasHint(dom.Attr(n, "id"), contentHints) {
		score += 75
	}

	pCount := len(matchDescendants(n, paragraphSel))
	score += pCount * 10
	score += len(matchDescendants(n, blockSel)) * 5

	if hasHint(dom.Attr(n, "class"), unwantedHints) {
		score -= 50
	}
	if hasHint(dom.Attr(n, "id"), unwantedHints) {
		score -= 50
	}

	for _, d := range matchDescendants(n, allSel) {
		if w, ok := tagWeights[dom.TagName(d)]; ok {
			score += w
		}
	}

	if density := LinkDensity(n); density > linkDensityThreshold {
		score -= int(density * 150)
	}

	// Article shape bonus: a heading plus at least two paragraphs.
	if len(matchDescendants(n, h1h3Sel)) > 0 && pCount >= 2 {
		score += 30
	}

	return score
}

// LinkDensity is the fraction of n's text contributed by descendant
// anchors, 0 for nodes with no text at all. Always within [0, 1].
func LinkDensity(n *html.Node) float64 {
	total := len(dom.NodeText(n))
	if total == 0 {
		return 0
	}
	linked := 0
	for _, a := range matchDescendants(n, anchorSel) {
		linked += len(dom.NodeText(a))
	}
	return float64(linked) / float64(total)
}
