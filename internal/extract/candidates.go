package extract

import (
	"golang.org/x/net/html"

	"github.com/hyperifyio/webtext/internal/dom"
)

// Candidate is an ephemeral reference to a subtree under consideration
// as the main-content root, with the score and the strategy that
// produced it. Candidates live only for one strategy invocation.
type Candidate struct {
	Node     *html.Node
	Score    int
	Strategy string
}

// findCandidates enumerates plausible content containers in document
// order per tag, semantic tags first. Containers with unwanted class/id
// hints or navigation-level link density are rejected outright;
// article/main containers are promoted to the front of the list so
// that score ties fall to semantic markup.
func findCandidates(root *html.Node) []*html.Node {
	var out []*html.Node
	for _, tag := range candidateTags {
		for _, el := range candidateSels[tag].MatchAll(root) {
			if hasUnwantedHint(el) {
				continue
			}
			if LinkDensity(el) > linkDensityThreshold {
				continue
			}

			textLen := len(dom.NodeText(el))
			pCount := len(matchDescendants(el, paragraphSel))

			switch {
			case (textLen > 250 && pCount >= 2) || textLen > 500 || pCount >= 4 || hasContentHint(el):
				if tag == "article" || tag == "main" {
					out = append([]*html.Node{el}, out...)
				} else {
					out = append(out, el)
				}
			case textLen > 100:
				// Lower-quality candidates still get considered.
				out = append(out, el)
			}
		}
	}
	return out
}

// bestCandidate ranks candidates with the heuristic scorer. Ties
// resolve to the earlier (higher-priority) entry.
func bestCandidate(root *html.Node) *Candidate {
	nodes := findCandidates(root)
	if len(nodes) == 0 {
		return nil
	}
	best := &Candidate{Node: nodes[0], Score: Score(nodes[0]), Strategy: strategyDensity}
	for _, n := range nodes[1:] {
		if s := Score(n); s > best.Score {
			best = &Candidate{Node: n, Score: s, Strategy: strategyDensity}
		}
	}
	return best
}

// extractByDensity returns the text of the best-scoring candidate, or
// "" when no candidate qualifies.
func extractByDensity(root *html.Node, cfg Config) string {
	c := bestCandidate(root)
	if c == nil {
		return ""
	}
	return dom.Text(c.Node, cfg.textOptions())
}
