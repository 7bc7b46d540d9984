package extract

import (
	"golang.org/x/net/html"

	"github.com/hyperifyio/webtext/internal/dom"
)

// Sanitize returns a filtered copy of doc with boilerplate removed:
// unwanted tags, elements whose class or id substring-matches a
// denylist, comment nodes (unless configured in) and tables (unless
// configured in). The input tree is never touched.
//
// Cleaning is a single top-down mark-and-filter pass over the copy:
// each node's fate is decided against the unmodified input structure,
// and dropping a node drops its whole subtree, so a removal never
// re-examines descendants of something already gone. The pass is
// idempotent: sanitizing an already-sanitized tree changes nothing.
func Sanitize(doc *html.Node, cfg Config) *html.Node {
	root := dom.Clone(doc)
	filterChildren(root, cfg)
	return root
}

func filterChildren(n *html.Node, cfg Config) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if dropInSanitize(c, cfg) {
			n.RemoveChild(c)
			continue
		}
		filterChildren(c, cfg)
	}
}

func dropInSanitize(n *html.Node, cfg Config) bool {
	switch n.Type {
	case html.CommentNode:
		return !cfg.IncludeComments
	case html.ElementNode:
		tag := dom.TagName(n)
		if containsFold(sanitizeTags, tag) {
			return true
		}
		if tag == "table" && !cfg.IncludeTables {
			return true
		}
		if hasHint(dom.Attr(n, "class"), sanitizeClassHints) {
			return true
		}
		if hasHint(dom.Attr(n, "id"), sanitizeIDHints) {
			return true
		}
	}
	return false
}
