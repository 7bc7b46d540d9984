// Package dom provides the parsed-document abstraction the extraction
// engine works on: a golang.org/x/net/html node tree plus the small set
// of helpers every strategy needs (attribute access, document order,
// structural removal, text serialization).
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse reads an HTML document into a node tree. Fragments are
// tolerated: the parser synthesizes missing html/head/body elements.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseString parses an in-memory HTML string.
func ParseString(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}

// TagName returns the lowercased element name, or "" for non-elements.
func TagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// Attr returns the value of the named attribute, or "" when absent.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Clone returns a deep copy of the subtree rooted at n, detached from
// any parent. Extraction never mutates the caller's tree; strategies
// that need structural removal work on a clone.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// Remove splices n out of its parent's child list. Removing a node
// removes its whole subtree. No-op for detached nodes.
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// NodeText returns the raw concatenation of every text node under n,
// with no added markup or separators. Uses an explicit stack so that
// adversarially deep nesting cannot grow the call stack.
func NodeText(n *html.Node) string {
	var b strings.Builder
	stack := []*html.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			continue
		}
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return b.String()
}

// CompactText returns NodeText with whitespace runs collapsed to single
// spaces and the result trimmed. Used when emitting headings, paragraph
// bodies and table/list contents.
func CompactText(n *html.Node) string {
	return strings.Join(strings.Fields(NodeText(n)), " ")
}

// Positions assigns a document-order index to every node under root.
// Strategies use it to answer "which heading precedes this element".
func Positions(root *html.Node) map[*html.Node]int {
	pos := make(map[*html.Node]int)
	i := 0
	stack := []*html.Node{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pos[cur] = i
		i++
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return pos
}
