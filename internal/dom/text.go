package dom

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// TextOptions control the optional markers Text emits for links, images
// and comments.
type TextOptions struct {
	IncludeLinks    bool
	IncludeImages   bool
	IncludeComments bool
}

const imageMarkerPrefix = "[Image: "

type frameKind int

const (
	frameVisit frameKind = iota
	frameBlockEnd
	frameAnchorEnd
)

type textFrame struct {
	n    *html.Node
	kind frameKind
	mark int    // builder length when the anchor was entered
	href string // anchor target, only for frameAnchorEnd
}

// Text serializes a subtree depth-first into readable plain text.
// Block elements (p, div, h1-h6, li) emit a trailing newline, <br>
// emits a newline, anchors optionally append their href, images and
// comments optionally emit bracketed markers. The walk keeps its own
// stack rather than recursing, so untrusted deeply nested input cannot
// exhaust the goroutine stack.
func Text(n *html.Node, opts TextOptions) string {
	var b strings.Builder
	stack := []textFrame{{n: n}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch f.kind {
		case frameBlockEnd:
			b.WriteByte('\n')
			continue
		case frameAnchorEnd:
			// Only annotate anchors that produced visible text.
			if strings.TrimSpace(b.String()[f.mark:]) != "" {
				b.WriteString(" (")
				b.WriteString(f.href)
				b.WriteString(") ")
			}
			continue
		}

		switch f.n.Type {
		case html.TextNode:
			if strings.TrimSpace(f.n.Data) != "" {
				b.WriteString(f.n.Data)
				b.WriteByte(' ')
			}
			continue
		case html.CommentNode:
			if opts.IncludeComments {
				b.WriteString("[Comment] ")
			}
			continue
		case html.ElementNode:
			switch TagName(f.n) {
			case "script", "style", "noscript", "template":
				continue
			case "br":
				b.WriteByte('\n')
				continue
			case "img":
				if opts.IncludeImages {
					if alt := imageLabel(f.n); alt != "" {
						b.WriteString(imageMarkerPrefix)
						b.WriteString(alt)
						b.WriteString("] ")
					}
				}
				continue
			case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li":
				stack = append(stack, textFrame{n: f.n, kind: frameBlockEnd})
			case "a":
				if opts.IncludeLinks {
					if href := Attr(f.n, "href"); href != "" {
						stack = append(stack, textFrame{n: f.n, kind: frameAnchorEnd, mark: b.Len(), href: href})
					}
				}
			}
		}

		for c := f.n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, textFrame{n: c})
		}
	}
	return NormalizeText(b.String())
}

func imageLabel(img *html.Node) string {
	if alt := strings.TrimSpace(Attr(img, "alt")); alt != "" {
		return alt
	}
	return strings.TrimSpace(Attr(img, "src"))
}

var (
	spaceRunRe   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRunRe = regexp.MustCompile(` ?\n[\n ]*`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText collapses horizontal whitespace runs to a single space,
// newline runs to a single newline, and trims the result.
func NormalizeText(s string) string {
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = newlineRunRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// CollapseBlankLines reduces runs of three or more newlines to exactly
// two, keeping at most one blank line between blocks.
func CollapseBlankLines(s string) string {
	return strings.TrimSpace(blankLinesRe.ReplaceAllString(s, "\n\n"))
}
