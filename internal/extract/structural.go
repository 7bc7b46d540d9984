package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/hyperifyio/webtext/internal/dom"
)

// The structural engine drives extraction off selector sets: one
// variant for ordinary pages, one for Wikipedia-style pages whose
// markup is predictable enough to target directly.

type selectorSet struct {
	mainContent cascadia.Selector
	paragraphs  cascadia.Selector
	headings    cascadia.Selector
	lists       cascadia.Selector
	listItems   cascadia.Selector
	tables      cascadia.Selector
	images      cascadia.Selector
}

// defaultMainContent is an ordered union of structural, class and id
// patterns observed across news sites and blogs. Semantic containers
// lead; the first document-order match wins.
const defaultMainContent = "article, main, " +
	"div.post, div.entry, " +
	"div[class*='post-text'], div[class*='post_text'], " +
	"div[class*='post-body'], div[class*='post-entry'], div[class*='postentry'], " +
	"div[class*='post-content'], div[class*='post_content'], " +
	"div[class*='postcontent'], div[class*='postContent'], div[class*='post_inner_wrapper'], " +
	"div[class*='article-text'], div[class*='articletext'], div[class*='articleText'], " +
	"div[id*='entry-content'], " +
	"div[class*='entry-content'], div[id*='article-content'], " +
	"div[class*='article-content'], div[id*='article__content'], " +
	"div[class*='article__content'], div[id*='article-body'], " +
	"div[class*='article-body'], div[id*='article__body'], " +
	"div[class*='article__body'], div[itemprop='articleBody'], " +
	"div[id*='articlebody'], div[class*='articlebody'], div[class*='articleBody'], " +
	"div#articleContent, div[class*='ArticleContent'], " +
	"div[class*='page-content'], div[class*='text-content'], " +
	"div[id*='body-text'], div[class*='body-text'], " +
	"div[class*='article__container'], div[id*='art-content'], div[class*='art-content'], " +
	"div[class*='post-bodycopy'], " +
	"div[class*='storycontent'], div[class*='story-content'], " +
	"div.postarea, div.art-postcontent, " +
	"div[class*='theme-content'], div[class*='blog-content'], " +
	"div[class*='section-content'], div[class*='single-content'], " +
	"div[class*='single-post'], " +
	"div[class*='main-column'], div[class*='wpb_text_column'], " +
	"div[id^='primary'], div[class^='article '], div.text, " +
	"div#article, div.cell, div#story, div.story, " +
	"div[class*='story-body'], div[id*='story-body'], div[class*='field-body'], " +
	"div[class*='fulltext'], div[class*='Fulltext'], " +
	"div[role='article'], " +
	"div[id*='content-main'], div[class*='content-main'], div[class*='content_main'], " +
	"div[id*='content-body'], div[class*='content-body'], div[id*='contentBody'], " +
	"div[class*='content__body'], div[id*='main-content'], div[class*='main-content'], " +
	"div[id*='Main-content'], div[class*='Main-content'], " +
	"div#content, div.content, " +
	"section[class^='main'], section[id^='main'], section[role^='main'], " +
	"div[class^='main'], div[id^='main'], div[role^='main']"

var defaultSelectors = selectorSet{
	mainContent: cascadia.MustCompile(defaultMainContent),
	paragraphs:  cascadia.MustCompile("p, div[class*='paragraph'], div[class*='text-block'], div[class*='post-block'], div[class*='entry-block'], div.post-text, div.text, div[class*='article-text'], section[class*='paragraph']"),
	headings:    cascadia.MustCompile("h1, h2, h3, h4, h5, h6"),
	lists:       cascadia.MustCompile("ul, ol, dl"),
	listItems:   cascadia.MustCompile("li, dt, dd"),
	tables:      cascadia.MustCompile("table"),
	images:      cascadia.MustCompile("img"),
}

var wikiSelectors = selectorSet{
	mainContent: cascadia.MustCompile("div#content, div#bodyContent, div#mw-content-text, div.mw-parser-output"),
	paragraphs:  cascadia.MustCompile("div#mw-content-text p, div.mw-parser-output p"),
	headings:    cascadia.MustCompile("div#mw-content-text h1, div#mw-content-text h2, div#mw-content-text h3, div#mw-content-text h4, div#mw-content-text h5, div#mw-content-text h6, div.mw-parser-output h1, div.mw-parser-output h2, div.mw-parser-output h3, div.mw-parser-output h4, div.mw-parser-output h5, div.mw-parser-output h6"),
	lists:       cascadia.MustCompile("div#mw-content-text ul, div#mw-content-text ol, div.mw-parser-output ul, div.mw-parser-output ol"),
	listItems:   cascadia.MustCompile("div#mw-content-text li, div.mw-parser-output li"),
	tables:      cascadia.MustCompile("div#mw-content-text table, div.mw-parser-output table"),
	images:      cascadia.MustCompile("div#mw-content-text img, div.mw-parser-output img"),
}

var (
	ogSiteNameSel = cascadia.MustCompile("meta[property='og:site_name']")
	canonicalSel  = cascadia.MustCompile("link[rel='canonical']")
)

// isWikipedia detects Wikipedia-style pages from the unsanitized
// document: an og:site_name containing "Wikipedia", or a canonical link
// whose host ends in wikipedia.org. The variant choice is made once
// per call; the two selector sets are mutually exclusive.
func isWikipedia(doc *html.Node) bool {
	for _, meta := range ogSiteNameSel.MatchAll(doc) {
		if strings.Contains(dom.Attr(meta, "content"), "Wikipedia") {
			return true
		}
	}
	for _, link := range canonicalSel.MatchAll(doc) {
		href := dom.Attr(link, "href")
		if href == "" {
			continue
		}
		if u, err := url.Parse(href); err == nil && u.Host != "" {
			host := strings.ToLower(u.Host)
			if host == "wikipedia.org" || strings.HasSuffix(host, ".wikipedia.org") {
				return true
			}
			continue
		}
		if strings.Contains(href, "wikipedia.org") {
			return true
		}
	}
	return false
}

// sectionState is the skip machine driven by headings on Wikipedia
// pages: a heading matching the skip-title set turns skipping on, any
// later non-matching heading turns it back off. Content before the
// first heading is always included.
type sectionState int

const (
	including sectionState = iota
	skipping
)

func matchesSkipTitle(headingText string) bool {
	lower := strings.ToLower(headingText)
	for _, title := range wikiSkipTitles {
		if strings.Contains(lower, strings.ToLower(title)) {
			return true
		}
	}
	return false
}

// headingMark records, per heading, its document position and the skip
// state it establishes for the section that follows it.
type headingMark struct {
	pos   int
	state sectionState
}

// extractStructural runs the selector-driven engine over a sanitized
// tree. Output is grouped by block type: headings, then paragraphs,
// then lists, then tables, then images.
func extractStructural(clean *html.Node, wiki bool, cfg Config) (string, error) {
	sels := &defaultSelectors
	if wiki {
		sels = &wikiSelectors
	}

	scope := sels.mainContent.MatchFirst(clean)
	if scope == nil {
		scope = bodySel.MatchFirst(clean)
	}
	if scope == nil {
		return "", fmt.Errorf("%w: no content scope found", ErrExtraction)
	}

	pos := dom.Positions(clean)
	var b strings.Builder

	// Headings drive the section machine and are emitted first.
	state := including
	var marks []headingMark
	for _, h := range sels.headings.MatchAll(scope) {
		text := dom.CompactText(h)
		if wiki && matchesSkipTitle(text) {
			state = skipping
		} else {
			state = including
		}
		marks = append(marks, headingMark{pos: pos[h], state: state})
		if state == including && text != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	}

	// skippedAt reports the skip state established by the nearest
	// heading preceding n in document order.
	skippedAt := func(n *html.Node) bool {
		if !wiki {
			return false
		}
		p := pos[n]
		st := including
		for _, m := range marks {
			if m.pos >= p {
				break
			}
			st = m.state
		}
		return st == skipping
	}

	for _, el := range sels.paragraphs.MatchAll(scope) {
		if skippedAt(el) || excluded(el) {
			continue
		}
		text := dom.CompactText(el)
		if len(text) > 10 {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	}

	for _, list := range sels.lists.MatchAll(scope) {
		if skippedAt(list) || excluded(list) {
			continue
		}
		wrote := false
		for _, item := range matchDescendants(list, sels.listItems) {
			if excluded(item) {
				continue
			}
			text := dom.CompactText(item)
			if text == "" {
				continue
			}
			b.WriteString("• ")
			b.WriteString(text)
			b.WriteByte('\n')
			wrote = true
		}
		if wrote {
			b.WriteByte('\n')
		}
	}

	if cfg.IncludeTables {
		for _, table := range sels.tables.MatchAll(scope) {
			if skippedAt(table) || excluded(table) {
				continue
			}
			text := dom.CompactText(table)
			if text == "" {
				continue
			}
			b.WriteString("[Table: ")
			b.WriteString(text)
			b.WriteString("]\n\n")
		}
	}

	if cfg.IncludeImages {
		for _, img := range sels.images.MatchAll(scope) {
			if excluded(img) {
				continue
			}
			alt := strings.TrimSpace(dom.Attr(img, "alt"))
			if alt == "" {
				alt = strings.TrimSpace(dom.Attr(img, "src"))
			}
			if alt == "" {
				continue
			}
			b.WriteString("[Image: ")
			b.WriteString(alt)
			b.WriteString("]\n\n")
		}
	}

	return dom.CollapseBlankLines(b.String()), nil
}

// excluded checks the element and its immediate parent against the
// structural exclusion lists: tag names, whole class tokens and ids.
func excluded(el *html.Node) bool {
	if excludedSelf(el) {
		return true
	}
	parent := el.Parent
	for parent != nil && parent.Type != html.ElementNode {
		parent = parent.Parent
	}
	return parent != nil && excludedSelf(parent)
}

func excludedSelf(el *html.Node) bool {
	if containsFold(excludeTags, dom.TagName(el)) {
		return true
	}
	if anyTokenEquals(dom.Attr(el, "class"), excludeClasses) {
		return true
	}
	id := dom.Attr(el, "id")
	return id != "" && containsFold(excludeIDs, id)
}
