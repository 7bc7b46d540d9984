package extract

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/hyperifyio/webtext/internal/dom"
)

// This file holds the process-wide, read-only tables every strategy
// consults: tag weights, content and boilerplate hint lists, exclusion
// lists and the precompiled selectors built from them. Everything here
// is initialized once at package load and only ever read afterwards,
// so concurrent extraction across documents is safe.

// linkDensityThreshold is the fraction of anchor text above which a
// subtree is treated as navigation rather than content.
const linkDensityThreshold = 0.33

// contentHints are class/id substrings that suggest a main-content
// container. One unified list serves class and id checks.
var contentHints = []string{
	"article", "post", "content", "entry", "main", "text", "blog", "story", "body",
	"column", "section", "post-content", "main-content", "article-content",
	"story-content", "story-body", "news-content", "news-article", "news-story",
	"entry-content", "article-body", "article-text", "articlebody", "content-article",
	"post-text", "post-body", "content-text", "content-body", "rich-text",
	"story-text", "page-content",
}

// unwantedHints are class/id substrings that mark navigation, ads and
// other boilerplate containers. Shared by the scorer and the candidate
// search.
var unwantedHints = []string{
	"nav", "navbar", "navigation", "menu", "footer", "header", "sidebar",
	"advertisement", "social", "share", "sharing", "comment", "comments",
	"related", "recommended", "recommendation", "promotion", "promo",
	"subscribe", "subscription", "download", "copyright", "tags", "tag-cloud",
	"breadcrumb", "pagination", "pager", "widget", "banner",
}

// tagWeights feed the heuristic scorer. Entries that are not real HTML
// tags (content, banner, social, ...) still apply when a page uses them
// as custom element names.
var tagWeights = map[string]int{
	"div":           5,
	"p":             15,
	"h1":            10,
	"h2":            8,
	"h3":            6,
	"h4":            4,
	"h5":            3,
	"article":       25,
	"section":       15,
	"main":          25,
	"content":       20,
	"li":            1,
	"td":            1,
	"a":             -5,
	"script":        -50,
	"style":         -50,
	"header":        -25,
	"footer":        -50,
	"nav":           -50,
	"aside":         -30,
	"iframe":        -40,
	"form":          -20,
	"button":        -15,
	"banner":        -30,
	"social":        -25,
	"share":         -25,
	"comment":       -25,
	"advertisement": -50,
	"meta":          -25,
	"widget":        -25,
}

// Sanitizer denylists. Matching is substring containment, which can
// over-match on purpose: a class named "advanced" matches "ad".
var (
	sanitizeTags = []string{
		"script", "style", "noscript", "iframe", "nav", "header", "footer",
		"aside", "form", "button", "svg", "meta", "link", "comment",
	}
	sanitizeClassHints = []string{
		"nav", "navbar", "navigation", "menu", "footer", "comment", "widget",
		"sidebar", "advertisement", "ad", "advert", "popup", "banner", "social",
		"sharing", "share", "related", "recommend", "promotion", "shopping",
	}
	sanitizeIDHints = []string{
		"nav", "navbar", "navigation", "menu", "footer", "comments", "sidebar",
		"advertisement", "related", "recommend", "social", "sharing",
	}
)

// Structural-engine exclusion lists, checked on an element and its
// immediate parent. Unlike the sanitizer hints these match whole
// class/id tokens, case-insensitively.
var (
	excludeTags = []string{
		"nav", "aside", "footer", "menu", "header", "form",
		"script", "style", "noscript", "figcaption", "iframe", "toc",
	}
	excludeClasses = []string{
		"nav", "navbar", "menu", "footer", "sidebar", "comment", "widget",
		"advertisement", "ad", "advert", "popup", "banner", "social",
		"sharing", "share", "related", "recommend", "promotion", "shopping",
		"subscribe", "subscription", "newsletter", "promo", "masthead", "aux",
		"breadcrumb", "byline", "metadata", "date", "tags", "cloud", "topics",
		"author", "copyright", "disclaimer",
	}
	excludeIDs = []string{
		"nav", "navbar", "menu", "footer", "sidebar", "comment", "comments",
		"advertisement", "social", "sharing", "share", "related", "recommend",
		"newsletter", "promo", "masthead", "breadcrumb", "byline", "metadata",
		"pagination", "pager", "tags", "tag-cloud", "topics", "topic-list",
		"category", "categories", "search", "toc",
	}
)

// wikiSkipTitles mark section headings whose content is dropped on
// Wikipedia-style pages. Matched as case-insensitive substrings of the
// heading text.
var wikiSkipTitles = []string{
	"References",
	"External links",
	"See also",
	"Further reading",
	"Notes",
	"Bibliography",
	"Sources",
	"Citations",
	"Footnotes",
	"Literature",
	"Literatur",        // German Wikipedia
	"Weblinks",         // German Wikipedia
	"Enlaces externos", // Spanish Wikipedia
}

// boilerplatePhrases end strict text extraction: a paragraph carrying
// one of these markers and everything after it is dropped.
var boilerplatePhrases = []string{
	"Read more",
	"Follow us",
	"Copyright",
	"All rights reserved",
	"Tags:",
	"Share this",
	"Related articles",
	"Subscribe to",
	"Sign up for",
	"Advertisement",
}

// Readability-fallback pattern sets, after arc90/Mozilla Readability.
var (
	unlikelyRe = regexp.MustCompile(`(?i)banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|foot|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`)
	likelyRe   = regexp.MustCompile(`(?i)article|body|content|entry|main|news|pag(?:e|ination)|post|text|blog|story`)

	readabilityPositiveHints = []string{
		"article", "body", "content", "entry", "main", "page", "post",
		"text", "blog", "story", "container", "readable",
	}
	readabilityNegativeHints = []string{
		"advert", "ad-", "banner", "combx", "comment", "community", "disqus",
		"extra", "foot", "header", "menu", "meta", "nav", "popup", "related",
		"remark", "rss", "share", "shoutbox", "sidebar", "sponsor", "shopping",
		"widget", "hidden", "modal", "login",
	}
)

// Selectors are static constants, so they are compiled exactly once
// here; an invalid expression is a programming error and fails at init,
// the same way regexp.MustCompile does.
var (
	allSel       = cascadia.MustCompile("*")
	bodySel      = cascadia.MustCompile("body")
	articleSel   = cascadia.MustCompile("article")
	paragraphSel = cascadia.MustCompile("p")
	anchorSel    = cascadia.MustCompile("a")
	headingSel   = cascadia.MustCompile("h1, h2, h3, h4, h5, h6")
	h1h3Sel      = cascadia.MustCompile("h1, h2, h3")
	blockSel     = cascadia.MustCompile("p, h1, h2, h3, h4, h5, h6, li")
	tableSel     = cascadia.MustCompile("table")
)

// candidateTags are tried in order by the candidate search; semantic
// containers come first.
var candidateTags = []string{"article", "main", "section", "div", "body"}

var candidateSels = func() map[string]cascadia.Selector {
	m := make(map[string]cascadia.Selector, len(candidateTags))
	for _, t := range candidateTags {
		m[t] = cascadia.MustCompile(t)
	}
	return m
}()

// Per-hint attribute matchers for the direct hint strategy, compiled
// once at process start instead of formatting selector strings per
// call.
var (
	hintClassSels = compileHintSels("class")
	hintIDSels    = compileHintSels("id")
)

func compileHintSels(attr string) []cascadia.Selector {
	sels := make([]cascadia.Selector, len(contentHints))
	for i, h := range contentHints {
		sels[i] = cascadia.MustCompile("[" + attr + "*='" + h + "']")
	}
	return sels
}

// hasHint reports whether the attribute value contains any hint as a
// substring, case-insensitively.
func hasHint(attrVal string, hints []string) bool {
	if attrVal == "" {
		return false
	}
	attrVal = strings.ToLower(attrVal)
	for _, h := range hints {
		if strings.Contains(attrVal, h) {
			return true
		}
	}
	return false
}

func hasContentHint(n *html.Node) bool {
	return hasHint(dom.Attr(n, "class"), contentHints) || hasHint(dom.Attr(n, "id"), contentHints)
}

func hasUnwantedHint(n *html.Node) bool {
	return hasHint(dom.Attr(n, "class"), unwantedHints) || hasHint(dom.Attr(n, "id"), unwantedHints)
}

// matchDescendants returns selector matches strictly below n, never n
// itself.
func matchDescendants(n *html.Node, sel cascadia.Selector) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, sel.MatchAll(c)...)
	}
	return out
}

func anyTokenEquals(attrVal string, list []string) bool {
	for _, token := range strings.Fields(attrVal) {
		for _, want := range list {
			if strings.EqualFold(token, want) {
				return true
			}
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, want := range list {
		if strings.EqualFold(want, s) {
			return true
		}
	}
	return false
}
