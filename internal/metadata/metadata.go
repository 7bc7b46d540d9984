// Package metadata pulls document-level fields (title, author, date,
// description, site name, categories) out of a parsed HTML tree. It
// only reads the DOM and contains no content-extraction logic.
package metadata

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/hyperifyio/webtext/internal/dom"
)

// Metadata holds the optional document fields. Absent fields stay "".
type Metadata struct {
	Title       string
	Author      string
	Date        string
	Description string
	SiteName    string
	Categories  []string
}

var dateRe = regexp.MustCompile(`(?i)\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}[-/]\d{1,2}[-/]\d{4}|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4}`)

var (
	ogTitleSel       = cascadia.MustCompile("meta[property='og:title']")
	twitterTitleSel  = cascadia.MustCompile("meta[name='twitter:title']")
	titleSel         = cascadia.MustCompile("title")
	h1Sel            = cascadia.MustCompile("h1")
	metaAuthorSel    = cascadia.MustCompile("meta[name='author']")
	ogAuthorSel      = cascadia.MustCompile("meta[property='article:author']")
	publishedTimeSel = cascadia.MustCompile("meta[property='article:published_time']")
	metaDateSel      = cascadia.MustCompile("meta[name='date']")
	timeSel          = cascadia.MustCompile("time")
	ogDescSel        = cascadia.MustCompile("meta[property='og:description']")
	metaDescSel      = cascadia.MustCompile("meta[name='description']")
	twitterDescSel   = cascadia.MustCompile("meta[name='twitter:description']")
	ogSiteSel        = cascadia.MustCompile("meta[property='og:site_name']")
	copyrightSel     = cascadia.MustCompile(".copyright")
	sectionSel       = cascadia.MustCompile("meta[property='article:section']")
	tagSel           = cascadia.MustCompile("meta[property='article:tag']")
)

var authorClassSels = compileClassSels("author", "byline", "dc-creator")
var dateClassSels = compileClassSels("date", "published", "timestamp", "post-date")
var categoryLinkSels = func() []cascadia.Selector {
	names := []string{"tags", "categories", "category", "topics"}
	sels := make([]cascadia.Selector, len(names))
	for i, n := range names {
		sels[i] = cascadia.MustCompile("." + n + " a")
	}
	return sels
}()

func compileClassSels(names ...string) []cascadia.Selector {
	sels := make([]cascadia.Selector, len(names))
	for i, n := range names {
		sels[i] = cascadia.MustCompile("." + n)
	}
	return sels
}

// Extract fills every field it can find. Meta tags win over visible
// page elements throughout.
func Extract(doc *html.Node) Metadata {
	return Metadata{
		Title:       extractTitle(doc),
		Author:      extractAuthor(doc),
		Date:        extractDate(doc),
		Description: extractDescription(doc),
		SiteName:    extractSiteName(doc),
		Categories:  extractCategories(doc),
	}
}

func firstMetaContent(doc *html.Node, sel cascadia.Selector) string {
	if el := sel.MatchFirst(doc); el != nil {
		return strings.TrimSpace(dom.Attr(el, "content"))
	}
	return ""
}

func firstText(doc *html.Node, sel cascadia.Selector) string {
	if el := sel.MatchFirst(doc); el != nil {
		return dom.CompactText(el)
	}
	return ""
}

func extractTitle(doc *html.Node) string {
	if t := firstMetaContent(doc, ogTitleSel); t != "" {
		return t
	}
	if t := firstMetaContent(doc, twitterTitleSel); t != "" {
		return t
	}
	if t := firstText(doc, titleSel); t != "" {
		return t
	}
	return firstText(doc, h1Sel)
}

func extractAuthor(doc *html.Node) string {
	if a := firstMetaContent(doc, metaAuthorSel); a != "" {
		return a
	}
	if a := firstMetaContent(doc, ogAuthorSel); a != "" {
		return a
	}
	for _, sel := range authorClassSels {
		if a := firstText(doc, sel); a != "" {
			return a
		}
	}
	return ""
}

func extractDate(doc *html.Node) string {
	if d := firstMetaContent(doc, publishedTimeSel); d != "" {
		return d
	}
	if d := firstMetaContent(doc, metaDateSel); d != "" {
		return d
	}
	if el := timeSel.MatchFirst(doc); el != nil {
		if dt := strings.TrimSpace(dom.Attr(el, "datetime")); dt != "" {
			return dt
		}
		if m := dateRe.FindString(dom.CompactText(el)); m != "" {
			return m
		}
	}
	for _, sel := range dateClassSels {
		if text := firstText(doc, sel); text != "" {
			if m := dateRe.FindString(text); m != "" {
				return m
			}
			return text
		}
	}
	return ""
}

func extractDescription(doc *html.Node) string {
	if d := firstMetaContent(doc, ogDescSel); d != "" {
		return d
	}
	if d := firstMetaContent(doc, metaDescSel); d != "" {
		return d
	}
	return firstMetaContent(doc, twitterDescSel)
}

func extractSiteName(doc *html.Node) string {
	if s := firstMetaContent(doc, ogSiteSel); s != "" {
		return s
	}
	return firstText(doc, copyrightSel)
}

func extractCategories(doc *html.Node) []string {
	var categories []string
	if s := firstMetaContent(doc, sectionSel); s != "" {
		categories = append(categories, s)
	}
	for _, tag := range tagSel.MatchAll(doc) {
		if c := strings.TrimSpace(dom.Attr(tag, "content")); c != "" {
			categories = append(categories, c)
		}
	}
	for _, sel := range categoryLinkSels {
		for _, link := range sel.MatchAll(doc) {
			if text := dom.CompactText(link); text != "" {
				categories = append(categories, text)
			}
		}
	}
	return categories
}
