package metadata

import (
	"reflect"
	"testing"

	"golang.org/x/net/html"

	"github.com/hyperifyio/webtext/internal/dom"
)

func mustParse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := dom.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestTitlePreference(t *testing.T) {
	doc := mustParse(t, `<html><head>
		<meta property="og:title" content="OG Title">
		<title>Tag Title</title>
	</head><body><h1>Heading Title</h1></body></html>`)
	if got := Extract(doc).Title; got != "OG Title" {
		t.Fatalf("Title = %q, want OG Title", got)
	}

	doc = mustParse(t, `<html><head><title>Tag Title</title></head><body><h1>Heading Title</h1></body></html>`)
	if got := Extract(doc).Title; got != "Tag Title" {
		t.Fatalf("Title = %q, want Tag Title", got)
	}

	doc = mustParse(t, `<html><body><h1>Heading Title</h1></body></html>`)
	if got := Extract(doc).Title; got != "Heading Title" {
		t.Fatalf("Title = %q, want Heading Title", got)
	}
}

func TestAuthorSources(t *testing.T) {
	doc := mustParse(t, `<html><head><meta name="author" content="Jane Doe"></head><body></body></html>`)
	if got := Extract(doc).Author; got != "Jane Doe" {
		t.Fatalf("Author = %q", got)
	}

	doc = mustParse(t, `<html><body><span class="byline">Staff Writer</span></body></html>`)
	if got := Extract(doc).Author; got != "Staff Writer" {
		t.Fatalf("Author = %q, want byline text", got)
	}
}

func TestDateSources(t *testing.T) {
	doc := mustParse(t, `<html><head>
		<meta property="article:published_time" content="2026-01-15T08:00:00Z">
	</head><body></body></html>`)
	if got := Extract(doc).Date; got != "2026-01-15T08:00:00Z" {
		t.Fatalf("Date = %q", got)
	}

	doc = mustParse(t, `<html><body><time datetime="2026-02-01">Feb 1</time></body></html>`)
	if got := Extract(doc).Date; got != "2026-02-01" {
		t.Fatalf("Date = %q, want datetime attr", got)
	}

	doc = mustParse(t, `<html><body><span class="post-date">Published 2026/03/04 by us</span></body></html>`)
	if got := Extract(doc).Date; got != "2026/03/04" {
		t.Fatalf("Date = %q, want pattern match", got)
	}
}

func TestDescriptionAndSiteName(t *testing.T) {
	doc := mustParse(t, `<html><head>
		<meta name="description" content="Plain description">
		<meta property="og:description" content="OG description">
		<meta property="og:site_name" content="Example News">
	</head><body></body></html>`)
	m := Extract(doc)
	if m.Description != "OG description" {
		t.Fatalf("Description = %q", m.Description)
	}
	if m.SiteName != "Example News" {
		t.Fatalf("SiteName = %q", m.SiteName)
	}
}

func TestCategories(t *testing.T) {
	doc := mustParse(t, `<html><head>
		<meta property="article:section" content="Science">
		<meta property="article:tag" content="space">
		<meta property="article:tag" content="rockets">
	</head><body>
		<div class="tags"><a href="/t/launch">launch</a></div>
	</body></html>`)
	got := Extract(doc).Categories
	want := []string{"Science", "space", "rockets", "launch"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
}

func TestEmptyDocument(t *testing.T) {
	m := Extract(mustParse(t, `<html><body></body></html>`))
	if m.Title != "" || m.Author != "" || m.Date != "" || len(m.Categories) != 0 {
		t.Fatalf("empty document produced metadata: %+v", m)
	}
}
