// Package output renders an extracted article in one of the supported
// serialization formats.
package output

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
)

// Article is the renderable result: the extracted content plus any
// metadata the caller chose to collect. Empty fields are omitted from
// structured formats.
type Article struct {
	Content     string   `json:"content" xml:"content"`
	Title       string   `json:"title,omitempty" xml:"title,omitempty"`
	Author      string   `json:"author,omitempty" xml:"author,omitempty"`
	Date        string   `json:"date,omitempty" xml:"date,omitempty"`
	URL         string   `json:"url,omitempty" xml:"url,omitempty"`
	Description string   `json:"description,omitempty" xml:"description,omitempty"`
	SiteName    string   `json:"site_name,omitempty" xml:"site_name,omitempty"`
	Categories  []string `json:"categories,omitempty" xml:"categories>category,omitempty"`
}

// Format selects a serialization.
type Format string

const (
	FormatText Format = "txt"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatPDF  Format = "pdf"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}

// Render serializes the article. PDF is binary and handled separately
// by WritePDF; asking Render for it is an error.
func Render(a Article, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return []byte(a.Content), nil
	case FormatHTML:
		return renderHTML(a), nil
	case FormatJSON:
		out, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(out, '\n'), nil
	case FormatXML:
		out, err := xml.MarshalIndent(xmlArticle{Article: a}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode xml: %w", err)
		}
		return append(out, '\n'), nil
	case FormatPDF:
		return nil, fmt.Errorf("pdf output requires WritePDF")
	default:
		return nil, fmt.Errorf("unknown output format: %q", f)
	}
}

type xmlArticle struct {
	XMLName xml.Name `xml:"article"`
	Article
}

func renderHTML(a Article) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	title := a.Title
	if title == "" {
		title = "Extracted content"
	}
	fmt.Fprintf(&b, "<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title))
	if a.Title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(a.Title))
	}
	if a.Author != "" {
		fmt.Fprintf(&b, "<p class=\"author\">%s</p>\n", html.EscapeString(a.Author))
	}
	if a.Date != "" {
		fmt.Fprintf(&b, "<p class=\"date\">%s</p>\n", html.EscapeString(a.Date))
	}
	b.WriteString("<div class=\"content\">\n")
	for _, para := range strings.Split(a.Content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(para))
	}
	b.WriteString("</div>\n</body>\n</html>\n")
	return []byte(b.String())
}
