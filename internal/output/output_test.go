package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"txt", FormatText, true},
		{"text", FormatText, true},
		{"", FormatText, true},
		{"HTML", FormatHTML, true},
		{"json", FormatJSON, true},
		{"xml", FormatXML, true},
		{"pdf", FormatPDF, true},
		{"docx", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseFormat(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseFormat(%q) accepted", tc.in)
		}
	}
}

func TestRenderTextPassthrough(t *testing.T) {
	a := Article{Content: "line one\n\nline two"}
	out, err := Render(a, FormatText)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != a.Content {
		t.Fatalf("text output = %q", out)
	}
}

func TestRenderHTMLEscapesAndStructures(t *testing.T) {
	a := Article{
		Title:   `Breaking <news> & more`,
		Author:  "Jane",
		Content: "First paragraph.\n\nSecond <b>paragraph</b>.",
	}
	out, err := Render(a, FormatHTML)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "Breaking &lt;news&gt; &amp; more") {
		t.Fatalf("title not escaped: %s", s)
	}
	if strings.Contains(s, "<b>paragraph</b>") {
		t.Fatalf("content not escaped: %s", s)
	}
	if strings.Count(s, "<p>") < 2 {
		t.Fatalf("paragraphs not split: %s", s)
	}
}

func TestRenderJSONOmitsEmptyFields(t *testing.T) {
	a := Article{Content: "body text", Title: "Title"}
	out, err := Render(a, FormatJSON)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["content"] != "body text" || decoded["title"] != "Title" {
		t.Fatalf("fields missing: %v", decoded)
	}
	if _, present := decoded["author"]; present {
		t.Fatalf("empty author serialized: %v", decoded)
	}
}

func TestRenderXMLRoot(t *testing.T) {
	a := Article{Content: "body", Title: "T", Categories: []string{"a", "b"}}
	out, err := Render(a, FormatXML)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var decoded struct {
		XMLName    xml.Name `xml:"article"`
		Content    string   `xml:"content"`
		Title      string   `xml:"title"`
		Categories []string `xml:"categories>category"`
	}
	if err := xml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid xml: %v", err)
	}
	if decoded.Content != "body" || decoded.Title != "T" || len(decoded.Categories) != 2 {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestRenderRejectsPDF(t *testing.T) {
	if _, err := Render(Article{Content: "x"}, FormatPDF); err == nil {
		t.Fatalf("Render should refuse pdf")
	}
}

func TestWritePDFProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	a := Article{Title: "Title", Author: "Jane", Content: "Paragraph one.\n\nParagraph two."}
	if err := WritePDF(&buf, a); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a pdf: %q", buf.Bytes()[:16])
	}
}
