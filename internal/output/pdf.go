package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the article as a simple single-column PDF: bold
// title, smaller metadata line, then the content as justified
// paragraphs. Everything is core-font Latin-1; unsupported runes come
// out as substitution glyphs rather than failing the document.
func WritePDF(w io.Writer, a Article) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if a.Title != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 7, tr(a.Title), "", "L", false)
		pdf.Ln(2)
	}

	var meta []string
	if a.Author != "" {
		meta = append(meta, a.Author)
	}
	if a.Date != "" {
		meta = append(meta, a.Date)
	}
	if a.SiteName != "" {
		meta = append(meta, a.SiteName)
	}
	if len(meta) > 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, tr(strings.Join(meta, " | ")), "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, para := range strings.Split(a.Content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		pdf.MultiCell(0, 5, tr(para), "", "L", false)
		pdf.Ln(3)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
