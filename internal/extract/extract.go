// Package extract identifies and returns the primary readable content
// of an HTML document. Several strategies run in a fixed priority
// order — a selector-driven structural engine, semantic-tag and hint
// matches, a density-based candidate search and a readability-style
// fallback — each gated on a minimum content size; the first strategy
// to clear the gate wins and strategies are never merged.
package extract

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/hyperifyio/webtext/internal/dom"
)

var (
	// ErrExtraction means no content-bearing element was found, or
	// the final content fell below the configured minimum size.
	ErrExtraction = errors.New("extraction failed")
	// ErrSelector means a selector expression is invalid. The static
	// selector sets are validated at init, so this only surfaces for
	// expressions supplied at runtime.
	ErrSelector = errors.New("invalid selector")
)

// Config is the per-call extraction configuration. The zero value
// excludes everything optional; DefaultConfig matches the CLI
// defaults.
type Config struct {
	IncludeComments bool
	IncludeTables   bool
	IncludeLinks    bool
	IncludeImages   bool
	// MinExtractedSize is the single acceptance gate, in bytes, each
	// strategy's output must meet.
	MinExtractedSize int
}

// DefaultConfig returns the library defaults: tables and links in,
// comments and images out, 250-byte floor.
func DefaultConfig() Config {
	return Config{
		IncludeTables:    true,
		IncludeLinks:     true,
		MinExtractedSize: 250,
	}
}

func (c Config) textOptions() dom.TextOptions {
	return dom.TextOptions{
		IncludeLinks:    c.IncludeLinks,
		IncludeImages:   c.IncludeImages,
		IncludeComments: c.IncludeComments,
	}
}

// Result is the extracted content plus the strategy that produced it.
type Result struct {
	Content  string
	Strategy string
}

// Strategy provenance tags.
const (
	strategyStructural  = "structural"
	strategyArticle     = "article"
	strategyHints       = "hints"
	strategyDensity     = "density"
	strategyParagraphs  = "paragraphs"
	strategyReadability = "readability"
	strategyFallback    = "fallback"
)

// Extract runs the strategies in fixed order against doc and returns
// the first result that is non-empty and at least MinExtractedSize
// bytes. The caller's tree is never mutated. A failing strategy never
// aborts the call; the last-resort paragraph concatenation always
// returns, possibly empty or under the floor — enforcing the floor on
// that final result is the caller's responsibility.
func Extract(doc *html.Node, cfg Config) (Result, error) {
	// The variant choice needs head metadata, so it precedes
	// sanitizing; everything else consumes the sanitized tree.
	wiki := isWikipedia(doc)
	clean := Sanitize(doc, cfg)

	if content, err := extractStructural(clean, wiki, cfg); err == nil && accepted(content, cfg) {
		logStrategy(strategyStructural, content)
		return Result{Content: content, Strategy: strategyStructural}, nil
	}

	if content := extractBestArticle(clean, cfg); accepted(content, cfg) {
		logStrategy(strategyArticle, content)
		return Result{Content: content, Strategy: strategyArticle}, nil
	}

	if content := extractByHints(clean, cfg); accepted(content, cfg) {
		logStrategy(strategyHints, content)
		return Result{Content: content, Strategy: strategyHints}, nil
	}

	if content := extractByDensity(clean, cfg); accepted(content, cfg) {
		logStrategy(strategyDensity, content)
		return Result{Content: content, Strategy: strategyDensity}, nil
	}

	if content := extractParagraphClusters(clean, cfg); accepted(content, cfg) {
		logStrategy(strategyParagraphs, content)
		return Result{Content: content, Strategy: strategyParagraphs}, nil
	}

	if content, err := extractReadability(clean, cfg); err == nil && accepted(content, cfg) {
		logStrategy(strategyReadability, content)
		return Result{Content: content, Strategy: strategyReadability}, nil
	}

	content := lastResortParagraphs(clean, cfg)
	logStrategy(strategyFallback, content)
	return Result{Content: content, Strategy: strategyFallback}, nil
}

func accepted(content string, cfg Config) bool {
	return content != "" && len(content) >= cfg.MinExtractedSize
}

func logStrategy(name, content string) {
	log.Debug().Str("strategy", name).Int("chars", len(content)).Msg("content extracted")
}

// extractBestArticle picks the highest-scoring <article> whose text
// already clears the size gate. Ties resolve to the earlier element.
func extractBestArticle(clean *html.Node, cfg Config) string {
	var bestText string
	bestScore := 0
	for _, article := range articleSel.MatchAll(clean) {
		text := dom.Text(article, cfg.textOptions())
		if text == "" || len(text) < cfg.MinExtractedSize {
			continue
		}
		if s := Score(article); s > bestScore {
			bestText, bestScore = text, s
		}
	}
	return bestText
}

// extractByHints takes the first element whose class, then id,
// substring-matches a content hint, using the strict text variant
// since hint containers often carry trailing boilerplate.
func extractByHints(clean *html.Node, cfg Config) string {
	for _, sel := range hintClassSels {
		if el := sel.MatchFirst(clean); el != nil {
			if text := strictText(el, cfg); accepted(text, cfg) {
				return text
			}
		}
	}
	for _, sel := range hintIDSels {
		if el := sel.MatchFirst(clean); el != nil {
			if text := strictText(el, cfg); accepted(text, cfg) {
				return text
			}
		}
	}
	return ""
}

// clusterContainerHints mark paragraph parents that disqualify a
// paragraph from the clustering strategy.
var clusterContainerHints = []string{"nav", "menu", "footer", "header", "sidebar", "comment"}

// extractParagraphClusters concatenates qualifying paragraphs when at
// least three survive the filters: long enough, not link-heavy, not
// parked inside a navigation-like container.
func extractParagraphClusters(clean *html.Node, cfg Config) string {
	var kept []*html.Node
	for _, p := range paragraphSel.MatchAll(clean) {
		if len(dom.NodeText(p)) < 20 {
			continue
		}
		if LinkDensity(p) > linkDensityThreshold {
			continue
		}
		parent := p.Parent
		for parent != nil && parent.Type != html.ElementNode {
			parent = parent.Parent
		}
		if parent != nil && hasHint(dom.Attr(parent, "class"), clusterContainerHints) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) < 3 {
		return ""
	}
	var b strings.Builder
	for _, p := range kept {
		if text := dom.Text(p, cfg.textOptions()); text != "" {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String())
}

// lastResortParagraphs concatenates every paragraph unconditionally.
func lastResortParagraphs(clean *html.Node, cfg Config) string {
	var b strings.Builder
	for _, p := range paragraphSel.MatchAll(clean) {
		if text := dom.Text(p, cfg.textOptions()); text != "" {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String())
}
