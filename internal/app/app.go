// Package app wires the pipeline together: resolve the input to HTML
// bytes, parse once, extract, optionally collect metadata, render.
package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/webtext/internal/cache"
	"github.com/hyperifyio/webtext/internal/dom"
	"github.com/hyperifyio/webtext/internal/extract"
	"github.com/hyperifyio/webtext/internal/fetch"
	"github.com/hyperifyio/webtext/internal/metadata"
	"github.com/hyperifyio/webtext/internal/output"
)

// Config is the resolved run configuration after CLI flags and the
// optional config file have been merged.
type Config struct {
	// Input is a URL, a file path, or raw HTML; Run detects which.
	Input      string
	OutputPath string
	Format     output.Format

	IncludeComments bool
	IncludeTables   bool
	IncludeLinks    bool
	IncludeImages   bool

	ExtractMetadata  bool
	MinExtractedSize int

	Timeout     time.Duration
	UserAgent   string
	CacheDir    string
	CacheMaxAge time.Duration
}

// Run executes one extraction end to end. Output goes to OutputPath,
// or stdout when it is empty.
func Run(ctx context.Context, cfg Config) error {
	htmlBytes, sourceURL, err := resolveInput(ctx, cfg)
	if err != nil {
		return err
	}

	doc, err := dom.Parse(bytes.NewReader(htmlBytes))
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}

	res, err := extract.Extract(doc, extract.Config{
		IncludeComments:  cfg.IncludeComments,
		IncludeTables:    cfg.IncludeTables,
		IncludeLinks:     cfg.IncludeLinks,
		IncludeImages:    cfg.IncludeImages,
		MinExtractedSize: cfg.MinExtractedSize,
	})
	if err != nil {
		return err
	}
	if err := gateResult(res.Content, cfg.MinExtractedSize); err != nil {
		return err
	}
	log.Info().Str("strategy", res.Strategy).Int("chars", len(res.Content)).Msg("extraction complete")

	article := output.Article{Content: res.Content}
	if cfg.ExtractMetadata {
		meta := metadata.Extract(doc)
		article.Title = meta.Title
		article.Author = meta.Author
		article.Date = meta.Date
		article.Description = meta.Description
		article.SiteName = meta.SiteName
		article.Categories = meta.Categories
		article.URL = sourceURL
	}

	return writeArticle(article, cfg)
}

// gateResult enforces the minimum size on whatever the orchestrator
// returned; the fallback strategy inside it never self-gates.
func gateResult(content string, minSize int) error {
	if content == "" || len(content) < minSize {
		return fmt.Errorf("%w: extracted content too short: %d chars", extract.ErrExtraction, len(content))
	}
	return nil
}

// resolveInput turns cfg.Input into HTML bytes. URLs are fetched,
// existing file paths are read, anything else is treated as raw HTML.
func resolveInput(ctx context.Context, cfg Config) (body []byte, sourceURL string, err error) {
	in := strings.TrimSpace(cfg.Input)
	if in == "" {
		return nil, "", fmt.Errorf("no input given")
	}
	if strings.HasPrefix(in, "http://") || strings.HasPrefix(in, "https://") {
		client := &fetch.Client{
			UserAgent:         cfg.UserAgent,
			MaxAttempts:       3,
			PerRequestTimeout: cfg.Timeout,
		}
		if cfg.CacheDir != "" {
			client.Cache = &cache.PageCache{Dir: cfg.CacheDir, MaxAge: cfg.CacheMaxAge}
		}
		body, err = client.Get(ctx, in)
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", in, err)
		}
		return body, in, nil
	}
	if info, statErr := os.Stat(in); statErr == nil && !info.IsDir() {
		body, err = os.ReadFile(in)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", in, err)
		}
		return body, "", nil
	}
	if strings.Contains(in, "<") {
		return []byte(in), "", nil
	}
	return nil, "", fmt.Errorf("input is neither a URL, an existing file, nor HTML: %q", in)
}

func writeArticle(article output.Article, cfg Config) error {
	if cfg.Format == output.FormatPDF {
		if cfg.OutputPath == "" {
			return fmt.Errorf("pdf output requires --output")
		}
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", cfg.OutputPath, err)
		}
		if err := output.WritePDF(f, article); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	rendered, err := output.Render(article, cfg.Format)
	if err != nil {
		return err
	}
	if cfg.OutputPath == "" {
		_, err = os.Stdout.Write(rendered)
		return err
	}
	if err := os.WriteFile(cfg.OutputPath, rendered, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.OutputPath, err)
	}
	log.Info().Str("path", cfg.OutputPath).Msg("output written")
	return nil
}
