package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/webtext/internal/app"
	"github.com/hyperifyio/webtext/internal/extract"
	"github.com/hyperifyio/webtext/internal/output"
)

type options struct {
	URL  string `short:"u" long:"url" description:"URL to fetch and extract"`
	File string `short:"f" long:"file" description:"Local HTML file to extract"`

	OutputFormat string `short:"o" long:"output-format" default:"txt" choice:"txt" choice:"html" choice:"json" choice:"xml" choice:"pdf" description:"Output format"`
	OutputPath   string `short:"O" long:"output" description:"Write output to this file instead of stdout"`

	IncludeComments bool `long:"include-comments" description:"Keep HTML comments in the extracted text"`
	IncludeTables   bool `long:"include-tables" description:"Keep table summaries in the extracted text"`
	IncludeLinks    bool `long:"include-links" description:"Annotate anchor text with the link target"`
	IncludeImages   bool `long:"include-images" description:"Emit image placeholders"`

	ExtractMetadata  bool `short:"m" long:"extract-metadata" description:"Collect title, author, date and other page metadata"`
	MinExtractedSize int  `long:"min-extracted-size" default:"250" description:"Minimum accepted content size in bytes"`

	TimeoutSeconds int    `short:"t" long:"timeout" default:"30" description:"HTTP timeout in seconds"`
	UserAgent      string `long:"user-agent" default:"Mozilla/5.0 (compatible; webtext/1.0)" description:"User agent for HTTP requests"`
	CacheDir       string `long:"cache-dir" env:"WEBTEXT_CACHE_DIR" description:"Directory for the on-disk page cache (disabled when empty)"`

	ConfigPath string `short:"c" long:"config" env:"WEBTEXT_CONFIG" description:"Path to a YAML config file"`
	Verbose    bool   `short:"v" long:"verbose" description:"Verbose logging"`

	Args struct {
		Input string `positional-arg-name:"input" description:"URL, file path, or raw HTML"`
	} `positional-args:"yes"`
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if opts.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := buildConfig(opts, parser)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}

	if err := app.Run(context.Background(), cfg); err != nil {
		if errors.Is(err, extract.ErrExtraction) {
			log.Error().Err(err).Msg("no usable content extracted")
		} else {
			log.Error().Err(err).Msg("run failed")
		}
		os.Exit(1)
	}
}

func buildConfig(opts options, parser *flags.Parser) (app.Config, error) {
	input, err := pickInput(opts)
	if err != nil {
		return app.Config{}, err
	}

	cfg := app.Config{
		Input:            input,
		OutputPath:       opts.OutputPath,
		IncludeComments:  opts.IncludeComments,
		IncludeTables:    opts.IncludeTables,
		IncludeLinks:     opts.IncludeLinks,
		IncludeImages:    opts.IncludeImages,
		ExtractMetadata:  opts.ExtractMetadata,
		MinExtractedSize: opts.MinExtractedSize,
		Timeout:          time.Duration(opts.TimeoutSeconds) * time.Second,
		UserAgent:        opts.UserAgent,
		CacheDir:         opts.CacheDir,
	}
	cfg.Format, err = output.ParseFormat(opts.OutputFormat)
	if err != nil {
		return app.Config{}, err
	}

	if opts.ConfigPath != "" {
		fc, err := app.LoadFileConfig(opts.ConfigPath)
		if err != nil {
			return app.Config{}, err
		}
		dropExplicit(&fc, parser)
		if err := fc.Apply(&cfg); err != nil {
			return app.Config{}, err
		}
	}
	return cfg, nil
}

// dropExplicit clears file settings for any flag the user passed on
// the command line, so the precedence is flags over file over
// defaults.
func dropExplicit(fc *app.FileConfig, parser *flags.Parser) {
	isSet := func(name string) bool {
		opt := parser.FindOptionByLongName(name)
		return opt != nil && opt.IsSet()
	}
	if isSet("output-format") {
		fc.OutputFormat = nil
	}
	if isSet("include-comments") {
		fc.IncludeComments = nil
	}
	if isSet("include-tables") {
		fc.IncludeTables = nil
	}
	if isSet("include-links") {
		fc.IncludeLinks = nil
	}
	if isSet("include-images") {
		fc.IncludeImages = nil
	}
	if isSet("extract-metadata") {
		fc.ExtractMetadata = nil
	}
	if isSet("min-extracted-size") {
		fc.MinExtractedSize = nil
	}
	if isSet("timeout") {
		fc.TimeoutSeconds = nil
	}
	if isSet("user-agent") {
		fc.UserAgent = nil
	}
	if isSet("cache-dir") {
		fc.CacheDir = nil
	}
}

func pickInput(opts options) (string, error) {
	set := 0
	for _, s := range []string{opts.URL, opts.File, opts.Args.Input} {
		if s != "" {
			set++
		}
	}
	if set == 0 {
		return "", fmt.Errorf("no input: pass --url, --file, or a positional argument")
	}
	if set > 1 {
		return "", fmt.Errorf("multiple inputs given; pass exactly one of --url, --file, or a positional argument")
	}
	switch {
	case opts.URL != "":
		return opts.URL, nil
	case opts.File != "":
		return opts.File, nil
	default:
		return opts.Args.Input, nil
	}
}
