// Command plainrfc converts plain line markup into xml2rfc v2 XML.
//
// With no arguments it reads source.txt and writes source.xml in the working
// directory. Given file arguments, it converts each to <name>.xml.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/plainrfc/internal/config"
	"github.com/dgallion1/plainrfc/internal/frontmatter"
	"github.com/dgallion1/plainrfc/internal/parser"
	"github.com/dgallion1/plainrfc/internal/pipeline"
	"github.com/dgallion1/plainrfc/internal/stats"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("plainrfc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	front := fs.String("front", cfg.FrontMatterFile, "YAML front matter `file` (default: built-in)")
	output := fs.String("o", "", "output `file` (single input only)")
	workers := fs.Int("workers", cfg.WorkerCount, "concurrent conversions for multiple inputs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg.FrontMatterFile = *front

	log := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}
	meta, err := frontmatter.Load(cfg.FrontMatterFile)
	if err != nil {
		log.Error("invalid front matter", "error", err)
		return 1
	}

	var jobs []pipeline.Job
	switch inputs := fs.Args(); {
	case len(inputs) == 0:
		out := cfg.OutputFile
		if *output != "" {
			out = *output
		}
		jobs = []pipeline.Job{{Input: cfg.InputFile, Output: out}}
	case *output != "":
		if len(inputs) > 1 {
			fmt.Fprintln(stderr, "plainrfc: -o needs exactly one input")
			return 2
		}
		jobs = []pipeline.Job{{Input: inputs[0], Output: *output}}
	default:
		jobs = pipeline.JobsFor(inputs)
	}

	opts := parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}
	runner := pipeline.NewRunner(meta, opts, *workers, stats.NewLatency(cfg.StatsWindow), log)

	code := 0
	for _, res := range runner.Run(ctx, jobs) {
		if !res.OK() {
			code = 1
		}
	}
	return code
}
