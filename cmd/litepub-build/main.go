// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

// litepub-build resolves, validates, and filters a normalized document
// tree against an artifact registry, producing the render-ready tree
// for a build target plus an audit report of every decision.
//
// The input is a document tree in Pandoc JSON form (the normalizer's
// output); the registry is an AARC snapshot file. Output is the
// filtered tree as JSON, optionally accompanied by a compressed build
// bundle carrying the tree, reports, and provenance.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/litepub-foundation/litepub/lib/build"
	"github.com/litepub-foundation/litepub/lib/bundle"
	"github.com/litepub-foundation/litepub/lib/doctree"
	"github.com/litepub-foundation/litepub/lib/filter"
	"github.com/litepub-foundation/litepub/lib/registry"
	"github.com/litepub-foundation/litepub/lib/resolve"
	"github.com/litepub-foundation/litepub/lib/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		docPath      string
		registryPath string
		buildTarget  string
		renderTarget string
		draft        bool
		allowRaw     bool
		strictRows   bool
		configPath   string
		outPath      string
		bundlePath   string
		reportJSON   bool
		logLevel     string
	)

	flags := pflag.NewFlagSet("litepub-build", pflag.ContinueOnError)
	flags.StringVar(&docPath, "doc", "", "input document tree (Pandoc JSON)")
	flags.StringVar(&registryPath, "registry", "", "AARC registry snapshot file")
	flags.StringVar(&buildTarget, "build-target", filter.TargetInternal, "build target: internal, external, dossier")
	flags.StringVar(&renderTarget, "render-target", filter.RenderPDF, "render target: pdf, html, md, rst")
	flags.BoolVar(&draft, "draft", false, "draft resolution: skip unknown wrapper ids (internal target only)")
	flags.BoolVar(&allowRaw, "allow-raw", false, "permit raw blocks and inlines in the document")
	flags.BoolVar(&strictRows, "strict-row-keys", false, "require every simple-table row to carry every column key")
	flags.StringVar(&configPath, "filter-config", "", "YAML filter configuration (defaults built in)")
	flags.StringVar(&outPath, "out", "", "write the filtered tree to this file (default: stdout)")
	flags.StringVar(&bundlePath, "bundle", "", "write a compressed build bundle to this file")
	flags.BoolVar(&reportJSON, "report-json", false, "print the report as JSON instead of a table")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	// Handle --version before flag parsing to match other Litepub binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("litepub-build")
		return 0
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if docPath == "" || registryPath == "" {
		fmt.Fprintln(os.Stderr, "error: --doc and --registry are required")
		flags.Usage()
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}))

	result, err := runBuild(buildOptions{
		docPath:      docPath,
		registryPath: registryPath,
		buildTarget:  buildTarget,
		renderTarget: renderTarget,
		draft:        draft,
		allowRaw:     allowRaw,
		strictRows:   strictRows,
		configPath:   configPath,
		logger:       logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if reportJSON {
		if err := printReportJSON(result); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	} else {
		printReport(os.Stderr, result)
	}

	if err := writeOutputs(result, outPath, bundlePath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

type buildOptions struct {
	docPath      string
	registryPath string
	buildTarget  string
	renderTarget string
	draft        bool
	allowRaw     bool
	strictRows   bool
	configPath   string
	logger       *slog.Logger
}

func runBuild(opts buildOptions) (*build.Result, error) {
	ctx, err := filter.NewBuildContext(opts.buildTarget, opts.renderTarget, !opts.draft)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.docPath)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	doc, err := doctree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	snap, err := registry.Load(opts.registryPath)
	if err != nil {
		return nil, err
	}

	filterCfg := filter.DefaultConfig()
	if opts.configPath != "" {
		filterCfg, err = filter.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	return build.Build(doc, snap, build.Options{
		Context: ctx,
		Resolution: resolve.Config{
			AllowRawPandoc: opts.allowRaw,
			StrictRowKeys:  opts.strictRows,
		},
		Filter:   filterCfg,
		AllowRaw: opts.allowRaw,
		Logger:   opts.logger,
	})
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func writeOutputs(result *build.Result, outPath, bundlePath string) error {
	tree, err := json.Marshal(result.Doc)
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	if outPath == "" {
		fmt.Println(string(tree))
	} else if err := os.WriteFile(outPath, append(tree, '\n'), 0o644); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}

	if bundlePath != "" {
		b, err := bundle.FromResult(result)
		if err != nil {
			return err
		}
		if err := bundle.WriteFile(bundlePath, b); err != nil {
			return err
		}
	}
	return nil
}

func printReportJSON(result *build.Result) error {
	out := map[string]any{
		"provenance": result.Provenance,
		"resolution": result.Resolution.Entries,
		"filter":     result.Filter.Entries,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	resolvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	changedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

func actionStyle(action string) lipgloss.Style {
	switch action {
	case resolve.ActionResolved:
		return resolvedStyle
	case resolve.ActionSkipped:
		return skippedStyle
	case filter.ActionRemoved:
		return removedStyle
	default:
		return changedStyle
	}
}

// printReport renders the combined report as a human-readable table on
// w. Stable codes stay verbatim so the output remains greppable.
func printReport(w *os.File, result *build.Result) {
	p := result.Provenance
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf(
		"build %s/%s (run %s)", p.BuildTarget, p.RenderTarget, p.Run.RunID)))

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, e := range result.Resolution.Entries {
		detail := e.Spec
		if e.Message != "" {
			detail = e.Message
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n",
			actionStyle(e.Action).Render(e.Action), e.SemanticID, dimStyle.Render(detail))
	}
	for _, e := range result.Filter.Entries {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n",
			actionStyle(e.Action).Render(e.Action), e.SemanticID, dimStyle.Render(e.ReasonCode))
	}
	tw.Flush()

	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf(
		"%d resolved, %d filter action(s), %d wrapper(s)",
		len(result.Resolution.Resolved()), result.Filter.Len(), result.Validation.WrapperCount)))
}
