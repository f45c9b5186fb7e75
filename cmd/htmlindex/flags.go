package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags override manifest document fields.
type documentFlags struct {
	lang  string
	title string
}

// assetFlags holds asset-related flags.
type assetFlags struct {
	assetPath string // Override asset directory
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common   commonFlags
	output   string
	pdf      string
	timeout  string
	document documentFlags
	assets   assetFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	addr      string
	watch     bool
	metrics   bool
	logFormat string
	document  documentFlags
	assets    assetFlags
}

// initFlags holds all flags for the init command.
type initFlags struct {
	quiet    bool
	template string
	assets   assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "manifest name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

// addDocumentFlags adds document override flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.lang, "lang", "", "document language tag")
	fs.StringVar(&f.title, "title", "", "document title")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// newFlagSet creates a FlagSet that reports to w with the given usage.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseError wraps a flag parsing failure as a usage error. flag.ErrHelp
// passes through so the caller can exit cleanly.
func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	fs := newFlagSet("build", stderr, printBuildUsage)
	f := &buildFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default: stdout)")
	fs.StringVar(&f.pdf, "pdf", "", "also write a PDF snapshot to this file")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addAssetFlags(fs, &f.assets)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	fs := newFlagSet("serve", stderr, printServeUsage)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default \":8080\")")
	fs.BoolVarP(&f.watch, "watch", "w", false, "reload when the manifest or body changes")
	fs.BoolVar(&f.metrics, "metrics", false, "expose Prometheus metrics at /metrics")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addAssetFlags(fs, &f.assets)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string, stderr io.Writer) (*initFlags, []string, error) {
	fs := newFlagSet("init", stderr, printInitUsage)
	f := &initFlags{}

	fs.StringVarP(&f.template, "template", "t", "", "starter name (default \"minimal\")")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	addAssetFlags(fs, &f.assets)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}
