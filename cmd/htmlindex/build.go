package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	htmlindex "github.com/alnah/go-htmlindex"
	"github.com/alnah/go-htmlindex/internal/pipeline"
)

// File permission constants.
const (
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// runBuild assembles the manifest's document and writes it out.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	name, err := resolveManifestName(positional, flags.common.config, envCfg)
	if err != nil {
		return err
	}
	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}

	start := env.Now()

	cfg, err := loadManifest(name, envCfg, flags.document, flags.assets)
	if err != nil {
		return err
	}
	p, err := loadPage(ctx, cfg)
	if err != nil {
		return err
	}
	doc := p.builder().Build()

	// Status lines go to stderr when the document itself goes to stdout
	status := env.Stdout
	toStdout := flags.output == "" || flags.output == "-"
	if toStdout {
		status = env.Stderr
		if _, err := io.WriteString(env.Stdout, doc); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	} else {
		if err := writeOutput(flags.output, []byte(doc)); err != nil {
			return err
		}
		report(status, flags.common, flags.output, env.Now().Sub(start))
	}

	if flags.pdf == "" {
		return nil
	}

	pdfStart := env.Now()
	// The browser loads the document from a temp file, so relative
	// references must point back at the manifest directory.
	printable, err := pipeline.ResolveForPrint(doc, cfg.Dir())
	if err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	renderer := env.NewRenderer(timeout)
	defer func() { _ = renderer.Close() }()

	data, err := renderer.ToPDF(ctx, printable, pdfOptions(cfg.PDF))
	if err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	if err := writeOutput(flags.pdf, data); err != nil {
		return err
	}
	report(status, flags.common, flags.pdf, env.Now().Sub(pdfStart))
	return nil
}

// resolveTimeout determines the PDF timeout.
// Priority: --timeout flag > HTMLINDEX_TIMEOUT > DefaultPDFTimeout.
func resolveTimeout(flagValue string, env *envConfig) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid --timeout %q: %v", ErrUsage, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, flagValue)
		}
		return d, nil
	}
	if env.Timeout > 0 {
		return env.Timeout, nil
	}
	return htmlindex.DefaultPDFTimeout, nil
}

// writeOutput writes data to path, replacing any existing file.
func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, filePermissions); err != nil { // #nosec G306 -- output is meant to be shared
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// report prints a status line for a written file.
func report(w io.Writer, common commonFlags, path string, elapsed time.Duration) {
	switch {
	case common.quiet:
	case common.verbose:
		fmt.Fprintf(w, "Created %s (%v)\n", path, elapsed.Round(time.Millisecond))
	default:
		fmt.Fprintf(w, "Created %s\n", path)
	}
}
