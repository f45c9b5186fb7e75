package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-htmlindex/internal/assets"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmlindex <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Assemble a document from a manifest")
	fmt.Fprintln(w, "  serve      Serve the assembled document over HTTP")
	fmt.Fprintln(w, "  init       Write a starter manifest")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'htmlindex help <command>' for details on a specific command.")
}

// printManifestFlags prints the flags shared by build and serve.
func printManifestFlags(w io.Writer) {
	fmt.Fprintln(w, "Manifest:")
	fmt.Fprintln(w, "  -c, --config <name>       Manifest name or path (default \"htmlindex\")")
	fmt.Fprintln(w, "      --lang <tag>          Override document language")
	fmt.Fprintln(w, "      --title <s>           Override document title")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory for builtin styles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmlindex build [manifest] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assemble the document described by a manifest.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  manifest    Manifest name or path (same as --config)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file (default: stdout)")
	fmt.Fprintln(w, "      --pdf <path>          Also write a PDF snapshot")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	printManifestFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmlindex serve [manifest] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the assembled document at GET /.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default \":8080\")")
	fmt.Fprintln(w, "  -w, --watch               Reload when the manifest or body changes")
	fmt.Fprintln(w, "      --metrics             Expose Prometheus metrics at /metrics")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w)
	printManifestFlags(w)
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmlindex init [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a starter manifest into dir (default: current directory).")
	fmt.Fprintln(w, "Existing files are never overwritten.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintf(w, "  -t, --template <name>     Starter: %s (default %q)\n",
		strings.Join(assets.Starters(), ", "), assets.DefaultStarterName)
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory with starters/")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// printEnvironment prints the recognized environment variables.
func printEnvironment(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTMLINDEX_CONFIG           Manifest name or path")
	fmt.Fprintln(w, "  HTMLINDEX_LANG             Document language")
	fmt.Fprintln(w, "  HTMLINDEX_TITLE            Document title")
	fmt.Fprintln(w, "  HTMLINDEX_ASSET_PATH       Custom asset directory")
	fmt.Fprintln(w, "  HTMLINDEX_HIGHLIGHT_STYLE  Code highlight style for markdown bodies")
	fmt.Fprintln(w, "  HTMLINDEX_TIMEOUT          PDF generation timeout")
	fmt.Fprintln(w, "  HTMLINDEX_ADDR             Serve listen address")
	fmt.Fprintln(w, "  HTMLINDEX_LOG_FORMAT       Serve log format")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A .env file in the working directory is loaded first.")
	fmt.Fprintln(w, "Precedence: flags > environment > manifest.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	if !isCommand(args[0]) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
		fmt.Fprintln(env.Stdout)
		printEnvironment(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
		fmt.Fprintln(env.Stdout)
		printEnvironment(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: htmlindex version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: htmlindex help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	}
	return ExitSuccess
}
