package main

import (
	"fmt"
	"io"

	encore "github.com/alnah/go-encore"
	"github.com/alnah/go-encore/internal/config"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: encore <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render page templates with Encore tags and assets")
	fmt.Fprintln(w, "  check      Validate entrypoints.json and manifest.json")
	fmt.Fprintln(w, "  integrity  Print subresource-integrity hashes for files")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'encore help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags shared by all commands.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Documents:")
	fmt.Fprintln(w, "      --entrypoints <path>  Path to entrypoints.json (default: entrypoints.json)")
	fmt.Fprintln(w, "      --manifest <path>     Path to manifest.json (default: manifest.json)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show details and document load failures")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ENCORE_CONFIG, ENCORE_ENTRYPOINTS, ENCORE_MANIFEST, ENCORE_OUTPUT_DIR,")
	fmt.Fprintln(w, "  ENCORE_WORKERS, ENCORE_PUBLIC_DIR")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit Codes:")
	fmt.Fprintln(w, "  0  Success")
	fmt.Fprintln(w, "  1  General error")
	fmt.Fprintln(w, "  2  Usage error (invalid flag, config or template)")
	fmt.Fprintln(w, "  3  I/O error (file not found, permission denied)")
	fmt.Fprintln(w, "  4  Document error (unavailable document, integrity mismatch)")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: encore render <template|dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render html/template files. Templates can call link_tags, script_tags")
	fmt.Fprintln(w, "and asset. A directory renders every *.html and *.tmpl file in it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (single file: stdout if unset)")
	fmt.Fprintln(w, "  -e, --entry <name>        Inject tags for an entrypoint (repeatable)")
	fmt.Fprintln(w, "  -m, --markdown <file>     Markdown exposed to templates as .Content")
	fmt.Fprintln(w, "      --rewrite-assets      Rewrite manifest keys in img/link/script/source")
	fmt.Fprintf(w, "  -w, --workers <n>         Parallel workers (0 = auto, max: %d)\n", config.MaxWorkers)
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES")
	fmt.Fprintln(w, "  encore render layout.html -e app")
	fmt.Fprintln(w, "  encore render page.tmpl -m README.md -o public/index.html")
	fmt.Fprintln(w, "  encore render ./templates/ -o ./dist/ --rewrite-assets")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: encore check [entry...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load both documents and list entrypoints. With --public-dir, verify")
	fmt.Fprintln(w, "that referenced files exist and match their integrity hashes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check:")
	fmt.Fprintln(w, "  -p, --public-dir <dir>    Web root the build paths resolve against")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printIntegrityUsage prints usage for the integrity command.
func printIntegrityUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: encore integrity <file...> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print a subresource-integrity hash for each file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Integrity:")
	fmt.Fprintf(w, "  -a, --algorithm <s>       sha256, sha384, sha512 (default: %s)\n", encore.DefaultIntegrityAlgorithm)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCommandUsage prints usage for cmd. Returns false for unknown commands.
func printCommandUsage(cmd string, w io.Writer) bool {
	switch cmd {
	case "render":
		printRenderUsage(w)
	case "check":
		printCheckUsage(w)
	case "integrity":
		printIntegrityUsage(w)
	case "version":
		fmt.Fprintln(w, "Usage: encore version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: encore help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	default:
		return false
	}
	return true
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	if !printCommandUsage(args[0], env.Stdout) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
