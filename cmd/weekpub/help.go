package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: weekpub <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add        Publish a weekly article into the site data")
	fmt.Fprintln(w, "  preview    Render an article body to HTML for a local look")
	fmt.Fprintln(w, "  doctor     Check the environment and site tree")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'weekpub help <command>' for details on a specific command.")
}

// printAddUsage prints usage for the add command.
func printAddUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: weekpub add <source.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Publish a weekly article: convert referenced images to WebP, upsert")
	fmt.Fprintln(w, "the article into articles.json, and sync the inline JSON in index.html.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source.md    Source markdown named WeekNN丨标题.md")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -q, --quality <n>     WebP quality 1-100 (default: 82)")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
	fmt.Fprintln(w, "      --root <dir>      Site root directory")
	fmt.Fprintln(w, "      --quiet           Only show errors")
	fmt.Fprintln(w, "  -v, --verbose         Show per-step progress")
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: weekpub preview <source.md | weekNN> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render an article's markdown body to a standalone HTML page.")
	fmt.Fprintln(w, "Accepts either a source markdown file or a weekNN reference into")
	fmt.Fprintln(w, "the articles store (e.g. 'week07').")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>   Write HTML to file instead of stdout")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
	fmt.Fprintln(w, "      --root <dir>      Site root directory")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: weekpub doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the WebP encoder is installed and the site tree is usable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json            Machine-readable output")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
	fmt.Fprintln(w, "      --root <dir>      Site root directory")
}

// runHelp shows help for a specific command, or general usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}
	switch args[0] {
	case "add":
		printAddUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: weekpub version")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: weekpub help [command]")
	default:
		fmt.Fprintf(env.Stdout, "unknown command: %s\n\n", args[0])
		printUsage(env.Stdout)
	}
}
