// Command weekpub ingests a weekly markdown article, converts its raster
// assets to WebP, upserts the article into articles.json, and mirrors the
// document into the inline JSON block of index.html.
package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], DefaultEnv()))
}

// run dispatches the subcommand and returns the process exit code.
func run(args []string, env *Environment) int {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "add":
		return report(runAdd(args[1:], env), env)
	case "preview":
		return report(runPreview(args[1:], env), env)
	case "doctor":
		return runDoctorCmd(args[1:], env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "weekpub %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(args[1:], env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// report prints the error, if any, and maps it to an exit code.
func report(err error, env *Environment) int {
	if err != nil {
		fmt.Fprintf(env.Stderr, "ERROR: %v\n", err)
	}
	return exitCodeFor(err)
}
