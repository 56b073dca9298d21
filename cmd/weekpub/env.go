package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"

	"github.com/junyi/go-weekpub/internal/webp"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *log.Logger
	Runner   webp.CommandRunner
	LookPath func(file string) (string, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: false,
		}),
		Runner:   &webp.ExecRunner{},
		LookPath: exec.LookPath,
	}
}

// configureLogger applies the quiet/verbose flags to the environment logger.
func configureLogger(logger *log.Logger, quiet, verbose bool) {
	switch {
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	case verbose:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}
