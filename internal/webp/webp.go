// Package webp produces compressed WebP counterparts of raster images by
// driving the cwebp command-line encoder.
package webp

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Sentinel errors for encoder failures.
var (
	ErrToolNotFound = errors.New("webp encoder not found")
	ErrToolFailed   = errors.New("webp encoder failed")
)

// Encoding defaults; quality is overridable, effort matches the site's
// original conversion settings.
const (
	DefaultQuality = 82
	DefaultEffort  = 6
)

const dirPermissions = 0o750

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Converter converts raster images to WebP via an external encoder.
type Converter struct {
	Runner  CommandRunner
	Tool    string
	Quality int
	Effort  int
}

// NewConverter creates a Converter with a real command runner.
func NewConverter(tool string, quality, effort int) *Converter {
	if tool == "" {
		tool = "cwebp"
	}
	return &Converter{Runner: &ExecRunner{}, Tool: tool, Quality: quality, Effort: effort}
}

// Ensure produces a same-stem .webp next to src if one does not already
// exist, and returns the output path. An existing output is returned as-is
// without invoking the encoder.
func (c *Converter) Ensure(src string) (string, error) {
	out := strings.TrimSuffix(src, filepath.Ext(src)) + ".webp"
	if fileExists(out) {
		return out, nil
	}

	if err := os.MkdirAll(filepath.Dir(out), dirPermissions); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	args := []string{
		"-q", strconv.Itoa(c.Quality),
		"-m", strconv.Itoa(c.Effort),
		"-mt",
		"-metadata", "none",
		src,
		"-o", out,
	}
	_, stderr, err := c.Runner.Run(c.Tool, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s (install the webp package)", ErrToolNotFound, c.Tool)
		}
		return "", fmt.Errorf("%w: %s %s: %s: %v", ErrToolFailed, c.Tool, strings.Join(args, " "), strings.TrimSpace(stderr), err)
	}

	return out, nil
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
