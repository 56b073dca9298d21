package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/junyi/go-weekpub/internal/config"
	"github.com/junyi/go-weekpub/internal/site"
	"github.com/junyi/go-weekpub/internal/store"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Encoder  encoderInfo `json:"encoder"`
	Site     siteInfo    `json:"site"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// encoderInfo holds WebP encoder detection results.
type encoderInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// siteInfo holds site tree check results.
type siteInfo struct {
	Root       string `json:"root,omitempty"`
	Articles   int    `json:"articles"`
	StoreOK    bool   `json:"store_ok"`
	IndexOK    bool   `json:"index_ok"`
	DataMarker bool   `json:"data_marker"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		fmt.Fprintf(env.Stderr, "ERROR: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(flags, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitError
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(flags *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{Status: "ready"}

	cfg, err := loadSiteConfig(flags.site.config)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Status = "errors"
		return result
	}

	checkEncoder(result, cfg.Image.Tool, env)
	checkSite(result, cfg, flags.site.root)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkEncoder detects the WebP encoder and its version.
func checkEncoder(result *doctorResult, tool string, env *Environment) {
	path, err := env.LookPath(tool)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found in PATH (install the webp package)", tool))
		return
	}
	result.Encoder.Found = true
	result.Encoder.Path = path

	stdout, stderr, err := env.Runner.Run(tool, "-version")
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s -version failed: %v", tool, err))
		return
	}
	version := strings.TrimSpace(stdout)
	if version == "" {
		version = strings.TrimSpace(stderr)
	}
	if i := strings.IndexByte(version, '\n'); i != -1 {
		version = version[:i]
	}
	result.Encoder.Version = version
}

// checkSite verifies the site root, the articles store, and the index marker.
func checkSite(result *doctorResult, cfg *config.Config, rootFlag string) {
	root, err := cfg.ResolveRoot(rootFlag, ".")
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Site.Root = root

	doc, err := store.Load(filepath.Join(root, cfg.Site.ArticlesJSON))
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else {
		result.Site.StoreOK = true
		result.Site.Articles = len(doc.Articles)
		if doc.Completed != len(doc.Articles) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("completed=%d does not match article count %d", doc.Completed, len(doc.Articles)))
		}
	}

	indexPath := filepath.Join(root, cfg.Site.IndexHTML)
	htmlBytes, err := os.ReadFile(indexPath) // #nosec G304 -- path comes from resolved site config
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read %s: %v", indexPath, err))
		return
	}
	result.Site.IndexOK = true

	if _, _, err := site.FindDataSpan(htmlBytes); err != nil {
		if errors.Is(err, site.ErrClosingMarker) {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Errors = append(result.Errors,
				fmt.Sprintf("no <script id=%q> element in %s", site.DataScriptID, cfg.Site.IndexHTML))
		}
		return
	}
	result.Site.DataMarker = true
}

// printDoctorResult prints a human-readable diagnostic report.
func printDoctorResult(w io.Writer, result *doctorResult) {
	fmt.Fprintf(w, "Status: %s\n\n", result.Status)

	if result.Encoder.Found {
		fmt.Fprintf(w, "Encoder: %s", result.Encoder.Path)
		if result.Encoder.Version != "" {
			fmt.Fprintf(w, " (%s)", result.Encoder.Version)
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "Encoder: not found")
	}

	if result.Site.Root != "" {
		fmt.Fprintf(w, "Site root: %s\n", result.Site.Root)
		fmt.Fprintf(w, "Articles store: ok=%v articles=%d\n", result.Site.StoreOK, result.Site.Articles)
		fmt.Fprintf(w, "Index: ok=%v data marker=%v\n", result.Site.IndexOK, result.Site.DataMarker)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "\nWARNING: %s\n", warning)
	}
	for _, errMsg := range result.Errors {
		fmt.Fprintf(w, "\nERROR: %s\n", errMsg)
	}
}
