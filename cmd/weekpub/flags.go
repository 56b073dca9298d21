package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// siteFlags holds flags shared by every command that touches the site tree.
type siteFlags struct {
	config string
	root   string
}

// addFlags holds flags for the add command.
type addFlags struct {
	site    siteFlags
	quality int
	quiet   bool
	verbose bool
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	site   siteFlags
	output string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	site siteFlags
	json bool
}

// addSiteFlags adds the shared site flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.root, "root", "", "site root directory (default: nearest dir with articles.json)")
}

// parseAddFlags parses add command flags and returns positional args.
func parseAddFlags(args []string, usageOut io.Writer) (*addFlags, []string, error) {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	f := &addFlags{}

	fs.IntVarP(&f.quality, "quality", "q", 0, "WebP quality 1-100 (0 = config value)")
	fs.BoolVar(&f.quiet, "quiet", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-step progress")
	addSiteFlags(fs, &f.site)

	fs.Usage = func() { printAddUsage(usageOut) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string, usageOut io.Writer) (*previewFlags, []string, error) {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	f := &previewFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "write HTML to file instead of stdout")
	addSiteFlags(fs, &f.site)

	fs.Usage = func() { printPreviewUsage(usageOut) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, usageOut io.Writer) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	f := &doctorFlags{}

	fs.BoolVar(&f.json, "json", false, "machine-readable output")
	addSiteFlags(fs, &f.site)

	fs.Usage = func() { printDoctorUsage(usageOut) }
	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	return f, nil
}

// usageError wraps a flag parsing error so it maps to ExitUsage.
func usageError(err error) error {
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
