package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/junyi/go-weekpub/internal/render"
	"github.com/junyi/go-weekpub/internal/source"
	"github.com/junyi/go-weekpub/internal/store"
)

// weekRefPattern matches store references like "week7" or "Week07".
var weekRefPattern = regexp.MustCompile(`(?i)^week(\d{1,2})$`)

const htmlFilePermissions = 0o644

// runPreview renders one article body to a standalone HTML page, from either
// a source markdown file or a weekNN reference into the articles store.
func runPreview(args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: preview needs a source markdown path or a weekNN reference", ErrUsage)
	}

	title, markdown, err := resolvePreviewInput(positional[0], flags, env)
	if err != nil {
		return err
	}

	page, err := render.New().Document(title, markdown)
	if err != nil {
		return err
	}

	if flags.output == "" {
		fmt.Fprint(env.Stdout, page)
		return nil
	}
	if err := os.WriteFile(flags.output, []byte(page), htmlFilePermissions); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	return nil
}

// resolvePreviewInput loads the article to render: weekNN references come
// from the articles store, anything else is treated as a source file path.
func resolvePreviewInput(arg string, flags *previewFlags, env *Environment) (title, markdown string, err error) {
	if m := weekRefPattern.FindStringSubmatch(arg); m != nil {
		return loadStoredArticle(m[1], flags)
	}

	src, err := source.Load(arg)
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Week%02d丨%s", src.Week, src.Title), src.Content, nil
}

// loadStoredArticle fetches an already-published article from articles.json.
func loadStoredArticle(weekDigits string, flags *previewFlags) (title, markdown string, err error) {
	week, err := strconv.Atoi(weekDigits)
	if err != nil {
		return "", "", fmt.Errorf("%w: bad week reference", ErrUsage)
	}

	cfg, err := loadSiteConfig(flags.site.config)
	if err != nil {
		return "", "", err
	}
	root, err := cfg.ResolveRoot(flags.site.root, ".")
	if err != nil {
		return "", "", err
	}
	doc, err := store.Load(filepath.Join(root, cfg.Site.ArticlesJSON))
	if err != nil {
		return "", "", err
	}

	for _, a := range doc.Articles {
		if a.Week == week {
			return fmt.Sprintf("Week%02d丨%s", a.Week, a.Title), a.Content, nil
		}
	}
	return "", "", fmt.Errorf("week %02d not found in articles store", week)
}
