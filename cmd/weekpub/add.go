package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/junyi/go-weekpub/internal/config"
	"github.com/junyi/go-weekpub/internal/pipeline"
	"github.com/junyi/go-weekpub/internal/site"
	"github.com/junyi/go-weekpub/internal/source"
	"github.com/junyi/go-weekpub/internal/store"
	"github.com/junyi/go-weekpub/internal/webp"
)

// runAdd publishes one weekly article. Extraction and image conversion all
// happen before either output file is touched, so a bad source leaves
// articles.json and index.html unmodified.
func runAdd(args []string, env *Environment) error {
	flags, positional, err := parseAddFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: add needs exactly one source markdown path", ErrUsage)
	}
	configureLogger(env.Logger, flags.quiet, flags.verbose)

	cfg, err := loadSiteConfig(flags.site.config)
	if err != nil {
		return err
	}
	if flags.quality != 0 {
		cfg.Image.Quality = flags.quality
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
	}

	srcPath, err := filepath.Abs(positional[0])
	if err != nil {
		return fmt.Errorf("resolving source path: %w", err)
	}

	src, err := source.Load(srcPath)
	if err != nil {
		return err
	}
	env.Logger.Debug("parsed source", "week", src.Week, "title", src.Title)

	root, err := cfg.ResolveRoot(flags.site.root, filepath.Dir(srcPath))
	if err != nil {
		return err
	}
	env.Logger.Debug("resolved site root", "root", root)

	conv := &webp.Converter{
		Runner:  env.Runner,
		Tool:    cfg.Image.Tool,
		Quality: cfg.Image.Quality,
		Effort:  cfg.Image.Effort,
	}

	coverPath, err := pipeline.ResolveCover(root, src.CoverRef, src.Week, src.Title, cfg.Site.AssetsDir)
	if err != nil {
		return err
	}
	if !strings.EqualFold(filepath.Ext(coverPath), ".webp") {
		if coverPath, err = conv.Ensure(coverPath); err != nil {
			return err
		}
	}
	coverRef, err := pipeline.SiteRef(root, coverPath)
	if err != nil {
		return err
	}
	env.Logger.Debug("resolved cover", "cover", coverRef)

	content, err := pipeline.RewriteContent(src.Content, root, conv)
	if err != nil {
		return err
	}

	storePath := filepath.Join(root, cfg.Site.ArticlesJSON)
	doc, err := store.Load(storePath)
	if err != nil {
		return err
	}
	doc.Upsert(store.Article{
		Week:     src.Week,
		Title:    src.Title,
		Question: src.Question,
		Content:  content,
		Image:    coverRef,
	})
	if err := doc.Save(storePath); err != nil {
		return err
	}
	env.Logger.Debug("store updated", "path", storePath, "completed", doc.Completed)

	if err := site.Sync(filepath.Join(root, cfg.Site.IndexHTML), doc); err != nil {
		return err
	}

	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Updated week %02d (%s)\n", src.Week, src.Title)
		fmt.Fprintf(env.Stdout, "- cover: %s\n", coverRef)
		fmt.Fprintf(env.Stdout, "- completed: %d / %d\n", doc.Completed, doc.Total)
	}
	return nil
}

// loadSiteConfig loads the named config, or the defaults when none is given.
func loadSiteConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
