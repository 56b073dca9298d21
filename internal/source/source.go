// Package source loads a weekly article from its markdown file: the week
// number and title from the filename, and the cover reference, question
// blockquote, and body content from the text.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
)

// Sentinel errors for source parsing failures.
var (
	ErrSourceNotFound  = errors.New("source markdown not found")
	ErrBadFilename     = errors.New("unexpected source filename")
	ErrFrontMatter     = errors.New("failed to parse front matter")
	ErrNoQuestion      = errors.New("cannot find question blockquote")
	ErrNoDivider       = errors.New("cannot find content divider '---'")
	ErrEmptyContent    = errors.New("content is empty after divider '---'")
)

// Precompiled patterns.
var (
	// Week07丨标题.md — the 丨 separator is the one the site uses.
	weekFilePattern = regexp.MustCompile(`^Week(\d{2})丨(.+)\.md$`)

	// Standard image link on its own line: ![alt](path)
	imageLinkPattern = regexp.MustCompile(`^!\[[^\]]*\]\(([^)]+)\)$`)

	// Obsidian-style embed: ![[name]]
	imageEmbedPattern = regexp.MustCompile(`^!\[\[(.+?)\]\]$`)

	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// Source is a fully parsed weekly article file.
type Source struct {
	Week     int
	Title    string
	CoverRef string // as written in the markdown; may be empty
	Question string
	Content  string
}

// matter is the optional YAML front matter. Either field, when present,
// overrides what the filename or the blockquote would otherwise provide.
type matter struct {
	Title    string `yaml:"title"`
	Question string `yaml:"question"`
}

// Load reads and parses the weekly article at path.
func Load(path string) (*Source, error) {
	week, title, err := ParseFilename(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is the user's positional argument
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("reading source markdown: %w", err)
	}

	var fm matter
	body, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	md := strings.Trim(normalizeLineEndings(string(body)), "\n")
	lines := strings.Split(md, "\n")

	src := &Source{
		Week:     week,
		Title:    title,
		CoverRef: extractCover(lines),
	}
	if fm.Title != "" {
		src.Title = fm.Title
	}

	if fm.Question != "" {
		src.Question = strings.TrimSpace(fm.Question)
	} else {
		question, err := extractQuestion(lines)
		if err != nil {
			return nil, err
		}
		src.Question = question
	}

	content, err := extractContent(lines)
	if err != nil {
		return nil, err
	}
	src.Content = content

	return src, nil
}

// ParseFilename extracts the week number and title from a WeekNN丨title.md
// file name. Only the base name is inspected.
func ParseFilename(path string) (week int, title string, err error) {
	name := filepath.Base(path)
	m := weekFilePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, "", fmt.Errorf("%w: %s (expected WeekNN丨标题.md)", ErrBadFilename, name)
	}
	week, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, "", fmt.Errorf("%w: %s", ErrBadFilename, name)
	}
	return week, m[2], nil
}

// extractCover returns the first image reference found scanning top-down,
// or "" if there is none. Obsidian embeds are assumed to live under assets/.
func extractCover(lines []string) string {
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if m := imageLinkPattern.FindStringSubmatch(s); m != nil {
			return strings.TrimSpace(m[1])
		}
		if m := imageEmbedPattern.FindStringSubmatch(s); m != nil {
			return "./assets/" + strings.TrimSpace(m[1])
		}
	}
	return ""
}

// extractQuestion collects the first contiguous blockquote. Quoting stops at
// the first non-quote line after it begins; blank quoted lines are dropped.
func extractQuestion(lines []string) (string, error) {
	var quoted []string
	inQuote := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), ">") {
			inQuote = true
			stripped := strings.TrimLeft(line, " \t")[1:]
			quoted = append(quoted, strings.TrimLeft(stripped, " \t"))
		} else if inQuote {
			break
		}
	}

	kept := quoted[:0]
	for _, q := range quoted {
		if q != "" {
			kept = append(kept, q)
		}
	}
	question := strings.TrimSpace(strings.Join(kept, "\n"))
	if question == "" {
		return "", fmt.Errorf("%w (expected lines starting with '>')", ErrNoQuestion)
	}
	return question, nil
}

// extractContent returns everything after the first line that is exactly
// "---", trimmed of surrounding blank lines.
func extractContent(lines []string) (string, error) {
	dividerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			dividerIdx = i
			break
		}
	}
	if dividerIdx == -1 {
		return "", ErrNoDivider
	}

	content := strings.Trim(strings.Join(lines[dividerIdx+1:], "\n"), "\n")
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	return content, nil
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
