// Package store reads, updates, and writes the articles.json document that
// backs the site. The document is small enough to rewrite in full on every
// invocation, so there is no incremental update path.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// Sentinel errors for store operations.
var (
	ErrStoreNotFound = errors.New("articles store not found")
	ErrStoreParse    = errors.New("failed to parse articles store")
	ErrStoreWrite    = errors.New("failed to write articles store")
)

// filePermissions matches the site's checked-in files (rw-r--r--).
const filePermissions = 0o644

// Article is one week's structured content entry.
type Article struct {
	Week     int    `json:"week"`
	Title    string `json:"title"`
	Question string `json:"question"`
	Content  string `json:"content"`
	Image    string `json:"image"`
}

// Document is the full articles.json payload. Total is maintained by hand in
// the store file and is carried through untouched.
type Document struct {
	Articles  []Article `json:"articles"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from resolved site config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, path)
		}
		return nil, fmt.Errorf("reading articles store: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreParse, err)
	}
	return &doc, nil
}

// Upsert replaces the article with the same week, or appends if none matches.
// The new record fully replaces the old one; there is no field merge.
// Afterwards the collection is sorted ascending by week and Completed is set
// to the collection size.
func (d *Document) Upsert(a Article) {
	replaced := false
	for i := range d.Articles {
		if d.Articles[i].Week == a.Week {
			d.Articles[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		d.Articles = append(d.Articles, a)
	}

	sort.Slice(d.Articles, func(i, j int) bool {
		return d.Articles[i].Week < d.Articles[j].Week
	})
	d.Completed = len(d.Articles)
}

// Save writes the document to path: two-space indent, no HTML escaping so
// Chinese text and markdown stay readable in diffs, trailing newline.
func (d *Document) Save(path string) error {
	data, err := d.marshal(true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	return nil
}

// CompactJSON serializes the document for embedding in HTML: single line,
// no HTML escaping, no trailing newline.
func (d *Document) CompactJSON() ([]byte, error) {
	return d.marshal(false)
}

// marshal serializes the document. Indented output keeps the trailing
// newline that json.Encoder emits; compact output has it trimmed.
func (d *Document) marshal(indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding articles store: %w", err)
	}

	data := buf.Bytes()
	if !indent {
		data = bytes.TrimSuffix(data, []byte("\n"))
	}
	return data, nil
}
