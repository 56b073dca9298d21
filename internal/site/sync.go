// Package site mirrors the articles document into the inline JSON block of
// the site's index.html.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/net/html"

	"github.com/junyi/go-weekpub/internal/store"
)

// Sentinel errors for sync failures.
var (
	ErrIndexNotFound  = errors.New("index html not found")
	ErrMarkerNotFound = errors.New("cannot find <script id=\"articles-data\"> in index html")
	ErrClosingMarker  = errors.New("cannot find closing </script> for articles-data")
	ErrIndexWrite     = errors.New("failed to write index html")
)

// DataScriptID is the id attribute of the script element carrying the
// embedded articles JSON.
const DataScriptID = "articles-data"

const filePermissions = 0o644

// Sync replaces the body of the articles-data script element in the HTML
// file at path with the document's compact JSON. Every byte outside that
// span is preserved verbatim.
func Sync(path string, doc *store.Document) error {
	htmlBytes, err := os.ReadFile(path) // #nosec G304 -- path comes from resolved site config
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrIndexNotFound, path)
		}
		return fmt.Errorf("reading index html: %w", err)
	}

	start, end, err := FindDataSpan(htmlBytes)
	if err != nil {
		return err
	}

	inline, err := doc.CompactJSON()
	if err != nil {
		return err
	}
	// A literal </script> inside a JSON string value would terminate the
	// embedding tag early.
	inline = bytes.ReplaceAll(inline, []byte("</script>"), []byte(`<\/script>`))

	var out bytes.Buffer
	out.Grow(len(htmlBytes) - (end - start) + len(inline))
	out.Write(htmlBytes[:start])
	out.Write(inline)
	out.Write(htmlBytes[end:])

	if err := os.WriteFile(path, out.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexWrite, err)
	}
	return nil
}

// FindDataSpan returns the byte offsets of the content span of the
// articles-data script element: start is just after the opening tag, end is
// at the start of the closing </script>. Matching is done with the HTML
// tokenizer rather than a literal substring so attribute order and spacing
// inside the opening tag do not matter.
func FindDataSpan(doc []byte) (start, end int, err error) {
	z := html.NewTokenizer(bytes.NewReader(doc))

	offset := 0
	inData := false
	for {
		tt := z.Next()
		tokenStart := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if inData {
				return 0, 0, ErrClosingMarker
			}
			return 0, 0, ErrMarkerNotFound
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if inData || !bytes.Equal(name, []byte("script")) || !hasAttr {
				continue
			}
			if tagID(z) == DataScriptID {
				inData = true
				start = offset
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if inData && bytes.Equal(name, []byte("script")) {
				return start, tokenStart, nil
			}
		}
	}
}

// tagID returns the id attribute of the current start tag, or "".
func tagID(z *html.Tokenizer) string {
	for {
		key, val, more := z.TagAttr()
		if bytes.Equal(key, []byte("id")) {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}
