// Package pipeline resolves the cover image for a weekly article and
// rewrites local raster asset references in its content to their WebP
// counterparts.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrCoverNotFound means no cover image could be resolved for the article.
var ErrCoverNotFound = errors.New("cannot find cover image")

// Local asset reference with a raster extension: ./assets/name.png|jpg|jpeg.
// Stops at whitespace, closing paren, and quotes so it matches inside
// markdown links and HTML attributes alike.
var contentAssetPattern = regexp.MustCompile(`(?i)(\./assets/[^\s)"']+)\.(png|jpe?g)`)

// coverExtensions is the fixed preference order when searching the assets
// directory for a cover.
var coverExtensions = []string{".webp", ".png", ".jpg", ".jpeg"}

// Encoder produces a WebP counterpart for a raster image path.
type Encoder interface {
	Ensure(src string) (string, error)
}

// ResolveCover picks the cover image file for an article. A cover reference
// extracted from the markdown wins when it points at an existing local file;
// otherwise the assets directory is searched for WeekNN丨title with each
// known extension in preference order.
func ResolveCover(root, coverRef string, week int, title, assetsDir string) (string, error) {
	if p := resolveLocalPath(root, coverRef); p != "" && fileExists(p) {
		return p, nil
	}

	stem := fmt.Sprintf("Week%02d丨%s", week, title)
	for _, ext := range coverExtensions {
		p := filepath.Join(root, assetsDir, stem+ext)
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s/ for %s (tried webp/png/jpg/jpeg)", ErrCoverNotFound, assetsDir, stem)
}

// SiteRef converts an absolute path under root into the ./relative/path form
// stored in the articles document.
func SiteRef(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("relativizing %s against site root: %w", path, err)
	}
	return "./" + filepath.ToSlash(rel), nil
}

// RewriteContent replaces every local raster asset reference in content with
// its WebP counterpart, converting on demand. References whose source file
// does not exist are left byte-for-byte unchanged. A conversion failure
// aborts the whole rewrite.
func RewriteContent(content, root string, enc Encoder) (string, error) {
	var convErr error

	rewritten := contentAssetPattern.ReplaceAllStringFunc(content, func(match string) string {
		if convErr != nil {
			return match
		}
		src := resolveLocalPath(root, match)
		if src == "" || !fileExists(src) {
			return match
		}
		out, err := enc.Ensure(src)
		if err != nil {
			convErr = err
			return match
		}
		ref, err := SiteRef(root, out)
		if err != nil {
			convErr = err
			return match
		}
		return ref
	})

	if convErr != nil {
		return "", convErr
	}
	return rewritten, nil
}

// resolveLocalPath maps a ./relative reference to an absolute path under
// root. Anything else (URLs, absolute paths, empty) resolves to "".
func resolveLocalPath(root, ref string) string {
	if !strings.HasPrefix(ref, "./") {
		return ""
	}
	return filepath.Join(root, filepath.FromSlash(ref[2:]))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
