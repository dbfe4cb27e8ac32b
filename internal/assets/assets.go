package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// Names of the built-in assets.
const (
	DefaultStyleName     = "default"
	DocumentTemplateName = "document"
)

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName rejects names with separators, dots or traversal.
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)

// AssetLoader finds styles and templates by bare name, without extension.
// Missing assets are reported as ErrStyleNotFound or ErrTemplateNotFound.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)

	// Styles lists the style names LoadStyle accepts, sorted.
	Styles() []string
}

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded style.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an embedded template.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// ValidateAssetName accepts ASCII letters, digits, '-' and '_' only, which
// rules out separators, extensions and traversal.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	valid := func(r rune) bool {
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_'
	}
	if strings.IndexFunc(name, func(r rune) bool { return !valid(r) }) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// kind is one family of assets: where it lives and how a miss is reported.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file is the slash-separated path of name inside an asset tree.
func (k kind) file(name string) string {
	return path.Join(k.dir, name+k.ext)
}

// readAsset reads an already validated name from fsys.
func readAsset(fsys fs.FS, k kind, name string) (string, error) {
	data, err := fs.ReadFile(fsys, k.file(name))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %w", ErrAssetRead, err)
	}
	return string(data), nil
}

// listStyles returns the sorted bare names of the styles in fsys.
func listStyles(fsys fs.FS) []string {
	matches, _ := fs.Glob(fsys, styleKind.file("*"))
	return styleNames(matches)
}

// styleNames strips directories and the .css extension, then sorts and
// removes duplicates.
func styleNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, strings.TrimSuffix(path.Base(p), styleKind.ext))
	}
	slices.Sort(names)
	return slices.Compact(names)
}
