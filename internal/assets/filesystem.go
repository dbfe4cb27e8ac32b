package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves assets from a directory laid out like the
// embedded tree.
type FilesystemLoader struct {
	dir  string // absolute, symlinks resolved
	fsys fs.FS
}

// NewFilesystemLoader opens basePath. It returns ErrInvalidBasePath unless
// basePath is a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	dir, err := filepath.Abs(basePath)
	if err == nil {
		dir, err = filepath.EvalSymlinks(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBasePath, err)
	}
	// ReadDir also rejects regular files.
	if _, err := os.ReadDir(dir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{dir: dir, fsys: os.DirFS(dir)}, nil
}

// LoadStyle loads {basePath}/styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.load(styleKind, name)
}

// LoadTemplate loads {basePath}/templates/{name}.html.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.load(templateKind, name)
}

func (f *FilesystemLoader) Styles() []string {
	return listStyles(f.fsys)
}

func (f *FilesystemLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	if err := f.contain(filepath.Join(f.dir, filepath.FromSlash(k.file(name)))); err != nil {
		return "", err
	}
	return readAsset(f.fsys, k, name)
}

// contain rejects a file whose real path, after following symlinks, lies
// outside the base directory. A missing file passes; the read reports it.
func (f *FilesystemLoader) contain(file string) error {
	resolved, err := filepath.EvalSymlinks(file)
	if err != nil {
		return nil
	}
	if !strings.HasPrefix(resolved, f.dir+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, file)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
