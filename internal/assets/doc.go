// Package assets holds the CSS styles and the HTML template that wrap a
// compiled fragment into a standalone document.
//
// Three loaders implement AssetLoader. EmbeddedLoader reads the files built
// into the binary, FilesystemLoader reads a user directory, and
// AssetResolver asks the directory first and falls back to the embedded
// copy only when the asset is missing there. Validation and read errors are
// never masked by the fallback.
//
// A custom directory mirrors the embedded layout:
//
//	{basePath}/
//	├── styles/{name}.css
//	└── templates/{name}.html
//
// Names are restricted to letters, digits, '-' and '_'. FilesystemLoader
// also follows symlinks and refuses files that resolve outside basePath.
package assets
