package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// compileFlags holds compiler flags.
type compileFlags struct {
	indent         int    // 0 = config or default
	markdown       bool   // render content as inline Markdown
	highlightStyle string // chroma style, enables highlighting
}

// documentFlags holds document shell flags.
type documentFlags struct {
	title    string
	lang     string
	fragment bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// assetFlags holds CSS and asset flags.
type assetFlags struct {
	style     string // name, path, or inline CSS
	assetPath string // override asset directory
	noStyle   bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  string
	pdf      bool
	compile  compileFlags
	document documentFlags
	page     pageFlags
	assets   assetFlags
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

func addCompileFlags(fs *flag.FlagSet, f *compileFlags) {
	fs.IntVarP(&f.indent, "indent", "i", 0, "spaces per nesting level (default 4)")
	fs.BoolVar(&f.markdown, "markdown", false, "render element content as inline Markdown")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "highlight language-* elements with a chroma style")
}

func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (default: file name)")
	fs.StringVar(&f.lang, "lang", "", "document language (default: en)")
	fs.BoolVar(&f.fragment, "fragment", false, "write the bare HTML fragment")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or inline CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// parseConvertFlags parses convert command flags and returns positional
// args. Usage and parse errors go to out.
func parseConvertFlags(args []string, out io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(out)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (\"-\" = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.pdf, "pdf", false, "render PDF instead of HTML")

	addCommonFlags(fs, &f.common)
	addCompileFlags(fs, &f.compile)
	addDocumentFlags(fs, &f.document)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printConvertUsage(out) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
