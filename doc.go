// Package terse compiles an indentation-based shorthand into HTML.
//
// Each logical line declares one element; nesting follows indentation:
//
//	ul#menu.nav
//	    li "Home"
//	    li
//	        a href=/docs "Docs"
//
// compiles to
//
//	<ul id="menu" class="nav"><li>Home</li><li><a href="/docs">Docs</a></li></ul>
//
// # Quick Start
//
//	html, err := terse.Compile(source, terse.DefaultIndentWidth)
//
// Use a Compiler to set options, collect warnings, or plug in content
// filters:
//
//	c, err := terse.NewCompiler(
//	    terse.WithIndentWidth(2),
//	    terse.WithLogger(logger),
//	    terse.WithMarkdown(),
//	)
//	res, err := c.Compile(source)
//	fmt.Println(res.HTML, res.Warnings)
//
// Structural problems (an indentation jump of more than one level, a second
// top-level element, misaligned indentation, an unclosed long-text block)
// abort the compile with a *StructuralError that matches ErrStructure.
// Elements without a tag are skipped and reported as warnings.
//
// # Documents and PDF
//
// A Converter wraps compiled output in an HTML5 document with CSS and can
// render it to PDF in headless Chrome:
//
//	conv, err := terse.NewConverter(terse.WithStyle("print"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, terse.Input{
//	    Source:    source,
//	    SourceDir: "/path/to/source", // for relative image paths
//	    Document:  &terse.Document{Title: "Report"},
//	    Page:      &terse.PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.5},
//	})
//
// For batch conversion, ConverterPool bounds the number of browser instances.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run (~/.cache/rod/browser/). Set ROD_BROWSER_BIN
// to use a custom binary and ROD_NO_SANDBOX=1 in containers and CI.
package terse
