package pipeline

import (
	"context"
	"iter"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// linkAttrs maps the elements whose references are rewritten to the
// attribute holding the reference. script[src], srcset and CSS url() are
// never touched.
var linkAttrs = map[atom.Atom]string{
	atom.Img:  "src",
	atom.A:    "href",
	atom.Link: "href",
}

// RewriteRelativePaths turns relative img, a and link references into
// file:// URLs under sourceDir, so a browser that loads the page from a temp
// file still finds them. References that climb out of sourceDir are kept as
// written. An empty sourceDir returns htmlContent unchanged.
func RewriteRelativePaths(ctx context.Context, htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	roots, err := parseRoots(htmlContent)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, root := range roots {
		for n := range elements(root) {
			key, ok := linkAttrs[n.DataAtom]
			if !ok {
				continue
			}
			for i := range n.Attr {
				if n.Attr[i].Key != key {
					continue
				}
				if u, ok := localFileURL(n.Attr[i].Val, dir); ok {
					n.Attr[i].Val = u
				}
			}
		}
		if err := html.Render(&buf, root); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// parseRoots returns the top-level nodes of content. A page starting with a
// doctype or <html> parses as one document. Anything else parses as body
// content, so rendering adds no <html><body> wrapper.
func parseRoots(content string) ([]*html.Node, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		return []*html.Node{doc}, nil
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	return html.ParseFragment(strings.NewReader(content), body)
}

// elements yields every element under root. Compiled pages can nest deeply,
// so the walk keeps its own stack.
func elements(root *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		stack := []*html.Node{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n.Type == html.ElementNode && !yield(n) {
				return
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				stack = append(stack, c)
			}
		}
	}
}

// localFileURL resolves ref against dir when ref is a relative path that
// stays inside dir. URLs, anchors, absolute paths and escaping paths report
// false.
func localFileURL(ref, dir string) (string, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return "", false
	}
	// A one-letter scheme is a Windows drive, which IsLocal rejects below.
	if u, err := url.Parse(ref); err == nil && len(u.Scheme) > 1 {
		return "", false
	}

	rel := filepath.FromSlash(ref)
	if !filepath.IsLocal(rel) {
		return "", false
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(dir, rel))}
	return u.String(), true
}
