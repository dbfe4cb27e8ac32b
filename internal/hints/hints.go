// Package hints turns common failures into short suggestions. The CLI
// appends each one to its error message as "\n  hint: <text>".
package hints

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alnah/go-terse/internal/fileutil"
	"github.com/alnah/go-terse/internal/markup"
)

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(string) string

// ciVariables are set by the CI services whose runners lack a sandbox.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// InContainer reports whether the process runs inside a Docker container.
func InContainer() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the go-rod variables that usually fix a browser
// that would not start.
func ForBrowserConnect(getenv Getenv, inContainer bool) string {
	var tips []string

	inCI := slices.ContainsFunc(ciVariables, func(name string) bool { return getenv(name) != "" })
	if (inCI || inContainer) && getenv("ROD_NO_SANDBOX") != "1" {
		tips = append(tips, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		tips = append(tips, "set ROD_BROWSER_BIN to a local Chrome")
	}
	return hint(tips...)
}

func ForTimeout() string {
	return hint("raise --timeout for large documents")
}

// ForConfigNotFound points at --config, and at the first searched path under
// userDir when there is one.
func ForConfigNotFound(searched []string, userDir string) string {
	tip := "use --config /path/to/file.yaml (or .toml)"
	if userDir == "" {
		return hint(tip)
	}
	if i := slices.IndexFunc(searched, func(p string) bool { return strings.HasPrefix(p, userDir) }); i >= 0 {
		tip += " or create " + searched[i]
	}
	return hint(tip)
}

func ForOutputDirectory() string {
	return hint("the output directory's parent must exist and be writable")
}

// ForStyleNotFound lists the styles that would have resolved.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return hint("available: " + strings.Join(available, ", "))
}

// ForStructure explains how to fix a structural compile error.
func ForStructure(reason markup.Reason, indentWidth int) string {
	switch reason {
	case markup.ReasonTooDeep:
		return hint("a child goes exactly one level deeper than its parent")
	case markup.ReasonIndentedRoot, markup.ReasonMultipleRoots:
		return hint("wrap the document in a single unindented element such as html or div")
	case markup.ReasonMisaligned:
		return hint(fmt.Sprintf("indent with multiples of %d spaces, or set --indent", indentWidth))
	case markup.ReasonUnclosedLongText:
		return hint("end the long-text block with a line ending in a backtick")
	}
	return ""
}

func ForEmptySource() string {
	return hint("the first line must declare an element, e.g. div")
}

// hint joins tips with "; " behind the hint prefix. No tips, no hint.
func hint(tips ...string) string {
	if len(tips) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(tips, "; ")
}
