package main

import (
	"context"
	"errors"
	"os"

	terse "github.com/alnah/go-terse"
	"github.com/alnah/go-terse/internal/assets"
	"github.com/alnah/go-terse/internal/config"
	"github.com/alnah/go-terse/internal/hints"
)

// hintContext carries the settings hints need to be specific.
type hintContext struct {
	indentWidth int
	configName  string
	assetPath   string
	getenv      hints.Getenv
}

// hintFor returns a hint suffix for err, or "" when none applies.
func hintFor(err error, hc hintContext) string {
	var se *terse.StructuralError
	switch {
	case errors.As(err, &se):
		width := hc.indentWidth
		if width <= 0 {
			width = terse.DefaultIndentWidth
		}
		return hints.ForStructure(se.Reason, width)
	case errors.Is(err, terse.ErrEmptySource):
		return hints.ForEmptySource()
	case errors.Is(err, terse.ErrBrowserConnect):
		getenv := hc.getenv
		if getenv == nil {
			getenv = os.Getenv
		}
		return hints.ForBrowserConnect(getenv, hints.InContainer())
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(hc.configName), config.UserConfigDir())
	case errors.Is(err, terse.ErrStyleNotFound):
		return hints.ForStyleNotFound(availableStyles(hc.assetPath))
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}

// availableStyles lists the styles a conversion could have used. An
// unusable asset directory falls back to the embedded list.
func availableStyles(assetPath string) []string {
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return assets.NewEmbeddedLoader().Styles()
	}
	return resolver.Styles()
}
