package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{"loads default style", DefaultStyleName, nil, "font-family"},
		{"loads plain style", "plain", nil, "body"},
		{"loads print style", "print", nil, "@page"},
		{"nonexistent style", "nonexistent-style-xyz", ErrStyleNotFound, ""},
		{"empty name", "", ErrInvalidAssetName, ""},
		{"path traversal", "../secret", ErrInvalidAssetName, ""},
		{"name with dot", "style.name", ErrInvalidAssetName, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	got, err := LoadTemplate(DocumentTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) unexpected error: %v", DocumentTemplateName, err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "{{.Title}}", "{{.Lang}}", "{{.Body}}", "</head>"} {
		if !strings.Contains(got, want) {
			t.Errorf("document template should contain %q", want)
		}
	}

	if _, err := LoadTemplate("cover"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(cover) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestEmbeddedLoader_Styles(t *testing.T) {
	t.Parallel()

	names := NewEmbeddedLoader().Styles()
	for _, want := range []string{"default", "plain", "print"} {
		if !slices.Contains(names, want) {
			t.Errorf("Styles() = %v, missing %q", names, want)
		}
	}
}
