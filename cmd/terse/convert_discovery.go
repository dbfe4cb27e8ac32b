package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	terse "github.com/alnah/go-terse"
	"github.com/alnah/go-terse/internal/fileutil"
)

const (
	sourceExt = ".terse"
	stdinPath = "-"
)

var (
	ErrInvalidExtension   = errors.New("file must have .terse extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert pairs a source file with the file it compiles to.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// outputPlan decides where compiled files go.
type outputPlan struct {
	dir string // "" writes next to each source
	ext string // .html or .pdf
}

// target returns the output path for source. root is the directory being
// walked, or "" for a single file. A dir that already ends in ext names the
// output file itself.
func (p outputPlan) target(source, root string) string {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + p.ext

	switch {
	case p.dir == "":
		return filepath.Join(filepath.Dir(source), name)
	case fileutil.HasExtension(p.dir, p.ext):
		return p.dir
	case root != "":
		if rel, err := filepath.Rel(root, filepath.Dir(source)); err == nil {
			return filepath.Join(p.dir, rel, name)
		}
	}
	return filepath.Join(p.dir, name)
}

// discoverFiles lists the .terse files at inputPath, which is either one
// source file or a directory searched recursively, with their outputs.
func discoverFiles(inputPath, outputDir, outExt string) ([]FileToConvert, error) {
	plan := outputPlan{dir: outputDir, ext: outExt}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !fileutil.HasExtension(inputPath, sourceExt) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: plan.target(inputPath, "")}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, walkErr error) error {
		switch {
		case walkErr != nil:
			return fmt.Errorf("scanning %s: %w", path, walkErr)
		case d.IsDir(), !fileutil.HasExtension(path, sourceExt):
			return nil
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: plan.target(path, inputPath)})
		return nil
	})
	return files, err
}

// validateWorkers accepts 0 (auto) up to terse.MaxPoolSize.
func validateWorkers(n int) error {
	if n < 0 || n > terse.MaxPoolSize {
		return fmt.Errorf("%w: %d (want 0 for auto, or 1 to %d)", ErrInvalidWorkerCount, n, terse.MaxPoolSize)
	}
	return nil
}
