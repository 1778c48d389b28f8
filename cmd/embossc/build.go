package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/go-emboss/embossc/internal/diag"
	"github.com/go-emboss/embossc/internal/ir"
	"github.com/go-emboss/embossc/internal/loader"
	"github.com/go-emboss/embossc/internal/pipeline"
	"github.com/go-emboss/embossc/internal/prelude"
)

// buildResult carries what every subcommand needs after loading and
// running the pipeline over an entry file.
type buildResult struct {
	tree   *ir.IR
	result pipeline.Result
	lookup diag.SourceLookup
}

// build loads inputFile and its transitive imports from the configured
// -I directories, appends the prelude, and runs the full A→L pipeline.
// On a load error (entry file unreadable, an import not found) it
// returns the load bundles directly without running the pipeline, since
// there is no tree yet to run it over.
func build(inputFile string) (*buildResult, []diag.Bundle) {
	searchDirs := viper.GetStringSlice("import-dir")
	l := loader.New(searchDirs)

	entryFile := filepath.Base(inputFile)
	tree, bundles := l.Load(inputFile, entryFile)
	if tree == nil {
		return nil, bundles
	}
	if len(bundles) > 0 {
		return nil, bundles
	}

	pre, preErrs := prelude.Get()
	if len(preErrs) > 0 {
		return nil, preErrs
	}
	tree.Module = append(tree.Module, pre)

	sources := map[string]string{}
	for _, m := range tree.Module {
		sources[m.SourceFileName] = m.SourceText
	}
	lookup := func(file string) (string, bool) {
		s, ok := sources[file]
		return s, ok
	}

	res := pipeline.Run(tree, "")
	return &buildResult{tree: tree, result: res, lookup: lookup}, nil
}

// colorMode resolves the --color-output flag (plus the if_tty/auto
// simplification documented in DESIGN.md) to a diag.ColorMode.
func colorMode() diag.ColorMode {
	switch viper.GetString("color-output") {
	case "always":
		return diag.ColorAlways
	case "never":
		return diag.ColorNever
	default: // "if_tty", "auto", or anything unrecognized
		return diag.ColorAuto
	}
}

func renderBundles(bundles []diag.Bundle, lookup diag.SourceLookup) string {
	return diag.RenderAll(bundles, colorMode(), lookup)
}

func header(name string) string {
	if viper.GetBool("no-debug-show-header-lines") {
		return ""
	}
	return fmt.Sprintf("=== %s ===\n", name)
}
