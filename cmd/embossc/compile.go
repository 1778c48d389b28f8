package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-emboss/embossc/internal/lexer"
	"github.com/go-emboss/embossc/internal/parser"
)

func runCompile(cmd *cobra.Command, args []string) error {
	inputFile := args[0]

	if viper.GetBool("debug-show-tokenization") {
		if err := debugShowTokenization(inputFile); err != nil {
			return err
		}
	}
	if viper.GetBool("debug-show-parse-tree") {
		if err := debugShowParseTree(inputFile); err != nil {
			return err
		}
	}
	for _, flag := range []string{"debug-show-used-productions", "debug-show-unused-productions"} {
		if viper.GetBool(flag) {
			fmt.Fprintf(os.Stderr, "%s: not applicable — this parser is hand-written recursive descent, not a generated LALR grammar with a production table (see DESIGN.md)\n", flag)
		}
	}

	br, loadBundles := build(inputFile)
	if len(loadBundles) > 0 {
		fmt.Fprint(os.Stderr, renderBundles(loadBundles, nil))
		return fmt.Errorf("%s: failed to load", inputFile)
	}

	if viper.GetBool("debug-show-module-ir") {
		fmt.Print(header("module IR (as left by the pipeline)"))
		for _, m := range br.tree.Module {
			data, _ := json.MarshalIndent(m, "", "  ")
			fmt.Printf("--- %s ---\n%s\n", moduleLabel(m.SourceFileName), data)
		}
	}

	if len(br.result.Bundles) > 0 {
		fmt.Fprint(os.Stderr, renderBundles(br.result.Bundles, br.lookup))
		return fmt.Errorf("%s: failed at pipeline stage %q", inputFile, br.result.StoppedAt)
	}

	if viper.GetBool("debug-show-full-ir") {
		fmt.Print(header("full IR (after every pass)"))
		data, err := json.MarshalIndent(br.tree, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}

	outputFile := viper.GetString("output-file")
	toStdout := viper.GetBool("output-ir-to-stdout")
	if outputFile == "" && !toStdout {
		return nil
	}

	data, err := json.MarshalIndent(br.tree, "", "  ")
	if err != nil {
		return err
	}
	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputFile, err)
		}
	}
	if toStdout {
		fmt.Println(string(data))
	}
	return nil
}

func moduleLabel(sourceFileName string) string {
	if sourceFileName == "" {
		return "<prelude>"
	}
	return sourceFileName
}

func debugShowTokenization(inputFile string) error {
	src, err := os.ReadFile(inputFile)
	if err != nil {
		return err
	}
	fmt.Print(header("tokenization"))
	lx := lexer.New(inputFile, lexer.Normalize(src))
	for {
		t := lx.Next()
		fmt.Println(t.String())
		if t.Type == lexer.EOF {
			break
		}
	}
	return nil
}

func debugShowParseTree(inputFile string) error {
	src, err := os.ReadFile(inputFile)
	if err != nil {
		return err
	}
	mod, _, errs := parser.ParseModuleText(src, inputFile)
	fmt.Print(header("parse tree"))
	if mod != nil {
		data, _ := json.MarshalIndent(mod, "", "  ")
		fmt.Println(string(data))
	}
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, renderBundles(errs, nil))
	}
	return nil
}
