package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-emboss/embossc/internal/inspect"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [input_file]",
		Short: "Browse the compiled IR in an interactive tree view",
		Args:  cobra.ExactArgs(1),
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	inputFile := args[0]
	br, bundles := build(inputFile)
	if br == nil {
		fmt.Fprint(os.Stderr, renderBundles(bundles, nil))
		return fmt.Errorf("%s: failed to load", inputFile)
	}
	if len(br.result.Bundles) > 0 {
		fmt.Fprint(os.Stderr, renderBundles(br.result.Bundles, br.lookup))
		return fmt.Errorf("%s: failed at pipeline stage %q", inputFile, br.result.StoppedAt)
	}
	return inspect.Run(br.tree)
}
