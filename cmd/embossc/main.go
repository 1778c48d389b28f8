// Command embossc is the front end CLI: it parses a `.emb`-like source
// file plus its transitive imports, runs the A→L semantic-analysis
// pipeline over the result, and either reports diagnostics or serializes
// the final IR. `embossc explore` and `embossc tui` open the resulting
// IR in an interactive REPL or tree browser instead of just serializing
// it, built the way gnmidiff/cmd layers spf13/viper config resolution
// under a spf13/cobra command tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "embossc [input_file]",
		Short: "Compile a binary-data-format description into its semantically analyzed IR",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}

	root.PersistentFlags().StringArrayP("import-dir", "I", []string{"."},
		"directory to search for imported files (repeatable)")
	root.PersistentFlags().String("color-output", "if_tty",
		"one of: always, never, if_tty, auto")
	root.PersistentFlags().String("config", "", "path to a .embossc.yaml config file")

	root.Flags().String("output-file", "", "write the final IR as JSON to this path")
	root.Flags().Bool("output-ir-to-stdout", false, "write the final IR as JSON to stdout")
	root.Flags().Bool("debug-show-tokenization", false, "print the entry file's token stream")
	root.Flags().Bool("debug-show-parse-tree", false, "print the entry file's parsed IR module")
	root.Flags().Bool("debug-show-module-ir", false, "print each loaded module's IR as left by the pipeline (no pre-desugaring copy is kept)")
	root.Flags().Bool("debug-show-full-ir", false, "print the fully decorated IR after every pass runs")
	root.Flags().Bool("debug-show-used-productions", false, "(no-op: this parser has no grammar-production table, see DESIGN.md)")
	root.Flags().Bool("debug-show-unused-productions", false, "(no-op: this parser has no grammar-production table, see DESIGN.md)")
	root.Flags().Bool("no-debug-show-header-lines", false, "suppress the '=== file ===' headers before each debug dump")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.SetConfigName(".embossc")
			viper.SetConfigType("yaml")
			viper.AddConfigPath(".")
		}
		if err := viper.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && cfgFile != "" {
				return fmt.Errorf("reading config: %w", err)
			}
		}
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		// Named explicitly (rather than via AutomaticEnv's prefix rule)
		// since neither var's name matches its flag 1:1: EMBOSSC_IMPORT_DIRS
		// is plural, EMBOSSC_COLOR drops "-output".
		viper.BindEnv("import-dir", "EMBOSSC_IMPORT_DIRS")
		viper.BindEnv("color-output", "EMBOSSC_COLOR")
		return nil
	}

	root.AddCommand(newExploreCmd(), newTUICmd())
	return root
}
