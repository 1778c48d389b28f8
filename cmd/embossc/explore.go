package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/go-emboss/embossc/internal/ir"
)

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [input_file]",
		Short: "Open a REPL over the compiled IR, one canonical name per line",
		Args:  cobra.ExactArgs(1),
		RunE:  runExplore,
	}
}

// runExplore builds the IR the same way the default compile command does,
// then opens a liner.State readline session over it, the way the
// teacher's internal/repl.REPL.Start wraps liner.NewLiner: history file,
// SetCompleter, a Prompt loop reading until io.EOF.
func runExplore(cmd *cobra.Command, args []string) error {
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

	names := collectCanonicalNames(br.tree)

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".embossc_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	line.SetCompleter(func(partial string) (c []string) {
		for _, n := range names {
			if strings.HasPrefix(n, partial) {
				c = append(c, n)
			}
		}
		return
	})

	fmt.Println("embossc explore — type a canonical name, or :quit")
	for {
		input, err := line.Prompt("embossc> ")
		if err == io.EOF {
			fmt.Println("\ngoodbye")
			return nil
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if input == ":quit" {
			return nil
		}
		describeName(br.tree, input)
	}
}

// collectCanonicalNames walks every module's type definitions for
// completion candidates: the language has no general "evaluate this
// expression" REPL mode (there is no evaluator, §1 Non-goals) so
// exploring the IR means looking up a declared name's shape.
func collectCanonicalNames(tree *ir.IR) []string {
	var names []string
	for _, m := range tree.Module {
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			names = append(names, td.Base().NameDefinition.CanonicalName.String())
			if s, ok := td.(*ir.Structure); ok {
				for _, f := range s.Field {
					names = append(names, f.NameDefinition.CanonicalName.String())
				}
			}
		})
	}
	sort.Strings(names)
	return names
}

func describeName(tree *ir.IR, name string) {
	for _, m := range tree.Module {
		var found bool
		ir.WalkTypeDefinitions(m, func(td ir.TypeDef) {
			if found {
				return
			}
			if td.Base().NameDefinition.CanonicalName.String() == name {
				fmt.Printf("%s: type definition, %d subtype(s)\n", name, len(td.Base().Subtype))
				found = true
				return
			}
			if s, ok := td.(*ir.Structure); ok {
				for _, f := range s.Field {
					if f.NameDefinition.CanonicalName.String() == name {
						fmt.Printf("%s: field of %s, virtual=%v\n", name,
							td.Base().NameDefinition.Name.Text, f.IsVirtual())
						found = true
						return
					}
				}
			}
		})
		if found {
			return
		}
	}
	fmt.Printf("%s: no such name\n", name)
}
