package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"riptide/internal/diag"
	"riptide/internal/dotvis"
	"riptide/internal/driver"
)

var dotCmd = &cobra.Command{
	Use:   "dot [flags] file",
	Short: "Render the optimized graph of one file as Graphviz DOT",
	Args:  cobra.ExactArgs(1),
	RunE:  dotExecution,
}

func init() {
	dotCmd.Flags().Bool("no-peephole", false, "disable peephole rewriting during construction")
	dotCmd.Flags().Bool("no-iterate", false, "disable the global fixpoint pass")
}

func dotExecution(cmd *cobra.Command, args []string) error {
	opts := driver.DefaultOptions()
	if noPeephole, err := cmd.Flags().GetBool("no-peephole"); err != nil {
		return err
	} else if noPeephole {
		opts.Optimize = false
	}
	if noIterate, err := cmd.Flags().GetBool("no-iterate"); err != nil {
		return err
	} else if noIterate {
		opts.Iterate = false
	}
	colored := colorize(cmd)

	res := driver.CompileFile(args[0], opts)
	if res.Err != nil {
		return res.Err
	}
	diag.RenderBag(os.Stderr, res.Files, res.Bag, colored)
	if res.Bag.HasErrors() {
		os.Exit(1)
	}
	fmt.Print(dotvis.Render(res.Builder.Graph(), string(res.File.Content)))
	return nil
}
