package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"riptide/internal/diag"
	"riptide/internal/driver"
	"riptide/internal/observ"
	"riptide/internal/project"
	"riptide/internal/snapshot"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] files...",
	Short: "Compile riptide source files",
	Long:  "Compile riptide source files into optimized graphs. Settings default from the nearest riptide.toml.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  buildExecution,
}

func init() {
	buildCmd.Flags().Bool("no-peephole", false, "disable peephole rewriting during construction")
	buildCmd.Flags().Bool("no-iterate", false, "disable the global fixpoint pass")
	buildCmd.Flags().Bool("snapshot", false, "write a .rts graph snapshot next to each source file")
	buildCmd.Flags().Int("jobs", 0, "number of parallel compilations (0 = all CPUs)")
}

func buildExecution(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	writeSnapshots, err := cmd.Flags().GetBool("snapshot")
	if err != nil {
		return err
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	colored := colorize(cmd)

	results, err := driver.CompileAll(context.Background(), args, opts)
	if err != nil {
		return err
	}

	failed := false
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			continue
		}
		diag.RenderBag(os.Stderr, res.Files, res.Bag, colored)
		if res.Bag.HasErrors() {
			failed = true
			continue
		}
		for _, dot := range res.DotDumps {
			fmt.Print(dot)
		}
		for _, ret := range res.Returns {
			fmt.Printf("%s: %s\n", res.Path, ret)
		}
		if timings {
			fmt.Printf("%s:\n", res.Path)
			printTimings(res.Timing)
		}
		if writeSnapshots {
			if err := writeSnapshot(res); err != nil {
				return err
			}
		}
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

// buildOptions derives driver options: manifest defaults first, then
// explicit flags on top.
func buildOptions(cmd *cobra.Command) (driver.Options, error) {
	manifest, err := project.LoadNearest(".")
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.FromManifest(manifest)

	if noPeephole, err := cmd.Flags().GetBool("no-peephole"); err != nil {
		return opts, err
	} else if noPeephole {
		opts.Optimize = false
	}
	if noIterate, err := cmd.Flags().GetBool("no-iterate"); err != nil {
		return opts, err
	} else if noIterate {
		opts.Iterate = false
	}
	if maxDiag, err := cmd.Flags().GetInt("max-diagnostics"); err == nil && cmd.Flags().Changed("max-diagnostics") {
		opts.MaxDiagnostics = maxDiag
	}
	if jobs, err := cmd.Flags().GetInt("jobs"); err == nil {
		opts.Jobs = jobs
	}
	return opts, nil
}

func writeSnapshot(res *driver.Result) error {
	path := res.Path + "s" // file.rt -> file.rts
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	defer f.Close()
	if err := snapshot.Encode(f, res.Builder.Graph()); err != nil {
		return err
	}
	return nil
}

func printTimings(r observ.Report) {
	for _, p := range r.Phases {
		fmt.Printf("  %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Printf("  // %s", p.Note)
		}
		fmt.Println()
	}
	fmt.Printf("  %-12s %7.2f ms\n", "total", r.TotalMS)
}
