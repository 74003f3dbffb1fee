package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"riptide/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "riptide",
	Short: "Riptide optimizing compiler",
	Long:  "Riptide compiles the riptide toy language into an optimized sea-of-nodes graph",
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(dotCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show phase timings")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorize resolves the --color flag against the terminal state and
// syncs the global color toggle.
func colorize(cmd *cobra.Command) bool {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	var on bool
	switch mode {
	case "on":
		on = true
	case "off":
		on = false
	default:
		on = isTerminal(os.Stdout)
	}
	color.NoColor = !on
	return on
}
