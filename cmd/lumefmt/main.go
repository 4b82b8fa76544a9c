package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lumefmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lumefmt",
	Short: "Lume source formatter",
	Long:  `lumefmt pretty-prints Lume source files while preserving every comment and directive`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
