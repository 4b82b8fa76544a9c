package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumefmt/internal/config"
	"lumefmt/internal/diagfmt"
	"lumefmt/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lm",
	Short: "Tokenize a Lume source file",
	Long:  `Tokenize breaks down a Lume source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().StringSlice("define", nil, "conditional-compilation symbols (NAME or NAME=off)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	defines, err := cmd.Flags().GetStringSlice("define")
	if err != nil {
		return fmt.Errorf("failed to get define flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	cfg, _, err := config.Discover(startDirFor(filePath))
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, cfg.DefineSet(defines), maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor,
			Context: 2,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
