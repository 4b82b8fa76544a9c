package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lumefmt/internal/config"
	"lumefmt/internal/diagfmt"
	"lumefmt/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format Lume source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("verify", false, "reformat the output and fail unless it is byte-identical")
	fmtCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = GOMAXPROCS)")
	fmtCmd.Flags().StringSlice("define", nil, "conditional-compilation symbols (NAME or NAME=off)")
	fmtCmd.Flags().Bool("no-cache", false, "bypass the on-disk result cache")
	fmtCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	verify, err := cmd.Flags().GetBool("verify")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	defines, err := cmd.Flags().GetStringSlice("define")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	cfg, _, err := config.Discover(startDirFor(args[0]))
	if err != nil {
		return err
	}

	opts := driver.FormatOptions{
		Check:             check,
		Stdout:            writeToStdout,
		VerifyIdempotence: verify,
		MaxDiagnostics:    maxDiagnostics,
		Jobs:              jobs,
		Defines:           cfg.DefineSet(defines),
		Format:            cfg.Options(),
	}
	if !noCache {
		cache, cacheErr := driver.OpenDiskCache("lumefmt")
		if cacheErr != nil {
			fmt.Fprintf(os.Stderr, "fmt: cache unavailable: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	useTUI := shouldUseTUI(mode) && !writeToStdout && outputFormat == "text"
	var formatResults []driver.FormatResult
	if useTUI {
		formatResults, err = runFmtWithUI(cmd.Context(), args, opts)
	} else {
		formatResults, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))

	var hasErrors bool
	var hasChanges bool

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(formatResults, useColor, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to format some files")
			}
			return nil
		}
		renderFmtText(formatResults, check, quiet || useTUI, useColor, &hasErrors, &hasChanges)
	case "json":
		if err := renderFmtJSON(formatResults, check); err != nil {
			return err
		}
		for _, res := range formatResults {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// startDirFor picks the manifest search root: the path itself for a
// directory argument, its parent for a file.
func startDirFor(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

// reportResultFailure prints one failed result: the pretty diagnostics when
// the driver collected any, a bare error line otherwise.
func reportResultFailure(res driver.FormatResult, useColor bool) {
	if res.Bag != nil && res.Bag.Len() > 0 && res.FileSet != nil {
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:   useColor,
			Context: 2,
		})
		return
	}
	fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
}

func renderFmtStdout(results []driver.FormatResult, useColor bool, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			reportResultFailure(res, useColor)
			continue
		}
		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtText(results []driver.FormatResult, check, quiet, useColor bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			reportResultFailure(res, useColor)
			continue
		}

		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					fmt.Fprintln(os.Stdout, res.Path)
				}
			}
			continue
		}

		if res.Changed && !quiet {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
		*hasChanges = *hasChanges || res.Changed
	}
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path      string `json:"path"`
		Changed   bool   `json:"changed"`
		FromCache bool   `json:"from_cache"`
		Error     string `json:"error,omitempty"`
		CheckRun  bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, FromCache: res.FromCache, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
