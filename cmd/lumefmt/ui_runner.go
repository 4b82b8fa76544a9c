package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lumefmt/internal/driver"
	"lumefmt/internal/ui"
)

type fmtOutcome struct {
	results []driver.FormatResult
	err     error
}

// runFmtWithUI runs the formatting pass in the background and feeds its
// per-file completions to the progress UI until both finish.
func runFmtWithUI(ctx context.Context, paths []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	files, err := driver.CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}

	events := make(chan ui.Event, 256)
	outcomeCh := make(chan fmtOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(res driver.FormatResult) {
			events <- ui.Event{Path: res.Path, Changed: res.Changed, Failed: res.Err != nil}
		}
		results, err := driver.FormatPaths(ctx, files, optsCopy)
		outcomeCh <- fmtOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("formatting", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
