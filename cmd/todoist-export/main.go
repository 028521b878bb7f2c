// cmd/todoist-export/main.go
//
// Entry point for the todoist-export CLI.
//
// Flow:
// 1. Pick up TODOIST_API_TOKEN from the environment if set
// 2. Run the TUI: prompt for a token if needed, fetch, filter, write
// 3. Exit non-zero if the export failed

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"todoist-export/internal/tui"
)

func main() {
	// The working directory is where the config file is read from and
	// where the export document and run log are written.
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	var opts []tui.AppOption
	if token := os.Getenv("TODOIST_API_TOKEN"); token != "" {
		opts = append(opts, tui.WithToken(token))
	}

	app, err := tui.NewApp(cwd, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting todoist-export: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	p := tea.NewProgram(app)
	model, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// The model carries the run outcome out of the event loop.
	if finished, ok := model.(*tui.App); ok && finished.Err() != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", finished.Err())
		os.Exit(1)
	}
}
