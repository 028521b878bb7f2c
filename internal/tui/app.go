// internal/tui/app.go
//
// Terminal UI for todoist-export, built on bubbletea's Elm
// architecture:
//
// 1. Model: the App struct below holds all state
// 2. Update: state transitions driven by messages
// 3. View: renders state to a string
//
// The run is a straight line through four screens: token prompt →
// exporting (spinner) → done or failed. The prompt understands one
// hidden command, "config", which writes a template configuration file
// instead of exporting.

package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todoist-export/internal/config"
	"todoist-export/internal/export"
	"todoist-export/internal/logbook"
	"todoist-export/internal/todoist"
)

// appState represents which "screen" we're on
type appState int

const (
	statePrompt          appState = iota // asking for the API token
	stateConfirmTemplate                 // config file exists, overwrite y/N
	stateExporting                       // pipeline running, spinner visible
	stateDone                            // document written, wait for Enter
	stateFailed                          // run failed, wait for Enter
)

// configCommand is the sentinel token entry that generates a template
// config file instead of exporting.
const configCommand = "config"

// FetcherFactory builds the task source for a token. Tests swap in a
// factory returning a canned snapshot.
type FetcherFactory func(token string) todoist.Fetcher

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithFetcherFactory overrides how the Todoist client is built.
func WithFetcherFactory(factory FetcherFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newFetcher = factory
		}
	}
}

// WithToken seeds the API token (from the environment) so the export
// starts immediately without prompting.
func WithToken(token string) AppOption {
	return func(a *App) {
		a.seededToken = strings.TrimSpace(token)
	}
}

// App is the application model. In bubbletea this holds ALL state.
type App struct {
	state   appState
	workDir string
	cfg     *config.Config
	log     *logbook.Logbook

	newFetcher  FetcherFactory
	seededToken string

	input textinput.Model
	spin  spinner.Model

	statusMsg string
	summary   export.Summary
	runErr    error

	width  int
	height int
}

type exportDoneMsg struct {
	summary export.Summary
	err     error
}

// NewApp loads configuration and the run log for workDir and builds
// the model. A config file that fails to parse is downgraded to the
// defaults with a warning; it never blocks the run.
func NewApp(workDir string, opts ...AppOption) (*App, error) {
	cfg, warn := config.Load(filepath.Join(workDir, config.FileName))

	// Logging is best effort. A read-only directory still gets an export
	// attempt; the document write will surface the real problem.
	log, err := logbook.New(filepath.Join(workDir, logbook.FileName))
	if err != nil {
		log = nil
	}
	if warn != nil {
		log.Warn("config ignored: %v", warn)
	}

	input := textinput.New()
	input.Placeholder = "Todoist API token"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.CharLimit = 128
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	app := &App{
		state:      statePrompt,
		workDir:    workDir,
		cfg:        cfg,
		log:        log,
		newFetcher: defaultFetcherFactory,
		input:      input,
		spin:       spin,
		statusMsg:  "Enter your Todoist API token (or `config` to create a config file)",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app, nil
}

func defaultFetcherFactory(token string) todoist.Fetcher {
	return todoist.NewClient(token)
}

// Err returns the failure of the run, if any, so main can pick the
// exit code after the program finishes.
func (a *App) Err() error {
	return a.runErr
}

// Close releases the run log.
func (a *App) Close() error {
	return a.log.Close()
}

// Init is called once when the program starts. A token seeded from the
// environment skips the prompt entirely.
func (a *App) Init() tea.Cmd {
	if a.seededToken != "" {
		a.log.Info("using api token from environment")
		return a.startExport(a.seededToken)
	}
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if a.state != stateExporting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case exportDoneMsg:
		return a.finishExport(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.state == statePrompt {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.state {
	case statePrompt:
		if msg.String() == "enter" {
			return a.submitPrompt()
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case stateConfirmTemplate:
		if strings.ToLower(msg.String()) == "y" {
			return a, a.writeTemplate(true)
		}
		a.state = statePrompt
		a.statusMsg = "Kept the existing config file"
		return a, textinput.Blink

	case stateDone, stateFailed:
		switch msg.String() {
		case "enter", "q", "esc":
			return a, tea.Quit
		}
	}
	return a, nil
}

func (a *App) submitPrompt() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(a.input.Value())
	switch value {
	case "":
		a.statusMsg = "Token cannot be empty"
		return a, nil
	case configCommand:
		a.input.Reset()
		return a, a.writeTemplate(false)
	default:
		return a, a.startExport(value)
	}
}

// writeTemplate generates todoist_export.yaml. Returning a nil command
// keeps this synchronous; the file is tiny.
func (a *App) writeTemplate(force bool) tea.Cmd {
	path := filepath.Join(a.workDir, config.FileName)
	err := config.WriteTemplate(path, force)
	switch {
	case errors.Is(err, config.ErrTemplateExists):
		a.state = stateConfirmTemplate
		a.statusMsg = fmt.Sprintf("%s already exists. Overwrite? y/N", config.FileName)
		return nil
	case err != nil:
		a.state = statePrompt
		a.statusMsg = fmt.Sprintf("Could not write config template: %v", err)
		a.log.Error("config template: %v", err)
		return textinput.Blink
	default:
		a.state = statePrompt
		a.statusMsg = fmt.Sprintf("Wrote %s — edit it, then enter your token", config.FileName)
		a.log.Info("config template written to %s", path)
		return textinput.Blink
	}
}

func (a *App) startExport(token string) tea.Cmd {
	a.state = stateExporting
	a.statusMsg = "Fetching tasks from Todoist..."
	exporter := export.New(a.newFetcher(token), a.cfg, a.log)
	run := func() tea.Msg {
		summary, err := exporter.Run(context.Background())
		return exportDoneMsg{summary: summary, err: err}
	}
	return tea.Batch(a.spin.Tick, run)
}

func (a *App) finishExport(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.state = stateFailed
		a.runErr = msg.err
		if errors.Is(msg.err, todoist.ErrUnauthorized) {
			a.statusMsg = "Todoist rejected the API token. Check it and run again."
		} else {
			a.statusMsg = fmt.Sprintf("Export failed: %v", msg.err)
		}
		return a, nil
	}
	a.state = stateDone
	a.summary = msg.summary
	a.statusMsg = "Press Enter to close..."
	return a, nil
}

// View renders the current state to a string.
func (a *App) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⬡ TODOIST EXPORT")

	var body string
	switch a.state {
	case statePrompt:
		body = a.input.View()
	case stateConfirmTemplate:
		body = fmt.Sprintf("Overwrite %s? (y/N)", config.FileName)
	case stateExporting:
		body = fmt.Sprintf("%s Exporting...", a.spin.View())
	case stateDone:
		body = a.renderSummary()
	case stateFailed:
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Render("✗ Export failed")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(body)

	sections := []string{header, box}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderSummary() string {
	lines := []string{
		fmt.Sprintf("✓ Wrote %s", a.summary.Path),
		fmt.Sprintf("%d section(s) · %d project(s) · %d task(s)",
			a.summary.Sections, a.summary.Projects, a.summary.Tasks),
	}
	if a.summary.Dropped > 0 {
		lines = append(lines, fmt.Sprintf("⚠ %d task(s) skipped (unknown project)", a.summary.Dropped))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderLogPanel() string {
	lines := a.log.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s", logbook.FileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}
