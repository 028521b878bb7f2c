// internal/export/export.go
//
// The export pipeline: fetch a snapshot, assemble the tree, apply the
// user's filters, render the outline, write the document. One run per
// invocation; the document either appears complete or not at all.

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"todoist-export/internal/config"
	"todoist-export/internal/logbook"
	"todoist-export/internal/outline"
	"todoist-export/internal/todoist"
)

// timestampLayout matches the export file naming scheme,
// todoist_2023-02-03_17-30-05.md.
const timestampLayout = "2006-01-02_15-04-05"

// Summary describes a completed run.
type Summary struct {
	RunID    string
	Path     string
	Sections int
	Projects int
	Tasks    int
	Dropped  int
}

// Exporter wires the pipeline stages together.
type Exporter struct {
	source todoist.Fetcher
	cfg    *config.Config
	log    *logbook.Logbook

	now      func() time.Time
	newRunID func() string
}

// Option customizes an Exporter during construction.
type Option func(*Exporter)

// WithClock overrides the clock used for the export file timestamp.
func WithClock(clock func() time.Time) Option {
	return func(e *Exporter) {
		if clock != nil {
			e.now = clock
		}
	}
}

// WithRunID overrides run id generation.
func WithRunID(gen func() string) Option {
	return func(e *Exporter) {
		if gen != nil {
			e.newRunID = gen
		}
	}
}

// New builds an exporter over the given task source and configuration.
func New(source todoist.Fetcher, cfg *config.Config, log *logbook.Logbook, opts ...Option) *Exporter {
	if cfg == nil {
		cfg = config.Default()
	}
	e := &Exporter{
		source:   source,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run performs one export and returns where the document was written.
func (e *Exporter) Run(ctx context.Context) (Summary, error) {
	runID := e.newRunID()
	e.log.Info("run %s: fetching task list", runID)

	snapshot, err := e.source.FetchSnapshot(ctx)
	if err != nil {
		e.log.Error("run %s: fetch failed: %v", runID, err)
		return Summary{RunID: runID}, err
	}

	full, dropped := snapshot.Assemble()
	if dropped > 0 {
		e.log.Warn("run %s: dropped %d task(s) with unknown project", runID, dropped)
	}

	pruned := e.cfg.Ruleset().Apply(full)
	lines := outline.Render(pruned)

	path := filepath.Join(e.cfg.Output.Directory, e.fileName())
	if err := writeDocument(path, lines); err != nil {
		e.log.Error("run %s: %v", runID, err)
		return Summary{RunID: runID}, err
	}

	summary := Summary{
		RunID:    runID,
		Path:     path,
		Sections: len(pruned.Sections),
		Projects: pruned.CountProjects(),
		Tasks:    pruned.CountTasks(),
		Dropped:  dropped,
	}
	e.log.Info("run %s: wrote %s (%d section(s), %d project(s), %d task(s))",
		runID, path, summary.Sections, summary.Projects, summary.Tasks)
	return summary, nil
}

func (e *Exporter) fileName() string {
	return "todoist_" + e.now().Format(timestampLayout) + ".md"
}

// writeDocument persists the outline in a single write so there is no
// partially written document to clean up after a failure.
func writeDocument(path string, lines []string) error {
	var body string
	if len(lines) > 0 {
		body = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
