package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"verdict/internal/engine"
	"verdict/internal/session"
	"verdict/internal/source"
	"verdict/internal/suppress"
	"verdict/internal/syntax"
	"verdict/internal/ui"
)

// runSessionWithUI drives the session in a goroutine while Bubble Tea
// renders its progress events. The event channel closes when the
// session finishes, which quits the UI.
func runSessionWithUI(cmd *cobra.Command, table *engine.Table, cfg *suppress.Config, regions *suppress.Regions, opts session.Options, fs *source.FileSet, trees []*syntax.Tree) []session.Result {
	events := make(chan session.Event, 256)
	resultCh := make(chan []session.Result, 1)

	opts.Sink = session.ChannelSink{Ch: events}
	s := session.New(table, cfg, regions, opts)

	go func() {
		resultCh <- s.Analyze(cmd.Context(), fs, trees)
		close(events)
	}()

	files := make([]string, 0, len(trees))
	for _, tree := range trees {
		files = append(files, fs.Get(tree.File()).Path)
	}

	model := ui.NewProgressModel("analyzing", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: progress UI failed: %v\n", err)
		for range events {
			// drain so the session never blocks on its sink
		}
	}
	return <-resultCh
}
