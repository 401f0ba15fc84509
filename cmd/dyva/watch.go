package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// watchPaths polls path's modification time and sends on the returned
// channel whenever it changes, until ctx is cancelled. There is no
// file-watching library anywhere in the retrieval pack (a plain os.Stat
// poll loop is the only option), so this stays on the standard library.
func watchPaths(ctx context.Context, path string) (<-chan struct{}, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	last := info.ModTime()

	events := make(chan struct{}, 1)
	go func() {
		ticker := time.NewTicker(300 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st, err := os.Stat(path)
				if err != nil {
					continue
				}
				if st.ModTime().After(last) {
					last = st.ModTime()
					select {
					case events <- struct{}{}:
					default:
					}
				}
			}
		}
	}()
	return events, nil
}

type checkOutcome struct {
	failed bool
	err    error
}

// checkSpinnerModel shows a spinner while one check run is in flight,
// then quits so the run's diagnostics print to the ordinary streams. It
// reports one outcome per run rather than a per-file event stream, since
// a single load has no natural per-file progress granularity to report.
type checkSpinnerModel struct {
	label    string
	spinner  spinner.Model
	outcome  <-chan checkOutcome
	result   checkOutcome
	quitting bool
}

func newCheckSpinnerModel(label string, outcome <-chan checkOutcome) checkSpinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return checkSpinnerModel{label: label, spinner: s, outcome: outcome}
}

func waitForOutcome(ch <-chan checkOutcome) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func (m checkSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForOutcome(m.outcome))
}

func (m checkSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case checkOutcome:
		m.result = msg
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m checkSpinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s checking %s\n", m.spinner.View(), m.label)
}

// runWithSpinner runs work in the background, showing a spinner for as
// long as it takes, and returns its outcome once work completes.
func runWithSpinner(label string, work func() checkOutcome) checkOutcome {
	outcome := make(chan checkOutcome, 1)
	go func() { outcome <- work() }()

	model := newCheckSpinnerModel(label, outcome)
	p := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	finalModel, err := p.Run()
	if err != nil {
		return checkOutcome{err: err}
	}
	if m, ok := finalModel.(checkSpinnerModel); ok {
		return m.result
	}
	return checkOutcome{}
}
