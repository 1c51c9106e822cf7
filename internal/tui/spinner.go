package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"inspections-cli/internal/domain"
)

type fetchDoneMsg struct{}

type spinnerModel struct {
	spin  spinner.Model
	label string
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case fetchDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		// the fetch cannot be interrupted; ignore keys
		return m, nil
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() string {
	return m.spin.View() + " " + labelStyle.Render(m.label) + "\n"
}

// WithSpinner runs work on its own goroutine and keeps a spinner on screen
// until it returns. The spinner is torn down on every path, error included.
func WithSpinner(label string, work func() ([]domain.InspectionRecord, error)) ([]domain.InspectionRecord, error) {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = spinnerStyle

	p := tea.NewProgram(spinnerModel{spin: s, label: label})

	var (
		records []domain.InspectionRecord
		workErr error
	)
	go func() {
		records, workErr = work()
		p.Send(fetchDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return records, workErr
}
