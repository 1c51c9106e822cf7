package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type yesNoModel struct {
	question string
	answer   bool
}

func (m yesNoModel) Init() tea.Cmd { return nil }

func (m yesNoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.answer = true
			return m, tea.Quit
		case "n", "N", "ctrl+c":
			m.answer = false
			return m, tea.Quit
		}
		// anything else re-asks the same question
	}
	return m, nil
}

func (m yesNoModel) View() string {
	return valueStyle.Render(m.question) + " " + helpStyle.Render("(y/n)") + "\n"
}

// AskYesNo poses a y/n question and blocks until one of the two keys is
// pressed.
func AskYesNo(question string) (bool, error) {
	m, err := tea.NewProgram(yesNoModel{question: question}).Run()
	if err != nil {
		return false, err
	}
	return m.(yesNoModel).answer, nil
}
