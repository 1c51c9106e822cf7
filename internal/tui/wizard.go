package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"inspections-cli/internal/domain"
)

// Choices holds the choice lists fetched from the reference-data endpoint.
type Choices struct {
	Cities      []string
	Counties    []string
	PermitTypes []string
}

// Outcome is the tri-state result of one wizard pass.
type Outcome int

const (
	OutcomeConfirmed Outcome = iota // user approved the summary
	OutcomeRejected                 // user answered no at the summary
	OutcomeCancelled                // user bailed out mid-flow or at the summary
)

type step int

const (
	stepKeyword step = iota
	stepCity
	stepCounty
	stepPermit
	stepStartDate
	stepScoreLow
	stepScoreHigh
	stepConfirm
)

const (
	pickerWidth  = 48
	pickerHeight = 19 // 15 visible choices plus list chrome
)

type option string

func (o option) Title() string       { return string(o) }
func (o option) Description() string { return "" }
func (o option) FilterValue() string { return string(o) }

type wizard struct {
	choices Choices
	fs      domain.FilterSet

	step   step
	input  textinput.Model
	picker list.Model
	errMsg string

	low     int // parsed lowest score, pending the joint range check
	outcome Outcome
}

func newWizard(choices Choices, endDate string) wizard {
	ti := textinput.New()
	ti.Prompt = "Enter the name or partial name of the establishment (Optional): "
	ti.Width = 40
	ti.Focus()

	w := wizard{choices: choices, input: ti}
	w.fs.EndDate = endDate
	return w
}

func (w wizard) Init() tea.Cmd {
	return textinput.Blink
}

func (w wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "ctrl+c" {
			w.outcome = OutcomeCancelled
			return w, tea.Quit
		}

		switch w.step {
		case stepConfirm:
			switch key.String() {
			case "y", "Y", "enter":
				w.outcome = OutcomeConfirmed
				return w, tea.Quit
			case "n", "N":
				w.outcome = OutcomeRejected
				return w, tea.Quit
			case "esc":
				w.outcome = OutcomeCancelled
				return w, tea.Quit
			}
			return w, nil

		case stepKeyword, stepStartDate, stepScoreLow, stepScoreHigh:
			if key.String() == "enter" {
				return w.submitText()
			}

		case stepCity, stepCounty, stepPermit:
			// enter while filtering belongs to the list itself
			if key.String() == "enter" && w.picker.FilterState() != list.Filtering {
				return w.choose()
			}
		}
	}

	var cmd tea.Cmd
	switch w.step {
	case stepCity, stepCounty, stepPermit:
		w.picker, cmd = w.picker.Update(msg)
	case stepConfirm:
		// nothing to delegate to
	default:
		w.input, cmd = w.input.Update(msg)
	}
	return w, cmd
}

// submitText validates the current text prompt and advances. Invalid input
// clears the field and stays on the same step; the retry loop is unbounded.
func (w wizard) submitText() (tea.Model, tea.Cmd) {
	val := strings.TrimSpace(w.input.Value())

	switch w.step {
	case stepKeyword:
		w.fs.Keyword = val
		w.errMsg = ""
		w.step = stepCity
		w.picker = newPicker("Choose a city", w.choices.Cities)

	case stepStartDate:
		formatted, err := domain.FormatStartDate(val)
		if err != nil {
			return w.retry("Invalid date format. Please try again."), nil
		}
		w.fs.StartDate = formatted
		w.nextPrompt(stepScoreLow, "Enter the lowest score range (0-100): ")

	case stepScoreLow:
		n, err := strconv.Atoi(val)
		if err != nil {
			return w.retry("Invalid input. Please enter numeric values."), nil
		}
		w.low = n
		w.nextPrompt(stepScoreHigh, "Enter the highest score range (0-100): ")

	case stepScoreHigh:
		n, err := strconv.Atoi(val)
		if err != nil {
			return w.retry("Invalid input. Please enter numeric values."), nil
		}
		if verr := domain.ValidateScoreRange(w.low, n); verr != nil {
			// both bounds are re-collected from scratch
			msg := "Invalid score range. Please enter values between 0 and 100."
			if errors.Is(verr, domain.ErrScoreOrder) {
				msg = "Invalid score range. The highest score cannot be lower than the lowest score."
			}
			w.nextPrompt(stepScoreLow, "Enter the lowest score range (0-100): ")
			w.errMsg = msg
			return w, nil
		}
		w.fs.ScoreLow = w.low
		w.fs.ScoreHigh = n
		w.errMsg = ""
		w.step = stepConfirm
	}

	return w, nil
}

// choose records the highlighted list option and moves to the next step.
func (w wizard) choose() (tea.Model, tea.Cmd) {
	sel, ok := w.picker.SelectedItem().(option)
	if !ok {
		return w, nil
	}

	switch w.step {
	case stepCity:
		w.fs.City = string(sel)
		w.step = stepCounty
		w.picker = newPicker("Choose a county", w.choices.Counties)
	case stepCounty:
		w.fs.County = string(sel)
		w.step = stepPermit
		w.picker = newPicker("Choose a permit type", w.choices.PermitTypes)
	case stepPermit:
		w.fs.PermitType = string(sel)
		w.nextPrompt(stepStartDate, "Enter the start date (MMDDYYYY): ")
	}
	return w, nil
}

func (w *wizard) nextPrompt(next step, prompt string) {
	w.step = next
	w.errMsg = ""
	w.input.Prompt = prompt
	w.input.SetValue("")
	w.input.Focus()
}

func (w wizard) retry(msg string) wizard {
	w.errMsg = msg
	w.input.SetValue("")
	return w
}

func (w wizard) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Georgia Health Inspections"))
	sb.WriteString("\n\n")

	switch w.step {
	case stepCity, stepCounty, stepPermit:
		sb.WriteString(w.picker.View())

	case stepConfirm:
		sb.WriteString(w.summary())
		sb.WriteString("\n\n")
		sb.WriteString(helpStyle.Render("y: fetch reports • n: no • esc: start over"))

	default:
		if w.errMsg != "" {
			sb.WriteString(errorStyle.Render(w.errMsg))
			sb.WriteString("\n")
		}
		sb.WriteString(w.input.View())
	}

	sb.WriteString("\n")
	return sb.String()
}

func (w wizard) summary() string {
	rows := []struct{ label, value string }{
		{"Establishment Name or Partial Name", w.fs.Keyword},
		{"City", w.fs.City},
		{"County", w.fs.County},
		{"Permit", w.fs.PermitType},
		{"Lowest Score", strconv.Itoa(w.fs.ScoreLow)},
		{"Highest Score", strconv.Itoa(w.fs.ScoreHigh)},
		{"Start Date", w.fs.StartDate},
		{"End Date", w.fs.EndDate},
	}

	var sb strings.Builder
	sb.WriteString(valueStyle.Render("Are these the correct values?"))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render(r.label+":"), valueStyle.Render(r.value)))
	}
	return sb.String()
}

func newPicker(title string, values []string) list.Model {
	items := make([]list.Item, len(values))
	for i, v := range values {
		items[i] = option(v)
	}

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	l := list.New(items, d, pickerWidth, pickerHeight)
	l.Title = title
	l.SetShowStatusBar(false)
	return l
}

// RunWizard walks the user through one complete FilterSet and the
// confirmation summary. The returned FilterSet is only meaningful when the
// outcome is OutcomeConfirmed.
func RunWizard(choices Choices, endDate string) (domain.FilterSet, Outcome, error) {
	m, err := tea.NewProgram(newWizard(choices, endDate)).Run()
	if err != nil {
		return domain.FilterSet{}, OutcomeCancelled, err
	}
	final := m.(wizard)
	return final.fs, final.outcome, nil
}
