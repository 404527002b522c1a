package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/kxue43/fe-scaffold/config"
	"github.com/kxue43/fe-scaffold/scaffold"
)

type (
	Form struct {
		dump      io.Writer
		help      help.Model
		questions []Question
		values    []string
		problem   string
		ti        textinput.Model
		index     int
		cursor    int
		aborted   bool
	}

	// FormPrompter runs a [Form] as a bubbletea program.
	FormPrompter struct {
		In  io.Reader
		Out io.Writer
		// Every message the form receives is dumped here when non-nil.
		DebugLog io.Writer
	}

	textKeyMap struct{}

	choiceKeyMap struct{}
)

var (
	keys = struct {
		up     key.Binding
		down   key.Binding
		submit key.Binding
		help   key.Binding
		quit   key.Binding
	}{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "submit"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}

	palette = struct {
		magenta lipgloss.Color
		cyan    lipgloss.Color
		red     lipgloss.Color
	}{
		magenta: lipgloss.Color("212"),
		cyan:    lipgloss.Color("86"),
		red:     lipgloss.Color("203"),
	}

	highlightedStyle = lipgloss.NewStyle().Foreground(palette.magenta)
	answerStyle      = lipgloss.NewStyle().Foreground(palette.cyan)
	problemStyle     = lipgloss.NewStyle().Foreground(palette.red)
)

func (textKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.submit, keys.quit}
}

func (textKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{keys.submit, keys.quit}}
}

func (choiceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.help, keys.quit}
}

func (choiceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.up, keys.down, keys.submit},
		{keys.help, keys.quit},
	}
}

func NewForm(profile config.Profile) Form {
	qs := Questions(profile)

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48
	ti.Prompt = " "

	f := Form{
		questions: qs,
		values:    make([]string, len(qs)),
		ti:        ti,
		help:      help.New(),
	}

	if qs[0].Kind == Text {
		_ = f.ti.Focus()
	}

	return f
}

func (f Form) Init() tea.Cmd {
	return textinput.Blink
}

func (f Form) Done() bool {
	return f.index == len(f.questions)
}

func (f Form) Aborted() bool {
	return f.aborted
}

func (f Form) Answers() scaffold.Answers {
	return toAnswers(f.questions, f.values)
}

func (f Form) advance() (tea.Model, tea.Cmd) {
	f.index += 1
	f.problem = ""
	f.cursor = 0
	f.help.ShowAll = false

	if f.Done() {
		f.ti.Blur()

		return f, tea.Quit
	}

	if f.questions[f.index].Kind == Choice {
		f.ti.Blur()

		return f, nil
	}

	f.ti.Reset()
	cmd := f.ti.Focus()

	return f, cmd
}

func (f Form) choiceUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := f.questions[f.index]

	switch {
	case key.Matches(msg, keys.up):
		if f.cursor > 0 {
			f.cursor -= 1
		}
	case key.Matches(msg, keys.down):
		if f.cursor < len(q.Choices)-1 {
			f.cursor += 1
		}
	case key.Matches(msg, keys.help):
		f.help.ShowAll = !f.help.ShowAll
	case key.Matches(msg, keys.submit):
		f.values[f.index] = q.Choices[f.cursor]

		return f.advance()
	default:
	}

	return f, nil
}

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.dump != nil {
		spew.Fdump(f.dump, msg)
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.help.Width = msg.Width

		return f, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			f.aborted = true

			return f, tea.Quit
		case f.Done():
			return f, nil
		case f.questions[f.index].Kind == Choice:
			return f.choiceUpdate(msg)
		case key.Matches(msg, keys.submit):
			value, problem := f.questions[f.index].Check(f.ti.Value())
			if problem != "" {
				f.problem = problem

				return f, nil
			}

			f.values[f.index] = value

			return f.advance()
		default:
			f.problem = ""
		}
	}

	if f.Done() || f.questions[f.index].Kind != Text {
		return f, nil
	}

	f.ti, cmd = f.ti.Update(msg)

	return f, cmd
}

func (f Form) View() string {
	if f.aborted {
		return ""
	}

	var b strings.Builder

	for i := 0; i < f.index; i++ {
		b.WriteString("✔ ")
		b.WriteString(f.questions[i].Message)
		b.WriteRune(' ')
		b.WriteString(answerStyle.Render(f.values[i]))
		b.WriteRune('\n')
	}

	if f.Done() {
		return b.String()
	}

	q := f.questions[f.index]

	b.WriteString(highlightedStyle.Render("? "))
	b.WriteString(q.Message)

	if q.Kind == Text {
		b.WriteString(f.ti.View())
		b.WriteRune('\n')
	} else {
		b.WriteRune('\n')

		for i, choice := range q.Choices {
			if i == f.cursor {
				b.WriteString(highlightedStyle.Render("> " + choice))
			} else {
				b.WriteString("  " + choice)
			}

			b.WriteRune('\n')
		}
	}

	if f.problem != "" {
		b.WriteString(problemStyle.Render(">> " + f.problem))
		b.WriteRune('\n')
	}

	b.WriteRune('\n')

	if q.Kind == Text {
		b.WriteString(f.help.View(textKeyMap{}))
	} else {
		b.WriteString(f.help.View(choiceKeyMap{}))
	}

	b.WriteRune('\n')

	return b.String()
}

// Non-nil returned error wraps [ErrAborted] if the user quit before answering everything.
func (p FormPrompter) Collect(ctx context.Context, profile config.Profile) (scaffold.Answers, error) {
	form := NewForm(profile)
	form.dump = p.DebugLog

	opts := []tea.ProgramOption{tea.WithContext(ctx)}

	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}

	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	final, err := tea.NewProgram(form, opts...).Run()
	if err != nil {
		return scaffold.Answers{}, fmt.Errorf("failed to run the prompt form: %w", err)
	}

	f, ok := final.(Form)
	if !ok || f.Aborted() || !f.Done() {
		return scaffold.Answers{}, ErrAborted
	}

	return f.Answers(), nil
}
