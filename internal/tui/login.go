// Package tui is the interactive login screen. It renders the state of an
// mvi.Container and turns key presses into intents; it holds no login logic
// of its own.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/loginmvi/internal/auth"
	"github.com/idilsaglam/loginmvi/internal/mvi"
)

type (
	Store = mvi.Container[auth.UserProfile]
	State = mvi.State[auth.UserProfile]
)

// submitThrottle drops a Submit that follows the previous one too closely,
// e.g. a held-down enter key.
const submitThrottle = 300 * time.Millisecond

// stateMsg carries a state published by the store into the Bubble Tea loop.
type stateMsg struct{ state State }

// Model is the Bubble Tea model of the login screen.
type Model struct {
	store       *Store
	states      chan State
	done        chan struct{}
	unsubscribe func()

	inputs []textinput.Model // one per store field, same order
	names  []string
	focus  int

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	state State
	width int

	now        func() time.Time
	lastSubmit time.Time
}

// New builds the screen and subscribes it to store. Call Close when the
// program has exited.
func New(store *Store) Model {
	m := Model{
		store:   store,
		states:  make(chan State),
		done:    make(chan struct{}),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(pendingStyle)),
		help:    help.New(),
		keys:    defaultKeys(),
		state:   store.State(),
		now:     time.Now,
	}
	m.help.Styles.ShortKey = accentStyle
	m.help.Styles.ShortDesc = mutedStyle

	for _, f := range m.state.Fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = "please enter " + label(f)
		ti.CharLimit = 200
		ti.SetValue(f.Value)
		if f.Name == auth.FieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs = append(m.inputs, ti)
		m.names = append(m.names, f.Name)
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}

	states, done := m.states, m.done
	m.unsubscribe = store.Subscribe(func(s State) {
		select {
		case states <- s:
		case <-done:
		}
	})
	return m
}

// Close detaches the screen from its store.
func (m Model) Close() {
	m.unsubscribe()
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// waitForState delivers the next published state as a stateMsg.
func (m Model) waitForState() tea.Cmd {
	states, done := m.states, m.done
	return func() tea.Msg {
		select {
		case <-done:
			return nil
		default:
		}
		select {
		case s := <-states:
			return stateMsg{s}
		case <-done:
			return nil
		}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForState())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		wasLoading := m.state.Loading
		m.state = msg.state
		cmds := []tea.Cmd{m.waitForState()}
		if m.state.Loading && !wasLoading {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			if m.state.Successful {
				return m, tea.Quit
			}
			now := m.now()
			if !m.lastSubmit.IsZero() && now.Sub(m.lastSubmit) < submitThrottle {
				return m, nil
			}
			m.lastSubmit = now
			m.store.Dispatch(mvi.Submit{})
			return m, nil
		case key.Matches(msg, m.keys.Next):
			return m, m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.moveFocus(-1)
		}
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	i := m.focus
	before := m.inputs[i].Value()
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	if after := m.inputs[i].Value(); after != before {
		m.store.Dispatch(mvi.FieldChanged{Name: m.names[i], Value: after})
	}
	return m, cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Login") + "  " + mutedStyle.Render("MVI"))
	b.WriteString("\n\n")

	for i, f := range m.state.Fields {
		if i >= len(m.inputs) {
			break
		}
		name := lipgloss.NewStyle().Width(labelWidth).Render(label(f))
		if i == m.focus {
			name = focusedStyle.Width(labelWidth).Render(label(f))
		}
		b.WriteString(name + m.inputs[i].View() + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return panelString(b.String())
}

// status is the loading indicator / toast line.
func (m Model) status() string {
	switch {
	case m.state.Loading:
		return m.spinner.View() + " " + pendingStyle.Render("signing in…")
	case m.state.Successful:
		return successStyle.Render(fmt.Sprintf("✔ login successful, welcome %s", m.state.Result.Name))
	case m.state.Err != nil:
		return errorStyle.Render("✖ " + m.state.ErrorMessage())
	}
	return mutedStyle.Render("enter your credentials")
}

// State returns the last state the screen rendered.
func (m Model) State() State { return m.state }

// Run shows the login screen until the user quits and returns the last
// rendered state.
func Run(store *Store, opts ...tea.ProgramOption) (State, error) {
	m := New(store)
	defer m.Close()

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return State{}, fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.State(), nil
	}
	return store.State(), nil
}

func label(f mvi.Field) string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}
