package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/account"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Auth form fields.
const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

// AuthModel is the login / signup form. With an active login it shows the
// account and offers to log out.
type AuthModel struct {
	accounts *account.Service
	inputs   []textinput.Model
	focus    int
	signup   bool
	user     *account.User
	message  string
	isError  bool

	width     int
	height    int
	goingBack bool
	quitting  bool
}

// NewAuthModel creates the form. accounts may be nil.
func NewAuthModel(accounts *account.Service, width, height int) AuthModel {
	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		t := textinput.New()
		t.CharLimit = 64
		t.Width = 30
		inputs[i] = t
	}
	inputs[fieldUsername].Placeholder = "username"
	inputs[fieldEmail].Placeholder = "email"
	inputs[fieldPassword].Placeholder = "password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'

	m := AuthModel{
		accounts: accounts,
		inputs:   inputs,
		focus:    fieldEmail,
		width:    width,
		height:   height,
	}
	if accounts != nil {
		if u, err := accounts.Current(); err == nil {
			m.user = &u
		}
	}
	m.inputs[m.focus].Focus()
	return m
}

// fields returns the inputs shown in the current form.
func (m AuthModel) fields() []int {
	if m.signup {
		return []int{fieldUsername, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (m *AuthModel) move(delta int) {
	fields := m.fields()
	pos := 0
	for i, f := range fields {
		if f == m.focus {
			pos = i
		}
	}
	m.setFocus(fields[core.Wrap(pos+delta, len(fields))])
}

func (m *AuthModel) setFocus(f int) {
	m.inputs[m.focus].Blur()
	m.focus = f
	m.inputs[m.focus].Focus()
}

// Update handles messages for the form.
func (m AuthModel) Update(msg tea.Msg) (AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.goingBack = true
			return m, nil
		}
		if m.accounts == nil {
			return m, nil
		}
		if m.user != nil {
			return m.handleLoggedIn(msg)
		}
		return m.handleForm(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m AuthModel) handleLoggedIn(msg tea.KeyMsg) (AuthModel, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "enter", "o":
		if err := m.accounts.Logout(); err != nil {
			m.message, m.isError = err.Error(), true
			return m, nil
		}
		m.user = nil
		m.message, m.isError = "Logged out", false
		m.setFocus(fieldEmail)
	}
	return m, nil
}

func (m AuthModel) handleForm(msg tea.KeyMsg) (AuthModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.move(1)
		return m, nil
	case "shift+tab", "up":
		m.move(-1)
		return m, nil
	case "ctrl+t":
		m.signup = !m.signup
		m.message = ""
		if m.signup {
			m.setFocus(fieldUsername)
		} else {
			m.setFocus(fieldEmail)
		}
		return m, nil
	case "enter":
		fields := m.fields()
		if m.focus != fields[len(fields)-1] {
			m.move(1)
			return m, nil
		}
		m.submit()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit sends the form to the account service.
func (m *AuthModel) submit() {
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()

	var (
		u   account.User
		err error
	)
	if m.signup {
		u, err = m.accounts.Signup(m.inputs[fieldUsername].Value(), email, password)
	} else {
		u, err = m.accounts.Login(email, password)
	}
	if err != nil {
		m.message, m.isError = authErrorText(err), true
		return
	}

	m.user = &u
	m.message, m.isError = "Welcome, "+u.Username+"!", false
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
}

// authErrorText turns account errors into form messages.
func authErrorText(err error) string {
	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, account.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, account.ErrEmailTaken):
		return "That email is already registered"
	case errors.Is(err, account.ErrUsernameTaken):
		return "That username is taken"
	}
	return "Something went wrong: " + err.Error()
}

var (
	authTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorPortal.ANSI()))
	authLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorMuted.ANSI())).Width(10)
	authErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorSnakeDead.ANSI()))
	authOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorSnakeBody.ANSI()))
	authBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(core.ColorWall.ANSI())).Padding(1, 3)
)

// View renders the form.
func (m AuthModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var body strings.Builder
	switch {
	case m.accounts == nil:
		body.WriteString(authTitleStyle.Render("ACCOUNT"))
		body.WriteString("\n\nAccounts are not available here.")
	case m.user != nil:
		body.WriteString(authTitleStyle.Render("ACCOUNT"))
		body.WriteString("\n\n")
		body.WriteString(authLabelStyle.Render("Username") + m.user.Username + "\n")
		body.WriteString(authLabelStyle.Render("Email") + m.user.Email + "\n")
		body.WriteString(authLabelStyle.Render("Joined") + m.user.CreatedAt + "\n")
		body.WriteString("\n" + authLabelStyle.UnsetWidth().Render("enter: log out  ·  esc: back"))
	default:
		title := "LOG IN"
		if m.signup {
			title = "SIGN UP"
		}
		body.WriteString(authTitleStyle.Render(title))
		body.WriteString("\n\n")
		labels := map[int]string{fieldUsername: "Username", fieldEmail: "Email", fieldPassword: "Password"}
		for _, f := range m.fields() {
			body.WriteString(authLabelStyle.Render(labels[f]) + m.inputs[f].View() + "\n")
		}
		other := "sign up"
		if m.signup {
			other = "log in"
		}
		body.WriteString("\n" + authLabelStyle.UnsetWidth().Render("enter: submit  ·  tab: next  ·  ctrl+t: "+other+"  ·  esc: back"))
	}

	if m.message != "" {
		style := authOKStyle
		if m.isError {
			style = authErrStyle
		}
		body.WriteString("\n\n" + style.Render(m.message))
	}

	box := authBoxStyle.Render(body.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// User returns the logged-in account, or nil.
func (m AuthModel) User() *account.User { return m.user }

// IsGoingBack returns true if user wants to go back to menu.
func (m AuthModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting returns true if user wants to quit entirely.
func (m AuthModel) IsQuitting() bool { return m.quitting }
