// Package tui is a terminal front end for the contact form. It hosts one
// contactform.Form for the lifetime of the program.
package tui

import (
	"context"
	"errors"
	"strings"

	"quantumworks-backend/pkg/contactform"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// focus order
const (
	focusName = iota
	focusEmail
	focusProjectType
	focusMessage
	focusSubmit
	focusCount
)

// FormChangedMsg tells the model to re-read the form. It carries no state so
// out-of-order delivery is harmless.
type FormChangedMsg struct{}

type submitDoneMsg struct {
	err error
}

// Model is the bubbletea model wrapping a contactform.Form.
type Model struct {
	form         *contactform.Form
	projectTypes []string

	name     textinput.Model
	email    textinput.Model
	message  textarea.Model
	typeIdx  int // -1 while nothing is selected
	focus    int
	spinner  spinner.Model
	snap     contactform.Snapshot
	inFlight bool
	quitting bool
}

// NewModel builds the view for form. projectTypes are the selector options.
func NewModel(form *contactform.Form, projectTypes []string) Model {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 100

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254

	message := textarea.New()
	message.Placeholder = "Tell us about your project"
	message.ShowLineNumbers = false
	message.SetHeight(4)

	m := Model{
		form:         form,
		projectTypes: projectTypes,
		name:         name,
		email:        email,
		message:      message,
		typeIdx:      -1,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(focusStyle)),
		snap:         form.Snapshot(),
	}
	m.name.Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FormChangedMsg:
		m.snap = m.form.Snapshot()
		return m, nil

	case submitDoneMsg:
		m.inFlight = false
		m.snap = m.form.Snapshot()
		var invalid *contactform.ValidationError
		switch {
		case errors.As(msg.err, &invalid):
			return m, m.setFocus(firstInvalid(invalid.Result))
		case msg.err == nil:
			m.resetInputs()
		}
		return m, nil

	case spinner.TickMsg:
		// The spinner only runs while a request is in flight
		if !m.submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		if m.submitting() {
			// Input is disabled until the request completes
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			if msg.String() == "tab" || m.focus != focusMessage {
				return m, m.setFocus((m.focus + 1) % focusCount)
			}
		case "shift+tab", "up":
			if msg.String() == "shift+tab" || m.focus != focusMessage {
				return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
			}
		case "ctrl+s":
			return m.submit()
		case "enter":
			switch m.focus {
			case focusSubmit:
				return m.submit()
			case focusName, focusEmail, focusProjectType:
				return m, m.setFocus(m.focus + 1)
			}
		case "left", "right", " ":
			if m.focus == focusProjectType {
				m.cycleProjectType(msg.String() != "left")
				return m, nil
			}
		}
		return m.updateInput(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Get In Touch") + "\n")
	b.WriteString(mutedStyle.Render("Ready to transform your digital presence?") + "\n\n")

	m.field(&b, focusName, "Name", m.name.View(), contactform.FieldName)
	m.field(&b, focusEmail, "Email", m.email.View(), contactform.FieldEmail)
	m.field(&b, focusProjectType, "Project Type", m.projectTypeView(), contactform.FieldProjectType)
	m.field(&b, focusMessage, "Message", m.message.View(), contactform.FieldMessage)

	switch {
	case m.submitting():
		b.WriteString(m.spinner.View() + " Sending...\n")
	case m.focus == focusSubmit:
		b.WriteString(activeButtonStyle.Render("Send Message") + "\n")
	default:
		b.WriteString(buttonStyle.Render("Send Message") + "\n")
	}

	if m.snap.SubmitSuccess {
		b.WriteString("\n" + successStyle.Render("Thank you! Your message has been sent successfully.") + "\n")
	}
	if msg, ok := m.snap.Errors[contactform.FieldSubmit]; ok {
		b.WriteString("\n" + errorStyle.Render(msg) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("tab: next field  ←/→: project type  ctrl+s: send  esc: quit") + "\n")
	return b.String()
}

func (m Model) field(b *strings.Builder, idx int, label, input, key string) {
	if m.focus == idx {
		b.WriteString(focusStyle.Render("▸ ") + labelStyle.Render(label) + "\n")
	} else {
		b.WriteString("  " + labelStyle.Render(label) + "\n")
	}
	b.WriteString(input + "\n")
	if msg, ok := m.snap.Errors[key]; ok {
		b.WriteString(errorStyle.Render(msg) + "\n")
	}
	b.WriteString("\n")
}

func (m Model) projectTypeView() string {
	if m.typeIdx < 0 {
		return mutedStyle.Render("‹ select a project type ›")
	}
	return "‹ " + m.projectTypes[m.typeIdx] + " ›"
}

func (m Model) submitting() bool {
	return m.inFlight || m.snap.IsSubmitting
}

// submit runs Form.Submit as a command. Invalid fields come back as a
// *contactform.ValidationError and never reach the submitter.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.inFlight = true
	form := m.form
	run := func() tea.Msg {
		return submitDoneMsg{err: form.Submit(context.Background())}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
		m.set(contactform.FieldName, m.name.Value())
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
		m.set(contactform.FieldEmail, m.email.Value())
	case focusMessage:
		m.message, cmd = m.message.Update(msg)
		m.set(contactform.FieldMessage, m.message.Value())
	}
	return m, cmd
}

// set forwards an edit to the form. Cursor movement leaves the value alone
// and must not clear the field's error.
func (m *Model) set(field, value string) {
	current := m.form.Fields()
	if current == fieldsWith(current, field, value) {
		return
	}
	if err := m.form.Set(field, value); err == nil {
		m.snap = m.form.Snapshot()
	}
}

func (m *Model) cycleProjectType(forward bool) {
	n := len(m.projectTypes)
	if n == 0 {
		return
	}
	switch {
	case m.typeIdx < 0 && forward:
		m.typeIdx = 0
	case m.typeIdx < 0:
		m.typeIdx = n - 1
	case forward:
		m.typeIdx = (m.typeIdx + 1) % n
	default:
		m.typeIdx = (m.typeIdx + n - 1) % n
	}
	m.set(contactform.FieldProjectType, m.projectTypes[m.typeIdx])
}

func (m *Model) setFocus(idx int) tea.Cmd {
	m.focus = idx
	m.name.Blur()
	m.email.Blur()
	m.message.Blur()
	switch idx {
	case focusName:
		return m.name.Focus()
	case focusEmail:
		return m.email.Focus()
	case focusMessage:
		return m.message.Focus()
	}
	return nil
}

// firstInvalid returns the focus slot of the topmost field with an error.
func firstInvalid(result contactform.ValidationResult) int {
	order := []string{contactform.FieldName, contactform.FieldEmail, contactform.FieldProjectType, contactform.FieldMessage}
	for i, field := range order {
		if _, ok := result[field]; ok {
			return focusName + i
		}
	}
	return focusSubmit
}

func (m *Model) resetInputs() {
	m.name.Reset()
	m.email.Reset()
	m.message.Reset()
	m.typeIdx = -1
}

func fieldsWith(f contactform.Fields, field, value string) contactform.Fields {
	switch field {
	case contactform.FieldName:
		f.Name = value
	case contactform.FieldEmail:
		f.Email = value
	case contactform.FieldProjectType:
		f.ProjectType = value
	case contactform.FieldMessage:
		f.Message = value
	}
	return f
}
