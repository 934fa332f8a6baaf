package tui

import (
	"fmt"

	"quantumworks-backend/pkg/contactform"

	tea "github.com/charmbracelet/bubbletea"
)

// Run mounts a form backed by submitter and blocks until the user quits.
// The form is closed on return, which stops a pending success timer.
func Run(submitter contactform.Submitter, projectTypes []string, opts ...tea.ProgramOption) error {
	var p *tea.Program

	form := contactform.New(submitter, contactform.WithOnChange(func(contactform.Snapshot) {
		// Update itself triggers changes, so Send must not run synchronously
		go p.Send(FormChangedMsg{})
	}))
	defer form.Close()

	p = tea.NewProgram(NewModel(form, projectTypes), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("contact form: %w", err)
	}
	return nil
}
