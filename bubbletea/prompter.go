package bubbletea

import (
	"slices"
	"strings"

	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var _ diffpane.Prompter = (*Prompter)(nil)

// Prompter collects session notices for the message line. Update cannot
// block for an answer, so Confirm declines and records the question; the
// model asks the user and, on yes, re-runs the command with the answer
// armed.
type Prompter struct {
	notices []string
	asked   string
	armed   *bool
}

// NewPrompter returns an empty prompter.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Notify records msg for display.
func (p *Prompter) Notify(msg string) {
	p.notices = append(p.notices, flatten(msg))
}

// Confirm returns the armed answer if there is one. Otherwise it records
// the question and declines.
func (p *Prompter) Confirm(msg string) bool {
	if p.armed != nil {
		answer := *p.armed
		p.armed = nil
		return answer
	}
	p.asked = flatten(msg)
	return false
}

// Notices returns the notices not yet shown.
func (p *Prompter) Notices() []string {
	return slices.Clone(p.notices)
}

// arm sets the answer of the next Confirm.
func (p *Prompter) arm(answer bool) {
	p.armed = &answer
}

// disarm drops an armed answer that no Confirm used.
func (p *Prompter) disarm() {
	p.armed = nil
}

// take returns and clears the recorded notices and question. An armed
// answer stays in place.
func (p *Prompter) take() (notices []string, asked string) {
	notices, asked = p.notices, p.asked
	p.notices, p.asked = nil, ""
	return notices, asked
}

// flatten folds a multi-line dialog text into one line.
func flatten(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
