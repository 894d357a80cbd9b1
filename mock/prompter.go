package mock

import "github.com/fwojciec/diffpane"

// Compile-time interface verification.
var _ diffpane.Prompter = (*Prompter)(nil)

// Prompter is a mock implementation of diffpane.Prompter.
type Prompter struct {
	NotifyFn  func(msg string)
	ConfirmFn func(msg string) bool
}

func (p *Prompter) Notify(msg string) {
	p.NotifyFn(msg)
}

func (p *Prompter) Confirm(msg string) bool {
	return p.ConfirmFn(msg)
}
