package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run displays m and blocks until the user exits or ctx is cancelled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
