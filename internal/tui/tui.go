package tui

import (
	"wishlist-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive wishlist browser and blocks until the user
// quits.
func Run(s store.Store) error {
	applyColorProfilePreference()
	applyThemePreference()

	m, err := newAppModel(s)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
