package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fekuna/ammodeals-service/internal/tui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively",
	Long: `Opens the comparison view in the terminal.

Keys:
  type      search by name or brand
  tab       next caliber (shift+tab: previous)
  ctrl+s    toggle sort between price per round and name
  esc       quit`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	repo, err := loadCatalog(cmd.Context(), cfg, appLogger)
	if err != nil {
		return err
	}
	catalog, err := repo.FindAll(cmd.Context())
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		tui.NewModel(catalog, cfg.Catalog.Calibers),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}
