package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"astroinsight/internal/service"
	"astroinsight/internal/suggest"
	"astroinsight/internal/tui"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Open the interactive search screen",
	Long: `Open the interactive search screen.

Keys:
  enter        ask the typed question or the selected suggestion
  up/down      move through suggestions
  esc          hide suggestions
  tab          cycle answer, summary and highlights views
  pgup/pgdown  scroll the result
  ctrl+c       quit`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	// the screen owns the terminal, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if appCfg.Log.File != "" {
		f, err := os.OpenFile(appCfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	if err := setupLogger(appCfg.Log.Level, logOut); err != nil {
		return err
	}

	svc, err := service.FromConfig(appCfg)
	if err != nil {
		return err
	}
	recents := suggest.NewRecents(appCfg.History.Max)
	if appCfg.History.Path != "" {
		recents, err = suggest.LoadRecents(appCfg.History.Path, appCfg.History.Max)
		if err != nil {
			return err
		}
	}
	m := tui.New(svc, suggest.New(suggest.DefaultPhrases, recents), recents)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}
