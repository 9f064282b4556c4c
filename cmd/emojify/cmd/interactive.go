package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/translate"
	"github.com/f3rmion/emojify/internal/tui"
	"github.com/f3rmion/emojify/internal/watch"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch an interactive terminal UI for translating between emoji and text.

Features:
  - Translation updates as you type
  - Swap direction with tab, copy the result with ctrl+y
  - Browse and search the dictionary
  - Open another dictionary file

With --watch the dictionary file is reloaded when it changes on disk.

Controls:
  Esc     Toggle menu
  Ctrl+C  Quit`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	interactiveCmd.Flags().Bool("watch", false, "reload the dictionary file when it changes")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	watchFile, _ := cmd.Flags().GetBool("watch")
	return runTUI(cmd, watchFile)
}

// runTUI loads the translator and runs the TUI until the user quits.
func runTUI(cmd *cobra.Command, watchFile bool) error {
	d, path, tr, err := loadTranslator()
	if err != nil {
		return err
	}
	dir, err := defaultDirection()
	if err != nil {
		return err
	}
	if d.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Warning: dictionary is empty")
	}

	session := translate.NewSession(tr)
	app := tui.NewApp(session, d, path, dir)

	var w *watch.Watcher
	if watchFile {
		if path == "" {
			fmt.Fprintln(os.Stderr, "Warning: --watch ignored for the built-in dictionary")
		} else {
			w = watch.New(path, session, logger)
			app = app.WithOpenHook(w.Retarget)
		}
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	if w != nil {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		w.OnReload = func(path string, d *dictionary.Dictionary, err error) {
			p.Send(tui.DictionaryReloadedMsg{Dict: d, Path: path, Err: err})
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error("dictionary watcher stopped", "error", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
