package cmd

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/karto-app/karto/internal/config"
	"github.com/karto-app/karto/pkg/alerts"
	"github.com/karto-app/karto/pkg/platform"
	"github.com/karto-app/karto/pkg/tui"
)

var demoWatch bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Open the catalog with its filter sheet in the terminal",
	Long: `Open the KARTO catalog in the terminal.

Press f to open the filter sheet. Drag its handle down with the mouse, click
the dimmed backdrop or press esc to close it. Applied filters and the number
of dismissed sheets are kept in storage.path when it is set.

With --watch, edits to karto.yaml take effect the next time the sheet opens.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoWatch, "watch", true, "reload karto.yaml when it changes")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	store, err := platform.OpenStore(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer store.Close()

	bus := alerts.NewBus(alerts.WithLogger(logger.WithPrefix("alerts")))
	model, err := tui.New(
		tui.WithStore(store),
		tui.WithLogger(logger.WithPrefix("tui")),
		tui.WithBus(bus),
		tui.WithInsets(cfg.Insets),
		tui.WithSheetOptions(cfg.SheetOptions()...),
	)
	if err != nil {
		return err
	}
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	dir := cfg.Root
	if cfg.Path != "" {
		dir = filepath.Dir(cfg.Path)
	}
	if cfg.Path != "" && filepath.Base(cfg.Path) != config.FileName {
		logger.Debug("not watching a config file with a custom name", "path", cfg.Path)
		demoWatch = false
	}
	if demoWatch {
		go func() {
			err := config.Watch(ctx, dir, logger.WithPrefix("config"), func(r *config.Resolved, err error) {
				if err != nil {
					program.Send(tui.AlertMsg{Type: alerts.TypeWarning, Title: config.FileName, Message: err.Error()})
					return
				}
				program.Send(tui.SheetOptionsMsg{Options: r.SheetOptions()})
			})
			if err != nil {
				logger.Warn("config watch stopped", "err", err)
			}
		}()
	}

	_, err = program.Run()
	return err
}
