package main

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jzhdev/vcanvas/cmd/vcanvas/internal/config"
	"github.com/jzhdev/vcanvas/cmd/vcanvas/internal/ui"
	"github.com/jzhdev/vcanvas/pkg/components/canvas"
	"github.com/jzhdev/vcanvas/pkg/export"
	"github.com/spf13/cobra"
)

func newTUICommand() *cobra.Command {
	var snapshot string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Resize and zoom the canvas in the terminal",
		Long: `Draws the canvas in the terminal. Drag the right edge, bottom edge or corner
with the mouse to resize, scroll to zoom.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			return runTUI(path, snapshot)
		},
	}

	cmd.Flags().StringVarP(&snapshot, "snapshot", "o", "", "Write the final canvas to this .svg or .png file on exit")

	return cmd
}

func runTUI(path, snapshot string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	model := ui.NewModel(cfg.Canvas.Surface(), cfg.TUI.CellWidth, cfg.TUI.CellHeight, canvas.SampleStroke)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	m, ok := final.(ui.Model)
	if !ok {
		return nil
	}
	m.Close()
	if snapshot == "" {
		return nil
	}
	if err := export.Save(export.Options{Path: snapshot, State: m.State(), Strokes: m.Strokes()}); err != nil {
		return err
	}
	log.Printf("[tui] Wrote %s", snapshot)
	return nil
}
