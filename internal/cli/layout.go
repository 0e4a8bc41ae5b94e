package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/workspace"
)

// layoutCommand creates the layout command for inspecting tile placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		width, height int
		mode          string
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute desktop tile placements for a viewport",
		Long: `Compute desktop tile placements for a viewport.

Placements are deterministic: the same catalog, viewport and mode always
produce the same positions. The viewport defaults to layout.width and
layout.height from the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), width, height, mode, asJSON)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "viewport width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "viewport height in pixels")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "placement mode: scatter (default), anchors")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")

	return cmd
}

func (c *CLI) runLayout(_ context.Context, width, height int, mode string, asJSON bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	vp := cfg.Viewport()
	if width > 0 {
		vp.Width = float64(width)
	}
	if height > 0 {
		vp.Height = float64(height)
	}
	opts := cfg.LayoutOptions()
	if mode != "" {
		if opts.Mode, err = geometry.ParseMode(mode); err != nil {
			return err
		}
	}

	ws := workspace.New(cat, workspace.Options{Viewport: vp, Layout: opts, Logger: c.Logger})
	defer ws.Close()
	view := ws.Snapshot(time.Time{})

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	printKeyValue("Viewport", fmt.Sprintf("%gx%g", vp.Width, vp.Height))
	printKeyValue("Breakpoint", view.Breakpoint)
	printKeyValue("Mode", view.Mode)
	printNewline()
	fmt.Fprintln(stdout, placementTable(view))
	return nil
}

// placementTable renders the placements bottom to top.
func placementTable(view workspace.View) string {
	rows := make([][]string, 0, len(view.Tiles))
	for _, t := range view.Tiles {
		rows = append(rows, []string{
			t.ID,
			strconv.FormatFloat(t.X, 'f', 1, 64),
			strconv.FormatFloat(t.Y, 'f', 1, 64),
			fmt.Sprintf("%gx%g", t.W, t.H),
			strconv.FormatFloat(t.Rotation, 'f', 2, 64),
			strconv.Itoa(t.Z),
			t.Href,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Tile", "X", "Y", "Size", "Rot", "Z", "Action").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 6:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}
