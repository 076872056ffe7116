package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mattjoyce/dongerhook/internal/config"
	"github.com/mattjoyce/dongerhook/internal/content"
	"github.com/mattjoyce/dongerhook/internal/tui"
)

func newContentCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect the content table",
	}
	cmd.AddCommand(newContentListCmd(opts), newContentPickCmd(opts))
	return cmd
}

// openContent loads the table named by the config without requiring a
// public key.
func openContent(opts *rootOptions) (*content.Table, error) {
	cfg, err := config.Read(opts.resolveConfigPath())
	if err != nil {
		return nil, err
	}
	return content.Open(cfg.Content.Path)
}

func newContentListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show categories with entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := openContent(opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderContentList(table))
			return nil
		},
	}
}

func renderContentList(table *content.Table) string {
	theme := tui.NewDefaultTheme()
	names := table.Categories()

	width := len("CATEGORY")
	for _, name := range names {
		width = max(width, lipgloss.Width(name))
	}
	col := lipgloss.NewStyle().Width(width + 2)
	num := lipgloss.NewStyle().Width(9).Align(lipgloss.Right)

	rows := []string{
		theme.Header.Render(lipgloss.JoinHorizontal(lipgloss.Top, col.Render("CATEGORY"), num.Render("ENTRIES"), "  SAMPLE")),
	}
	for _, name := range names {
		entries := table.Entries(name)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			col.Render(name),
			num.Render(strconv.Itoa(len(entries))),
			"  "+theme.Highlight.Render(entries[0]),
		))
	}
	rows = append(rows, theme.Dim.Render(fmt.Sprintf("%d categories, %d entries", len(names), table.Len())))
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func newContentPickCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pick [category]",
		Short: "Pick one entry the way the slash command would",
		Long: `Pick one entry the way the slash command would. An unknown or
missing category picks from every category.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := openContent(opts)
			if err != nil {
				return err
			}

			var category *string
			if len(args) == 1 {
				category = &args[0]
				if !table.Has(args[0]) {
					fmt.Fprintln(cmd.ErrOrStderr(), tui.NewDefaultTheme().Dim.Render(
						fmt.Sprintf("unknown category %q; picking from every category", args[0])))
				}
			}
			got, err := table.Select(category)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), got)
			return nil
		},
	}
}
