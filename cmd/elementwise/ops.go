package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newOpsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the registered kernels with their devices and dtypes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.kernelTable())
		},
	}
}

// kernelTable renders one row per (op, device) pair of the registry.
func (a *app) kernelTable() string {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	table := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Op", "Device", "DTypes")

	for _, op := range a.registry.Ops() {
		for _, dev := range a.registry.Devices(op) {
			var names []string
			for _, dt := range a.registry.DTypes(op, dev) {
				names = append(names, dt.String())
			}
			table.Row(string(op), dev.String(), strings.Join(names, " "))
		}
	}
	return table.String()
}
