package main

import (
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/networkteam/pagetour/scenario"
	"github.com/networkteam/pagetour/scenarios"
)

func newListCmd(a *app) *cobra.Command {
	var selection scenario.Selection

	listCmd := &cobra.Command{
		Use:   "list [scenario...]",
		Short: "List scenarios and their tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			selection.Names = args

			registry := scenario.NewRegistry()
			scenarios.Register(registry, a.scenarioOptions())

			selected, err := registry.Select(selection)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range selected {
				printfTo(w, "%s\t%s\t%s\n", s.Name, strings.Join(s.Tags, ","), s.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			printf(cmd, "\n%d scenarios, tags: %s\n", len(selected), strings.Join(registry.Tags(), ", "))
			return nil
		},
	}

	listCmd.Flags().StringSliceVarP(&selection.Tags, "tag", "t", nil, "only list scenarios with one of these tags")
	listCmd.Flags().StringSliceVar(&selection.ExcludeTags, "exclude-tag", nil, "skip scenarios with one of these tags")

	return listCmd
}
