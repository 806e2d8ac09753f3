package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"diagram-editor-service/internal/core/services"
)

func newDiagramsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diagrams",
		Short: "List the diagrams of the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}

			diagrams, err := services.NewDiagramService(a.client).List(cmd.Context(), sess)
			if err != nil {
				return fmt.Errorf("list diagrams: %w", err)
			}

			if a.jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(diagrams)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tCANVAS")
			for _, d := range diagrams {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%dx%d\n", d.ID, d.Name, d.Status, d.CanvasWidth, d.CanvasHeight)
			}
			return tw.Flush()
		},
	}
}
