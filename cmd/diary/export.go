package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/personal-diary/internal/export"
	"github.com/nhle/personal-diary/internal/model"
)

func exportCmd(c *cli) *cobra.Command {
	var format, output, tag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your entries as Markdown or HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := c.currentUser()
			if err != nil {
				return err
			}
			entries, err := c.diary.ListEntries(cmd.Context(), userID, tag, model.SortCreatedAsc)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := export.Write(w, export.Format(format), entries.Sorted()); err != nil {
				return err
			}
			c.logger.Info("exported entries", "count", entries.Len(), "format", format, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatMarkdown), "markdown or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&tag, "tag", "", "only entries with this tag")
	return cmd
}
