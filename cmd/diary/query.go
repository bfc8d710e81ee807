package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/personal-diary/internal/theme"
)

func lsCmd(c *cli) *cobra.Command {
	var tag, sort string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List your entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := c.currentUser()
			if err != nil {
				return err
			}
			entries, err := c.diary.ListEntries(cmd.Context(), userID, tag, c.defaultSort(sort))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderList(entries.Sorted(), c.cfg.Display.DateFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "only entries with this tag")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "created_asc, created_desc, modified_asc or modified_desc")
	return cmd
}

func searchCmd(c *cli) *cobra.Command {
	var tag, sort string

	cmd := &cobra.Command{
		Use:   "search <words...>",
		Short: "Find entries containing every word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := c.currentUser()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			entries, err := c.diary.SearchEntries(cmd.Context(), &query, userID, tag, c.defaultSort(sort))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderList(entries.Sorted(), c.cfg.Display.DateFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "only entries with this tag")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "created_asc, created_desc, modified_asc or modified_desc")
	return cmd
}

func tagsCmd(c *cli) *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List every tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if prune {
				n, err := c.diary.Tags().Prune(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d unused tags.\n", n)
			}

			tags, err := c.diary.Tags().All(cmd.Context())
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				fmt.Fprintln(out, theme.HelpStyle.Render("No tags yet."))
				return nil
			}
			for _, t := range tags {
				fmt.Fprintln(out, theme.TagStyle.Render("#"+t.Name))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "delete tags no entry uses")
	return cmd
}

func todayCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Check whether you have written today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := c.currentUser()
			if err != nil {
				return err
			}
			ok, err := c.diary.CheckEntryForToday(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(cmd.OutOrStdout(), theme.SuccessStyle.Render("You have written today."))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), theme.ReminderStyle.Render("You have not written anything today."))
			}
			return nil
		},
	}
}
